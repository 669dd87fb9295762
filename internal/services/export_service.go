package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/imoblead/fichapro-api/internal/repository"
	"github.com/imoblead/fichapro-api/internal/unify"
	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// ExportService renders the unified portfolio as CSV, XLSX or PDF. Rows are
// the deduplicated listing; complex rows carry their aggregated figures.
type ExportService struct {
	propertyRepo repository.PropertyRepository
}

func NewExportService(propertyRepo repository.PropertyRepository) *ExportService {
	return &ExportService{propertyRepo: propertyRepo}
}

// PortfolioRow is one exported line
type PortfolioRow struct {
	Name        string
	City        string
	State       string
	Type        string
	Status      string
	Units       int
	BuiltArea   float64
	MarketValue float64
	MarketRent  float64
	RentYield   float64
}

func (s *ExportService) portfolioRows(ctx context.Context, filters unify.Filters) ([]PortfolioRow, error) {
	all, err := s.propertyRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	unified := unify.Unify(all, filters)
	rows := make([]PortfolioRow, 0, len(unified))
	for i := range unified {
		p := &unified[i]
		agg := unify.AggregateProperty(p, all)
		rows = append(rows, PortfolioRow{
			Name:        p.Name,
			City:        p.City,
			State:       p.State,
			Type:        p.PropertyType,
			Status:      p.Status,
			Units:       agg.UnitCount,
			BuiltArea:   agg.BuiltArea,
			MarketValue: agg.MarketValue,
			MarketRent:  agg.MarketRent,
			RentYield:   agg.RentYield,
		})
	}
	return rows, nil
}

func (s *ExportService) ExportCSV(ctx context.Context, filters unify.Filters) ([]byte, string, error) {
	rows, err := s.portfolioRows(ctx, filters)
	if err != nil {
		return nil, "", err
	}

	buf := new(bytes.Buffer)
	writer := csv.NewWriter(buf)

	_ = writer.Write([]string{"Portfólio de Imóveis", time.Now().Format("2006-01-02 15:04")})
	_ = writer.Write([]string{""})
	_ = writer.Write([]string{"Imóvel", "Cidade", "UF", "Tipo", "Status", "Unidades", "Área Construída (m²)", "Valor de Mercado", "Aluguel de Mercado", "Rentabilidade (%)"})

	for _, r := range rows {
		_ = writer.Write([]string{
			r.Name,
			r.City,
			r.State,
			r.Type,
			r.Status,
			fmt.Sprintf("%d", r.Units),
			fmt.Sprintf("%.2f", r.BuiltArea),
			fmt.Sprintf("%.2f", r.MarketValue),
			fmt.Sprintf("%.2f", r.MarketRent),
			fmt.Sprintf("%.2f", r.RentYield),
		})
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("portfolio_%s.csv", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

func (s *ExportService) ExportXLSX(ctx context.Context, filters unify.Filters) ([]byte, string, error) {
	rows, err := s.portfolioRows(ctx, filters)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Portfólio"
	_ = f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	_ = f.SetCellValue(sheet, "A1", "Portfólio de Imóveis")
	_ = f.SetCellValue(sheet, "B1", time.Now().Format("02/01/2006"))

	headers := []string{"Imóvel", "Cidade", "UF", "Tipo", "Status", "Unidades", "Área Construída (m²)", "Valor de Mercado", "Aluguel de Mercado", "Rentabilidade (%)"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 3)
		_ = f.SetCellValue(sheet, cell, h)
		_ = f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for rowIdx, r := range rows {
		values := []interface{}{r.Name, r.City, r.State, r.Type, r.Status, r.Units, r.BuiltArea, r.MarketValue, r.MarketRent, r.RentYield}
		for colIdx, v := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+4)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("portfolio_%s.xlsx", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

func (s *ExportService) ExportPDF(ctx context.Context, filters unify.Filters) ([]byte, string, error) {
	rows, err := s.portfolioRows(ctx, filters)
	if err != nil {
		return nil, "", err
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(100, 10, "Portfolio de Imoveis")
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(40, 10, time.Now().Format("02/01/2006"))
	pdf.Ln(14)

	// gofpdf's core fonts are latin-1 only, so headers stay unaccented.
	widths := []float64{70, 30, 12, 25, 25, 18, 30, 35, 30}
	headers := []string{"Imovel", "Cidade", "UF", "Tipo", "Status", "Unid.", "Area (m2)", "Valor Mercado", "Rent. (%)"}

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(224, 224, 224)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, r := range rows {
		cells := []string{
			r.Name,
			r.City,
			r.State,
			r.Type,
			r.Status,
			fmt.Sprintf("%d", r.Units),
			fmt.Sprintf("%.2f", r.BuiltArea),
			fmt.Sprintf("%.2f", r.MarketValue),
			fmt.Sprintf("%.2f", r.RentYield),
		}
		for i, c := range cells {
			pdf.CellFormat(widths[i], 7, c, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("portfolio_%s.pdf", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

// ContentTypeFor maps an export format to its MIME type
func ContentTypeFor(format string) string {
	switch format {
	case "xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case "pdf":
		return "application/pdf"
	default:
		return "text/csv"
	}
}
