package services

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	wkhtmltopdf "github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/imoblead/fichapro-api/internal/config"
	"github.com/imoblead/fichapro-api/internal/models"
	"github.com/imoblead/fichapro-api/internal/storage"
	"github.com/imoblead/fichapro-api/internal/unify"
	"github.com/imoblead/fichapro-api/pkg/logger"
)

//go:embed templates/ficha/*.html
var fichaTemplates embed.FS

var fichaFuncs = template.FuncMap{
	"money": func(v float64) string {
		// pt-BR currency formatting: R$ 1.234,56
		s := fmt.Sprintf("%.2f", v)
		parts := strings.SplitN(s, ".", 2)
		intPart := parts[0]
		var grouped []string
		for len(intPart) > 3 {
			grouped = append([]string{intPart[len(intPart)-3:]}, grouped...)
			intPart = intPart[:len(intPart)-3]
		}
		grouped = append([]string{intPart}, grouped...)
		return "R$ " + strings.Join(grouped, ".") + "," + parts[1]
	},
	"area": func(v float64) string {
		return fmt.Sprintf("%.2f m²", v)
	},
	"pct": func(v float64) string {
		return fmt.Sprintf("%.2f%%", v)
	},
}

// FichaService renders the property sheet, as HTML for the public page and
// as PDF for download and archiving.
type FichaService struct {
	propertySvc *PropertyService
	storage     *storage.LocalStorage
	auditSvc    *AuditService
	cfg         *config.Config
	tmpl        *template.Template
}

func NewFichaService(propertySvc *PropertyService, store *storage.LocalStorage, auditSvc *AuditService, cfg *config.Config) (*FichaService, error) {
	tmpl, err := template.New("property_sheet.html").Funcs(fichaFuncs).ParseFS(fichaTemplates, "templates/ficha/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse ficha templates: %w", err)
	}
	if cfg.WkhtmltopdfPath != "" {
		wkhtmltopdf.SetPath(cfg.WkhtmltopdfPath)
	}
	return &FichaService{
		propertySvc: propertySvc,
		storage:     store,
		auditSvc:    auditSvc,
		cfg:         cfg,
		tmpl:        tmpl,
	}, nil
}

type fichaData struct {
	Property    models.Property
	Units       []models.Property
	Aggregate   unify.Aggregate
	UnitCount   int
	GeneratedAt string
	AppURL      string
}

// RenderHTML produces the ficha page for a property. Fails when the ficha
// flag is off.
func (s *FichaService) RenderHTML(ctx context.Context, propertyID string) ([]byte, error) {
	detail, err := s.propertySvc.GetDetail(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if !detail.Property.FicheAvailable {
		return nil, ErrFichaUnavailable
	}

	data := fichaData{
		Property:    detail.Property,
		Units:       detail.Units,
		Aggregate:   detail.Aggregate,
		UnitCount:   detail.Aggregate.UnitCount,
		GeneratedAt: time.Now().Format("02/01/2006 15:04"),
		AppURL:      s.cfg.AppURL,
	}

	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, "property_sheet.html", data); err != nil {
		return nil, fmt.Errorf("failed to render ficha: %w", err)
	}
	return buf.Bytes(), nil
}

// GeneratePDF renders the ficha and converts it to PDF. The PDF is also
// archived under storage so past fichas remain retrievable.
func (s *FichaService) GeneratePDF(ctx context.Context, propertyID string, actor *models.User) ([]byte, string, error) {
	html, err := s.RenderHTML(ctx, propertyID)
	if err != nil {
		return nil, "", err
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, "", fmt.Errorf("failed to init pdf generator: %w", err)
	}
	pdfg.Dpi.Set(96)
	pdfg.PageSize.Set(wkhtmltopdf.PageSizeA4)
	pdfg.MarginTop.Set(10)
	pdfg.MarginBottom.Set(10)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader(html))
	page.EnableLocalFileAccess.Set(true)
	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, "", fmt.Errorf("failed to generate pdf: %w", err)
	}

	filename := fmt.Sprintf("ficha_%s_%s.pdf", propertyID, time.Now().Format("2006-01-02"))
	if _, err := s.storage.UploadFromBytes(pdfg.Bytes(), filename, "fichas"); err != nil {
		logger.Error("failed to archive ficha pdf", "property_id", propertyID, "error", err)
	}

	s.audit(ctx, actor, models.ActionFichaGenerate,
		fmt.Sprintf("Ficha PDF gerada para o imóvel %s", propertyID))

	return pdfg.Bytes(), filename, nil
}

func (s *FichaService) audit(ctx context.Context, actor *models.User, action, details string) error {
	e := Entry{Action: action, Details: details}
	if actor != nil {
		e.UserID = &actor.ID
		e.UserName = actor.FullName
		e.UserEmail = actor.Email
	}
	return s.auditSvc.Log(ctx, e)
}
