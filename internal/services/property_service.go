package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/imoblead/fichapro-api/internal/models"
	"github.com/imoblead/fichapro-api/internal/repository"
	"github.com/imoblead/fichapro-api/internal/unify"
	"github.com/imoblead/fichapro-api/pkg/logger"
)

// PropertyService handles property-related business logic, including the
// unified complex view built in internal/unify.
type PropertyService struct {
	repo     repository.PropertyRepository
	auditSvc *AuditService
	imageSvc *ImageService
}

func NewPropertyService(repo repository.PropertyRepository, auditSvc *AuditService, imageSvc *ImageService) *PropertyService {
	return &PropertyService{
		repo:     repo,
		auditSvc: auditSvc,
		imageSvc: imageSvc,
	}
}

// ListUnified returns the deduplicated, filtered portfolio listing. Filters
// and deduplication run over the full inventory, so pagination happens here
// rather than in SQL.
func (s *PropertyService) ListUnified(ctx context.Context, filters unify.Filters, page, perPage int) ([]models.Property, int64, error) {
	all, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, 0, err
	}

	unified := unify.Unify(all, filters)
	total := int64(len(unified))

	if perPage <= 0 {
		return unified, total, nil
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * perPage
	if start >= len(unified) {
		return []models.Property{}, total, nil
	}
	end := start + perPage
	if end > len(unified) {
		end = len(unified)
	}
	return unified[start:end], total, nil
}

// PropertyDetail is the full detail view of one record: the record itself,
// its resolved units and the rolled-up figures.
type PropertyDetail struct {
	Property  models.Property   `json:"property"`
	Units     []models.Property `json:"units"`
	Aggregate unify.Aggregate   `json:"aggregate"`
	Strategy  string            `json:"resolution_strategy"`
}

// GetDetail loads a property with its unit resolution and aggregation
func (s *PropertyService) GetDetail(ctx context.Context, id string) (*PropertyDetail, error) {
	property, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}

	all, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	res := unify.ResolveUnits(property, all)
	agg := unify.AggregateProperty(property, all)

	// Fuzzy matches work, but they mean the data lacks explicit parent links.
	// Surface that so someone eventually fixes the records.
	if res.Strategy.Fallback() {
		logger.Warn("property units resolved by fallback matching",
			"property_id", property.ID,
			"name", property.Name,
			"strategy", string(res.Strategy),
			"units", len(res.Units))
	}

	return &PropertyDetail{
		Property:  *property,
		Units:     res.Units,
		Aggregate: agg,
		Strategy:  string(res.Strategy),
	}, nil
}

func (s *PropertyService) FindByID(ctx context.Context, id string) (*models.Property, error) {
	property, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return property, nil
}

func (s *PropertyService) Create(ctx context.Context, property *models.Property, actor *models.User) error {
	if err := s.repo.Create(ctx, property); err != nil {
		return err
	}
	return s.audit(ctx, actor, models.ActionPropertyCreate,
		fmt.Sprintf("Imóvel criado: %s (%s)", property.Name, property.ID))
}

func (s *PropertyService) Update(ctx context.Context, property *models.Property, actor *models.User) error {
	if err := s.repo.Update(ctx, property); err != nil {
		return err
	}
	return s.audit(ctx, actor, models.ActionPropertyUpdate,
		fmt.Sprintf("Imóvel atualizado: %s (%s)", property.Name, property.ID))
}

func (s *PropertyService) Delete(ctx context.Context, id string, actor *models.User) error {
	property, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ErrNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	return s.audit(ctx, actor, models.ActionPropertyDelete,
		fmt.Sprintf("Imóvel removido: %s (%s)", property.Name, property.ID))
}

func (s *PropertyService) GetStats(ctx context.Context) (*repository.PropertyStats, error) {
	return s.repo.GetStats(ctx)
}

// Ficha image slots accepted by UploadImage
const (
	ImageKindMain           = "image"
	ImageKindTerrainMarking = "terrain_marking"
	ImageKindAerialView     = "aerial_view"
	ImageKindFrontView      = "front_view"
	ImageKindSideView       = "side_view"
)

// UploadImage processes an uploaded picture and stores its URL in the slot
// named by kind. The thumbnail rendition is what fichas and cards display.
func (s *PropertyService) UploadImage(ctx context.Context, id, kind string, file multipart.File, header *multipart.FileHeader, actor *models.User) (*models.Property, error) {
	property, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}

	_, thumbPath, err := s.imageSvc.ProcessAndSavePropertyImage(file, header)
	if err != nil {
		return nil, err
	}

	switch kind {
	case ImageKindMain, "":
		property.ImageURL = &thumbPath
	case ImageKindTerrainMarking:
		property.TerrainMarkingURL = &thumbPath
	case ImageKindAerialView:
		property.AerialViewURL = &thumbPath
	case ImageKindFrontView:
		property.FrontViewURL = &thumbPath
	case ImageKindSideView:
		property.SideViewURL = &thumbPath
	default:
		return nil, fmt.Errorf("tipo de imagem desconhecido: %s", kind)
	}

	if err := s.repo.Update(ctx, property); err != nil {
		return nil, err
	}
	if err := s.audit(ctx, actor, models.ActionPropertyUpdate,
		fmt.Sprintf("Imagem (%s) atualizada no imóvel %s", kind, property.Name)); err != nil {
		return nil, err
	}
	return property, nil
}

// DataQualityReport summarizes how complex records are linked
type DataQualityReport struct {
	Complexes       int      `json:"complexes"`
	ExplicitLinks   int      `json:"explicit_links"`
	PatternMatches  int      `json:"pattern_matches"`
	ExactNameJoins  int      `json:"exact_name_joins"`
	UnnamedOrphans  int      `json:"unnamed_orphans"`
	FlaggedProperty []string `json:"flagged_properties"`
}

// ScanDataQuality walks every canonical complex and reports those whose units
// are still resolved by name matching instead of parent_id links. Run from
// the scheduler; the summary lands in system_logs.
func (s *PropertyService) ScanDataQuality(ctx context.Context) (*DataQualityReport, error) {
	all, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	report := &DataQualityReport{}
	for i := range all {
		p := &all[i]
		if !p.IsComplex || p.IsUnit() {
			continue
		}
		report.Complexes++

		res := unify.ResolveUnits(p, all)
		switch res.Strategy {
		case unify.StrategyExplicitLink:
			report.ExplicitLinks++
		case unify.StrategyPatternMatch:
			report.PatternMatches++
			report.FlaggedProperty = append(report.FlaggedProperty, p.ID)
		case unify.StrategyExactName:
			report.ExactNameJoins++
			report.FlaggedProperty = append(report.FlaggedProperty, p.ID)
		case unify.StrategyNone:
			if unify.GroupKey(p.Name) == "" {
				report.UnnamedOrphans++
				report.FlaggedProperty = append(report.FlaggedProperty, p.ID)
			}
		}
	}

	details := fmt.Sprintf(
		"Varredura de qualidade: %d complexos, %d com vínculo explícito, %d por padrão de nome, %d por nome exato, %d sem nome",
		report.Complexes, report.ExplicitLinks, report.PatternMatches, report.ExactNameJoins, report.UnnamedOrphans)
	if err := s.auditSvc.LogSystem(ctx, models.ActionDataQualityScan, details); err != nil {
		logger.Error("failed to record data quality scan", "error", err)
	}

	flagged := report.PatternMatches + report.ExactNameJoins + report.UnnamedOrphans
	if flagged > 0 {
		logger.Warn("data quality scan flagged complexes without explicit links",
			"flagged", flagged, "complexes", report.Complexes)
	}
	return report, nil
}

func (s *PropertyService) audit(ctx context.Context, actor *models.User, action, details string) error {
	e := Entry{Action: action, Details: details}
	if actor != nil {
		e.UserID = &actor.ID
		e.UserName = actor.FullName
		e.UserEmail = actor.Email
	}
	return s.auditSvc.Log(ctx, e)
}
