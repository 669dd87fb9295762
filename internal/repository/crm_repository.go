package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/imoblead/fichapro-api/internal/models"
	"gorm.io/gorm"
)

// LeadRepository defines the interface for lead data access
type LeadRepository interface {
	FindByID(ctx context.Context, id string) (*models.Lead, error)
	FindByProperty(ctx context.Context, propertyID string) ([]models.Lead, error)
	Create(ctx context.Context, lead *models.Lead) error
	Update(ctx context.Context, lead *models.Lead) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, query *ListQuery) ([]models.Lead, int64, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
}

type leadRepository struct {
	db *gorm.DB
}

// NewLeadRepository creates a new lead repository
func NewLeadRepository(db *gorm.DB) LeadRepository {
	return &leadRepository{db: db}
}

func (r *leadRepository) FindByID(ctx context.Context, id string) (*models.Lead, error) {
	var lead models.Lead
	err := r.db.WithContext(ctx).
		Preload("Property").
		Preload("Author").
		First(&lead, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

func (r *leadRepository) FindByProperty(ctx context.Context, propertyID string) ([]models.Lead, error) {
	var leads []models.Lead
	err := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("created_at DESC").
		Find(&leads).Error
	return leads, err
}

func (r *leadRepository) Create(ctx context.Context, lead *models.Lead) error {
	return r.db.WithContext(ctx).Create(lead).Error
}

func (r *leadRepository) Update(ctx context.Context, lead *models.Lead) error {
	return r.db.WithContext(ctx).Save(lead).Error
}

func (r *leadRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Lead{}, "id = ?", id).Error
}

func (r *leadRepository) List(ctx context.Context, query *ListQuery) ([]models.Lead, int64, error) {
	var leads []models.Lead
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Lead{})

	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Where("leads.name ILIKE ? OR leads.email ILIKE ? OR leads.phone ILIKE ? OR leads.company ILIKE ?",
			search, search, search, search)
	}

	if query.Filters["level"] != "" {
		db = db.Where("leads.level = ?", query.Filters["level"])
	}

	if query.Filters["property_id"] != "" {
		db = db.Where("leads.property_id = ?", query.Filters["property_id"])
	}

	if val := query.Filters["start_date"]; val != "" {
		db = db.Where("leads.created_at >= ?", val)
	}
	if val := query.Filters["end_date"]; val != "" {
		if len(val) == 10 { // YYYY-MM-DD
			val += " 23:59:59"
		}
		db = db.Where("leads.created_at <= ?", val)
	}

	countDB := db.Session(&gorm.Session{})
	if err := countDB.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if query.SortBy != "" {
		order := query.SortBy
		if query.SortDir == "desc" {
			order += " DESC"
		}
		db = db.Order(order)
	} else {
		db = db.Order("leads.created_at DESC")
	}

	if query.PerPage > 0 {
		db = db.Offset((query.Page - 1) * query.PerPage).Limit(query.PerPage)
	}

	err := db.
		Preload("Property").
		Preload("Author").
		Find(&leads).Error
	return leads, total, err
}

func (r *leadRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Lead{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	return count, err
}

// NegotiationRepository defines the interface for negotiation data access
type NegotiationRepository interface {
	FindByID(ctx context.Context, id string) (*models.Negotiation, error)
	Create(ctx context.Context, negotiation *models.Negotiation) error
	Update(ctx context.Context, negotiation *models.Negotiation) error
	UpdateStage(ctx context.Context, id, stage string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, query *ListQuery) ([]models.Negotiation, int64, error)
	FindAllOpen(ctx context.Context) ([]models.Negotiation, error)
	FindStale(ctx context.Context, olderThanDays int) ([]models.Negotiation, error)
}

type negotiationRepository struct {
	db *gorm.DB
}

// NewNegotiationRepository creates a new negotiation repository
func NewNegotiationRepository(db *gorm.DB) NegotiationRepository {
	return &negotiationRepository{db: db}
}

func (r *negotiationRepository) FindByID(ctx context.Context, id string) (*models.Negotiation, error) {
	var negotiation models.Negotiation
	err := r.db.WithContext(ctx).
		Preload("Property").
		Preload("Lead").
		First(&negotiation, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &negotiation, nil
}

func (r *negotiationRepository) Create(ctx context.Context, negotiation *models.Negotiation) error {
	return r.db.WithContext(ctx).Create(negotiation).Error
}

func (r *negotiationRepository) Update(ctx context.Context, negotiation *models.Negotiation) error {
	return r.db.WithContext(ctx).Save(negotiation).Error
}

func (r *negotiationRepository) UpdateStage(ctx context.Context, id, stage string) error {
	return r.db.WithContext(ctx).
		Model(&models.Negotiation{}).
		Where("id = ?", id).
		Update("stage", stage).Error
}

func (r *negotiationRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Negotiation{}, "id = ?", id).Error
}

func (r *negotiationRepository) List(ctx context.Context, query *ListQuery) ([]models.Negotiation, int64, error) {
	var negotiations []models.Negotiation
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Negotiation{})

	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Where("title ILIKE ? OR client_name ILIKE ?", search, search)
	}

	if query.Filters["stage"] != "" {
		db = db.Where("stage = ?", query.Filters["stage"])
	}

	if query.Filters["property_id"] != "" {
		db = db.Where("property_id = ?", query.Filters["property_id"])
	}

	db.Count(&total)

	if query.SortBy != "" {
		order := query.SortBy
		if query.SortDir == "desc" {
			order += " DESC"
		}
		db = db.Order(order)
	} else {
		db = db.Order("created_at DESC")
	}

	if query.PerPage > 0 {
		db = db.Offset((query.Page - 1) * query.PerPage).Limit(query.PerPage)
	}

	err := db.
		Preload("Property").
		Find(&negotiations).Error
	return negotiations, total, err
}

// FindAllOpen returns every negotiation still in the pipeline, ordered for
// the kanban board.
func (r *negotiationRepository) FindAllOpen(ctx context.Context) ([]models.Negotiation, error) {
	var negotiations []models.Negotiation
	err := r.db.WithContext(ctx).
		Preload("Property").
		Order("created_at DESC").
		Find(&negotiations).Error
	return negotiations, err
}

// FindStale returns open negotiations untouched for longer than the given
// number of days.
func (r *negotiationRepository) FindStale(ctx context.Context, olderThanDays int) ([]models.Negotiation, error) {
	var negotiations []models.Negotiation
	interval := fmt.Sprintf("%d days", olderThanDays)
	err := r.db.WithContext(ctx).
		Where("stage NOT IN ?", []string{models.StageClosedWon, models.StageClosedLost}).
		Where("updated_at < NOW() - INTERVAL '"+interval+"'").
		Preload("Property").
		Order("updated_at ASC").
		Find(&negotiations).Error
	return negotiations, err
}

// RefreshTokenRepository defines the interface for refresh token data access
type RefreshTokenRepository interface {
	FindByToken(ctx context.Context, token string) (*models.RefreshToken, error)
	Create(ctx context.Context, rt *models.RefreshToken) error
	Delete(ctx context.Context, token string) error
	DeleteByUser(ctx context.Context, userID uint) error
}

type refreshTokenRepository struct {
	db *gorm.DB
}

// NewRefreshTokenRepository creates a new refresh token repository
func NewRefreshTokenRepository(db *gorm.DB) RefreshTokenRepository {
	return &refreshTokenRepository{db: db}
}

func (r *refreshTokenRepository) FindByToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	var rt models.RefreshToken
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&rt).Error
	if err != nil {
		return nil, err
	}
	return &rt, nil
}

func (r *refreshTokenRepository) Create(ctx context.Context, rt *models.RefreshToken) error {
	return r.db.WithContext(ctx).Create(rt).Error
}

func (r *refreshTokenRepository) Delete(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Where("token = ?", token).Delete(&models.RefreshToken{}).Error
}

func (r *refreshTokenRepository) DeleteByUser(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.RefreshToken{}).Error
}
