package repository

import (
	"context"
	"fmt"

	"github.com/imoblead/fichapro-api/internal/models"
	"gorm.io/gorm"
)

// PropertyRepository defines the interface for property data access
type PropertyRepository interface {
	FindByID(ctx context.Context, id string) (*models.Property, error)
	FindByIDWithUnits(ctx context.Context, id string) (*models.Property, error)
	FindByParent(ctx context.Context, parentID string) ([]models.Property, error)
	Create(ctx context.Context, property *models.Property) error
	Update(ctx context.Context, property *models.Property) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, query *ListQuery) ([]models.Property, int64, error)
	FindAll(ctx context.Context) ([]models.Property, error)
	GetStats(ctx context.Context) (*PropertyStats, error)
}

type propertyRepository struct {
	db *gorm.DB
}

// NewPropertyRepository creates a new property repository
func NewPropertyRepository(db *gorm.DB) PropertyRepository {
	return &propertyRepository{db: db}
}

func (r *propertyRepository) FindByID(ctx context.Context, id string) (*models.Property, error) {
	var property models.Property
	err := r.db.WithContext(ctx).First(&property, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &property, nil
}

func (r *propertyRepository) FindByIDWithUnits(ctx context.Context, id string) (*models.Property, error) {
	var property models.Property
	err := r.db.WithContext(ctx).
		Preload("Units", func(db *gorm.DB) *gorm.DB {
			return db.Order("name ASC")
		}).
		First(&property, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &property, nil
}

func (r *propertyRepository) FindByParent(ctx context.Context, parentID string) ([]models.Property, error) {
	var properties []models.Property
	err := r.db.WithContext(ctx).
		Where("parent_id = ?", parentID).
		Order("name ASC").
		Find(&properties).Error
	return properties, err
}

func (r *propertyRepository) Create(ctx context.Context, property *models.Property) error {
	return r.db.WithContext(ctx).Create(property).Error
}

func (r *propertyRepository) Update(ctx context.Context, property *models.Property) error {
	return r.db.WithContext(ctx).Save(property).Error
}

func (r *propertyRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Detach units before removing a complex record so they survive as
		// standalone rows instead of dangling references.
		if err := tx.Model(&models.Property{}).
			Where("parent_id = ?", id).
			Update("parent_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Property{}, "id = ?", id).Error
	})
}

func (r *propertyRepository) List(ctx context.Context, query *ListQuery) ([]models.Property, int64, error) {
	var properties []models.Property
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Property{})

	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Where("name ILIKE ? OR address ILIKE ? OR city ILIKE ? OR registration ILIKE ?",
			search, search, search, search)
	}

	if query.Filters["status"] != "" {
		db = db.Where("status = ?", query.Filters["status"])
	}

	if query.Filters["city"] != "" {
		db = db.Where("city = ?", query.Filters["city"])
	}

	if query.Filters["state"] != "" {
		db = db.Where("state = ?", query.Filters["state"])
	}

	if query.Filters["property_type"] != "" {
		db = db.Where("property_type = ?", query.Filters["property_type"])
	}

	db.Count(&total)

	if query.SortBy != "" {
		order := query.SortBy
		if query.SortDir == "desc" {
			order += " DESC"
		}
		db = db.Order(order)
	} else {
		db = db.Order("name ASC").Order("id ASC")
	}

	if query.PerPage > 0 {
		db = db.Offset((query.Page - 1) * query.PerPage).Limit(query.PerPage)
	}

	err := db.Find(&properties).Error
	return properties, total, err
}

// FindAll returns the full inventory in a deterministic order. The name ASC,
// id ASC ordering makes first-occurrence deduplication in internal/unify
// stable across requests.
func (r *propertyRepository) FindAll(ctx context.Context) ([]models.Property, error) {
	var properties []models.Property
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Order("id ASC").
		Find(&properties).Error
	return properties, err
}

// PropertyStats holds the count of properties by status
type PropertyStats struct {
	Total     int64 `json:"total"`
	Available int64 `json:"available"`
	Leased    int64 `json:"leased"`
	InUse     int64 `json:"in_use"`
	Reserved  int64 `json:"reserved"`
	ForSale   int64 `json:"for_sale"`
}

func (r *propertyRepository) GetStats(ctx context.Context) (*PropertyStats, error) {
	stats := &PropertyStats{}

	rows, err := r.db.WithContext(ctx).
		Model(&models.Property{}).
		Select("status, count(*) as count").
		Group("status").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var total int64
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		total += count
		switch status {
		case models.PropertyStatusAvailable:
			stats.Available = count
		case models.PropertyStatusLeased:
			stats.Leased = count
		case models.PropertyStatusInUse:
			stats.InUse = count
		case models.PropertyStatusReserved:
			stats.Reserved = count
		case models.PropertyStatusForSale:
			stats.ForSale = count
		}
	}
	stats.Total = total

	return stats, nil
}

// ShareLinkRepository defines the interface for public share link data access
type ShareLinkRepository interface {
	FindByID(ctx context.Context, id string) (*models.ShareLink, error)
	FindByToken(ctx context.Context, token string) (*models.ShareLink, error)
	FindByProperty(ctx context.Context, propertyID string) ([]models.ShareLink, error)
	Create(ctx context.Context, link *models.ShareLink) error
	Revoke(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, graceDays int) (int64, error)
}

type shareLinkRepository struct {
	db *gorm.DB
}

// NewShareLinkRepository creates a new share link repository
func NewShareLinkRepository(db *gorm.DB) ShareLinkRepository {
	return &shareLinkRepository{db: db}
}

func (r *shareLinkRepository) FindByID(ctx context.Context, id string) (*models.ShareLink, error) {
	var link models.ShareLink
	err := r.db.WithContext(ctx).First(&link, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *shareLinkRepository) FindByToken(ctx context.Context, token string) (*models.ShareLink, error) {
	var link models.ShareLink
	err := r.db.WithContext(ctx).
		Preload("Property").
		Where("token = ?", token).
		First(&link).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *shareLinkRepository) FindByProperty(ctx context.Context, propertyID string) ([]models.ShareLink, error) {
	var links []models.ShareLink
	err := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("created_at DESC").
		Find(&links).Error
	return links, err
}

func (r *shareLinkRepository) Create(ctx context.Context, link *models.ShareLink) error {
	return r.db.WithContext(ctx).Create(link).Error
}

func (r *shareLinkRepository) Revoke(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&models.ShareLink{}).
		Where("id = ? AND revoked_at IS NULL", id).
		Update("revoked_at", gorm.Expr("NOW()")).Error
}

func (r *shareLinkRepository) IncrementViews(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&models.ShareLink{}).
		Where("id = ?", id).
		Update("view_count", gorm.Expr("view_count + 1")).Error
}

// DeleteExpired removes links that expired or were revoked more than
// graceDays ago. Returns the number of rows removed.
func (r *shareLinkRepository) DeleteExpired(ctx context.Context, graceDays int) (int64, error) {
	if graceDays < 0 {
		graceDays = 0
	}
	interval := fmt.Sprintf("%d days", graceDays)
	result := r.db.WithContext(ctx).
		Where("(expires_at IS NOT NULL AND expires_at < NOW() - INTERVAL '"+interval+"') OR "+
			"(revoked_at IS NOT NULL AND revoked_at < NOW() - INTERVAL '"+interval+"')").
		Delete(&models.ShareLink{})
	return result.RowsAffected, result.Error
}
