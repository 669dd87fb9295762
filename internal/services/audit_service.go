package services

import (
	"context"

	"github.com/imoblead/fichapro-api/internal/models"
	"gorm.io/gorm"
)

// AuditService writes and queries the system_logs trail. Every mutating
// back-office operation goes through Log so the activity feed stays complete.
type AuditService struct {
	db *gorm.DB
}

func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{db: db}
}

// Entry carries the request-scoped fields of one audit record
type Entry struct {
	UserID    *uint
	UserName  string
	UserEmail string
	Action    string
	Details   string
	IPAddress string
	UserAgent string
}

// Log records an audit entry
func (s *AuditService) Log(ctx context.Context, e Entry) error {
	logEntry := &models.SystemLog{
		UserID:    e.UserID,
		UserName:  e.UserName,
		UserEmail: e.UserEmail,
		Action:    e.Action,
		Details:   e.Details,
		IPAddress: e.IPAddress,
		UserAgent: e.UserAgent,
	}
	return s.db.WithContext(ctx).Create(logEntry).Error
}

// LogSystem records an entry produced by a background job, with no acting user
func (s *AuditService) LogSystem(ctx context.Context, action, details string) error {
	return s.Log(ctx, Entry{
		UserName: "sistema",
		Action:   action,
		Details:  details,
	})
}

// ListFilter narrows down the audit feed
type ListFilter struct {
	Action    string
	UserEmail string
	Search    string
	StartDate string
	EndDate   string
}

// List retrieves audit logs, newest first
func (s *AuditService) List(ctx context.Context, filter ListFilter, limit, offset int) ([]models.SystemLog, int64, error) {
	var logs []models.SystemLog
	var total int64

	db := s.db.WithContext(ctx).Model(&models.SystemLog{})

	if filter.Action != "" {
		db = db.Where("action = ?", filter.Action)
	}
	if filter.UserEmail != "" {
		db = db.Where("user_email = ?", filter.UserEmail)
	}
	if filter.Search != "" {
		search := "%" + filter.Search + "%"
		db = db.Where("details ILIKE ? OR user_name ILIKE ? OR user_email ILIKE ?", search, search, search)
	}
	if filter.StartDate != "" {
		db = db.Where("created_at >= ?", filter.StartDate)
	}
	if filter.EndDate != "" {
		end := filter.EndDate
		if len(end) == 10 { // YYYY-MM-DD
			end += " 23:59:59"
		}
		db = db.Where("created_at <= ?", end)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	result := db.Order("created_at desc").Limit(limit).Offset(offset).Find(&logs)
	return logs, total, result.Error
}
