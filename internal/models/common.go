package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ShareLink is a public, tokenized URL to a property ficha. Visitors must
// leave their contact data (a Lead) before the sheet is revealed.
type ShareLink struct {
	ID         string     `gorm:"type:uuid;primaryKey" json:"id"`
	Token      string     `gorm:"uniqueIndex;not null" json:"token"`
	PropertyID string     `gorm:"type:uuid;not null;index" json:"property_id"`
	CreatedBy  uint       `json:"created_by"`
	ExpiresAt  *time.Time `gorm:"index" json:"expires_at"`
	RevokedAt  *time.Time `json:"revoked_at"`
	ViewCount  int        `gorm:"default:0" json:"view_count"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	// Associations
	Property Property `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
	Creator  User     `gorm:"foreignKey:CreatedBy" json:"-"`
}

// TableName specifies the table name for ShareLink
func (ShareLink) TableName() string {
	return "share_links"
}

// BeforeCreate assigns identifiers when none were provided
func (s *ShareLink) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	if s.Token == "" {
		s.Token = uuid.New().String()
	}
	return nil
}

// IsExpired returns true once the link passed its expiry
func (s *ShareLink) IsExpired() bool {
	return s.ExpiresAt != nil && time.Now().After(*s.ExpiresAt)
}

// IsActive returns true if the link can still be opened by visitors
func (s *ShareLink) IsActive() bool {
	return s.RevokedAt == nil && !s.IsExpired()
}

// RefreshToken represents a JWT refresh token
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"not null;index" json:"user_id"`
	Token     string     `json:"token"`
	ExpiresAt *time.Time `json:"expires_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	// Associations
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// TableName specifies the table name for RefreshToken
func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

// IsExpired returns true if the refresh token has expired
func (r *RefreshToken) IsExpired() bool {
	if r.ExpiresAt == nil {
		return false
	}
	return time.Now().After(*r.ExpiresAt)
}
