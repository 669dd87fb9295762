package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Lead represents an interested contact captured from a public ficha link
type Lead struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	PropertyID *string   `gorm:"type:uuid;index" json:"property_id"`
	Name       string    `gorm:"not null" json:"name"`
	Email      string    `gorm:"not null;index" json:"email"`
	Phone      string    `json:"phone"`
	Role       string    `json:"role"`
	Company    string    `json:"company"`
	Level      string    `gorm:"default:cold" json:"level"`
	Marking    string    `json:"marking"`
	AuthorID   *uint     `json:"author_id"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Associations
	Property *Property `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
	Author   *User     `gorm:"foreignKey:AuthorID" json:"-"`
}

// TableName specifies the table name for Lead
func (Lead) TableName() string {
	return "leads"
}

// BeforeCreate assigns a UUID when none was provided
func (l *Lead) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	if l.Level == "" {
		l.Level = LeadLevelCold
	}
	return nil
}

// Lead qualification levels
const (
	LeadLevelCold = "cold"
	LeadLevelWarm = "warm"
	LeadLevelHot  = "hot"
)

// LeadResponse is the JSON response format for leads
type LeadResponse struct {
	ID           string    `json:"id"`
	PropertyID   *string   `json:"property_id"`
	PropertyName string    `json:"property_name,omitempty"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Role         string    `json:"role"`
	Company      string    `json:"company"`
	Level        string    `json:"level"`
	Marking      string    `json:"marking"`
	AuthorName   string    `json:"author_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ToResponse converts Lead to LeadResponse
func (l *Lead) ToResponse() LeadResponse {
	resp := LeadResponse{
		ID:         l.ID,
		PropertyID: l.PropertyID,
		Name:       l.Name,
		Email:      l.Email,
		Phone:      l.Phone,
		Role:       l.Role,
		Company:    l.Company,
		Level:      l.Level,
		Marking:    l.Marking,
		CreatedAt:  l.CreatedAt,
	}
	if l.Property != nil {
		resp.PropertyName = l.Property.Name
	}
	if l.Author != nil {
		resp.AuthorName = l.Author.FullName
	}
	return resp
}
