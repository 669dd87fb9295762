package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Negotiation represents one card in the sales pipeline kanban
type Negotiation struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	ClientName  string    `gorm:"column:client_name;not null" json:"client_name"`
	Value       *float64  `gorm:"type:decimal(15,2)" json:"value"`
	Probability int       `gorm:"default:0" json:"probability"`
	Stage       string    `gorm:"default:opportunity;index" json:"stage"`
	PropertyID  *string   `gorm:"type:uuid;index" json:"property_id"`
	LeadID      *string   `gorm:"type:uuid;index" json:"lead_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Associations
	Property *Property `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
	Lead     *Lead     `gorm:"foreignKey:LeadID" json:"lead,omitempty"`
}

// TableName specifies the table name for Negotiation
func (Negotiation) TableName() string {
	return "negotiations"
}

// BeforeCreate assigns a UUID when none was provided
func (n *Negotiation) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.Stage == "" {
		n.Stage = StageOpportunity
	}
	return nil
}

// Pipeline stage constants
const (
	StageOpportunity = "opportunity"
	StageContacting  = "contacting"
	StageEngaged     = "engaged"
	StageNegotiating = "negotiating"
	StageClosedWon   = "closed_won"
	StageClosedLost  = "closed_lost"
)

// PipelineStages lists the kanban columns in board order
func PipelineStages() []string {
	return []string{
		StageOpportunity,
		StageContacting,
		StageEngaged,
		StageNegotiating,
		StageClosedWon,
		StageClosedLost,
	}
}

// IsClosed returns true once the negotiation reached a terminal stage
func (n *Negotiation) IsClosed() bool {
	return n.Stage == StageClosedWon || n.Stage == StageClosedLost
}

// NegotiationResponse is the JSON response format for pipeline cards
type NegotiationResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	ClientName   string    `json:"client_name"`
	Value        *float64  `json:"value"`
	Probability  int       `json:"probability"`
	Stage        string    `json:"stage"`
	PropertyID   *string   `json:"property_id"`
	PropertyName string    `json:"property_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ToResponse converts Negotiation to NegotiationResponse
func (n *Negotiation) ToResponse() NegotiationResponse {
	resp := NegotiationResponse{
		ID:          n.ID,
		Title:       n.Title,
		ClientName:  n.ClientName,
		Value:       n.Value,
		Probability: n.Probability,
		Stage:       n.Stage,
		PropertyID:  n.PropertyID,
		CreatedAt:   n.CreatedAt,
	}
	if n.Property != nil {
		resp.PropertyName = n.Property.Name
	}
	return resp
}
