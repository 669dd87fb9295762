package models

import (
	"time"
)

// SystemLog represents one entry in the back-office audit trail
type SystemLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    *uint     `gorm:"index" json:"user_id"`
	UserName  string    `gorm:"size:120" json:"user_name"`
	UserEmail string    `gorm:"size:120" json:"user_email"`
	Action    string    `gorm:"size:80;not null;index" json:"action"` // PROPERTY_CREATE, LEAD_CAPTURE, STAGE_MOVE, ...
	Details   string    `gorm:"type:text" json:"details"`
	IPAddress string    `gorm:"size:45" json:"ip_address"`
	UserAgent string    `gorm:"size:255" json:"user_agent"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	// Associations
	User *User `gorm:"foreignKey:UserID" json:"-"`
}

// TableName specifies the table name for SystemLog
func (SystemLog) TableName() string {
	return "system_logs"
}

// Audit action constants
const (
	ActionPropertyCreate    = "PROPERTY_CREATE"
	ActionPropertyUpdate    = "PROPERTY_UPDATE"
	ActionPropertyDelete    = "PROPERTY_DELETE"
	ActionFichaGenerate     = "FICHA_GENERATE"
	ActionShareLinkIssue    = "SHARE_LINK_ISSUE"
	ActionShareLinkRevoke   = "SHARE_LINK_REVOKE"
	ActionLeadCapture       = "LEAD_CAPTURE"
	ActionLeadDelete        = "LEAD_DELETE"
	ActionStageMove         = "STAGE_MOVE"
	ActionNegotiationCreate = "NEGOTIATION_CREATE"
	ActionNegotiationDelete = "NEGOTIATION_DELETE"
	ActionNegotiationStale  = "NEGOTIATION_STALE"
	ActionLogin             = "LOGIN"
	ActionDataQualityScan   = "DATA_QUALITY_SCAN"
)
