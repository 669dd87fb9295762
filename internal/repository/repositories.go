package repository

import (
	"gorm.io/gorm"
)

// Repositories holds all repository instances
type Repositories struct {
	User         UserRepository
	Property     PropertyRepository
	Lead         LeadRepository
	Negotiation  NegotiationRepository
	ShareLink    ShareLinkRepository
	RefreshToken RefreshTokenRepository
}

// NewRepositories creates all repository instances
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Property:     NewPropertyRepository(db),
		Lead:         NewLeadRepository(db),
		Negotiation:  NewNegotiationRepository(db),
		ShareLink:    NewShareLinkRepository(db),
		RefreshToken: NewRefreshTokenRepository(db),
	}
}
