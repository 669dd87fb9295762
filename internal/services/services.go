package services

import (
	"github.com/imoblead/fichapro-api/internal/config"
	"github.com/imoblead/fichapro-api/internal/jobs"
	"github.com/imoblead/fichapro-api/internal/repository"
	"github.com/imoblead/fichapro-api/internal/storage"
	"gorm.io/gorm"
)

// Services holds all service instances
type Services struct {
	Auth        *AuthService
	User        *UserService
	Property    *PropertyService
	Lead        *LeadService
	Negotiation *NegotiationService
	ShareLink   *ShareLinkService
	Ficha       *FichaService
	Export      *ExportService
	Email       *EmailService
	Audit       *AuditService
}

// NewServices creates all service instances
func NewServices(repos *repository.Repositories, worker *jobs.Worker, store *storage.LocalStorage, cfg *config.Config, db *gorm.DB) (*Services, error) {
	emailSvc := NewEmailService(cfg)
	auditSvc := NewAuditService(db)
	imageSvc := NewImageService(cfg.StoragePath + "/uploads")

	propertySvc := NewPropertyService(repos.Property, auditSvc, imageSvc)
	fichaSvc, err := NewFichaService(propertySvc, store, auditSvc, cfg)
	if err != nil {
		return nil, err
	}

	return &Services{
		Auth:        NewAuthService(repos.User, repos.RefreshToken, cfg),
		User:        NewUserService(repos.User, worker, emailSvc, auditSvc, imageSvc),
		Property:    propertySvc,
		Lead:        NewLeadService(repos.Lead, repos.Property, repos.User, worker, emailSvc, auditSvc),
		Negotiation: NewNegotiationService(repos.Negotiation, auditSvc),
		ShareLink:   NewShareLinkService(repos.ShareLink, repos.Property, auditSvc, cfg),
		Ficha:       fichaSvc,
		Export:      NewExportService(repos.Property),
		Email:       emailSvc,
		Audit:       auditSvc,
	}, nil
}
