package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/imoblead/fichapro-api/internal/jobs"
	"github.com/imoblead/fichapro-api/internal/models"
	"github.com/imoblead/fichapro-api/internal/repository"
	"github.com/imoblead/fichapro-api/pkg/logger"
)

// LeadService handles lead capture and management
type LeadService struct {
	repo         repository.LeadRepository
	propertyRepo repository.PropertyRepository
	userRepo     repository.UserRepository
	worker       *jobs.Worker
	emailService *EmailService
	auditSvc     *AuditService
}

func NewLeadService(repo repository.LeadRepository, propertyRepo repository.PropertyRepository, userRepo repository.UserRepository, worker *jobs.Worker, emailService *EmailService, auditSvc *AuditService) *LeadService {
	return &LeadService{
		repo:         repo,
		propertyRepo: propertyRepo,
		userRepo:     userRepo,
		worker:       worker,
		emailService: emailService,
		auditSvc:     auditSvc,
	}
}

func (s *LeadService) FindByID(ctx context.Context, id string) (*models.Lead, error) {
	lead, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return lead, nil
}

func (s *LeadService) List(ctx context.Context, query *repository.ListQuery) ([]models.Lead, int64, error) {
	return s.repo.List(ctx, query)
}

// Create registers a lead entered manually by a staff member
func (s *LeadService) Create(ctx context.Context, lead *models.Lead, actor *models.User) error {
	lead.Email = strings.ToLower(strings.TrimSpace(lead.Email))
	if actor != nil {
		lead.AuthorID = &actor.ID
	}
	if err := s.repo.Create(ctx, lead); err != nil {
		return err
	}
	return s.audit(ctx, actor, models.ActionLeadCapture,
		fmt.Sprintf("Lead cadastrado: %s (%s)", lead.Name, lead.Email))
}

// Capture registers a lead coming from a public ficha link. The visitor has
// no account, so the entry is attributed to the link and the admins are
// notified by email.
func (s *LeadService) Capture(ctx context.Context, lead *models.Lead, link *models.ShareLink, ip string) error {
	lead.Email = strings.ToLower(strings.TrimSpace(lead.Email))
	lead.PropertyID = &link.PropertyID
	if lead.Marking == "" {
		lead.Marking = "ficha pública"
	}
	if err := s.repo.Create(ctx, lead); err != nil {
		return err
	}

	property, err := s.propertyRepo.FindByID(ctx, link.PropertyID)
	if err != nil {
		logger.Error("lead captured for missing property", "property_id", link.PropertyID, "lead_id", lead.ID)
	} else {
		// Notify admins off the request path; the visitor already got the ficha.
		s.worker.EnqueueAsync(func(ctx context.Context) error {
			admins, err := s.userRepo.FindAdmins(ctx)
			if err != nil {
				return err
			}
			for i := range admins {
				if err := s.emailService.SendNewLeadNotification(ctx, &admins[i], lead, property); err != nil {
					logger.Error("failed to notify admin of new lead", "admin", admins[i].Email, "error", err)
				}
			}
			return nil
		})
	}

	return s.auditSvc.Log(ctx, Entry{
		UserName:  lead.Name,
		UserEmail: lead.Email,
		Action:    models.ActionLeadCapture,
		Details:   fmt.Sprintf("Lead capturado pela ficha pública do imóvel %s", link.PropertyID),
		IPAddress: ip,
	})
}

func (s *LeadService) Update(ctx context.Context, lead *models.Lead, actor *models.User) error {
	return s.repo.Update(ctx, lead)
}

func (s *LeadService) Delete(ctx context.Context, id string, actor *models.User) error {
	lead, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ErrNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	return s.audit(ctx, actor, models.ActionLeadDelete,
		fmt.Sprintf("Lead removido: %s (%s)", lead.Name, lead.Email))
}

func (s *LeadService) audit(ctx context.Context, actor *models.User, action, details string) error {
	e := Entry{Action: action, Details: details}
	if actor != nil {
		e.UserID = &actor.ID
		e.UserName = actor.FullName
		e.UserEmail = actor.Email
	}
	return s.auditSvc.Log(ctx, e)
}
