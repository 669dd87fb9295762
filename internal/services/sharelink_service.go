package services

import (
	"context"
	"fmt"
	"time"

	"github.com/imoblead/fichapro-api/internal/config"
	"github.com/imoblead/fichapro-api/internal/models"
	"github.com/imoblead/fichapro-api/internal/repository"
	"github.com/imoblead/fichapro-api/pkg/logger"
)

// ShareLinkService issues and resolves the public ficha links
type ShareLinkService struct {
	repo         repository.ShareLinkRepository
	propertyRepo repository.PropertyRepository
	auditSvc     *AuditService
	cfg          *config.Config
}

func NewShareLinkService(repo repository.ShareLinkRepository, propertyRepo repository.PropertyRepository, auditSvc *AuditService, cfg *config.Config) *ShareLinkService {
	return &ShareLinkService{
		repo:         repo,
		propertyRepo: propertyRepo,
		auditSvc:     auditSvc,
		cfg:          cfg,
	}
}

// ShareLinkResult is what the back office receives after issuing a link
type ShareLinkResult struct {
	Link models.ShareLink `json:"link"`
	URL  string           `json:"url"`
}

// Issue creates a share link for a property ficha. Only properties with the
// ficha flag enabled can be shared publicly.
func (s *ShareLinkService) Issue(ctx context.Context, propertyID string, actor *models.User) (*ShareLinkResult, error) {
	property, err := s.propertyRepo.FindByID(ctx, propertyID)
	if err != nil {
		return nil, ErrNotFound
	}
	if !property.FicheAvailable {
		return nil, ErrFichaUnavailable
	}

	expiresAt := time.Now().Add(time.Duration(s.cfg.ShareLinkTTLDays) * 24 * time.Hour)
	link := &models.ShareLink{
		PropertyID: propertyID,
		ExpiresAt:  &expiresAt,
	}
	if actor != nil {
		link.CreatedBy = actor.ID
	}
	if err := s.repo.Create(ctx, link); err != nil {
		return nil, err
	}

	s.audit(ctx, actor, models.ActionShareLinkIssue,
		fmt.Sprintf("Link público emitido para o imóvel %s, expira em %s", property.Name, expiresAt.Format("02/01/2006")))

	return &ShareLinkResult{
		Link: *link,
		URL:  fmt.Sprintf("%s/public/fichas/%s", s.cfg.AppURL, link.Token),
	}, nil
}

// ListByProperty returns every link ever issued for a property
func (s *ShareLinkService) ListByProperty(ctx context.Context, propertyID string) ([]models.ShareLink, error) {
	return s.repo.FindByProperty(ctx, propertyID)
}

// Revoke deactivates a link immediately
func (s *ShareLinkService) Revoke(ctx context.Context, id string, actor *models.User) error {
	link, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ErrNotFound
	}
	if err := s.repo.Revoke(ctx, id); err != nil {
		return err
	}
	return s.audit(ctx, actor, models.ActionShareLinkRevoke,
		fmt.Sprintf("Link público %s revogado (imóvel %s)", link.ID, link.PropertyID))
}

// Resolve validates a public token and counts the view. Expired and revoked
// links resolve to ErrLinkInactive regardless of whether the row still exists.
func (s *ShareLinkService) Resolve(ctx context.Context, token string) (*models.ShareLink, error) {
	link, err := s.repo.FindByToken(ctx, token)
	if err != nil {
		return nil, ErrLinkInactive
	}
	if !link.IsActive() {
		return nil, ErrLinkInactive
	}
	if err := s.repo.IncrementViews(ctx, link.ID); err != nil {
		logger.Error("failed to count share link view", "link_id", link.ID, "error", err)
	}
	return link, nil
}

// PurgeExpired removes long-dead links. Scheduled from the worker.
func (s *ShareLinkService) PurgeExpired(ctx context.Context) error {
	removed, err := s.repo.DeleteExpired(ctx, s.cfg.ShareLinkTTLDays)
	if err != nil {
		return err
	}
	if removed > 0 {
		logger.Info("purged expired share links", "removed", removed)
	}
	return nil
}

func (s *ShareLinkService) audit(ctx context.Context, actor *models.User, action, details string) error {
	e := Entry{Action: action, Details: details}
	if actor != nil {
		e.UserID = &actor.ID
		e.UserName = actor.FullName
		e.UserEmail = actor.Email
	}
	return s.auditSvc.Log(ctx, e)
}
