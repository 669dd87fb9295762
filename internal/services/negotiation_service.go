package services

import (
	"context"
	"fmt"

	"github.com/imoblead/fichapro-api/internal/models"
	"github.com/imoblead/fichapro-api/internal/repository"
	"github.com/imoblead/fichapro-api/internal/statemachine"
	"github.com/imoblead/fichapro-api/pkg/logger"
)

// NegotiationService handles the sales pipeline kanban
type NegotiationService struct {
	repo     repository.NegotiationRepository
	auditSvc *AuditService
}

func NewNegotiationService(repo repository.NegotiationRepository, auditSvc *AuditService) *NegotiationService {
	return &NegotiationService{
		repo:     repo,
		auditSvc: auditSvc,
	}
}

func (s *NegotiationService) FindByID(ctx context.Context, id string) (*models.Negotiation, error) {
	negotiation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return negotiation, nil
}

func (s *NegotiationService) List(ctx context.Context, query *repository.ListQuery) ([]models.Negotiation, int64, error) {
	return s.repo.List(ctx, query)
}

// Board returns every card grouped by pipeline column, in board order
func (s *NegotiationService) Board(ctx context.Context) (map[string][]models.NegotiationResponse, error) {
	negotiations, err := s.repo.FindAllOpen(ctx)
	if err != nil {
		return nil, err
	}

	board := make(map[string][]models.NegotiationResponse, len(models.PipelineStages()))
	for _, stage := range models.PipelineStages() {
		board[stage] = []models.NegotiationResponse{}
	}
	for i := range negotiations {
		n := &negotiations[i]
		board[n.Stage] = append(board[n.Stage], n.ToResponse())
	}
	return board, nil
}

func (s *NegotiationService) Create(ctx context.Context, negotiation *models.Negotiation, actor *models.User) error {
	if err := s.repo.Create(ctx, negotiation); err != nil {
		return err
	}
	return s.audit(ctx, actor, models.ActionNegotiationCreate,
		fmt.Sprintf("Negociação criada: %s (%s)", negotiation.Title, negotiation.ClientName))
}

func (s *NegotiationService) Update(ctx context.Context, negotiation *models.Negotiation, actor *models.User) error {
	// Stage moves go through MoveStage; a plain update never changes columns.
	current, err := s.repo.FindByID(ctx, negotiation.ID)
	if err != nil {
		return ErrNotFound
	}
	negotiation.Stage = current.Stage
	return s.repo.Update(ctx, negotiation)
}

// MoveStage moves a card to the target column, validating the transition
// through the pipeline state machine.
func (s *NegotiationService) MoveStage(ctx context.Context, id, target string, actor *models.User) (*models.Negotiation, error) {
	negotiation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}

	from := negotiation.Stage
	machine := statemachine.NewNegotiationFSM(negotiation)
	if err := machine.MoveTo(ctx, target); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}

	if err := s.repo.UpdateStage(ctx, id, negotiation.Stage); err != nil {
		return nil, err
	}

	s.audit(ctx, actor, models.ActionStageMove,
		fmt.Sprintf("Negociação %q movida de %s para %s", negotiation.Title, from, negotiation.Stage))
	return negotiation, nil
}

func (s *NegotiationService) Delete(ctx context.Context, id string, actor *models.User) error {
	negotiation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ErrNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	return s.audit(ctx, actor, models.ActionNegotiationDelete,
		fmt.Sprintf("Negociação removida: %s", negotiation.Title))
}

// FlagStale records open negotiations untouched for the given number of days.
// Scheduled from the worker so stuck cards surface in the activity feed.
func (s *NegotiationService) FlagStale(ctx context.Context, olderThanDays int) error {
	stale, err := s.repo.FindStale(ctx, olderThanDays)
	if err != nil {
		return err
	}
	if len(stale) == 0 {
		return nil
	}

	logger.Warn("stale negotiations in pipeline", "count", len(stale), "older_than_days", olderThanDays)
	for i := range stale {
		n := &stale[i]
		details := fmt.Sprintf("Negociação %q parada na etapa %s desde %s",
			n.Title, n.Stage, n.UpdatedAt.Format("02/01/2006"))
		if err := s.auditSvc.LogSystem(ctx, models.ActionNegotiationStale, details); err != nil {
			return err
		}
	}
	return nil
}

func (s *NegotiationService) audit(ctx context.Context, actor *models.User, action, details string) error {
	e := Entry{Action: action, Details: details}
	if actor != nil {
		e.UserID = &actor.ID
		e.UserName = actor.FullName
		e.UserEmail = actor.Email
	}
	return s.auditSvc.Log(ctx, e)
}
