package services

import (
	"context"
	"testing"

	"github.com/imoblead/fichapro-api/internal/models"
	"github.com/imoblead/fichapro-api/internal/repository"
	"github.com/stretchr/testify/assert"
)

type mockNegotiationRepo struct {
	repository.NegotiationRepository
	mockFindAllOpen func(ctx context.Context) ([]models.Negotiation, error)
	mockFindByID    func(ctx context.Context, id string) (*models.Negotiation, error)
}

func (m *mockNegotiationRepo) FindAllOpen(ctx context.Context) ([]models.Negotiation, error) {
	return m.mockFindAllOpen(ctx)
}

func (m *mockNegotiationRepo) FindByID(ctx context.Context, id string) (*models.Negotiation, error) {
	return m.mockFindByID(ctx, id)
}

func TestNegotiationService_Board_GroupsByStage(t *testing.T) {
	mockRepo := &mockNegotiationRepo{}
	service := NewNegotiationService(mockRepo, nil)

	mockRepo.mockFindAllOpen = func(ctx context.Context) ([]models.Negotiation, error) {
		return []models.Negotiation{
			{ID: "1", Title: "Loja centro", Stage: models.StageOpportunity},
			{ID: "2", Title: "Galpão porto", Stage: models.StageOpportunity},
			{ID: "3", Title: "Sala 402", Stage: models.StageNegotiating},
			{ID: "4", Title: "Terreno BR", Stage: models.StageClosedWon},
		}, nil
	}

	board, err := service.Board(context.Background())
	assert.NoError(t, err)

	// Every column exists even when empty, so the kanban renders all lanes.
	assert.Len(t, board, len(models.PipelineStages()))
	assert.Len(t, board[models.StageOpportunity], 2)
	assert.Len(t, board[models.StageContacting], 0)
	assert.Len(t, board[models.StageNegotiating], 1)
	assert.Len(t, board[models.StageClosedWon], 1)
	assert.Equal(t, "Sala 402", board[models.StageNegotiating][0].Title)
}

func TestNegotiationService_FindByID_NotFound(t *testing.T) {
	mockRepo := &mockNegotiationRepo{}
	service := NewNegotiationService(mockRepo, nil)

	mockRepo.mockFindByID = func(ctx context.Context, id string) (*models.Negotiation, error) {
		return nil, assert.AnError
	}

	_, err := service.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
