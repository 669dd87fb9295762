package statemachine

import (
	"context"
	"testing"

	"github.com/imoblead/fichapro-api/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestNegotiationFSM_AdvanceWalksPipeline(t *testing.T) {
	n := &models.Negotiation{Stage: models.StageOpportunity}
	machine := NewNegotiationFSM(n)
	ctx := context.Background()

	assert.NoError(t, machine.Advance(ctx))
	assert.Equal(t, models.StageContacting, n.Stage)

	assert.NoError(t, machine.Advance(ctx))
	assert.Equal(t, models.StageEngaged, n.Stage)

	assert.NoError(t, machine.Advance(ctx))
	assert.Equal(t, models.StageNegotiating, n.Stage)

	// Negotiating is the last open column; only win/lose go further.
	assert.Error(t, machine.Advance(ctx))
	assert.Equal(t, models.StageNegotiating, n.Stage)
}

func TestNegotiationFSM_WinFromAnyOpenStage(t *testing.T) {
	for _, stage := range []string{
		models.StageOpportunity,
		models.StageContacting,
		models.StageEngaged,
		models.StageNegotiating,
	} {
		n := &models.Negotiation{Stage: stage}
		machine := NewNegotiationFSM(n)

		assert.NoError(t, machine.Win(context.Background()), "stage %s", stage)
		assert.Equal(t, models.StageClosedWon, n.Stage)
	}
}

func TestNegotiationFSM_ClosedCardsRejectFurtherMoves(t *testing.T) {
	n := &models.Negotiation{Stage: models.StageClosedLost}
	machine := NewNegotiationFSM(n)
	ctx := context.Background()

	assert.Error(t, machine.Advance(ctx))
	assert.Error(t, machine.Win(ctx))
	assert.Error(t, machine.Lose(ctx))
	assert.Equal(t, models.StageClosedLost, n.Stage)
}

func TestNegotiationFSM_ReopenReturnsToNegotiating(t *testing.T) {
	n := &models.Negotiation{Stage: models.StageClosedWon}
	machine := NewNegotiationFSM(n)

	assert.NoError(t, machine.Reopen(context.Background()))
	assert.Equal(t, models.StageNegotiating, n.Stage)
}

func TestNegotiationFSM_MoveTo(t *testing.T) {
	ctx := context.Background()

	t.Run("forward across several columns", func(t *testing.T) {
		n := &models.Negotiation{Stage: models.StageOpportunity}
		assert.NoError(t, NewNegotiationFSM(n).MoveTo(ctx, models.StageNegotiating))
		assert.Equal(t, models.StageNegotiating, n.Stage)
	})

	t.Run("backward", func(t *testing.T) {
		n := &models.Negotiation{Stage: models.StageNegotiating}
		assert.NoError(t, NewNegotiationFSM(n).MoveTo(ctx, models.StageContacting))
		assert.Equal(t, models.StageContacting, n.Stage)
	})

	t.Run("close from early column", func(t *testing.T) {
		n := &models.Negotiation{Stage: models.StageOpportunity}
		assert.NoError(t, NewNegotiationFSM(n).MoveTo(ctx, models.StageClosedLost))
		assert.Equal(t, models.StageClosedLost, n.Stage)
	})

	t.Run("reopen then walk back", func(t *testing.T) {
		n := &models.Negotiation{Stage: models.StageClosedWon}
		assert.NoError(t, NewNegotiationFSM(n).MoveTo(ctx, models.StageEngaged))
		assert.Equal(t, models.StageEngaged, n.Stage)
	})

	t.Run("unknown stage", func(t *testing.T) {
		n := &models.Negotiation{Stage: models.StageOpportunity}
		assert.Error(t, NewNegotiationFSM(n).MoveTo(ctx, "archived"))
		assert.Equal(t, models.StageOpportunity, n.Stage)
	})
}
