package statemachine

import (
	"context"
	"fmt"

	"github.com/imoblead/fichapro-api/internal/models"
	"github.com/looplab/fsm"
)

// NegotiationFSM wraps a negotiation with its pipeline state machine.
// Cards advance one column at a time; closing is allowed from any open
// stage, and closed cards can be reopened back into negotiating.
type NegotiationFSM struct {
	negotiation *models.Negotiation
	fsm         *fsm.FSM
}

var openStages = []string{
	models.StageOpportunity,
	models.StageContacting,
	models.StageEngaged,
	models.StageNegotiating,
}

// NewNegotiationFSM creates a new negotiation state machine
func NewNegotiationFSM(negotiation *models.Negotiation) *NegotiationFSM {
	nfsm := &NegotiationFSM{
		negotiation: negotiation,
	}

	nfsm.fsm = fsm.NewFSM(
		negotiation.Stage,
		fsm.Events{
			// one column forward
			{Name: "advance", Src: []string{models.StageOpportunity}, Dst: models.StageContacting},
			{Name: "advance", Src: []string{models.StageContacting}, Dst: models.StageEngaged},
			{Name: "advance", Src: []string{models.StageEngaged}, Dst: models.StageNegotiating},

			// one column back
			{Name: "retreat", Src: []string{models.StageContacting}, Dst: models.StageOpportunity},
			{Name: "retreat", Src: []string{models.StageEngaged}, Dst: models.StageContacting},
			{Name: "retreat", Src: []string{models.StageNegotiating}, Dst: models.StageEngaged},

			// any open stage → closed
			{Name: "win", Src: openStages, Dst: models.StageClosedWon},
			{Name: "lose", Src: openStages, Dst: models.StageClosedLost},

			// closed → negotiating (reopen)
			{Name: "reopen", Src: []string{models.StageClosedWon, models.StageClosedLost}, Dst: models.StageNegotiating},
		},
		fsm.Callbacks{},
	)

	return nfsm
}

// Advance moves the card one column forward in the pipeline
func (n *NegotiationFSM) Advance(ctx context.Context) error {
	if err := n.fsm.Event(ctx, "advance"); err != nil {
		return fmt.Errorf("negotiation cannot advance from stage %s: %w", n.negotiation.Stage, err)
	}

	n.negotiation.Stage = n.fsm.Current()
	return nil
}

// Retreat moves the card one column back in the pipeline
func (n *NegotiationFSM) Retreat(ctx context.Context) error {
	if err := n.fsm.Event(ctx, "retreat"); err != nil {
		return fmt.Errorf("negotiation cannot retreat from stage %s: %w", n.negotiation.Stage, err)
	}

	n.negotiation.Stage = n.fsm.Current()
	return nil
}

// Win closes the negotiation as won
func (n *NegotiationFSM) Win(ctx context.Context) error {
	if n.negotiation.IsClosed() {
		return fmt.Errorf("negotiation is already closed as %s", n.negotiation.Stage)
	}

	if err := n.fsm.Event(ctx, "win"); err != nil {
		return fmt.Errorf("failed to close negotiation as won: %w", err)
	}

	n.negotiation.Stage = n.fsm.Current()
	return nil
}

// Lose closes the negotiation as lost
func (n *NegotiationFSM) Lose(ctx context.Context) error {
	if n.negotiation.IsClosed() {
		return fmt.Errorf("negotiation is already closed as %s", n.negotiation.Stage)
	}

	if err := n.fsm.Event(ctx, "lose"); err != nil {
		return fmt.Errorf("failed to close negotiation as lost: %w", err)
	}

	n.negotiation.Stage = n.fsm.Current()
	return nil
}

// Reopen puts a closed card back into the negotiating column
func (n *NegotiationFSM) Reopen(ctx context.Context) error {
	if !n.negotiation.IsClosed() {
		return fmt.Errorf("negotiation is not closed, current stage: %s", n.negotiation.Stage)
	}

	if err := n.fsm.Event(ctx, "reopen"); err != nil {
		return fmt.Errorf("failed to reopen negotiation: %w", err)
	}

	n.negotiation.Stage = n.fsm.Current()
	return nil
}

// MoveTo walks the card to the target stage, one transition at a time, so
// drag-and-drop moves still respect the pipeline order.
func (n *NegotiationFSM) MoveTo(ctx context.Context, target string) error {
	if !validStage(target) {
		return fmt.Errorf("unknown pipeline stage: %s", target)
	}

	for n.negotiation.Stage != target {
		switch {
		case target == models.StageClosedWon:
			return n.Win(ctx)
		case target == models.StageClosedLost:
			return n.Lose(ctx)
		case n.negotiation.IsClosed():
			if err := n.Reopen(ctx); err != nil {
				return err
			}
		case stageIndex(target) > stageIndex(n.negotiation.Stage):
			if err := n.Advance(ctx); err != nil {
				return err
			}
		default:
			if err := n.Retreat(ctx); err != nil {
				return err
			}
		}
	}
	return nil
}

// Current returns the current stage
func (n *NegotiationFSM) Current() string {
	return n.fsm.Current()
}

// Can checks if a transition is possible
func (n *NegotiationFSM) Can(event string) bool {
	return n.fsm.Can(event)
}

func validStage(stage string) bool {
	for _, s := range models.PipelineStages() {
		if s == stage {
			return true
		}
	}
	return false
}

func stageIndex(stage string) int {
	for i, s := range models.PipelineStages() {
		if s == stage {
			return i
		}
	}
	return -1
}
