package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// The action constants are persisted in system_logs rows and matched by the
// audit feed's action filter, so their values must not drift.
func TestNegotiationActionValues(t *testing.T) {
	assert.Equal(t, "NEGOTIATION_CREATE", ActionNegotiationCreate)
	assert.Equal(t, "NEGOTIATION_DELETE", ActionNegotiationDelete)
	assert.Equal(t, "NEGOTIATION_STALE", ActionNegotiationStale)
	assert.Equal(t, "STAGE_MOVE", ActionStageMove)
}
