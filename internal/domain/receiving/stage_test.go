package receiving

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStage_IsValid(t *testing.T) {
	tests := []struct {
		stage   Stage
		isValid bool
	}{
		{StageArrivalPending, true},
		{StageUnloading, true},
		{StageQualityCheck, true},
		{StagePutaway, true},
		{StageComplete, true},
		{Stage("INVALID"), false},
		{Stage(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.stage), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.stage.IsValid())
		})
	}
}

func TestStage_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from     Stage
		to       Stage
		canTrans bool
	}{
		// Strictly forward, one step at a time
		{StageArrivalPending, StageUnloading, true},
		{StageUnloading, StageQualityCheck, true},
		{StageQualityCheck, StagePutaway, true},
		{StagePutaway, StageComplete, true},
		// No skipping
		{StageArrivalPending, StageQualityCheck, false},
		{StageUnloading, StagePutaway, false},
		{StageQualityCheck, StageComplete, false},
		// No rollback
		{StageUnloading, StageArrivalPending, false},
		{StageQualityCheck, StageUnloading, false},
		{StagePutaway, StageQualityCheck, false},
		// Terminal
		{StageComplete, StageArrivalPending, false},
		{StageComplete, StagePutaway, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.canTrans, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestStage_IsTerminal(t *testing.T) {
	assert.True(t, StageComplete.IsTerminal())
	assert.False(t, StageArrivalPending.IsTerminal())
	assert.False(t, StagePutaway.IsTerminal())
}
