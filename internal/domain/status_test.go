package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrainingStatus_CanTransitionTo(t *testing.T) {
	allowed := map[TrainingStatus][]TrainingStatus{
		TrainingPendingSubmission: {TrainingPendingHOD},
		TrainingPendingHOD:        {TrainingPendingHR, TrainingRejected},
		TrainingPendingHR:         {TrainingPendingGM},
		TrainingPendingGM:         {TrainingApproved, TrainingRejected},
	}

	for _, from := range TrainingStatuses() {
		for _, to := range TrainingStatuses() {
			want := false
			for _, a := range allowed[from] {
				if a == to {
					want = true
				}
			}
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestTrainingStatus_TerminalHasNoExit(t *testing.T) {
	for _, s := range TrainingStatuses() {
		if !s.IsTerminal() {
			continue
		}
		for _, next := range TrainingStatuses() {
			assert.False(t, s.CanTransitionTo(next), "%s is terminal but reaches %s", s, next)
		}
	}
	assert.True(t, TrainingApproved.IsTerminal())
	assert.True(t, TrainingRejected.IsTerminal())
	assert.False(t, TrainingPendingGM.IsTerminal())
}

func TestGCRStatus_CanTransitionTo(t *testing.T) {
	t.Run("happy path is a single chain", func(t *testing.T) {
		chain := []GCRStatus{
			GCRPendingSubmission, GCRPendingHR1, GCRPendingGM, GCRPendingHR2,
			GCRPendingHR3, GCRPendingGMFinal, GCRApproved,
		}
		for i := 0; i < len(chain)-1; i++ {
			assert.True(t, chain[i].CanTransitionTo(chain[i+1]), "%s -> %s", chain[i], chain[i+1])
		}
	})

	t.Run("only the GM decision can reject", func(t *testing.T) {
		for _, s := range GCRStatuses() {
			assert.Equal(t, s == GCRPendingGM, s.CanTransitionTo(GCRRejected), s)
		}
	})

	t.Run("no skipping", func(t *testing.T) {
		assert.False(t, GCRPendingHR1.CanTransitionTo(GCRPendingHR2))
		assert.False(t, GCRPendingHR2.CanTransitionTo(GCRPendingGMFinal))
		assert.False(t, GCRApproved.CanTransitionTo(GCRPendingHR1))
	})
}

func TestStatusMeta_CoversEveryStatus(t *testing.T) {
	for _, s := range TrainingStatuses() {
		m := s.Meta()
		assert.NotEmpty(t, m.LabelKey, s)
		assert.NotEmpty(t, m.Badge, s)
	}
	for _, s := range GCRStatuses() {
		m := s.Meta()
		assert.NotEmpty(t, m.LabelKey, s)
		assert.NotEmpty(t, m.Badge, s)
	}
	for _, s := range EvaluationStatuses() {
		assert.NotEmpty(t, s.Meta().LabelKey, s)
	}
	assert.False(t, TrainingStatus("archived").IsValid())
}

func TestParseEvaluationStatus(t *testing.T) {
	assert.Equal(t, EvaluationCompleted, ParseEvaluationStatus("submitted"))
	assert.Equal(t, EvaluationCompleted, ParseEvaluationStatus("completed"))
	assert.Equal(t, EvaluationPending, ParseEvaluationStatus("pending"))
	assert.False(t, ParseEvaluationStatus("lost").IsValid())
}

func TestEvaluationStatus_Scan(t *testing.T) {
	var s EvaluationStatus

	require.NoError(t, s.Scan([]byte("submitted")))
	assert.Equal(t, EvaluationCompleted, s)

	require.NoError(t, s.Scan("pending"))
	assert.Equal(t, EvaluationPending, s)

	assert.Error(t, s.Scan(42))
}

func TestEvaluationStatus_StoredValues(t *testing.T) {
	assert.Equal(t, []string{"completed", "submitted"}, EvaluationCompleted.StoredValues())
	assert.Equal(t, []string{"pending"}, EvaluationPending.StoredValues())
}
