package decision

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "arbiter/pkg/domain-errors"
)

func pendingRecord(id string) Record {
	return Record{
		Decision: Decision{
			ID:               id,
			Module:           "grants",
			Operation:        "disburse",
			Outcome:          OutcomeManualReview,
			RequiredApprover: ApproverDepartmentHead,
		},
		Resolution: ResolutionPending,
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("save and get round-trip", func(t *testing.T) {
		store := NewMemoryStore()
		require.NoError(t, store.Save(ctx, pendingRecord("DEC-1")))

		rec, err := store.Get(ctx, "DEC-1")
		require.NoError(t, err)
		assert.Equal(t, ResolutionPending, rec.Resolution)
		assert.Equal(t, "grants", rec.Decision.Module)
	})

	t.Run("get unknown id is not found", func(t *testing.T) {
		store := NewMemoryStore()

		_, err := store.Get(ctx, "DEC-missing")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	t.Run("finalize is terminal", func(t *testing.T) {
		store := NewMemoryStore()
		require.NoError(t, store.Save(ctx, pendingRecord("DEC-2")))

		rec, err := store.Finalize(ctx, "DEC-2", ResolutionApproved)
		require.NoError(t, err)
		assert.Equal(t, ResolutionApproved, rec.Resolution)

		_, err = store.Finalize(ctx, "DEC-2", ResolutionRejected)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))

		_, err = store.Escalate(ctx, "DEC-2", ApproverBoard)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
	})

	t.Run("escalate moves the approver and stays pending", func(t *testing.T) {
		store := NewMemoryStore()
		require.NoError(t, store.Save(ctx, pendingRecord("DEC-3")))

		rec, err := store.Escalate(ctx, "DEC-3", ApproverSeniorManagement)
		require.NoError(t, err)
		assert.Equal(t, ApproverSeniorManagement, rec.Decision.RequiredApprover)
		assert.Equal(t, ResolutionPending, rec.Resolution)
	})

	t.Run("save without id rejected", func(t *testing.T) {
		store := NewMemoryStore()
		err := store.Save(ctx, Record{Resolution: ResolutionPending})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})
}
