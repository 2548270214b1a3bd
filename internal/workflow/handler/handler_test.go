package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arbiter/internal/decision"
	"arbiter/internal/workflow"
	"arbiter/pkg/platform/audit/publisher"
	auditmemory "arbiter/pkg/platform/audit/store/memory"
)

func newTestRouter(t *testing.T) (*chi.Mux, *decision.MemoryStore) {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	store := decision.NewMemoryStore()
	svc := workflow.NewService(store, publisher.New(auditmemory.NewInMemoryStore()), logger, nil)

	r := chi.NewRouter()
	New(svc, logger).Register(r)
	return r, store
}

func seed(t *testing.T, store *decision.MemoryStore, id string) {
	t.Helper()
	require.NoError(t, store.Save(context.Background(), decision.Record{
		Decision: decision.Decision{
			ID:               id,
			Module:           "grants",
			Operation:        "disburse",
			Outcome:          decision.OutcomeManualReview,
			RequiredApprover: decision.ApproverDepartmentHead,
		},
		Resolution: decision.ResolutionPending,
	}))
}

func post(t *testing.T, r http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestWorkflowRoutes(t *testing.T) {
	t.Run("approve", func(t *testing.T) {
		r, store := newTestRouter(t)
		seed(t, store, "DEC-1")

		rec := post(t, r, "/decision/DEC-1/approve", `{"approver": "A. Lead"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var res workflow.ApproveResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, "approved", res.Status)
		assert.Equal(t, "DEC-1", res.DecisionID)
	})

	t.Run("reject", func(t *testing.T) {
		r, store := newTestRouter(t)
		seed(t, store, "DEC-2")

		rec := post(t, r, "/decision/DEC-2/reject", `{"rejector": "B. Officer", "reason": "incomplete"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var res workflow.RejectResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, "rejected", res.Status)
		assert.Equal(t, workflow.DefaultAppealProcess, res.AppealProcess)
	})

	t.Run("escalate", func(t *testing.T) {
		r, store := newTestRouter(t)
		seed(t, store, "DEC-3")

		rec := post(t, r, "/decision/DEC-3/escalate", `{"escalatedBy": "C. Manager", "reason": "authority", "urgency": "critical"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var res workflow.EscalateResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, "escalated", res.Status)
		assert.Equal(t, "24 hours", res.ExpectedResponse)
		assert.Equal(t, decision.ApproverSeniorManagement, res.EscalateTo)
	})

	t.Run("unknown decision returns 404", func(t *testing.T) {
		r, _ := newTestRouter(t)

		rec := post(t, r, "/decision/DEC-missing/approve", `{"approver": "A. Lead"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "not_found")
	})

	t.Run("finalized decision returns 409", func(t *testing.T) {
		r, store := newTestRouter(t)
		seed(t, store, "DEC-4")

		require.Equal(t, http.StatusOK, post(t, r, "/decision/DEC-4/approve", `{"approver": "A. Lead"}`).Code)
		rec := post(t, r, "/decision/DEC-4/reject", `{"rejector": "B. Officer", "reason": "late"}`)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("missing required fields return 400", func(t *testing.T) {
		r, store := newTestRouter(t)
		seed(t, store, "DEC-5")

		assert.Equal(t, http.StatusBadRequest, post(t, r, "/decision/DEC-5/approve", `{}`).Code)
		assert.Equal(t, http.StatusBadRequest, post(t, r, "/decision/DEC-5/reject", `{"rejector": "B. Officer"}`).Code)
		assert.Equal(t, http.StatusBadRequest, post(t, r, "/decision/DEC-5/escalate", `{"escalatedBy": "C. Manager", "reason": "x", "escalateTo": "Janitor"}`).Code)
	})
}
