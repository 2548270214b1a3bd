package handler

import (
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
	"arbiter/pkg/platform/audit/publisher"
	auditmemory "arbiter/pkg/platform/audit/store/memory"
)

func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	svc := decision.NewService(
		decision.NewMemoryStore(),
		publisher.New(auditmemory.NewInMemoryStore()),
		logger,
		nil,
	)
	r := chi.NewRouter()
	New(svc, logger).Register(r)
	return r
}

func postEvaluate(t *testing.T, r http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/decision/evaluate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandleEvaluate(t *testing.T) {
	t.Run("routine request approves", func(t *testing.T) {
		r := newTestRouter(t)
		rec := postEvaluate(t, r, `{
			"module": "grants",
			"operation": "disburse",
			"actor": "requester-1",
			"data": {"amount": 30000, "urgency": "normal"}
		}`)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp EvaluateResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, strings.HasPrefix(resp.DecisionID, "DEC-"))
		assert.Equal(t, decision.OutcomeAutoApprove, resp.Evaluation.Decision)
		assert.Empty(t, resp.Evaluation.RequiredApprover)
		assert.False(t, resp.Unaudited)
		require.NotNil(t, resp.AuditEntry)
		assert.True(t, strings.HasPrefix(resp.AuditEntry.ID, "AUD-"))
	})

	t.Run("sanctioned request rejects with full breakdown", func(t *testing.T) {
		r := newTestRouter(t)
		rec := postEvaluate(t, r, `{
			"module": "partnerships",
			"operation": "engage",
			"data": {"amount": 1200000, "sanctionRisk": true}
		}`)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp EvaluateResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, decision.OutcomeAutoReject, resp.Evaluation.Decision)
		assert.Equal(t, decision.RiskCritical, resp.Evaluation.Checks.Risk.Level)
		assert.NotEmpty(t, resp.Evaluation.Checks.Boundaries.Violations)
	})

	t.Run("missing module is a bad request", func(t *testing.T) {
		r := newTestRouter(t)
		rec := postEvaluate(t, r, `{"operation": "disburse"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "bad_request")
	})

	t.Run("unknown urgency is a validation error", func(t *testing.T) {
		r := newTestRouter(t)
		rec := postEvaluate(t, r, `{
			"module": "grants",
			"operation": "disburse",
			"data": {"urgency": "yesterday"}
		}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "validation_error")
	})

	t.Run("malformed body is a bad request", func(t *testing.T) {
		r := newTestRouter(t)
		rec := postEvaluate(t, r, `{"module": `)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
