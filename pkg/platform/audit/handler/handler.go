// Package handler exposes the read-only audit query endpoint.
package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	dErrors "arbiter/pkg/domain-errors"
	"arbiter/pkg/platform/httputil"
	audit "arbiter/pkg/platform/audit"
	"arbiter/pkg/requestcontext"
)

// Handler wires the audit query endpoint to the audit store.
type Handler struct {
	store  audit.Store
	logger *slog.Logger
}

// New constructs an audit handler with its dependencies.
func New(store audit.Store, logger *slog.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// Register mounts audit endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/audit", h.HandleQuery)
}

// HandleQuery handles GET /audit requests. Filters: decision_id, module,
// from, to (RFC 3339); pagination: page, limit.
func (h *Handler) HandleQuery(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	q := r.URL.Query()
	filter := audit.Filter{
		DecisionID: q.Get("decision_id"),
		Module:     q.Get("module"),
	}

	var err error
	if filter.From, err = parseTime(q.Get("from")); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "from must be RFC 3339"))
		return
	}
	if filter.To, err = parseTime(q.Get("to")); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "to must be RFC 3339"))
		return
	}

	page := audit.Page{
		Number: intParam(q.Get("page")),
		Limit:  intParam(q.Get("limit")),
	}

	result, err := h.store.Query(ctx, filter, page)
	if err != nil {
		h.logger.ErrorContext(ctx, "audit query failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "audit query failed"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}

func parseTime(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, v)
}

func intParam(v string) int {
	n, _ := strconv.Atoi(v)
	return n
}
