// Package handler exposes the decision evaluation endpoint.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"arbiter/internal/decision"
	"arbiter/pkg/platform/httputil"
	"arbiter/pkg/requestcontext"
)

// Handler wires the evaluation endpoint to the decision engine.
type Handler struct {
	service *decision.Service
	logger  *slog.Logger
}

// New constructs a decision handler with its dependencies.
func New(service *decision.Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts decision endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/decision/evaluate", h.HandleEvaluate)
}

// HandleEvaluate handles POST /decision/evaluate requests.
func (h *Handler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[EvaluateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	domainReq := req.toDomain()
	if domainReq.Actor == "" {
		domainReq.Actor = requestcontext.Actor(ctx)
	}

	res, err := h.service.Evaluate(ctx, domainReq)
	if err != nil {
		h.logger.ErrorContext(ctx, "evaluation failed",
			"request_id", requestID,
			"module", domainReq.Module,
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, newEvaluateResponse(res))
}
