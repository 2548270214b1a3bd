// Package handler exposes the workflow action endpoints.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"arbiter/internal/workflow"
	"arbiter/pkg/platform/httputil"
	"arbiter/pkg/requestcontext"
)

// Handler wires the workflow endpoints to the workflow service.
type Handler struct {
	service *workflow.Service
	logger  *slog.Logger
}

// New constructs a workflow handler with its dependencies.
func New(service *workflow.Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts workflow endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/decision/{decisionID}", func(r chi.Router) {
		r.Post("/approve", h.HandleApprove)
		r.Post("/reject", h.HandleReject)
		r.Post("/escalate", h.HandleEscalate)
	})
}

// HandleApprove handles POST /decision/{decisionID}/approve requests.
func (h *Handler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	decisionID := chi.URLParam(r, "decisionID")

	req, ok := httputil.DecodeAndPrepare[workflow.ApproveRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	res, err := h.service.Approve(ctx, decisionID, *req)
	if err != nil {
		h.logAction(ctx, "approve", decisionID, requestID, err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

// HandleReject handles POST /decision/{decisionID}/reject requests.
func (h *Handler) HandleReject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	decisionID := chi.URLParam(r, "decisionID")

	req, ok := httputil.DecodeAndPrepare[workflow.RejectRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	res, err := h.service.Reject(ctx, decisionID, *req)
	if err != nil {
		h.logAction(ctx, "reject", decisionID, requestID, err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

// HandleEscalate handles POST /decision/{decisionID}/escalate requests.
func (h *Handler) HandleEscalate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	decisionID := chi.URLParam(r, "decisionID")

	req, ok := httputil.DecodeAndPrepare[workflow.EscalateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	res, err := h.service.Escalate(ctx, decisionID, *req)
	if err != nil {
		h.logAction(ctx, "escalate", decisionID, requestID, err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) logAction(ctx context.Context, action, decisionID, requestID string, err error) {
	h.logger.WarnContext(ctx, "workflow action failed",
		"action", action,
		"decision_id", decisionID,
		"request_id", requestID,
		"error", err.Error(),
	)
}
