package feedbackhandler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrportal/internal/domain/feedback"
	"hrportal/internal/transport/http/api"
	"hrportal/internal/transport/http/middleware"
	"hrportal/internal/transport/http/shared"
)

type Handler struct {
	Service *feedback.Service
}

func NewHandler(service *feedback.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/fb", func(r chi.Router) {
		r.Post("/add", h.handleSubmit)
		r.Get("/get-all", h.handleList)
		r.Delete("/delete", h.handleMarkRead)
	})
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload feedback.NewItem
	if !shared.DecodeJSON(w, r, &payload, requestID) {
		return
	}
	if issues := feedback.Validate(payload); len(issues) > 0 {
		shared.FailValidation(w, requestID, issues)
		return
	}
	item, err := h.Service.Submit(r.Context(), payload)
	if err != nil {
		slog.Error("submit feedback failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "feedback_failed", "failed to save feedback", requestID)
		return
	}
	api.Created(w, item, requestID)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	items, err := h.Service.List(r.Context())
	if err != nil {
		slog.Error("list feedback failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "feedback_failed", "failed to list feedback", requestID)
		return
	}
	api.Success(w, items, requestID)
}

func (h *Handler) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id, ok := shared.QueryID(w, r, "feedbackId", requestID)
	if !ok {
		return
	}
	if err := h.Service.MarkRead(r.Context(), id); err != nil {
		if errors.Is(err, feedback.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "feedback not found", requestID)
			return
		}
		slog.Error("delete feedback failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "feedback_failed", "failed to delete feedback", requestID)
		return
	}
	api.Success(w, map[string]any{"id": id, "status": "deleted"}, requestID)
}
