package taskshandler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrportal/internal/domain/tasks"
	"hrportal/internal/transport/http/api"
	"hrportal/internal/transport/http/middleware"
	"hrportal/internal/transport/http/shared"
)

type Handler struct {
	Service *tasks.Service
}

func NewHandler(service *tasks.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/tasks", func(r chi.Router) {
		r.Post("/add", h.handleAssign)
		r.Get("/byUser/{id}", h.handleListForUser)
		r.Patch("/complete/{id}", h.handleComplete)
	})
}

func (h *Handler) handleAssign(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload tasks.NewTaskPayload
	if !shared.DecodeJSON(w, r, &payload, requestID) {
		return
	}
	task, issues := tasks.ValidateNewTask(payload)
	if len(issues) > 0 {
		shared.FailValidation(w, requestID, issues)
		return
	}

	created, err := h.Service.Assign(r.Context(), task)
	if err != nil {
		writeError(w, err, requestID)
		return
	}
	api.Created(w, created, requestID)
}

func (h *Handler) handleListForUser(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	assigneeID, ok := shared.PathID(w, r, requestID)
	if !ok {
		return
	}
	list, err := h.Service.ListForAssignee(r.Context(), assigneeID)
	if err != nil {
		writeError(w, err, requestID)
		return
	}
	api.Success(w, list, requestID)
}

func (h *Handler) handleComplete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id, ok := shared.PathID(w, r, requestID)
	if !ok {
		return
	}
	task, err := h.Service.Complete(r.Context(), id)
	if err != nil {
		writeError(w, err, requestID)
		return
	}
	api.Success(w, task, requestID)
}

func writeError(w http.ResponseWriter, err error, requestID string) {
	switch {
	case errors.Is(err, tasks.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "task not found", requestID)
	case errors.Is(err, tasks.ErrAlreadyComplete):
		api.Fail(w, http.StatusConflict, "invalid_state", "task is already complete", requestID)
	case errors.Is(err, tasks.ErrInvalidAssignee):
		shared.FailValidation(w, requestID, map[string]string{"assigneeId": "Employee does not exist"})
	default:
		slog.Error("task request failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "tasks_failed", "task operation failed", requestID)
	}
}
