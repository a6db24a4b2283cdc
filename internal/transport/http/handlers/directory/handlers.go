package directoryhandler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/directory"
	"hrportal/internal/transport/http/api"
	"hrportal/internal/transport/http/middleware"
	"hrportal/internal/transport/http/shared"
)

type Handler struct {
	Service *directory.Service
}

func NewHandler(service *directory.Service) *Handler {
	return &Handler{Service: service}
}

// RegisterRoutes mounts the two endpoint families. Managers are reached only
// through /manager; employees and HR staff through /user.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/user", func(r chi.Router) {
		r.Post("/add", h.handleCreate(directory.ScopeUser))
		r.Get("/all", h.handleListUsers)
		r.Get("/byManager/{id}", h.handleListByManager)
		r.Put("/edit/{id}", h.handleUpdate(directory.ScopeUser))
		r.Delete("/delete/{id}", h.handleDelete(directory.ScopeUser))
	})
	r.Route("/manager", func(r chi.Router) {
		r.Post("/add", h.handleCreate(directory.ScopeManager))
		r.Get("/all", h.handleListManagers)
		r.Put("/edit/{id}", h.handleUpdate(directory.ScopeManager))
		r.Delete("/delete/{id}", h.handleDelete(directory.ScopeManager))
	})
}

func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	role := auth.RoleEmployee
	if raw := strings.TrimSpace(r.URL.Query().Get("role")); raw != "" {
		role = auth.NormalizeRole(raw)
	}
	switch {
	case !auth.ValidRole(role):
		shared.FailValidation(w, requestID, map[string]string{"role": "Role must be Employee, Manager or HR"})
		return
	case !directory.ScopeUser.Allows(role):
		shared.FailValidation(w, requestID, map[string]string{"role": "Managers are listed through /manager/all"})
		return
	}
	h.list(w, r, role)
}

func (h *Handler) handleListManagers(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, auth.RoleManager)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, role string) {
	users, err := h.Service.ListByRole(r.Context(), role)
	if err != nil {
		slog.Warn("list users failed", "role", role, "err", err)
		api.Fail(w, http.StatusInternalServerError, "directory_failed", "failed to list users", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, users, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListByManager(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	managerID, ok := shared.PathID(w, r, requestID)
	if !ok {
		return
	}
	users, err := h.Service.ListByManager(r.Context(), managerID)
	if err != nil {
		slog.Warn("list team failed", "managerId", managerID, "err", err)
		api.Fail(w, http.StatusInternalServerError, "directory_failed", "failed to list team", requestID)
		return
	}
	api.Success(w, users, requestID)
}

func (h *Handler) handleCreate(scope directory.Scope) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := middleware.GetRequestID(r.Context())
		var payload directory.NewUser
		if !shared.DecodeJSON(w, r, &payload, requestID) {
			return
		}
		if scope == directory.ScopeManager && strings.TrimSpace(payload.Role) == "" {
			payload.Role = auth.RoleManager
		}

		v := shared.NewValidator()
		v.Merge(directory.ValidateNewUser(payload))
		if role := auth.NormalizeRole(payload.Role); auth.ValidRole(role) && !scope.Allows(role) {
			v.Add("role", scopeMessage(scope))
		}
		if v.Reject(w, requestID) {
			return
		}

		created, err := h.Service.Create(r.Context(), payload)
		if err != nil {
			writeError(w, err, requestID)
			return
		}
		api.Created(w, created, requestID)
	}
}

func (h *Handler) handleUpdate(scope directory.Scope) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := middleware.GetRequestID(r.Context())
		id, ok := shared.PathID(w, r, requestID)
		if !ok {
			return
		}
		var payload directory.UserPatch
		if !shared.DecodeJSON(w, r, &payload, requestID) {
			return
		}

		v := shared.NewValidator()
		v.Merge(directory.ValidatePatch(payload))
		if role := auth.NormalizeRole(payload.Role); auth.ValidRole(role) && !scope.Allows(role) {
			v.Add("role", scopeMessage(scope))
		}
		if v.Reject(w, requestID) {
			return
		}

		updated, err := h.Service.Update(r.Context(), scope, id, payload)
		if err != nil {
			writeError(w, err, requestID)
			return
		}
		api.Success(w, updated, requestID)
	}
}

func (h *Handler) handleDelete(scope directory.Scope) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := middleware.GetRequestID(r.Context())
		id, ok := shared.PathID(w, r, requestID)
		if !ok {
			return
		}
		if err := h.Service.Delete(r.Context(), scope, id); err != nil {
			writeError(w, err, requestID)
			return
		}
		api.Success(w, map[string]any{"id": id, "status": "deleted"}, requestID)
	}
}

func scopeMessage(scope directory.Scope) string {
	if scope == directory.ScopeManager {
		return "Only managers are managed through /manager"
	}
	return "Managers are managed through /manager"
}

func writeError(w http.ResponseWriter, err error, requestID string) {
	switch {
	case errors.Is(err, directory.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "user not found", requestID)
	case errors.Is(err, directory.ErrUsernameTaken):
		shared.FailValidation(w, requestID, map[string]string{"username": "Username is already taken"})
	case errors.Is(err, directory.ErrInvalidHR):
		shared.FailValidation(w, requestID, map[string]string{"hrId": "HR ID does not match an HR user"})
	case errors.Is(err, directory.ErrInvalidManager):
		shared.FailValidation(w, requestID, map[string]string{"managerId": "Manager ID does not match a manager"})
	case errors.Is(err, directory.ErrHRRequired):
		shared.FailValidation(w, requestID, map[string]string{"hrId": "HR ID is required"})
	case errors.Is(err, directory.ErrManagerRequired):
		shared.FailValidation(w, requestID, map[string]string{"managerId": "Manager ID is required"})
	case errors.Is(err, directory.ErrHRInUse):
		shared.FailValidation(w, requestID, map[string]string{"role": "HR users with linked employees or managers cannot change role"})
	default:
		slog.Error("directory request failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "directory_failed", "directory operation failed", requestID)
	}
}
