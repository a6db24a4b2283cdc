package leavehandler

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/directory"
	"hrportal/internal/domain/leave"
	"hrportal/internal/platform/metrics"
	"hrportal/internal/transport/http/api"
	"hrportal/internal/transport/http/middleware"
	"hrportal/internal/transport/http/shared"
)

type Handler struct {
	Service *leave.Service
	Users   *directory.Service
	Metrics *metrics.Collector
}

func NewHandler(service *leave.Service, users *directory.Service, collector *metrics.Collector) *Handler {
	return &Handler{Service: service, Users: users, Metrics: collector}
}

// requester describes one filing route: who files and which query
// parameter names them.
type requester struct {
	role  string
	param string
}

var (
	employeeRoute = requester{role: auth.RoleEmployee, param: "employeeId"}
	managerRoute  = requester{role: auth.RoleManager, param: "managerId"}
)

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/leave", func(r chi.Router) {
		r.Post("/employee/apply", h.handleApply(employeeRoute))
		r.Get("/employee/history", h.handleHistory(employeeRoute))
		r.Get("/employee/history/export", h.handleExport(employeeRoute))
		r.Post("/manager/apply", h.handleApply(managerRoute))
		r.Get("/manager/history", h.handleHistory(managerRoute))
		r.Get("/manager/history/export", h.handleExport(managerRoute))

		r.Get("/apply/manager/getAll", h.handlePending(auth.RoleManager))
		r.Patch("/manager/approve/{id}", h.handleDecide(auth.RoleManager, leave.OutcomeApprove))
		r.Patch("/manager/deny/{id}", h.handleDecide(auth.RoleManager, leave.OutcomeDeny))

		r.Get("/apply/hr/getAll", h.handlePending(auth.RoleHR))
		r.Patch("/hr/approve/{id}", h.handleDecide(auth.RoleHR, leave.OutcomeApprove))
		r.Patch("/hr/deny/{id}", h.handleDecide(auth.RoleHR, leave.OutcomeDeny))
	})
}

func (h *Handler) handleApply(route requester) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := middleware.GetRequestID(r.Context())
		requesterID, ok := shared.QueryID(w, r, route.param, requestID)
		if !ok {
			return
		}
		var payload leave.ApplicationPayload
		if !shared.DecodeJSON(w, r, &payload, requestID) {
			return
		}
		start, end, issues := leave.ValidateApplication(payload)
		if len(issues) > 0 {
			shared.FailValidation(w, requestID, issues)
			return
		}

		created, err := h.Service.Apply(r.Context(), leave.Application{
			RequesterID:   requesterID,
			RequesterRole: route.role,
			Reason:        payload.Reason,
			StartDate:     start,
			EndDate:       end,
		})
		if err != nil {
			writeError(w, err, requestID)
			return
		}
		h.Metrics.LeaveFiled()
		api.Created(w, created, requestID)
	}
}

func (h *Handler) handleHistory(route requester) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := middleware.GetRequestID(r.Context())
		requesterID, ok := shared.QueryID(w, r, route.param, requestID)
		if !ok {
			return
		}
		history, err := h.Service.History(r.Context(), route.role, requesterID)
		if err != nil {
			writeError(w, err, requestID)
			return
		}
		api.Success(w, history, requestID)
	}
}

func (h *Handler) handleExport(route requester) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := middleware.GetRequestID(r.Context())
		requesterID, ok := shared.QueryID(w, r, route.param, requestID)
		if !ok {
			return
		}
		history, err := h.Service.History(r.Context(), route.role, requesterID)
		if err != nil {
			writeError(w, err, requestID)
			return
		}
		user, err := h.Users.Get(r.Context(), requesterID)
		if err != nil {
			writeError(w, err, requestID)
			return
		}

		var buf bytes.Buffer
		if err := leave.RenderHistoryPDF(&buf, user, history); err != nil {
			slog.Error("render leave history failed", "requesterId", requesterID, "err", err)
			api.Fail(w, http.StatusInternalServerError, "leave_export_failed", "failed to render leave history", requestID)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=leave-history-%d.pdf", requesterID))
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(buf.Bytes()); err != nil {
			slog.Warn("write leave export failed", "err", err)
		}
	}
}

// handlePending lists requests awaiting approverRole. A manager bearer token
// narrows the result, and the decisions below, to the caller's own team.
func (h *Handler) handlePending(approverRole string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := middleware.GetRequestID(r.Context())
		pending, err := h.Service.Pending(r.Context(), approverRole, callerOf(r))
		if err != nil {
			writeError(w, err, requestID)
			return
		}
		api.Success(w, pending, requestID)
	}
}

func (h *Handler) handleDecide(approverRole string, outcome leave.Outcome) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := middleware.GetRequestID(r.Context())
		id, ok := shared.PathID(w, r, requestID)
		if !ok {
			return
		}
		decided, err := h.Service.Decide(r.Context(), approverRole, id, outcome, callerOf(r))
		if err != nil {
			writeError(w, err, requestID)
			return
		}
		h.Metrics.LeaveDecided(outcome == leave.OutcomeApprove)
		api.Success(w, decided, requestID)
	}
}

// callerOf returns the bearer identity of r, or nil for anonymous requests.
func callerOf(r *http.Request) *auth.UserContext {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		return nil
	}
	return &user
}

func writeError(w http.ResponseWriter, err error, requestID string) {
	switch {
	case errors.Is(err, leave.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "leave request not found", requestID)
	case errors.Is(err, leave.ErrRequester), errors.Is(err, directory.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "requester not found for this route", requestID)
	case errors.Is(err, leave.ErrInvalidState):
		api.Fail(w, http.StatusConflict, "invalid_state", "leave request is no longer pending", requestID)
	case errors.Is(err, leave.ErrInvalidOutcome):
		shared.FailValidation(w, requestID, map[string]string{"outcome": "must be approve or deny"})
	default:
		slog.Error("leave request failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "leave_failed", "leave operation failed", requestID)
	}
}
