package shared

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"hrportal/internal/transport/http/api"
)

const validationMessage = "payload validation failed"

// Validator collects one message per field. The first message recorded for a
// field wins, matching how forms show a single hint under each input.
type Validator struct {
	issues map[string]string
}

func NewValidator() *Validator {
	return &Validator{issues: map[string]string{}}
}

func (v *Validator) Add(field, reason string) {
	if v == nil {
		return
	}
	field = strings.TrimSpace(field)
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return
	}
	if _, exists := v.issues[field]; exists {
		return
	}
	v.issues[field] = reason
}

func (v *Validator) Merge(issues map[string]string) {
	for field, reason := range issues {
		v.Add(field, reason)
	}
}

func (v *Validator) Required(field, value, reason string) {
	if strings.TrimSpace(value) == "" {
		v.Add(field, reason)
	}
}

func (v *Validator) HasIssues() bool {
	return v != nil && len(v.issues) > 0
}

func (v *Validator) Issues() map[string]string {
	if v == nil || len(v.issues) == 0 {
		return nil
	}
	out := make(map[string]string, len(v.issues))
	for field, reason := range v.issues {
		out[field] = reason
	}
	return out
}

func (v *Validator) Reject(w http.ResponseWriter, requestID string) bool {
	if !v.HasIssues() {
		return false
	}
	FailValidation(w, requestID, v.Issues())
	return true
}

func FailValidation(w http.ResponseWriter, requestID string, issues map[string]string) {
	api.FailWithDetails(
		w,
		http.StatusBadRequest,
		"validation_error",
		validationMessage,
		map[string]any{"fields": issues},
		requestID,
	)
}

// DecodeJSON reads a request body into dst. Oversized bodies and malformed
// JSON are reported as a validation failure on the "body" field.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any, requestID string) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		reason := "invalid json payload"
		if errors.As(err, &tooLarge) {
			reason = "payload too large"
		}
		FailValidation(w, requestID, map[string]string{"body": reason})
		return false
	}
	return true
}

// PathID parses the {id} URL parameter.
func PathID(w http.ResponseWriter, r *http.Request, requestID string) (int64, bool) {
	return parseID(w, chi.URLParam(r, "id"), "id", requestID)
}

// QueryID parses a positive integer query parameter.
func QueryID(w http.ResponseWriter, r *http.Request, name, requestID string) (int64, bool) {
	return parseID(w, r.URL.Query().Get(name), name, requestID)
}

func parseID(w http.ResponseWriter, raw, field, requestID string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		FailValidation(w, requestID, map[string]string{field: "must be a positive integer"})
		return 0, false
	}
	return id, true
}
