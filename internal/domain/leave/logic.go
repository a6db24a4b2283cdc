package leave

import (
	"errors"
	"strings"
	"time"

	"hrportal/internal/platform/dates"
)

// CalculateDays returns inclusive day count between start and end.
func CalculateDays(start, end time.Time) (float64, error) {
	start, end = dates.Day(start), dates.Day(end)
	if end.Before(start) {
		return 0, errors.New("end date before start date")
	}
	return end.Sub(start).Hours()/24 + 1, nil
}

// ValidateApplication checks a submission and returns its parsed dates.
// Problems are keyed by payload field name.
func ValidateApplication(p ApplicationPayload) (time.Time, time.Time, map[string]string) {
	issues := map[string]string{}
	if strings.TrimSpace(p.Reason) == "" {
		issues["reason"] = "Reason is required"
	}

	start, startOK := parseField(issues, "startDate", p.StartDate, "Start date")
	end, endOK := parseField(issues, "endDate", p.EndDate, "End date")
	if startOK && endOK && dates.Day(end).Before(dates.Day(start)) {
		issues["endDate"] = "End date must be after start date"
	}
	return start, end, issues
}

func parseField(issues map[string]string, field, raw, label string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		issues[field] = label + " is required"
		return time.Time{}, false
	}
	parsed, err := dates.Parse(raw)
	if err != nil {
		issues[field] = label + " must be a valid date"
		return time.Time{}, false
	}
	return dates.Day(parsed), true
}

// Transition applies outcome to a request in status current.
func Transition(current string, outcome Outcome) (string, error) {
	next, ok := outcome.Status()
	if !ok {
		return "", ErrInvalidOutcome
	}
	if current != StatusPending {
		return "", ErrInvalidState
	}
	return next, nil
}
