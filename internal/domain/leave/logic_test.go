package leave

import (
	"errors"
	"testing"
	"time"
)

func TestCalculateDays(t *testing.T) {
	start := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	days, err := CalculateDays(start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if days != 1 {
		t.Fatalf("expected 1 day, got %v", days)
	}

	end = time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC)
	days, err = CalculateDays(start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if days != 3 {
		t.Fatalf("expected 3 days, got %v", days)
	}
}

func TestCalculateDaysInvalid(t *testing.T) {
	start := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 2, 9, 0, 0, 0, 0, time.UTC)

	_, err := CalculateDays(start, end)
	if err == nil {
		t.Fatal("expected error for invalid range")
	}
}

func TestValidateApplication(t *testing.T) {
	tests := []struct {
		name    string
		payload ApplicationPayload
		want    map[string]string
	}{
		{
			name:    "valid range",
			payload: ApplicationPayload{Reason: "Trip", StartDate: "2024-07-30", EndDate: "2024-08-01"},
			want:    map[string]string{},
		},
		{
			name:    "same day",
			payload: ApplicationPayload{Reason: "Dentist", StartDate: "2024-07-30", EndDate: "2024-07-30"},
			want:    map[string]string{},
		},
		{
			name:    "end before start",
			payload: ApplicationPayload{Reason: "Trip", StartDate: "2024-08-01", EndDate: "2024-07-30"},
			want:    map[string]string{"endDate": "End date must be after start date"},
		},
		{
			name:    "blank fields",
			payload: ApplicationPayload{Reason: "   "},
			want: map[string]string{
				"reason":    "Reason is required",
				"startDate": "Start date is required",
				"endDate":   "End date is required",
			},
		},
		{
			name:    "unparsable start",
			payload: ApplicationPayload{Reason: "Trip", StartDate: "tomorrow", EndDate: "2024-08-01"},
			want:    map[string]string{"startDate": "Start date must be a valid date"},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			_, _, issues := ValidateApplication(tc.payload)
			if len(issues) != len(tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, issues)
			}
			for field, msg := range tc.want {
				if issues[field] != msg {
					t.Fatalf("expected %s=%q, got %q", field, msg, issues[field])
				}
			}
		})
	}
}

func TestTransition(t *testing.T) {
	next, err := Transition(StatusPending, OutcomeApprove)
	if err != nil || next != StatusApproved {
		t.Fatalf("expected Approved, got %q (%v)", next, err)
	}
	next, err = Transition(StatusPending, OutcomeDeny)
	if err != nil || next != StatusDenied {
		t.Fatalf("expected Denied, got %q (%v)", next, err)
	}
	for _, terminal := range []string{StatusApproved, StatusDenied} {
		if _, err := Transition(terminal, OutcomeDeny); !errors.Is(err, ErrInvalidState) {
			t.Fatalf("expected invalid state from %s, got %v", terminal, err)
		}
	}
	if _, err := Transition(StatusPending, Outcome("maybe")); !errors.Is(err, ErrInvalidOutcome) {
		t.Fatalf("expected invalid outcome, got %v", err)
	}
}
