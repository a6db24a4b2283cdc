package feedback_test

import (
	"context"
	"errors"
	"testing"

	"hrportal/internal/domain/feedback"
	"hrportal/internal/storage/memory"
)

func TestSubmitListMarkRead(t *testing.T) {
	ctx := context.Background()
	svc := feedback.NewService(memory.New())

	first, err := svc.Submit(ctx, feedback.NewItem{FromName: "  Ann ", Message: "Great onboarding"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if first.FromName != "Ann" {
		t.Fatalf("expected trimmed name, got %q", first.FromName)
	}
	if _, err := svc.Submit(ctx, feedback.NewItem{FromName: "Bo", Message: "More plants"}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	items, err := svc.List(ctx)
	if err != nil || len(items) != 2 {
		t.Fatalf("expected two items, got %d (%v)", len(items), err)
	}
	if items[0].FromName != "Bo" {
		t.Fatalf("expected newest first, got %q", items[0].FromName)
	}

	if err := svc.MarkRead(ctx, first.ID); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	if err := svc.MarkRead(ctx, first.ID); !errors.Is(err, feedback.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	issues := feedback.Validate(feedback.NewItem{FromName: " ", Message: ""})
	if issues["fromName"] == "" || issues["message"] == "" {
		t.Fatalf("expected both fields flagged, got %v", issues)
	}
	if len(feedback.Validate(feedback.NewItem{FromName: "A", Message: "B"})) != 0 {
		t.Fatal("expected no issues")
	}
}
