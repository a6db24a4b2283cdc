package feedback_test

import (
	"context"
	"errors"
	"testing"

	"hrportal/internal/portal/feedback"
	"hrportal/internal/portal/portaltest"
	"hrportal/internal/portal/remote"
)

func TestInboxMarkRead(t *testing.T) {
	ctx := context.Background()
	env := portaltest.Start(t)
	inbox := feedback.NewInbox(env.Client(t, nil))

	first, err := inbox.Send(ctx, "Eve", "More plants please")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if _, err := inbox.Send(ctx, "Sam", "Great onboarding"); err != nil {
		t.Fatalf("send: %v", err)
	}

	items, err := inbox.Load(ctx)
	if err != nil || len(items) != 2 {
		t.Fatalf("unexpected inbox %+v (%v)", items, err)
	}

	if err := inbox.MarkRead(ctx, first.ID); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	if got := inbox.Items(); len(got) != 1 || got[0].ID == first.ID {
		t.Fatalf("read item still listed: %+v", got)
	}
	if inbox.Alert().Message != "Feedback deleted successfully" {
		t.Fatalf("unexpected alert: %+v", inbox.Alert())
	}

	err = inbox.MarkRead(ctx, first.ID)
	if !errors.Is(err, remote.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if inbox.Alert().Kind != remote.AlertError {
		t.Fatalf("expected error alert, got %+v", inbox.Alert())
	}
	if got := inbox.Items(); len(got) != 1 {
		t.Fatalf("failed delete changed the inbox: %+v", got)
	}
}

func TestSendValidates(t *testing.T) {
	inbox := feedback.NewInbox(remote.New("http://127.0.0.1:1"))
	_, err := inbox.Send(context.Background(), " ", "")
	var validation *remote.ValidationError
	if !errors.As(err, &validation) || len(validation.Fields) != 2 {
		t.Fatalf("expected two field issues, got %v", err)
	}
}
