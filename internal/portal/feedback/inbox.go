// Package feedback is HR's feedback inbox. Reading an item deletes it.
package feedback

import (
	"context"
	"net/url"
	"strconv"
	"sync"

	fbmodel "hrportal/internal/domain/feedback"
	"hrportal/internal/portal/remote"
)

type Inbox struct {
	client *remote.Client

	mu    sync.Mutex
	items []fbmodel.Item
	alert remote.Alert
}

func NewInbox(client *remote.Client) *Inbox {
	return &Inbox{client: client}
}

func (in *Inbox) Load(ctx context.Context) ([]fbmodel.Item, error) {
	var items []fbmodel.Item
	if err := in.client.Get(ctx, "/fb/get-all", nil, &items); err != nil {
		in.setAlert(remote.Failure("Failed to fetch feedback", err))
		return nil, err
	}
	in.mu.Lock()
	defer in.mu.Unlock()
	in.items = items
	return append([]fbmodel.Item(nil), items...), nil
}

func (in *Inbox) Items() []fbmodel.Item {
	in.mu.Lock()
	defer in.mu.Unlock()
	return append([]fbmodel.Item(nil), in.items...)
}

// MarkRead drops id from the inbox and deletes it remotely. A failed delete
// does not bring the item back.
func (in *Inbox) MarkRead(ctx context.Context, id int64) error {
	in.mu.Lock()
	kept := make([]fbmodel.Item, 0, len(in.items))
	for _, item := range in.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	in.items = kept
	in.mu.Unlock()

	err := in.client.Delete(ctx, "/fb/delete", url.Values{"feedbackId": {strconv.FormatInt(id, 10)}})
	if err != nil {
		in.setAlert(remote.Failure("Failed to delete feedback", err))
		return err
	}
	in.setAlert(remote.Success("Feedback deleted successfully"))
	return nil
}

// Send posts a feedback message from fromName.
func (in *Inbox) Send(ctx context.Context, fromName, message string) (fbmodel.Item, error) {
	draft := fbmodel.NewItem{FromName: fromName, Message: message}
	if issues := fbmodel.Validate(draft); len(issues) > 0 {
		verr := remote.NewValidationError(issues)
		in.setAlert(remote.Failure("", verr))
		return fbmodel.Item{}, verr
	}
	var created fbmodel.Item
	if err := in.client.Post(ctx, "/fb/add", nil, draft, &created); err != nil {
		in.setAlert(remote.Failure("Failed to send feedback", err))
		return fbmodel.Item{}, err
	}
	in.setAlert(remote.Success("Feedback sent successfully"))
	return created, nil
}

func (in *Inbox) Alert() remote.Alert {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.alert
}

func (in *Inbox) setAlert(a remote.Alert) {
	in.mu.Lock()
	in.alert = a
	in.mu.Unlock()
}
