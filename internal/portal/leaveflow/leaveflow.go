// Package leaveflow drives leave requests from the portal: filing, history,
// and the approver's pending queue.
package leaveflow

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"net/url"
	"strconv"
	"sync"

	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/leave"
	"hrportal/internal/portal/identity"
	"hrportal/internal/portal/remote"
)

var (
	ErrCannotFile    = errors.New("leaveflow: role cannot file leave")
	ErrCannotApprove = errors.New("leaveflow: role has no approval queue")
	ErrNotSelf       = errors.New("leaveflow: leave is filed and read for the session user only")
)

// Controller acts for one session identity. Its mirrors live only as long as
// the controller does.
type Controller struct {
	client *remote.Client
	who    identity.Identity

	mu            sync.Mutex
	pending       []leave.Request
	pendingLoaded bool
	history       map[int64][]leave.Request
	alert         remote.Alert
}

func New(client *remote.Client, who identity.Identity) *Controller {
	return &Controller{
		client:  client,
		who:     who,
		history: map[int64][]leave.Request{},
	}
}

// filing returns the endpoint family and id parameter a role files under.
func filing(role string) (prefix, param string, err error) {
	switch auth.NormalizeRole(role) {
	case auth.RoleEmployee:
		return "/leave/employee", "employeeId", nil
	case auth.RoleManager:
		return "/leave/manager", "managerId", nil
	}
	return "", "", fmt.Errorf("%w: %s", ErrCannotFile, role)
}

// own resolves the requester a filing call acts for. Zero means the session
// user; any other id must match it.
func (c *Controller) own(requesterID int64) (prefix, param string, id int64, err error) {
	prefix, param, err = filing(c.who.Role)
	if err != nil {
		return "", "", 0, err
	}
	if requesterID == 0 {
		requesterID = c.who.ID
	}
	if requesterID != c.who.ID {
		return "", "", 0, fmt.Errorf("%w: %d is not %d", ErrNotSelf, requesterID, c.who.ID)
	}
	return prefix, param, requesterID, nil
}

// approving returns the queue and decision prefix for an approver role.
func approving(role string) (queue, prefix string, err error) {
	switch auth.NormalizeRole(role) {
	case auth.RoleManager:
		return "/leave/apply/manager/getAll", "/leave/manager", nil
	case auth.RoleHR:
		return "/leave/apply/hr/getAll", "/leave/hr", nil
	}
	return "", "", fmt.Errorf("%w: %s", ErrCannotApprove, role)
}

// Submit files a leave application for requesterID, which is the session
// user or zero. Invalid input never reaches the network.
func (c *Controller) Submit(ctx context.Context, requesterID int64, reason, startDate, endDate string) (leave.Request, error) {
	prefix, param, requesterID, err := c.own(requesterID)
	if err != nil {
		return leave.Request{}, err
	}
	payload := leave.ApplicationPayload{Reason: reason, StartDate: startDate, EndDate: endDate}
	if _, _, issues := leave.ValidateApplication(payload); len(issues) > 0 {
		verr := remote.NewValidationError(issues)
		c.setAlert(remote.Failure("", verr))
		return leave.Request{}, verr
	}

	var created leave.Request
	query := url.Values{param: {strconv.FormatInt(requesterID, 10)}}
	if err := c.client.Post(ctx, prefix+"/apply", query, payload, &created); err != nil {
		c.setAlert(remote.Failure("Error submitting leave application", err))
		return leave.Request{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.history[requesterID] = append(c.history[requesterID], created)
	c.alert = remote.Success("Leave application submitted successfully!")
	return created, nil
}

// History fetches requesterID's applications and replaces the local mirror.
func (c *Controller) History(ctx context.Context, requesterID int64) ([]leave.Request, error) {
	prefix, param, requesterID, err := c.own(requesterID)
	if err != nil {
		return nil, err
	}
	var records []leave.Request
	query := url.Values{param: {strconv.FormatInt(requesterID, 10)}}
	if err := c.client.Get(ctx, prefix+"/history", query, &records); err != nil {
		c.setAlert(remote.Failure("Failed to fetch leave history", err))
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.history[requesterID] = records
	return cloneAll(records), nil
}

func (c *Controller) HistoryMirror(requesterID int64) []leave.Request {
	if requesterID == 0 {
		requesterID = c.who.ID
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneAll(c.history[requesterID])
}

// ExportHistory downloads requesterID's history as a PDF document.
func (c *Controller) ExportHistory(ctx context.Context, requesterID int64) ([]byte, error) {
	prefix, param, requesterID, err := c.own(requesterID)
	if err != nil {
		return nil, err
	}
	return c.client.Download(ctx, prefix+"/history/export", url.Values{param: {strconv.FormatInt(requesterID, 10)}})
}

// ListPending fetches the approver's queue and replaces the pending mirror.
// A failed fetch leaves the previous mirror in place.
func (c *Controller) ListPending(ctx context.Context) ([]leave.Request, error) {
	queue, _, err := approving(c.who.Role)
	if err != nil {
		return nil, err
	}
	var records []leave.Request
	if err := c.client.Get(ctx, queue, nil, &records); err != nil {
		c.setAlert(remote.Failure("Failed to fetch leave requests", err))
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = records
	c.pendingLoaded = true
	return cloneAll(records), nil
}

// Pending yields the approver's queue. Each range fetches it again.
func (c *Controller) Pending(ctx context.Context) iter.Seq2[leave.Request, error] {
	return func(yield func(leave.Request, error) bool) {
		records, err := c.ListPending(ctx)
		if err != nil {
			yield(leave.Request{}, err)
			return
		}
		for _, r := range records {
			if !yield(r, nil) {
				return
			}
		}
	}
}

func (c *Controller) PendingMirror() []leave.Request {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneAll(c.pending)
}

// Decide approves or denies requestID. The request leaves the pending mirror
// before the server answers and is not put back if the call fails.
func (c *Controller) Decide(ctx context.Context, requestID int64, outcome leave.Outcome) error {
	_, prefix, err := approving(c.who.Role)
	if err != nil {
		return err
	}
	if _, ok := outcome.Status(); !ok {
		return remote.NewValidationError(map[string]string{"outcome": "Outcome must be approve or deny"})
	}
	failed, succeeded := "Error denying leave request", "Leave request denied!"
	if outcome == leave.OutcomeApprove {
		failed, succeeded = "Error accepting leave request", "Leave request accepted successfully!"
	}

	c.mu.Lock()
	if c.pendingLoaded && indexOf(c.pending, requestID) < 0 {
		conflict := &remote.StateConflictError{ID: requestID, Message: "leave request is no longer pending"}
		c.alert = remote.Failure(failed, conflict)
		c.mu.Unlock()
		return conflict
	}
	c.pending = without(c.pending, requestID)
	c.mu.Unlock()

	var decided leave.Request
	err = c.client.Patch(ctx, fmt.Sprintf("%s/%s/%d", prefix, outcome, requestID), &decided)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		err = remote.AsConflict(err, requestID)
		c.alert = remote.Failure(failed, err)
		return err
	}
	if records, ok := c.history[decided.RequesterID]; ok {
		if i := indexOf(records, decided.ID); i >= 0 {
			records[i] = decided
		}
	}
	c.alert = remote.Success(succeeded)
	return nil
}

func (c *Controller) Alert() remote.Alert {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.alert
}

func (c *Controller) setAlert(a remote.Alert) {
	c.mu.Lock()
	c.alert = a
	c.mu.Unlock()
}

func indexOf(records []leave.Request, id int64) int {
	for i, r := range records {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func without(records []leave.Request, id int64) []leave.Request {
	out := make([]leave.Request, 0, len(records))
	for _, r := range records {
		if r.ID != id {
			out = append(out, r)
		}
	}
	return out
}

func cloneAll(records []leave.Request) []leave.Request {
	out := make([]leave.Request, len(records))
	for i, r := range records {
		if r.DecidedAt != nil {
			at := *r.DecidedAt
			r.DecidedAt = &at
		}
		out[i] = r
	}
	return out
}
