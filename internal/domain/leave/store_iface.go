package leave

import "context"

type StoreAPI interface {
	CreateLeaveRequest(ctx context.Context, app Application, days float64) (Request, error)
	GetLeaveRequest(ctx context.Context, id int64) (Request, error)
	ListLeaveByRequester(ctx context.Context, requesterID int64) ([]Request, error)
	// ListPendingLeave returns Pending requests filed by requesterRole. A
	// non-nil managerID narrows the result to that manager's direct reports.
	ListPendingLeave(ctx context.Context, requesterRole string, managerID *int64) ([]Request, error)
	// DecideLeaveRequest moves a Pending request filed by requesterRole to the
	// status implied by outcome. A non-nil managerID restricts it to that
	// manager's direct reports. Missing requests, requests filed by another
	// role and requests outside the team yield ErrNotFound; requests no longer
	// Pending yield ErrInvalidState.
	DecideLeaveRequest(ctx context.Context, id int64, requesterRole string, managerID *int64, outcome Outcome) (Request, error)
}
