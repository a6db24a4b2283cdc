package leave

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"hrportal/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

const requestColumns = `id, requester_id, requester_role, reason, start_date, end_date, days::float8, status, created_at, decided_at`

func scanRequest(row pgx.Row) (Request, error) {
	var req Request
	err := row.Scan(&req.ID, &req.RequesterID, &req.RequesterRole, &req.Reason, &req.StartDate, &req.EndDate, &req.Days, &req.Status, &req.CreatedAt, &req.DecidedAt)
	return req, err
}

func (s *Store) listRequests(ctx context.Context, query string, args ...any) ([]Request, error) {
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := []Request{}
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

func (s *Store) CreateLeaveRequest(ctx context.Context, app Application, days float64) (Request, error) {
	return scanRequest(s.DB.QueryRow(ctx, `
    INSERT INTO leave_requests (requester_id, requester_role, reason, start_date, end_date, days, status)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
    RETURNING `+requestColumns,
		app.RequesterID, app.RequesterRole, app.Reason, app.StartDate, app.EndDate, days, StatusPending))
}

func (s *Store) GetLeaveRequest(ctx context.Context, id int64) (Request, error) {
	req, err := scanRequest(s.DB.QueryRow(ctx, `
    SELECT `+requestColumns+`
    FROM leave_requests
    WHERE id = $1
  `, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Request{}, ErrNotFound
	}
	return req, err
}

func (s *Store) ListLeaveByRequester(ctx context.Context, requesterID int64) ([]Request, error) {
	return s.listRequests(ctx, `
    SELECT `+requestColumns+`
    FROM leave_requests
    WHERE requester_id = $1
    ORDER BY created_at DESC, id DESC
  `, requesterID)
}

func (s *Store) ListPendingLeave(ctx context.Context, requesterRole string, managerID *int64) ([]Request, error) {
	query := `
    SELECT ` + requestColumns + `
    FROM leave_requests
    WHERE status = $1 AND requester_role = $2
  `
	args := []any{StatusPending, requesterRole}
	if managerID != nil {
		query += " AND requester_id IN (SELECT id FROM users WHERE manager_id = $3)"
		args = append(args, *managerID)
	}
	query += " ORDER BY created_at, id"
	return s.listRequests(ctx, query, args...)
}

func (s *Store) DecideLeaveRequest(ctx context.Context, id int64, requesterRole string, managerID *int64, outcome Outcome) (Request, error) {
	next, ok := outcome.Status()
	if !ok {
		return Request{}, ErrInvalidOutcome
	}

	req, err := scanRequest(s.DB.QueryRow(ctx, `
    UPDATE leave_requests
    SET status = $1, decided_at = now()
    WHERE id = $2 AND requester_role = $3 AND status = $4
      AND ($5::bigint IS NULL OR requester_id IN (SELECT id FROM users WHERE manager_id = $5))
    RETURNING `+requestColumns,
		next, id, requesterRole, StatusPending, managerID))
	if err == nil {
		return req, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return Request{}, err
	}

	current, err := s.GetLeaveRequest(ctx, id)
	if err != nil {
		return Request{}, err
	}
	if current.RequesterRole != requesterRole {
		return Request{}, ErrNotFound
	}
	if managerID != nil {
		var inTeam bool
		if err := s.DB.QueryRow(ctx,
			"SELECT EXISTS (SELECT 1 FROM users WHERE id = $1 AND manager_id = $2)",
			current.RequesterID, *managerID).Scan(&inTeam); err != nil {
			return Request{}, err
		}
		if !inTeam {
			return Request{}, ErrNotFound
		}
	}
	if _, err := Transition(current.Status, outcome); err != nil {
		return Request{}, err
	}
	// Pending again by now means a concurrent writer raced us; report it as a conflict.
	return Request{}, ErrInvalidState
}
