// Package editsession implements inline editing of one record in a displayed
// list. The record is copied into a snapshot on Begin; the list itself only
// changes when a commit succeeds.
package editsession

import (
	"context"
	"errors"
	"sync"

	"hrportal/internal/portal/remote"
)

var (
	ErrNotEditing   = errors.New("editsession: no record in edit mode")
	ErrNotListed    = errors.New("editsession: record not in list")
	ErrUnknownField = errors.New("editsession: unknown field")
)

// List is the displayed collection an edit session writes back into.
type List[R any] interface {
	Find(id int64) (R, bool)
	Replace(id int64, record R)
}

// Binding describes how a record type is edited. Snapshot must return a
// value that shares no memory with the record it was built from.
type Binding[R, S any] struct {
	List     List[R]
	Snapshot func(R) S
	Set      func(snapshot *S, field, value string) error
	Validate func(S) map[string]string
	Save     func(ctx context.Context, id int64, snapshot S) (R, error)
}

type Session[R, S any] struct {
	b Binding[R, S]

	mu       sync.Mutex
	editing  bool
	id       int64
	snapshot S
	err      error
}

func New[R, S any](b Binding[R, S]) *Session[R, S] {
	return &Session[R, S]{b: b}
}

// Begin puts record id in edit mode. An open edit on another record is
// dropped without committing.
func (s *Session[R, S]) Begin(id int64) error {
	record, ok := s.b.List.Find(id)
	if !ok {
		return ErrNotListed
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editing = true
	s.id = id
	s.snapshot = s.b.Snapshot(record)
	s.err = nil
	return nil
}

func (s *Session[R, S]) Active() (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id, s.editing
}

// Snapshot returns the pending edits.
func (s *Session[R, S]) Snapshot() (S, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot, s.editing
}

func (s *Session[R, S]) Update(field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.editing {
		return ErrNotEditing
	}
	return s.b.Set(&s.snapshot, field, value)
}

// Commit validates the snapshot, saves it and writes the saved record back
// into the list. On failure the session stays open and Err reports why.
func (s *Session[R, S]) Commit(ctx context.Context) (R, error) {
	var zero R
	s.mu.Lock()
	if !s.editing {
		s.mu.Unlock()
		return zero, ErrNotEditing
	}
	id, snapshot := s.id, s.snapshot
	s.mu.Unlock()

	if s.b.Validate != nil {
		if issues := s.b.Validate(snapshot); len(issues) > 0 {
			return zero, s.fail(id, remote.NewValidationError(issues))
		}
	}
	saved, err := s.b.Save(ctx, id, snapshot)
	if err != nil {
		return zero, s.fail(id, err)
	}

	s.b.List.Replace(id, saved)
	s.mu.Lock()
	if s.editing && s.id == id {
		s.editing = false
		s.err = nil
		var empty S
		s.snapshot = empty
	}
	s.mu.Unlock()
	return saved, nil
}

func (s *Session[R, S]) fail(id int64, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.editing && s.id == id {
		s.err = err
	}
	return err
}

// Cancel leaves edit mode. The list was never touched, so the prior display
// is what remains.
func (s *Session[R, S]) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	var empty S
	s.editing = false
	s.id = 0
	s.snapshot = empty
	s.err = nil
}

// Err is the last commit failure of the open edit.
func (s *Session[R, S]) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
