package remote

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotFound is wrapped by RemoteError when the server answers 404.
var ErrNotFound = errors.New("remote: not found")

// ValidationError carries field-keyed messages. Local validation produces it
// before any request is sent; a server validation_error response maps onto it
// as well.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError(fields map[string]string) *ValidationError {
	copied := make(map[string]string, len(fields))
	for field, msg := range fields {
		copied[field] = msg
	}
	return &ValidationError{Fields: copied}
}

// Message is the first message in field order, suitable for a one-line banner.
func (e *ValidationError) Message() string {
	keys := e.keys()
	if len(keys) == 0 {
		return ""
	}
	return e.Fields[keys[0]]
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, field := range e.keys() {
		parts = append(parts, field+": "+e.Fields[field])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) keys() []string {
	keys := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		keys = append(keys, field)
	}
	sort.Strings(keys)
	return keys
}

// RemoteError is a failed exchange with the system of record. Status is zero
// when the request never produced a response.
type RemoteError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *RemoteError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("remote: %s", e.Message)
	}
	return fmt.Sprintf("remote: %d %s: %s", e.Status, e.Code, e.Message)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// StateConflictError reports an attempt to act on a record that is no longer
// in the expected state, such as deciding a leave request twice.
type StateConflictError struct {
	ID      int64
	Message string
}

func (e *StateConflictError) Error() string {
	return fmt.Sprintf("state conflict on %d: %s", e.ID, e.Message)
}

// AsConflict turns a 404 or 409 RemoteError into a StateConflictError for id.
// Other errors are returned unchanged.
func AsConflict(err error, id int64) error {
	var remoteErr *RemoteError
	if !errors.As(err, &remoteErr) {
		return err
	}
	switch remoteErr.Status {
	case 404, 409:
		return &StateConflictError{ID: id, Message: remoteErr.Message}
	}
	return err
}
