package leave

import "errors"

var (
	ErrNotFound       = errors.New("leave request not found")
	ErrInvalidState   = errors.New("invalid state")
	ErrInvalidOutcome = errors.New("invalid outcome")
	ErrRequester      = errors.New("requester cannot file leave through this route")
)
