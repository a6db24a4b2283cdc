package remote

import "errors"

type AlertKind int

const (
	AlertNone AlertKind = iota
	AlertSuccess
	AlertError
)

// Alert is the banner a screen shows after its last action. Errors never
// clear the data already on screen.
type Alert struct {
	Kind    AlertKind
	Message string
}

func Success(message string) Alert {
	return Alert{Kind: AlertSuccess, Message: message}
}

// Failure builds an error banner prefixed with what was being attempted.
func Failure(action string, err error) Alert {
	msg := err.Error()
	var validation *ValidationError
	var remoteErr *RemoteError
	var conflict *StateConflictError
	switch {
	case errors.As(err, &validation):
		msg = validation.Message()
	case errors.As(err, &remoteErr):
		msg = remoteErr.Message
	case errors.As(err, &conflict):
		msg = conflict.Message
	}
	if action == "" {
		return Alert{Kind: AlertError, Message: msg}
	}
	return Alert{Kind: AlertError, Message: action + ": " + msg}
}
