package directory

import "errors"

var (
	ErrNotFound        = errors.New("user not found")
	ErrUsernameTaken   = errors.New("username already taken")
	ErrInvalidHR       = errors.New("hr id does not reference an HR user")
	ErrInvalidManager  = errors.New("manager id does not reference a manager")
	ErrHRRequired      = errors.New("role requires an hr link")
	ErrManagerRequired = errors.New("role requires a manager link")
	ErrHRInUse         = errors.New("hr user still has linked users")
)
