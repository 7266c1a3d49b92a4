package room

import "errors"

var (
	ErrRoomNotFound = errors.New("room not found")
	ErrInvalidQuery = errors.New("invalid room search")

	ErrStorageUnavailable = errors.New("image storage is not configured")
)

// Error is a failure surfaced to the room finder with a user facing message
type Error struct {
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) UserMessage() string { return e.Message }

func (e *Error) ErrorCode() string { return e.Code }

func searchFailed(err error) *Error {
	return &Error{Code: "SEARCH_FAILED", Message: "Unable to search rooms right now. Please try again.", Err: err}
}
