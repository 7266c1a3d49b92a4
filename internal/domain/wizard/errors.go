package wizard

import "errors"

var (
	ErrBusy            = errors.New("another request is already in progress")
	ErrWrongStep       = errors.New("operation not allowed in the current step")
	ErrAlreadyBooked   = errors.New("this room has already been booked")
	ErrSessionNotFound = errors.New("room finder session not found")
	ErrRecordNotFound  = errors.New("care record not found")
)

// ValidationError means required local input was missing or malformed.
// No remote call was made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ServiceError means a collaborator rejected the call.
// Message is the collaborator's message, shown to the user verbatim.
type ServiceError struct {
	Op      string
	Code    string
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func newServiceError(op string, err error) *ServiceError {
	se := &ServiceError{Op: op, Message: err.Error(), Err: err}

	var um interface{ UserMessage() string }
	if errors.As(err, &um) {
		se.Message = um.UserMessage()
	}
	var coded interface{ ErrorCode() string }
	if errors.As(err, &coded) {
		se.Code = coded.ErrorCode()
	}
	return se
}
