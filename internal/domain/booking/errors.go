package booking

// Error is a booking failure with a message safe to show to staff
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

var (
	ErrRoomUnavailable = &Error{Code: "ROOM_UNAVAILABLE", Message: "Room no longer available"}
	ErrRoomNotFound    = &Error{Code: "ROOM_NOT_FOUND", Message: "Room not found"}
	ErrRecordNotFound  = &Error{Code: "RECORD_NOT_FOUND", Message: "Enquiry record not found"}
	ErrInvalidDates    = &Error{Code: "INVALID_DATES", Message: "End date cannot be before start date"}
)

func bookingFailed(err error) *Error {
	return &Error{Code: "BOOKING_FAILED", Message: "Unable to confirm booking. Please try again.", Err: err}
}
