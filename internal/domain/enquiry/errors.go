package enquiry

import "errors"

var ErrPropertyNotFound = errors.New("care home not found")

// FieldErrors are request problems found after tag validation
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	return "invalid enquiry"
}
