package assessment

import "errors"

var ErrTypeNotFound = errors.New("assessment type not found")

// FieldErrors are request problems found after tag validation
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	return "invalid assessment"
}
