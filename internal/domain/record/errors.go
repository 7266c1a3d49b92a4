package record

import "errors"

var ErrRecordNotFound = errors.New("enquiry record not found")
