package model

import "errors"

// ErrInvalidInput marks malformed or empty raw data. Analysis fails fast on
// it and produces no partial result. Windows that are merely too small are
// not errors; they yield the documented insufficient-data sentinels instead.
var ErrInvalidInput = errors.New("invalid input")
