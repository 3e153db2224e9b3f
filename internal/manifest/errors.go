package manifest

import "errors"

var (
	ErrUnsupportedFormat = errors.New("unsupported manifest format")
	ErrMalformed         = errors.New("manifest malformed")
	ErrInvalid           = errors.New("manifest invalid")
)
