package booking

import "errors"

var ErrStoreUnavailable = errors.New("booking store unavailable")

var ErrMissingColumn = errors.New("required column missing")
