package conversation

import "errors"

// ErrValidation marks input that was valid when offered but no longer is,
// e.g. a slot taken by someone else in the meantime.
var ErrValidation = errors.New("selection no longer valid")

var ErrGateway = errors.New("messaging gateway failure")

// ErrInvariantViolation means a session reached a state without the data that
// state requires. It indicates a bug, never user error.
var ErrInvariantViolation = errors.New("conversation invariant violated")

var errCommitFailed = errors.New("booking could not be saved")
