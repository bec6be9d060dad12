package replay

import "errors"

// ErrMissingData is returned when a replay carries no input frames.
var ErrMissingData = errors.New("replay has no input data")
