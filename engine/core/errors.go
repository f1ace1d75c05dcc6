package core

import (
	"errors"
)

// ErrNotInitialized is returned by subsystem entry points used before
// their Initialize ran.
var ErrNotInitialized = errors.New("subsystem not initialized")
