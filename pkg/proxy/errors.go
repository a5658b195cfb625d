package proxy

import (
	"errors"
)

// ErrInvalidArgument is returned by New when a required argument is
// missing or the configuration is unusable.
var ErrInvalidArgument = errors.New("invalid argument")
