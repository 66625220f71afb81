package tame

import (
	"errors"
)

var (
	// ErrAppLoaded app loaded twice on the same instance
	ErrAppLoaded = errors.New("has already been initialized")
	// ErrUnknownLocation model location never registered
	ErrUnknownLocation = errors.New("unknown model location")
	// ErrUnknownModel model not found in a loaded app
	ErrUnknownModel = errors.New("unknown model")
)
