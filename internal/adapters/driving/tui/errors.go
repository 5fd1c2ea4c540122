package tui

import "errors"

// ErrMissingSession is returned when the navigation session is not provided.
var ErrMissingSession = errors.New("tui: navigation session is required")

// ErrMissingResolver is returned when the address resolver is not provided.
var ErrMissingResolver = errors.New("tui: address resolver is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
