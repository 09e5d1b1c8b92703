package tui

import "errors"

// ErrMissingSessionFactory is returned when no search session factory is provided.
var ErrMissingSessionFactory = errors.New("tui: session factory is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
