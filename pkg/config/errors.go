package config

import "errors"

var (
	// ErrNilPointer is returned when Load receives a nil target.
	ErrNilPointer = errors.New("config target is nil")

	// ErrParsingConfig is returned when the environment cannot be parsed
	// into the target struct.
	ErrParsingConfig = errors.New("failed to parse config from environment")

	// ErrLoadingEnvFile is returned when an explicitly named .env file
	// cannot be read.
	ErrLoadingEnvFile = errors.New("failed to load env file")
)
