package config

import "errors"

// Sentinel errors returned by Load; callers branch with errors.Is.
var (
	// ErrInvalidConfig marks a configuration that parsed but failed validation.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrLoadConfig marks a failure to read or parse a configuration source.
	ErrLoadConfig = errors.New("load config failed")
)
