package cli

import "errors"

// Error variables for ringy.
var (
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigFileRead     = errors.New("cannot read config file")
	ErrConfigInvalid      = errors.New("invalid config file")
	ErrInvalidCapacity    = errors.New("capacity must be > 0")
	ErrInvalidOrder       = errors.New("order must be \"min\" or \"max\"")
	ErrUnknownCommand     = errors.New("unknown command")
	ErrUsage              = errors.New("usage")
)
