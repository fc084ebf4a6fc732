package domain

import "errors"

// Sentinel errors for the core fault taxonomy. Validation outcomes
// (duplicate list names, empty domains) are status strings, not errors.
var (
	// ErrInvalidFormat means a duration token has an empty or non-numeric
	// digit run, e.g. "m30".
	ErrInvalidFormat = errors.New("invalid duration format")

	// ErrInvalidUnit means a duration token ends in something other than
	// s, m or h, e.g. "30x".
	ErrInvalidUnit = errors.New("invalid time unit, use s, m or h")

	// ErrPermissionDenied means the OS refused a hosts file write. It
	// triggers the elevated-privilege negotiation, never a silent retry.
	ErrPermissionDenied = errors.New("permission denied writing hosts file")

	// ErrUnsupportedOS means no hosts file path is known for this OS.
	// Fatal at startup.
	ErrUnsupportedOS = errors.New("unsupported operating system")

	// ErrCorruptConfig means the config file exists but cannot be parsed.
	// Fatal at startup.
	ErrCorruptConfig = errors.New("corrupted configuration file")

	// ErrAlreadyRunning means another live instance holds the lock.
	ErrAlreadyRunning = errors.New("another timeguardian instance is already running")

	// ErrSessionActive means Start was called while a session is blocking.
	// There is no Blocking -> Blocking transition.
	ErrSessionActive = errors.New("a blocking session is already active")
)
