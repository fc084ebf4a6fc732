package domain

// HostsPatcher manages the marker-delimited block of redirect entries
// inside the OS hosts file.
//
// Safety contract: EnsureBackup must never overwrite a non-empty backup,
// because that backup is the only copy of the user's pristine hosts file.
type HostsPatcher interface {
	// EnsureBackup snapshots the hosts file verbatim if no backup exists
	// or the existing backup is empty.
	EnsureBackup() error

	// ApplyBlock replaces any existing marker region with a fresh one
	// redirecting the given domains to loopback. Idempotent under
	// repeated calls with the same domains.
	ApplyBlock(domains []string) error

	// RemoveBlock restores the hosts file from the backup. A missing
	// backup is a no-op, not an error.
	RemoveBlock() error
}

// ConfigStore loads and saves the persisted application configuration.
type ConfigStore interface {
	// Load returns the stored config, or defaults when no file exists.
	// A file that exists but fails to parse is a fatal startup error.
	Load() (*Config, error)

	// Save persists the config.
	Save(cfg *Config) error
}

// PrivilegeNegotiator checks and, if needed, negotiates write access to
// the hosts file.
type PrivilegeNegotiator interface {
	// CanWriteHosts reports whether the hosts file is writable as-is.
	CanWriteHosts() bool

	// Negotiate prompts the user and re-executes under elevated
	// privileges when access is missing. Returns true when the current
	// process may proceed with hosts writes.
	Negotiate() (bool, error)
}

// InstanceLock guards against two copies of the tool patching the hosts
// file at the same time.
type InstanceLock interface {
	// Acquire claims the lock, reclaiming stale locks from dead processes.
	// Returns ErrAlreadyRunning when another live instance holds it.
	Acquire() error

	// Release drops the lock. Safe to call when not held.
	Release() error
}
