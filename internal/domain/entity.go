// Package domain contains core business entities and interfaces.
// This is the innermost layer in Clean Architecture - no external dependencies.
package domain

import "time"

// WebsiteList is a named, ordered collection of domains to block.
// Domains are stored trimmed; duplicates are rejected on add but the
// hosts patcher deduplicates again at write time.
type WebsiteList struct {
	Name    string   `toml:"name"`
	Domains []string `toml:"websites"`
}

// SessionState identifies the lifecycle state of a blocking session.
type SessionState int

const (
	// StateIdle means no websites are currently being blocked.
	StateIdle SessionState = iota
	// StateBlocking means a timed blocking session is active.
	StateBlocking
)

// String returns a human-readable state name.
func (s SessionState) String() string {
	switch s {
	case StateBlocking:
		return "blocking"
	default:
		return "idle"
	}
}

// SessionInfo is a read-only snapshot of the active blocking session.
// Sessions are never persisted; a restart always yields an idle state.
type SessionInfo struct {
	State     SessionState
	StartedAt time.Time
	Duration  time.Duration
	Task      string
}

// Config is the persisted application configuration.
// WebsiteLists is nil until the user runs setup or the TUI saves on exit.
type Config struct {
	WebsiteListPath string        `toml:"website_list_path"`
	WebsiteLists    []WebsiteList `toml:"website_lists,omitempty"`
	UseSudo         *bool         `toml:"use_sudo,omitempty"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	useSudo := false
	return &Config{
		WebsiteListPath: "websites.txt",
		UseSudo:         &useSudo,
	}
}
