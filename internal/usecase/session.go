package usecase

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cipher-shad0w/timeguardian/internal/domain"
)

// Session is the blocking session state machine. It owns the session's
// lifecycle (Idle -> Blocking -> Idle) and drives the hosts patcher on
// the transitions. All methods must be called from the single goroutine
// that owns the session (the TUI update loop or the headless driver).
type Session struct {
	patcher domain.HostsPatcher
	logger  *zap.Logger
	now     func() time.Time

	state     domain.SessionState
	startedAt time.Time
	duration  time.Duration
	task      string
}

// NewSession creates an idle session bound to the given patcher.
func NewSession(patcher domain.HostsPatcher, logger *zap.Logger) *Session {
	return &Session{
		patcher: patcher,
		logger:  logger,
		now:     time.Now,
	}
}

// NewSessionWithClock creates a session with an injectable clock (for
// expiry tests).
func NewSessionWithClock(patcher domain.HostsPatcher, logger *zap.Logger, now func() time.Time) *Session {
	s := NewSession(patcher, logger)
	s.now = now
	return s
}

// State returns the current lifecycle state.
func (s *Session) State() domain.SessionState {
	return s.state
}

// Info returns a read-only snapshot of the session.
func (s *Session) Info() domain.SessionInfo {
	return domain.SessionInfo{
		State:     s.state,
		StartedAt: s.startedAt,
		Duration:  s.duration,
		Task:      s.task,
	}
}

// Start transitions Idle -> Blocking. The backup is ensured and the
// hosts file patched before any session field changes; a patcher failure
// leaves the session idle and is returned to the caller for display.
func (s *Session) Start(duration time.Duration, domains []string, task string) error {
	if s.state == domain.StateBlocking {
		return domain.ErrSessionActive
	}
	if len(domains) == 0 {
		return fmt.Errorf("no websites to block")
	}
	if duration <= 0 {
		return fmt.Errorf("blocking duration must be positive")
	}

	if err := s.patcher.EnsureBackup(); err != nil {
		return fmt.Errorf("backing up hosts file: %w", err)
	}
	if err := s.patcher.ApplyBlock(domains); err != nil {
		return fmt.Errorf("blocking websites: %w", err)
	}

	s.state = domain.StateBlocking
	s.startedAt = s.now()
	s.duration = duration
	s.task = task

	s.logInfo("blocking session started",
		zap.Duration("duration", duration),
		zap.Int("domains", len(domains)),
		zap.String("task", task))
	return nil
}

// Stop transitions Blocking -> Idle, restoring the hosts file. The
// session fields are cleared unconditionally so that expiry and explicit
// cancellation behave identically and the stop happens exactly once; a
// restore failure is still reported.
func (s *Session) Stop() error {
	if s.state != domain.StateBlocking {
		return nil
	}

	err := s.patcher.RemoveBlock()

	s.state = domain.StateIdle
	s.startedAt = time.Time{}
	s.duration = 0
	s.task = ""

	if err != nil {
		s.logError("failed to restore hosts file", zap.Error(err))
		return fmt.Errorf("restoring hosts file: %w", err)
	}
	s.logInfo("blocking session stopped")
	return nil
}

// Tick advances the countdown. When the session has reached its end
// time it performs the Stop transition and reports expiry.
func (s *Session) Tick() (expired bool, err error) {
	if s.state != domain.StateBlocking {
		return false, nil
	}
	if s.now().Before(s.startedAt.Add(s.duration)) {
		return false, nil
	}
	return true, s.Stop()
}

// Remaining returns the time left in the current session. The second
// return value is false while idle.
func (s *Session) Remaining() (time.Duration, bool) {
	if s.state != domain.StateBlocking {
		return 0, false
	}
	left := s.startedAt.Add(s.duration).Sub(s.now())
	if left < 0 {
		left = 0
	}
	return left, true
}

func (s *Session) logInfo(msg string, fields ...zap.Field) {
	if s.logger != nil {
		s.logger.Info(msg, fields...)
	}
}

func (s *Session) logError(msg string, fields ...zap.Field) {
	if s.logger != nil {
		s.logger.Error(msg, fields...)
	}
}
