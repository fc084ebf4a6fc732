package infra

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v3/process"
	"go.uber.org/zap"

	"github.com/cipher-shad0w/timeguardian/internal/domain"
)

const lockFileName = "timeguardian.pid"

// PidLock guards against two timeguardian instances patching the hosts
// file concurrently. The whole engine assumes a single instance; the
// lock enforces that assumption instead of detecting mid-flight
// conflicts.
type PidLock struct {
	path   string
	pid    func() int
	alive  func(pid int) bool
	logger *zap.Logger
}

// NewPidLock creates a lock file under the application config directory.
func NewPidLock(logger *zap.Logger) (*PidLock, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	return NewPidLockWithPath(filepath.Join(dir, lockFileName), logger), nil
}

// NewPidLockWithPath creates a lock at a specific path (for testing).
func NewPidLockWithPath(path string, logger *zap.Logger) *PidLock {
	return &PidLock{
		path:   path,
		pid:    os.Getpid,
		alive:  pidAlive,
		logger: logger,
	}
}

// Acquire claims the lock. A lock file naming a dead process is stale
// and gets reclaimed; a live one means another instance is running.
func (l *PidLock) Acquire() error {
	data, err := os.ReadFile(l.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("reading lock file: %w", err)
	}
	if err == nil {
		pid, parseErr := strconv.Atoi(strings.TrimSpace(string(data)))
		if parseErr == nil && pid != l.pid() && l.alive(pid) {
			return fmt.Errorf("%w (pid %d)", domain.ErrAlreadyRunning, pid)
		}
		l.logInfo("reclaiming stale lock file", zap.String("path", l.path))
	}

	if err := os.WriteFile(l.path, []byte(strconv.Itoa(l.pid())), 0644); err != nil {
		return fmt.Errorf("writing lock file: %w", err)
	}
	return nil
}

// Release drops the lock. Safe to call when not held.
func (l *PidLock) Release() error {
	err := os.Remove(l.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing lock file: %w", err)
	}
	return nil
}

// pidAlive checks via gopsutil whether the PID maps to a live process.
func pidAlive(pid int) bool {
	p, err := process.NewProcess(int32(pid))
	if err != nil {
		return false
	}
	running, err := p.IsRunning()
	return err == nil && running
}

func (l *PidLock) logInfo(msg string, fields ...zap.Field) {
	if l.logger != nil {
		l.logger.Info(msg, fields...)
	}
}

// Ensure PidLock implements domain.InstanceLock.
var _ domain.InstanceLock = (*PidLock)(nil)
