// Package infra implements infrastructure concerns (hosts file, config,
// privileges, instance lock).
package infra

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"go.uber.org/zap"

	"github.com/cipher-shad0w/timeguardian/internal/domain"
)

const (
	appName        = "timeguardian"
	backupFileName = "hosts.backup"

	beginMarker = "# ===== TimeGuardian Temporary Hosts ====="
	endMarker   = "# ===== End Temporary Hosts ====="

	loopbackAddr = "127.0.0.1"
)

// DefaultHostsPath returns the OS hosts file path.
func DefaultHostsPath() (string, error) {
	switch runtime.GOOS {
	case "linux", "darwin":
		return "/etc/hosts", nil
	case "windows":
		return `C:\Windows\System32\drivers\etc\hosts`, nil
	default:
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedOS, runtime.GOOS)
	}
}

// ConfigDir returns the application config directory, creating it when
// missing. It falls back to ./.config/timeguardian when the user config
// dir cannot be determined.
func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		cwd, cwdErr := os.Getwd()
		if cwdErr != nil {
			return "", fmt.Errorf("resolving config directory: %w", err)
		}
		base = filepath.Join(cwd, ".config")
	}
	dir := filepath.Join(base, appName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return dir, nil
}

// HostsFile patches and restores the OS hosts file. The injected
// redirect entries live between two sentinel marker lines; at most one
// such region exists at any time.
type HostsFile struct {
	hostsPath  string
	backupPath string
	logger     *zap.Logger
}

// NewHostsFile creates a patcher for the real hosts file, keeping the
// backup under the application config directory.
func NewHostsFile(logger *zap.Logger) (*HostsFile, error) {
	hostsPath, err := DefaultHostsPath()
	if err != nil {
		return nil, err
	}
	configDir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	return NewHostsFileWithPaths(hostsPath, filepath.Join(configDir, backupFileName), logger), nil
}

// NewHostsFileWithPaths creates a patcher with custom paths (for testing).
func NewHostsFileWithPaths(hostsPath, backupPath string, logger *zap.Logger) *HostsFile {
	return &HostsFile{
		hostsPath:  hostsPath,
		backupPath: backupPath,
		logger:     logger,
	}
}

// HostsPath returns the patched hosts file path.
func (h *HostsFile) HostsPath() string { return h.hostsPath }

// BackupPath returns the pristine backup path.
func (h *HostsFile) BackupPath() string { return h.backupPath }

// EnsureBackup snapshots the hosts file verbatim when no usable backup
// exists. A backup with non-empty content is never overwritten: it may
// be the only copy of the user's pristine hosts file, and the live file
// may already contain blocking entries.
func (h *HostsFile) EnsureBackup() error {
	existing, err := os.ReadFile(h.backupPath)
	if err == nil && strings.TrimSpace(string(existing)) != "" {
		return nil
	}
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("reading hosts backup: %w", err)
	}

	content, err := os.ReadFile(h.hostsPath)
	if err != nil {
		return wrapHostsErr("reading hosts file", err)
	}

	if err := writeFileAtomic(h.backupPath, content, 0644); err != nil {
		return fmt.Errorf("writing hosts backup: %w", err)
	}
	h.logInfo("hosts backup created", zap.String("path", h.backupPath))
	return nil
}

// ApplyBlock rewrites the hosts file with a fresh marker region mapping
// each domain to loopback. Any previous region is excised first, which
// makes repeated calls idempotent. Blank domains are skipped, as is any
// domain whose literal string already occurs in the file content; the
// raw substring check can over-match when a domain is a substring of
// another entry, which is accepted behavior.
func (h *HostsFile) ApplyBlock(domains []string) error {
	raw, err := os.ReadFile(h.hostsPath)
	if err != nil {
		return wrapHostsErr("reading hosts file", err)
	}

	content := exciseMarkerRegion(string(raw))

	content += "\n" + beginMarker + "\n"
	for _, d := range domains {
		if strings.TrimSpace(d) == "" || strings.Contains(content, d) {
			continue
		}
		content += loopbackAddr + "\t" + d + "\n"
	}
	content += endMarker + "\n"

	if err := os.WriteFile(h.hostsPath, []byte(content), 0644); err != nil {
		return wrapHostsErr("writing hosts file", err)
	}
	h.logInfo("hosts file patched", zap.Int("domains", len(domains)))
	return nil
}

// RemoveBlock restores the hosts file from the backup. Restoring when
// nothing was ever blocked is always safe, so a missing backup is a
// no-op.
func (h *HostsFile) RemoveBlock() error {
	backup, err := os.ReadFile(h.backupPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading hosts backup: %w", err)
	}

	if err := os.WriteFile(h.hostsPath, backup, 0644); err != nil {
		return wrapHostsErr("restoring hosts file", err)
	}
	h.logInfo("hosts file restored from backup")
	return nil
}

// exciseMarkerRegion removes the marker-delimited region, marker lines
// included. Both markers are located explicitly and the cut runs through
// the end of the closing marker's line; no fixed-width offsets, so a
// marker text change cannot corrupt trailing content.
func exciseMarkerRegion(content string) string {
	begin := strings.Index(content, beginMarker)
	if begin < 0 {
		return content
	}
	end := strings.Index(content[begin:], endMarker)
	if end < 0 {
		// Opening marker without a closing one: leave the file alone
		// rather than guess how much to cut.
		return content
	}
	cut := begin + end + len(endMarker)
	if cut < len(content) && content[cut] == '\n' {
		cut++
	}
	return content[:begin] + content[cut:]
}

// wrapHostsErr maps OS permission failures onto the distinguished
// PermissionDenied error so callers can trigger privilege negotiation.
func wrapHostsErr(op string, err error) error {
	if errors.Is(err, fs.ErrPermission) {
		return fmt.Errorf("%s: %w: %v", op, domain.ErrPermissionDenied, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// writeFileAtomic writes via a temp file in the destination directory
// followed by a rename, so a crash mid-write cannot leave a truncated
// backup behind.
func writeFileAtomic(dst string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+appName+"-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, dst); err != nil {
		return err
	}
	success = true
	return nil
}

func (h *HostsFile) logInfo(msg string, fields ...zap.Field) {
	if h.logger != nil {
		h.logger.Info(msg, fields...)
	}
}

// Ensure HostsFile implements domain.HostsPatcher.
var _ domain.HostsPatcher = (*HostsFile)(nil)
