package infra

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"go.uber.org/zap"

	"github.com/cipher-shad0w/timeguardian/internal/domain"
)

// CommandRunner abstracts command execution for testing.
type CommandRunner interface {
	// RunInteractive executes a command with the terminal attached.
	RunInteractive(name string, args ...string) error
}

// RealCommandRunner executes real system commands with stdio forwarded,
// so sudo can prompt for a password.
type RealCommandRunner struct{}

// RunInteractive executes a command and waits for it to complete.
func (r *RealCommandRunner) RunInteractive(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// SudoNegotiator checks write access to the hosts file and, on denial,
// offers to re-execute the current binary under sudo. Declined or failed
// negotiation abandons the operation; there are no retries.
type SudoNegotiator struct {
	hostsPath string
	runner    CommandRunner
	in        io.Reader
	out       io.Writer
	exit      func(int)
	logger    *zap.Logger
}

// NewSudoNegotiator creates a negotiator for the given hosts path.
func NewSudoNegotiator(hostsPath string, logger *zap.Logger) *SudoNegotiator {
	return &SudoNegotiator{
		hostsPath: hostsPath,
		runner:    &RealCommandRunner{},
		in:        os.Stdin,
		out:       os.Stdout,
		exit:      os.Exit,
		logger:    logger,
	}
}

// NewSudoNegotiatorWithDeps creates a negotiator with injectable
// dependencies (for testing).
func NewSudoNegotiatorWithDeps(hostsPath string, runner CommandRunner, in io.Reader, out io.Writer, exit func(int), logger *zap.Logger) *SudoNegotiator {
	return &SudoNegotiator{
		hostsPath: hostsPath,
		runner:    runner,
		in:        in,
		out:       out,
		exit:      exit,
		logger:    logger,
	}
}

// CanWriteHosts reports whether the hosts file is writable as-is.
func (n *SudoNegotiator) CanWriteHosts() bool {
	f, err := os.OpenFile(n.hostsPath, os.O_WRONLY, 0)
	if err != nil {
		return false
	}
	f.Close()
	return true
}

// Negotiate returns true when the current process may write the hosts
// file. When access is missing on unix it prompts the user and, on
// consent, re-executes the current binary under sudo with the original
// arguments, exiting this process once the child finishes successfully.
func (n *SudoNegotiator) Negotiate() (bool, error) {
	if n.CanWriteHosts() {
		return true, nil
	}
	if runtime.GOOS == "windows" {
		// No sudo equivalent to negotiate with; report and abandon.
		fmt.Fprintln(n.out, "Write access to the hosts file is required. Run as administrator.")
		return false, nil
	}

	fmt.Fprintln(n.out, "This application needs write permissions for the hosts file.")
	fmt.Fprintln(n.out, "Do you want to run the application with sudo permissions? (y/n)")

	answer, err := bufio.NewReader(n.in).ReadString('\n')
	if err != nil && answer == "" {
		return false, fmt.Errorf("reading answer: %w", err)
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	if answer != "y" && answer != "yes" {
		fmt.Fprintln(n.out, "Without sufficient permissions, website blocking will not work.")
		return false, nil
	}

	exe, err := os.Executable()
	if err != nil {
		return false, fmt.Errorf("resolving executable path: %w", err)
	}

	args := append([]string{exe}, os.Args[1:]...)
	if err := n.runner.RunInteractive("sudo", args...); err != nil {
		n.logWarn("sudo re-exec failed", zap.Error(err))
		fmt.Fprintln(n.out, "Running with sudo failed.")
		return false, fmt.Errorf("%w: sudo re-exec failed: %v", domain.ErrPermissionDenied, err)
	}

	// The elevated child did all the work; this process is done.
	n.exit(0)
	return false, nil
}

func (n *SudoNegotiator) logWarn(msg string, fields ...zap.Field) {
	if n.logger != nil {
		n.logger.Warn(msg, fields...)
	}
}

// Ensure SudoNegotiator implements domain.PrivilegeNegotiator.
var _ domain.PrivilegeNegotiator = (*SudoNegotiator)(nil)
