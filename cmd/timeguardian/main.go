// Package main is the CLI entry point for timeguardian.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cipher-shad0w/timeguardian/internal/domain"
	"github.com/cipher-shad0w/timeguardian/internal/infra"
	"github.com/cipher-shad0w/timeguardian/internal/tui"
	"github.com/cipher-shad0w/timeguardian/internal/usecase"
)

// Version info (set via ldflags)
var Version = "0.1.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var (
	durationFlag string
	taskFlag     string
	listPathFlag string
)

var rootCmd = &cobra.Command{
	Use:   "timeguardian",
	Short: "Block distracting websites for focused work sessions",
	Long: `timeguardian blocks distracting websites by redirecting them to
localhost in the hosts file for a timed focus session.

Pass -d and -t together for a one-shot blocking session, or run the
tui subcommand for the interactive interface.

Time units: s (seconds), m (minutes), h (hours).`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE:          runRoot,
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the interactive terminal interface",
	Long: `Starts the TUI for managing website lists and running blocking
sessions. Lists are saved to the config file on exit.`,
	RunE: runTui,
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Set up the application with a website list",
	Long: `Seeds the default website lists plus a custom list read from a
plain-text file (one domain per line, #-prefixed lines ignored).`,
	RunE: runSetup,
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the hosts file to its original state",
	Long:  `Restores the hosts file from the pristine backup, removing any active blocking.`,
	RunE:  runReset,
}

var permissionsCmd = &cobra.Command{
	Use:     "permissions",
	Aliases: []string{"perms"},
	Short:   "Check and request hosts file write permissions",
	RunE:    runPermissions,
}

func init() {
	rootCmd.Flags().StringVarP(&durationFlag, "duration", "d", "", "Blocking duration with unit (e.g. 25m, 30s, 1h)")
	rootCmd.Flags().StringVarP(&taskFlag, "task", "t", "", "Task name or reason for the focus session")

	setupCmd.Flags().StringVar(&listPathFlag, "list", "", "Path to the file containing websites to block")
	_ = setupCmd.MarkFlagRequired("list")

	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(permissionsCmd)
}

// newLogger writes structured logs to a file under the config dir; the
// terminal belongs to the countdown/TUI output.
func newLogger() *zap.Logger {
	dir, err := infra.ConfigDir()
	if err != nil {
		return zap.NewNop()
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{filepath.Join(dir, "timeguardian.log")}
	cfg.ErrorOutputPaths = cfg.OutputPaths
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func runRoot(cmd *cobra.Command, args []string) error {
	if durationFlag == "" || taskFlag == "" {
		return cmd.Help()
	}
	return runHeadless(durationFlag, taskFlag)
}

// runHeadless is the one-shot CLI path: block, count down, restore.
func runHeadless(durationText, task string) error {
	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	duration, err := usecase.ParseDuration(durationText)
	if err != nil {
		return err
	}

	hostsPath, err := infra.DefaultHostsPath()
	if err != nil {
		return err
	}
	negotiator := infra.NewSudoNegotiator(hostsPath, logger)
	granted, err := negotiator.Negotiate()
	if err != nil {
		return err
	}
	if !granted {
		return nil
	}

	lock, err := infra.NewPidLock(logger)
	if err != nil {
		return err
	}
	if err := lock.Acquire(); err != nil {
		return err
	}
	defer func() { _ = lock.Release() }()

	domains, err := configuredDomains(logger)
	if err != nil {
		return err
	}
	if len(domains) == 0 {
		fmt.Println("No websites to block. Please set up the application first.")
		return nil
	}

	patcher, err := infra.NewHostsFile(logger)
	if err != nil {
		return err
	}
	session := usecase.NewSession(patcher, logger)
	if err := session.Start(duration, domains, task); err != nil {
		return err
	}

	fmt.Printf("Blocking websites for %s for task: %s\n", durationText, task)

	countdown := tui.NewCountdownModel(session, task, durationText)
	finalModel, runErr := tea.NewProgram(countdown).Run()

	// Expiry stops inside the tick loop; an early cancel leaves the
	// session blocking, so this is the single stop for that path.
	stopErr := session.Stop()

	if runErr != nil {
		return runErr
	}
	if m, ok := finalModel.(tui.CountdownModel); ok && m.Err() != nil {
		return m.Err()
	}
	if stopErr != nil {
		return stopErr
	}

	fmt.Println("\nBlocking removed!")
	return nil
}

// configuredDomains gathers every domain to block: all configured lists,
// falling back to the plain-text website list file.
func configuredDomains(logger *zap.Logger) ([]string, error) {
	cfgStore, err := infra.NewConfigStore(logger)
	if err != nil {
		return nil, err
	}
	cfg, err := cfgStore.Load()
	if err != nil {
		return nil, err
	}

	if len(cfg.WebsiteLists) > 0 {
		var domains []string
		for _, list := range cfg.WebsiteLists {
			domains = append(domains, list.Domains...)
		}
		return domains, nil
	}

	data, err := os.ReadFile(cfg.WebsiteListPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading website list %s: %w", cfg.WebsiteListPath, err)
	}
	return usecase.ParseWebsiteFile(string(data)), nil
}

func runTui(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	hostsPath, err := infra.DefaultHostsPath()
	if err != nil {
		return err
	}
	negotiator := infra.NewSudoNegotiator(hostsPath, logger)
	granted, err := negotiator.Negotiate()
	if err != nil {
		return err
	}
	if !granted {
		fmt.Println("The TUI cannot be started without the necessary permissions.")
		return nil
	}

	lock, err := infra.NewPidLock(logger)
	if err != nil {
		return err
	}
	if err := lock.Acquire(); err != nil {
		return err
	}
	defer func() { _ = lock.Release() }()

	cfgStore, err := infra.NewConfigStore(logger)
	if err != nil {
		return err
	}
	cfg, err := cfgStore.Load()
	if err != nil {
		return err
	}

	patcher, err := infra.NewHostsFile(logger)
	if err != nil {
		return err
	}
	if err := patcher.EnsureBackup(); err != nil {
		logger.Warn("could not create hosts backup", zap.Error(err))
	}

	store := usecase.NewListStore()
	if len(cfg.WebsiteLists) > 0 {
		store.SetLists(cfg.WebsiteLists)
	}
	session := usecase.NewSession(patcher, logger)

	model := tui.NewModel(store, session, logger)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return err
	}

	// Quitting mid-session would leave stale blocking entries with no
	// timer left to remove them.
	if err := session.Stop(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not restore hosts file: %v\n", err)
	}

	cfg.WebsiteLists = store.Lists()
	if err := cfgStore.Save(cfg); err != nil {
		return err
	}
	return nil
}

func runSetup(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	data, err := os.ReadFile(listPathFlag)
	if err != nil {
		return fmt.Errorf("reading website list %s: %w", listPathFlag, err)
	}

	cfgStore, err := infra.NewConfigStore(logger)
	if err != nil {
		return err
	}
	cfg, err := cfgStore.Load()
	if err != nil {
		return err
	}

	cfg.WebsiteListPath = listPathFlag
	cfg.WebsiteLists = usecase.SeedLists(usecase.ParseWebsiteFile(string(data)))
	if err := cfgStore.Save(cfg); err != nil {
		return err
	}

	fmt.Println("Setup completed successfully!")
	return nil
}

func runReset(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	hostsPath, err := infra.DefaultHostsPath()
	if err != nil {
		return err
	}
	negotiator := infra.NewSudoNegotiator(hostsPath, logger)
	granted, err := negotiator.Negotiate()
	if err != nil {
		return err
	}
	if !granted {
		return nil
	}

	patcher, err := infra.NewHostsFile(logger)
	if err != nil {
		return err
	}
	if err := patcher.RemoveBlock(); err != nil {
		return err
	}

	fmt.Println("Website blocking has been reset.")
	return nil
}

func runPermissions(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	hostsPath, err := infra.DefaultHostsPath()
	if err != nil {
		return err
	}
	negotiator := infra.NewSudoNegotiator(hostsPath, logger)
	granted, err := negotiator.Negotiate()
	if err != nil && !errors.Is(err, domain.ErrPermissionDenied) {
		return err
	}
	if granted {
		fmt.Println("Required permissions are available.")
	} else {
		fmt.Println("Could not obtain required permissions.")
	}
	return nil
}
