// Package bootstrap builds the lazystrings command line and launches the TUI.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	urfavecli "github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/chmouel/lazystrings/internal/app"
	"github.com/chmouel/lazystrings/internal/app/services"
	"github.com/chmouel/lazystrings/internal/buildinfo"
	"github.com/chmouel/lazystrings/internal/config"
	"github.com/chmouel/lazystrings/internal/log"
	"github.com/chmouel/lazystrings/internal/theme"
)

var (
	isTerminal = func() bool {
		return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd())) //nolint:gosec
	}
	runProgram = func(ctx context.Context, model *app.Model) error {
		p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
		_, err := p.Run()
		return err
	}
	loadCLIConfigFunc = loadCLIConfig
)

var errNoTerminal = errors.New("lazystrings needs an interactive terminal, use the list or set subcommands in scripts")

// NewCommand returns the root command.
func NewCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:                      "lazystrings",
		Usage:                     "A TUI to browse and edit Android strings.xml resources",
		Version:                   buildinfo.Version(),
		EnableShellCompletion:     true,
		DisableSliceFlagSeparator: true, // ls.files=a,b must reach ApplyCLIOverrides unsplit
		Flags:                     globalFlags(),
		Commands: []*urfavecli.Command{
			listCommand(),
			setCommand(),
			filesCommand(),
			versionCommand(),
		},
		Action:        runTUI,
		ShellComplete: completeRoot,
	}
}

// Run executes the command line and returns the process exit code.
func Run(ctx context.Context, args []string) int {
	if err := NewCommand().Run(ctx, args); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	return 0
}

// runTUI is the default action that launches the TUI when no subcommand is given.
func runTUI(ctx context.Context, cmd *urfavecli.Command) error {
	defer func() { _ = log.Close() }()

	cfg, err := loadCLIConfigFunc(cmd)
	if err != nil {
		return err
	}
	if err := applyThemeConfig(cfg, cmd.String("theme")); err != nil {
		return err
	}
	if cfg.Theme == "" {
		cfg.Theme = theme.Detect()
	}
	if !isTerminal() {
		return errNoTerminal
	}

	prefs := services.NewPreferencesService(preferencesPath(cfg))
	model := app.NewModel(cfg, prefs)
	err = runProgram(ctx, model)
	model.Close()
	if err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	if model.Dirty() {
		fmt.Fprintln(os.Stderr, "lazystrings: exited with unsaved changes")
	}
	return nil
}

// setupDebugLog opens the debug log from the flag, falling back to the
// config value. Without either, buffered messages are dropped.
func setupDebugLog(flagValue, configValue string) {
	path := flagValue
	if path == "" {
		path = configValue
	}
	if path == "" {
		_ = log.SetFile("")
		return
	}
	if expanded, err := config.ExpandPath(path); err == nil {
		path = expanded
	}
	if err := log.SetFile(path); err != nil {
		fmt.Fprintf(os.Stderr, "Error opening debug log file %q: %v\n", path, err)
	}
}

// applyThemeConfig applies theme configuration from command line flag.
func applyThemeConfig(cfg *config.AppConfig, themeName string) error {
	if themeName == "" {
		cfg.Theme = config.NormalizeThemeName(cfg.Theme)
		return nil
	}

	normalized := config.NormalizeThemeName(themeName)
	if normalized == "" {
		return fmt.Errorf("unknown theme %q", themeName)
	}
	cfg.Theme = normalized
	return nil
}

func preferencesPath(cfg *config.AppConfig) string {
	if cfg.PrefsFile != "" {
		if expanded, err := config.ExpandPath(cfg.PrefsFile); err == nil {
			return expanded
		}
		return cfg.PrefsFile
	}
	return filepath.Join(config.StateDir(), services.PreferencesFilename)
}
