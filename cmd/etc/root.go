package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/etc-dev/etc/internal/adapters/logging"
	"github.com/etc-dev/etc/internal/adapters/terminal"
	"github.com/etc-dev/etc/internal/app"
	"github.com/etc-dev/etc/internal/domain/config"
	"github.com/etc-dev/etc/internal/domain/platform"
	"github.com/etc-dev/etc/internal/ports"
)

var (
	// Global flags
	colors        bool
	noColors      bool
	dryRun        bool
	printCommands bool
	verbosity     int
	logFormat     string

	// Subcommand flags
	baseDirectory string
	configFile    string
	envFile       string
	remote        string
)

// Test seams.
var (
	detectPlatform = platform.Detect
	userHomeDir    = os.UserHomeDir
)

// extraAppOptions are appended to the options of every application.
var extraAppOptions []app.Option

var rootCmd = &cobra.Command{
	Use:   "etc",
	Short: "Bootstrap and install a workstation configuration",
	Long: `etc clones a configuration repository and brings the machine into the
state it declares.

Steps are read from etc.toml in the base directory and run in order:
  etc bootstrap -r git@github.com:you/dotfiles.git
  etc install --dry-run`,
	Version:       version,
	Args:          usageArgs(cobra.NoArgs),
	SilenceErrors: true, // We handle error formatting ourselves
	SilenceUsage:  true, // Don't show usage on error
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

// Execute runs the root command and returns the process exit code.
func Execute(ctx context.Context) int {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		printErrorTo(rootCmd.ErrOrStderr(), err)
	}
	return exitCode(err)
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&colors, "colors", true, "colorize output")
	rootCmd.PersistentFlags().BoolVar(&noColors, "no-colors", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&dryRun, "dry-run", "n", false, "print commands instead of running them")
	rootCmd.PersistentFlags().BoolVar(&printCommands, "print-commands", false, "print commands before running them")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase verbosity (repeat for trace output)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", string(logging.FormatText), "log format (text, json)")
	rootCmd.SetFlagErrorFunc(flagError)

	registerFlagCompletions()

	rootCmd.AddCommand(versionCmd)
}

// addConfigFlags registers the flags shared by install and bootstrap.
func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&baseDirectory, "base-directory", "d", "", "directory holding the configuration (default: ~/Preferences on macOS, ~/etc on Linux)")
	cmd.Flags().StringVarP(&configFile, "config", "c", platform.ConfigFileName, "configuration file, relative to the base directory")
	cmd.Flags().StringVar(&envFile, "env-file", platform.EnvFileName, "environment file for package managers, relative to the base directory")
}

// registerFlagCompletions sets up custom completions for global flags.
func registerFlagCompletions() {
	_ = rootCmd.RegisterFlagCompletionFunc("log-format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{
			"text\tHuman readable lines",
			"json\tOne JSON object per line",
		}, cobra.ShellCompDirectiveNoFileComp
	})
}

// resolveOptions builds the invocation options from the detected platform
// and the flags that were set.
func resolveOptions(cmd *cobra.Command, id platform.ID) (config.Options, error) {
	home, err := userHomeDir()
	if err != nil {
		return config.Options{}, fmt.Errorf("failed to find home directory: %w", err)
	}
	opts, err := config.DefaultOptions(id, home)
	if err != nil {
		return config.Options{}, err
	}

	if cmd.Flags().Changed("base-directory") {
		opts.BaseDirectory = baseDirectory
	}
	opts.ConfigFile = configFile
	opts.EnvFile = envFile
	opts.Remote = remote
	opts.DryRun = dryRun
	opts.PrintCommands = printCommands
	opts.Verbosity = verbosity
	opts.Colors = useColors(cmd)

	if _, ok := logging.ParseFormat(logFormat); !ok {
		return config.Options{}, &usageError{err: fmt.Errorf("invalid --log-format %q (expected text or json)", logFormat)}
	}
	opts.LogFormat = logFormat

	return opts.Normalize(), nil
}

// useColors applies --no-colors, then --colors, then the terminal's
// capabilities and NO_COLOR.
func useColors(cmd *cobra.Command) bool {
	flags := cmd.Flags()
	switch {
	case flags.Changed("no-colors") && noColors:
		return false
	case flags.Changed("colors"):
		return colors
	}
	out := termenv.NewOutput(os.Stderr)
	return !out.EnvNoColor() && out.ColorProfile() != termenv.Ascii
}

// newApp wires the application for one command. The logger and the
// terminal share the command's output writer so that their lines stay in
// order.
func newApp(cmd *cobra.Command) (*app.Etc, error) {
	detected, err := detectPlatform()
	if err != nil {
		return nil, err
	}

	opts, err := resolveOptions(cmd, detected.ID())
	if err != nil {
		return nil, err
	}

	out := cmd.OutOrStdout()
	logger := newLogger(out, opts)
	logger.Debug(cmd.Context(), "detected platform", ports.F("platform", detected.String()))
	logger.Debug(cmd.Context(), "resolved base directory", ports.F("path", opts.BaseDirectory))
	logger.Debug(cmd.Context(), "resolved configuration file", ports.F("path", opts.ConfigPath()))

	options := []app.Option{
		app.WithOutput(out),
		app.WithLogger(logger),
		app.WithReporter(terminal.New(terminal.WithOutput(out), terminal.WithColor(opts.Colors))),
	}
	options = append(options, extraAppOptions...)
	return app.New(opts, options...)
}

func newLogger(w io.Writer, opts config.Options) ports.Logger {
	format, _ := logging.ParseFormat(opts.LogFormat)
	return logging.NewConsoleLogger(
		logging.WithOutput(w),
		logging.WithLevel(opts.LogLevel()),
		logging.WithFormat(format),
		logging.WithColor(opts.Colors),
		logging.WithTimestamp(format == logging.FormatJSON),
	)
}
