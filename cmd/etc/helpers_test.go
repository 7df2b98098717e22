package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/etc-dev/etc/internal/app"
	"github.com/etc-dev/etc/internal/domain/platform"
	"github.com/etc-dev/etc/internal/testutil/mocks"
)

const testHome = "/home/tester"

type cliFixture struct {
	fs     *mocks.FileSystem
	runner *mocks.CommandRunner
}

// newCLIFixture points the command seams at mocks on a linux machine.
func newCLIFixture(t *testing.T) *cliFixture {
	t.Helper()
	f := &cliFixture{
		fs:     mocks.NewFileSystem(),
		runner: mocks.NewCommandRunner(),
	}

	prevDetect, prevHome, prevOptions := detectPlatform, userHomeDir, extraAppOptions
	t.Cleanup(func() {
		detectPlatform, userHomeDir, extraAppOptions = prevDetect, prevHome, prevOptions
	})

	detectPlatform = func() (*platform.Platform, error) {
		return platform.New(platform.Linux, "amd64", platform.EnvNative), nil
	}
	userHomeDir = func() (string, error) {
		return testHome, nil
	}
	extraAppOptions = []app.Option{
		app.WithFileSystem(f.fs),
		app.WithCommandRunner(f.runner),
		app.WithRunID("run-1"),
	}
	return f
}

// executeCommand runs the root command with args and returns its output
// and exit code.
func executeCommand(t *testing.T, args ...string) (string, string, int) {
	t.Helper()
	resetFlags(rootCmd)
	if args == nil {
		args = []string{}
	}

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	code := Execute(context.Background())
	return stdout.String(), stderr.String(), code
}

// resetFlags restores every flag of cmd and its subcommands to its default.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}
