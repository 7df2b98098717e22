package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/etc-dev/etc/internal/domain/config"
	"github.com/etc-dev/etc/internal/domain/execution"
	"github.com/etc-dev/etc/internal/domain/platform"
	"github.com/etc-dev/etc/internal/ports"
	"github.com/etc-dev/etc/internal/testutil"
)

const (
	sshRemote   = "git@github.com:tester/dotfiles.git"
	httpsRemote = "https://github.com/tester/dotfiles.git"
	linuxBase   = "/home/tester/etc"
)

func TestCloneURL(t *testing.T) {
	tests := []struct {
		remote string
		want   string
	}{
		{sshRemote, httpsRemote},
		{httpsRemote, httpsRemote},
		{"git@gitlab.com:tester/dotfiles.git", "git@gitlab.com:tester/dotfiles.git"},
		{"/srv/git/dotfiles", "/srv/git/dotfiles"},
	}

	for _, tt := range tests {
		t.Run(tt.remote, func(t *testing.T) {
			assert.Equal(t, tt.want, CloneURL(tt.remote))
		})
	}
}

func newBootstrapFixture(t *testing.T, remote string) *fixture {
	t.Helper()
	f := newFixture(t, platform.Linux)
	f.opts.Remote = remote
	return f
}

func (f *fixture) addGitRemote(url string) {
	f.runner.AddOutput("git", []string{"-C", linuxBase, "remote", "get-url", "origin"}, url)
	f.runner.AddOutput("git", []string{"-C", linuxBase, "fetch"})
	f.runner.AddOutput("git", []string{"-C", linuxBase, "status", "--short", "--branch"}, "## main...origin/main")
}

func TestBootstrap(t *testing.T) {
	f := newBootstrapFixture(t, sshRemote)
	f.writeConfig(`
[[install.steps]]
directive = "packages"
packages = ["jq"]
`)
	f.runner.AddOutput("git", []string{"clone", httpsRemote, linuxBase})
	f.runner.AddOutput("brew", []string{"list", "--formula"})
	f.runner.AddOutput("brew", []string{"install", "jq"})
	f.addGitRemote(httpsRemote)
	f.runner.AddOutput("git", []string{"-C", linuxBase, "remote", "set-url", "origin", sshRemote})

	e := f.newEtc(t)
	result, err := e.Bootstrap(context.Background())

	require.NoError(t, err)
	assert.Equal(t, execution.ExitSuccess, result.Code)
	assert.Equal(t, StateSucceeded, e.State())
	testutil.AssertCommands(t, f.runner,
		"git clone "+httpsRemote+" "+linuxBase,
		"brew list --formula",
		"brew install jq",
		"git -C "+linuxBase+" remote get-url origin",
		"git -C "+linuxBase+" remote set-url origin "+sshRemote,
		"git -C "+linuxBase+" fetch",
		"git -C "+linuxBase+" status --short --branch",
	)
	assert.Empty(t, f.out.String(), "status is printed only when verbose")
}

func TestBootstrap_KeepsMatchingRemote(t *testing.T) {
	f := newBootstrapFixture(t, httpsRemote)
	f.opts.Verbosity = 1
	f.writeConfig("")
	f.runner.AddOutput("git", []string{"clone", httpsRemote, linuxBase})
	f.addGitRemote(httpsRemote)

	e := f.newEtc(t)
	result, err := e.Bootstrap(context.Background())

	require.NoError(t, err)
	assert.True(t, result.Success())
	testutil.AssertNoCommandLike(t, f.runner, "git -C "+linuxBase+" remote set-url origin "+httpsRemote)
	assert.Equal(t, "## main...origin/main\n", f.out.String())
}

func TestBootstrap_DryRun(t *testing.T) {
	f := newBootstrapFixture(t, sshRemote)
	f.opts.DryRun = true

	e := f.newEtc(t)
	result, err := e.Bootstrap(context.Background())

	require.NoError(t, err)
	assert.Equal(t, execution.ExitSuccess, result.Code)
	assert.Empty(t, f.runner.Calls())
	assert.Equal(t, []ports.CommandCall{{Command: "git", Args: []string{"clone", httpsRemote, linuxBase}}}, f.reporter.Commands())
	assert.Equal(t, StateIdle, e.State(), "install does not start without a clone")
}

func TestBootstrap_RequiresRemote(t *testing.T) {
	f := newBootstrapFixture(t, "")

	e := f.newEtc(t)
	result, err := e.Bootstrap(context.Background())

	require.ErrorIs(t, err, ErrRemoteRequired)
	assert.Equal(t, execution.ExitFailure, result.Code)
}

func TestBootstrap_RefusesExistingBaseDirectory(t *testing.T) {
	f := newBootstrapFixture(t, sshRemote)
	f.fs.AddDir(linuxBase)

	e := f.newEtc(t)
	result, err := e.Bootstrap(context.Background())

	require.Error(t, err)
	assert.True(t, config.IsUserError(err, config.ErrCodeBaseDirExists))
	assert.Equal(t, execution.ExitFailure, result.Code)
	assert.Empty(t, f.runner.Calls())
}

func TestBootstrap_CloneFails(t *testing.T) {
	f := newBootstrapFixture(t, sshRemote)
	f.runner.AddResult("git", []string{"clone", httpsRemote, linuxBase}, ports.CommandResult{
		ExitCode: 128,
		Stderr:   "fatal: repository not found\n",
	})

	e := f.newEtc(t)
	result, err := e.Bootstrap(context.Background())

	require.Error(t, err)
	assert.Equal(t, "git clone failed with exit code 128: fatal: repository not found", err.Error())
	assert.Equal(t, execution.ExitFailure, result.Code)
	assert.Len(t, f.runner.Calls(), 1)
}

func TestBootstrap_InstallFailureSkipsRemoteSetup(t *testing.T) {
	f := newBootstrapFixture(t, sshRemote)
	f.writeConfig(`
[[install.steps]]
directive = "packages"
packages = ["jq"]
`)
	f.runner.AddOutput("git", []string{"clone", httpsRemote, linuxBase})
	f.runner.AddOutput("brew", []string{"list", "--formula"})
	f.runner.AddResult("brew", []string{"install", "jq"}, ports.CommandResult{ExitCode: 2})

	e := f.newEtc(t)
	result, err := e.Bootstrap(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, result.Code)
	assert.Equal(t, StateFailed, e.State())
	testutil.AssertNoCommandLike(t, f.runner, "git -C "+linuxBase+" remote get-url origin")
}

func TestBootstrap_FetchFails(t *testing.T) {
	f := newBootstrapFixture(t, httpsRemote)
	f.writeConfig("")
	f.runner.AddOutput("git", []string{"clone", httpsRemote, linuxBase})
	f.runner.AddOutput("git", []string{"-C", linuxBase, "remote", "get-url", "origin"}, httpsRemote)
	f.runner.AddResult("git", []string{"-C", linuxBase, "fetch"}, ports.CommandResult{ExitCode: 1, Stderr: "network down"})

	e := f.newEtc(t)
	result, err := e.Bootstrap(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "git fetch failed with exit code 1: network down")
	assert.Equal(t, execution.ExitFailure, result.Code)
}
