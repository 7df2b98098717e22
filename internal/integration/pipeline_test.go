//go:build integration

package integration

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/etc-dev/etc/internal/app"
	"github.com/etc-dev/etc/internal/domain/config"
	"github.com/etc-dev/etc/internal/domain/execution"
	"github.com/etc-dev/etc/internal/domain/platform"
	"github.com/etc-dev/etc/internal/testutil"
	"github.com/etc-dev/etc/internal/testutil/mocks"
)

// newApp wires an app on the real filesystem with base as the base
// directory. Commands go to the returned mock runner.
func newApp(t *testing.T, id platform.ID, base string, mutate func(*config.Options)) (*app.Etc, *mocks.CommandRunner, *bytes.Buffer) {
	t.Helper()

	opts, err := config.DefaultOptions(id, t.TempDir())
	require.NoError(t, err)
	opts.BaseDirectory = base
	if mutate != nil {
		mutate(&opts)
	}

	runner := mocks.NewCommandRunner()
	out := &bytes.Buffer{}
	e, err := app.New(opts,
		app.WithCommandRunner(runner),
		app.WithOutput(out),
		app.WithRunID("integration"),
	)
	require.NoError(t, err)
	return e, runner, out
}

func TestPipeline_TOML(t *testing.T) {
	t.Parallel()

	base, _ := testutil.WriteConfig(t, `
[[install.steps]]
directive = "packages"
platform = "darwin"
formulae = ["git"]
casks = ["firefox"]

[[install.steps]]
directive = "packages"
packages = ["jq", "ripgrep@14"]

[[install.steps]]
directive = "dotfiles"
`)
	testutil.WriteTempFile(t, base, "etc.env", "HOMEBREW_NO_ANALYTICS=1\n")

	e, runner, _ := newApp(t, platform.Linux, base, nil)
	runner.AddOutput("brew", []string{"list", "--formula"}, "jq")
	runner.AddOutput("brew", []string{"install", "ripgrep@14"})

	result, err := e.Install(context.Background())

	require.NoError(t, err)
	assert.Equal(t, execution.ExitSuccess, result.Code)
	assert.Equal(t, 2, result.Count(execution.StatusSucceeded), "the darwin step succeeds without commands")
	assert.Equal(t, app.StateSucceeded, e.State())
	assert.Equal(t, map[string]string{"HOMEBREW_NO_ANALYTICS": "1"}, e.Env())
	testutil.AssertCommands(t, runner, "brew list --formula", "brew install ripgrep@14")
}

func TestPipeline_YAML(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	testutil.WriteTempFile(t, base, "etc.yaml", `
install:
  steps:
    - directive: system-packages
      packages: [git]
`)

	e, runner, _ := newApp(t, platform.Darwin, base, func(o *config.Options) {
		o.ConfigFile = "etc.yaml"
	})
	runner.AddOutput("brew", []string{"list", "--formula"}, "git")

	result, err := e.Install(context.Background())

	require.NoError(t, err)
	assert.True(t, result.Success())
	assert.Empty(t, e.Env(), "missing env file is not an error")
	testutil.AssertCommands(t, runner, "brew list --formula")
}

func TestPipeline_DryRunPlan(t *testing.T) {
	t.Parallel()

	base, _ := testutil.WriteConfig(t, `
[[install.steps]]
directive = "packages"
packages = ["jq"]
`)

	e, runner, out := newApp(t, platform.Linux, base, func(o *config.Options) {
		o.DryRun = true
	})
	runner.AddOutput("brew", []string{"list", "--formula"})

	result, err := e.Install(context.Background())

	require.NoError(t, err)
	assert.True(t, result.Success())
	assert.Contains(t, out.String(), "Install plan for Linux")
	assert.Contains(t, out.String(), "$ brew install jq")
	testutil.AssertNoCommandLike(t, runner, "brew install jq")
}

func TestPipeline_MissingConfig(t *testing.T) {
	t.Parallel()

	e, runner, _ := newApp(t, platform.Linux, t.TempDir(), nil)

	_, err := e.Install(context.Background())

	require.Error(t, err)
	assert.True(t, config.IsUserError(err, config.ErrCodeConfigNotFound))
	assert.Equal(t, app.StateFailed, e.State())
	assert.Empty(t, runner.Calls())
}

func TestPipeline_BootstrapRefusesExistingDirectory(t *testing.T) {
	t.Parallel()

	base, _ := testutil.WriteConfig(t, "")
	e, runner, _ := newApp(t, platform.Linux, base, func(o *config.Options) {
		o.Remote = "git@github.com:tester/etc.git"
	})

	_, err := e.Bootstrap(context.Background())

	require.Error(t, err)
	assert.True(t, config.IsUserError(err, config.ErrCodeBaseDirExists))
	assert.Empty(t, runner.Calls())
}
