package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/etc-dev/etc/internal/domain/config"
	"github.com/etc-dev/etc/internal/domain/execution"
	"github.com/etc-dev/etc/internal/ports"
	"github.com/etc-dev/etc/internal/provider/commandutil"
)

const githubSSHPrefix = "git@github.com:"

// ErrRemoteRequired is returned by Bootstrap without a remote repository.
var ErrRemoteRequired = errors.New("a remote repository is required")

// CloneURL returns the URL used for the first clone of remote. GitHub SSH
// URLs are cloned over HTTPS since the machine has no keys yet.
func CloneURL(remote string) string {
	if repo, ok := strings.CutPrefix(remote, githubSSHPrefix); ok {
		return "https://github.com/" + repo
	}
	return remote
}

// Bootstrap clones the configuration repository into the base directory,
// runs the install and then points the clone back at the original remote.
//
// The base directory must not exist. In a dry run nothing is cloned, so the
// steps that need the clone are skipped.
func (e *Etc) Bootstrap(ctx context.Context) (execution.Result, error) {
	e.reporter.StartPhase("Starting to bootstrap the configuration")

	if e.opts.Remote == "" {
		return execution.Result{Code: execution.ExitFailure}, ErrRemoteRequired
	}

	base := e.opts.BaseDirectory
	if e.fs.Exists(base) {
		e.logger.Error(ctx, "bootstrapping must be done on a clean installation", ports.F("path", base))
		return execution.Result{Code: execution.ExitFailure}, config.NewBaseDirectoryExistsError(base)
	}

	shell := e.shell()
	cloneURL := CloneURL(e.opts.Remote)

	e.reporter.StartStep("Cloning the remote repository")
	e.logger.Debug(ctx, "cloning repository",
		ports.F("url", cloneURL),
		ports.F("path", base),
	)
	if err := e.git(ctx, shell.Exec, "clone", cloneURL, base); err != nil {
		return execution.Result{Code: execution.ExitFailure}, err
	}
	e.reporter.CompleteStep("Repository cloned")

	if e.opts.DryRun && !e.fs.Exists(base) {
		e.logger.Info(ctx, "repository is not cloned in a dry run, skipping install and remote setup",
			ports.F("path", base),
		)
		return execution.Result{Code: execution.ExitSuccess}, nil
	}

	result, err := e.Install(ctx)
	if err != nil {
		return result, err
	}
	if !result.Success() {
		e.logger.Error(ctx, "install failed", ports.F("code", result.Code))
		return result, nil
	}

	if err := e.restoreRemote(ctx, shell); err != nil {
		return execution.Result{Code: execution.ExitFailure, Steps: result.Steps}, err
	}

	return result, nil
}

// restoreRemote sets origin back to the configured remote, fetches and
// prints the repository status.
func (e *Etc) restoreRemote(ctx context.Context, shell ports.Shell) error {
	base := e.opts.BaseDirectory

	e.reporter.StartStep("Changing the remote URL for the local repository")
	current, err := shell.Query(ctx, "git", "-C", base, "remote", "get-url", "origin")
	if err != nil {
		return commandutil.Annotate("git", "install git and retry", err)
	}
	origin := strings.TrimSpace(current.Stdout)
	e.logger.Trace(ctx, "current remote", ports.F("origin", origin))

	if origin != e.opts.Remote {
		if err := e.git(ctx, shell.Exec, "-C", base, "remote", "set-url", "origin", e.opts.Remote); err != nil {
			return err
		}
	}
	e.reporter.CompleteStep("Remote set to " + e.opts.Remote)

	if err := e.git(ctx, shell.Exec, "-C", base, "fetch"); err != nil {
		return err
	}

	status, err := shell.Query(ctx, "git", "-C", base, "status", "--short", "--branch")
	if err != nil {
		return commandutil.Annotate("git", "install git and retry", err)
	}
	if e.opts.Verbosity > 0 {
		e.printf("%s", status.Stdout)
	}
	return nil
}

type runFunc func(ctx context.Context, command string, args ...string) (ports.CommandResult, error)

// git runs a git command and turns a non-zero exit into an error.
func (e *Etc) git(ctx context.Context, run runFunc, args ...string) error {
	result, err := run(ctx, "git", args...)
	if err != nil {
		return commandutil.Annotate("git", "install git and retry", err)
	}
	if !result.Success() {
		sub := args[0]
		if sub == "-C" && len(args) > 2 {
			sub = args[2]
		}
		return fmt.Errorf("git %s failed with exit code %d: %s",
			sub, result.ExitCode, strings.TrimSpace(result.Stderr))
	}
	return nil
}
