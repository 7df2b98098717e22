// Package brew provides the Homebrew package manager backend.
package brew

import (
	"context"
	"fmt"
	"strings"

	"github.com/etc-dev/etc/internal/ports"
	"github.com/etc-dev/etc/internal/provider/commandutil"
	"github.com/etc-dev/etc/internal/provider/packages"
)

const (
	brewCommand = "brew"
	installHint = "install Homebrew from https://brew.sh"
)

// Manager installs packages with Homebrew.
type Manager struct{}

// New creates a Homebrew Manager.
func New() *Manager {
	return &Manager{}
}

// Name returns the backend's display name.
func (m *Manager) Name() string {
	return "Homebrew"
}

// ListInstalled runs "brew list --formula" or "brew list --cask".
func (m *Manager) ListInstalled(ctx context.Context, shell ports.Shell, channel packages.Channel) ([]string, error) {
	flag, err := channelFlag(channel)
	if err != nil {
		return nil, err
	}

	result, err := shell.Query(ctx, brewCommand, "list", flag)
	if err != nil {
		return nil, commandutil.Annotate(brewCommand, installHint, err)
	}
	if !result.Success() {
		return nil, fmt.Errorf("brew list %s failed with exit code %d: %s",
			flag, result.ExitCode, strings.TrimSpace(result.Stderr))
	}
	return result.Lines(), nil
}

// Install runs "brew install [--cask] name[@version]".
func (m *Manager) Install(ctx context.Context, shell ports.Shell, channel packages.Channel, name, version string) (ports.CommandResult, error) {
	args := []string{"install"}
	switch channel {
	case packages.ChannelFormula:
	case packages.ChannelCask:
		args = append(args, "--cask")
	default:
		return ports.CommandResult{}, fmt.Errorf("unknown channel %q", channel)
	}
	args = append(args, packages.Package{Name: name, Version: version}.Spec())

	result, err := shell.Exec(ctx, brewCommand, args...)
	if err != nil {
		return ports.CommandResult{}, commandutil.Annotate(brewCommand, installHint, err)
	}
	return result, nil
}

func channelFlag(channel packages.Channel) (string, error) {
	switch channel {
	case packages.ChannelFormula:
		return "--formula", nil
	case packages.ChannelCask:
		return "--cask", nil
	default:
		return "", fmt.Errorf("unknown channel %q", channel)
	}
}

// Ensure Manager implements packages.Manager.
var _ packages.Manager = (*Manager)(nil)
