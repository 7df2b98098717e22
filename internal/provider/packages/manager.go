package packages

import (
	"context"

	"github.com/etc-dev/etc/internal/ports"
)

// Channel is a package category of a package manager.
type Channel string

const (
	// ChannelFormula is the primary channel.
	ChannelFormula Channel = "formula"
	// ChannelCask holds application bundles. Only darwin has it.
	ChannelCask Channel = "cask"
)

// Manager is a package-manager backend.
type Manager interface {
	// Name returns the backend's display name.
	Name() string

	// ListInstalled returns the names installed in channel. It is a
	// read-only query and runs during a dry run.
	ListInstalled(ctx context.Context, shell ports.Shell, channel Channel) ([]string, error)

	// Install installs one package and returns the package manager's
	// result. version may be empty. A non-zero exit is not an error.
	Install(ctx context.Context, shell ports.Shell, channel Channel, name, version string) (ports.CommandResult, error)
}
