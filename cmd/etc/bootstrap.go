package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var bootstrapCmd = &cobra.Command{
	Use:     "bootstrap",
	Aliases: []string{"init", "initialize"},
	Short:   "Clone the configuration repository and run the install",
	Long: `Bootstrap clones the remote repository into the base directory, which
must not exist yet, and runs the install against the cloned configuration.

If the remote is a GitHub SSH URL it is cloned over HTTPS, since a fresh
machine has no SSH keys, and the remote is switched back to the SSH URL
once the install has succeeded.`,
	Args: usageArgs(cobra.NoArgs),
	RunE: runBootstrap,
}

func init() {
	addConfigFlags(bootstrapCmd)
	bootstrapCmd.Flags().StringVarP(&remote, "remote", "r", "", "Git repository of the configuration (aliases: --repo, --repository)")
	bootstrapCmd.Flags().SetNormalizeFunc(remoteAliases)
	rootCmd.AddCommand(bootstrapCmd)
}

// remoteAliases accepts --repo and --repository for --remote.
func remoteAliases(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	switch name {
	case "repo", "repository":
		name = "remote"
	}
	return pflag.NormalizedName(name)
}

func runBootstrap(cmd *cobra.Command, _ []string) error {
	etc, err := newApp(cmd)
	if err != nil {
		return err
	}

	result, err := etc.Bootstrap(cmd.Context())
	if err != nil {
		return err
	}
	return resultError(result)
}
