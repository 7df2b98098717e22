package main

import (
	"github.com/spf13/cobra"

	"github.com/etc-dev/etc/internal/domain/execution"
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the workstation configuration",
	Long: `Install reads the configuration file from the base directory and runs
its steps in declaration order.

Steps for another platform are skipped. The first failing step stops the
run and its exit code becomes the exit code of etc.

Use --dry-run to print the plan and the commands without running them.`,
	Args: usageArgs(cobra.NoArgs),
	RunE: runInstall,
}

func init() {
	addConfigFlags(installCmd)
	rootCmd.AddCommand(installCmd)
}

func runInstall(cmd *cobra.Command, _ []string) error {
	etc, err := newApp(cmd)
	if err != nil {
		return err
	}

	result, err := etc.Install(cmd.Context())
	if err != nil {
		return err
	}
	return resultError(result)
}

// resultError turns a failed run into an exitError.
func resultError(result execution.Result) error {
	if result.Success() {
		return nil
	}
	return &exitError{code: result.Code}
}
