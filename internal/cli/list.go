// internal/cli/list.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arc-language/slangdroid/pkg/android"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List supported target ABIs",
	Long:  `List the Android ABIs slangdroid can build for and the clang triple of each.`,
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	configured := map[string]bool{}
	for _, abi := range config.ABIs {
		configured[abi] = true
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Supported ABIs:\n")
	for _, abi := range android.ABIs() {
		marker := " "
		if configured[abi.String()] {
			marker = "*"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  %s %-12s %s\n", marker, abi, abi.Triple())
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\n* = configured target\n")
	fmt.Fprintf(cmd.OutOrStdout(), "Platform: %s (minimum android-%d)\n", config.Platform, android.MinAPILevel)
	return nil
}
