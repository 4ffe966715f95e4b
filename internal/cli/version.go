// internal/cli/version.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arc-language/slangdroid/pkg/core"
)

// Version is the slangdroid release
const Version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "slangdroid version %s\n", Version)
		fmt.Fprintf(cmd.OutOrStdout(), "Default Slang tag: %s\n", core.DefaultTag)
		fmt.Fprintln(cmd.OutOrStdout(), "https://github.com/"+core.DefaultReleaseRepo)
	},
}
