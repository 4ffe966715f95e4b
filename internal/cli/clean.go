// internal/cli/clean.go
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arc-language/slangdroid/pkg/pipeline"
)

var cleanAll bool

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the build directory",
	Long:  `Remove the checkout and build trees. With --all the dist folder goes too.`,
	Args:  cobra.NoArgs,
	RunE:  runClean,
}

func init() {
	cleanCmd.Flags().BoolVar(&cleanAll, "all", false, "also remove the dist directory")
}

func runClean(cmd *cobra.Command, args []string) error {
	workDir, distDir, err := config.Paths()
	if err != nil {
		return err
	}

	if err := pipeline.CheckRemovable(workDir); err != nil {
		return fmt.Errorf("work dir: %w", err)
	}
	dirs := []string{workDir}
	if cleanAll {
		if err := pipeline.CheckRemovable(distDir, workDir); err != nil {
			return fmt.Errorf("dist dir: %w", err)
		}
		dirs = append(dirs, distDir)
	}

	for _, dir := range dirs {
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("removing %s: %w", dir, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", dir)
	}
	return nil
}
