// internal/cli/fetch.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arc-language/slangdroid"
	"github.com/arc-language/slangdroid/pkg/android"
)

var (
	fetchABI    string
	fetchDest   string
	fetchRepo   string
	fetchFormat string
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [tag]",
	Short: "Download a prebuilt Android library from the release page",
	Long: `Download and unpack a prebuilt libslang.so instead of building it.

Examples:
  slangdroid fetch
  slangdroid fetch v2025.24.2 --abi x86_64 --dest third_party/slang`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringVar(&fetchABI, "abi", string(android.DefaultABI), "ABI to download")
	fetchCmd.Flags().StringVar(&fetchDest, "dest", "slang-android", "directory to unpack into")
	fetchCmd.Flags().StringVar(&fetchRepo, "repo", "", "owner/name of the repository hosting releases")
	fetchCmd.Flags().StringVar(&fetchFormat, "format", "", "archive format (xz, zstd)")
}

func runFetch(cmd *cobra.Command, args []string) error {
	abi, err := android.ParseABI(fetchABI)
	if err != nil {
		return err
	}

	if len(args) == 1 {
		config.Tag = args[0]
	}
	if fetchRepo != "" {
		config.ReleaseRepo = fetchRepo
	}
	if fetchFormat != "" {
		config.Package = fetchFormat
	}

	fmt.Printf("Fetching Slang %s for %s from %s...\n", config.Tag, abi, config.ReleaseRepo)
	path, err := slangdroid.Fetch(cmd.Context(), config, abi, fetchDest, logger())
	if err != nil {
		fail("Fetch failed")
		return err
	}

	ok("Downloaded %s", path)
	ok("Unpacked into %s", fetchDest)
	return nil
}
