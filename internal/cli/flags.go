// internal/cli/flags.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arc-language/slangdroid/pkg/android"
	"github.com/arc-language/slangdroid/pkg/env"
)

var (
	flagsABI  string
	flagsLibs bool
)

var flagsCmd = &cobra.Command{
	Use:   "flags [dir]",
	Short: "Print compiler flags for a built or fetched Slang",
	Long: `Print the -I, -L and -l flags needed to compile against libslang.

dir is a build's dist folder or a fetched release; it defaults to the
configured dist folder.

Examples:
  slangdroid flags
  slangdroid flags slang-android --abi x86_64
  slangdroid flags --libs`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFlags,
}

func init() {
	flagsCmd.Flags().StringVar(&flagsABI, "abi", string(android.DefaultABI), "target ABI")
	flagsCmd.Flags().BoolVar(&flagsLibs, "libs", false, "list every library instead of printing flags")
}

func runFlags(cmd *cobra.Command, args []string) error {
	abi, err := android.ParseABI(flagsABI)
	if err != nil {
		return err
	}

	dir := config.DistDir
	if len(args) == 1 {
		dir = args[0]
	}

	e, err := env.New(dir, abi)
	if err != nil {
		return err
	}

	if flagsLibs {
		for _, lib := range e.FindAllLibraries() {
			kind := "shared"
			if lib.IsStatic {
				kind = "static"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-24s %-7s %s\n", lib.Name, kind, lib.Path)
		}
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), e.CompilerFlags())
	return nil
}
