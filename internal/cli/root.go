// internal/cli/root.go
package cli

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/arc-language/slangdroid/pkg/core"
)

var (
	cfgFile string
	debug   bool
	config  *core.Config

	configErr error
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "slangdroid",
	Short: "Build the Slang shader compiler for Android",
	Long: `slangdroid - Slang for Android

Cross-compiles the Slang shader compiler into an Android shared library
using the NDK's CMake toolchain, or downloads a prebuilt one from the
release page.

On Windows, Developer Mode must be enabled before building: the upstream
build creates symlinks, which Windows refuses otherwise.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	FParseErrWhitelist: cobra.FParseErrWhitelist{
		UnknownFlags: true,
	},
}

// Execute executes the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// An unreadable config fails every command except version
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if cmd == versionCmd {
			return nil
		}
		return configErr
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/slangdroid/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	// Add commands
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(flagsCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	var err error
	configErr = nil
	config, err = core.LoadConfig(cfgFile)
	if err != nil {
		configErr = fmt.Errorf("loading config: %w", err)
		config = core.DefaultConfig()
	}

	if debug {
		config.Debug = true
	}
}

func logger() *log.Logger {
	if config != nil && config.Debug {
		return log.New(os.Stderr, "[debug] ", 0)
	}
	return log.New(io.Discard, "", 0)
}

var output = termenv.NewOutput(os.Stdout)

func ok(format string, args ...any) {
	mark := output.String("✓").Foreground(termenv.ANSIGreen)
	fmt.Printf("%s %s\n", mark, fmt.Sprintf(format, args...))
}

func fail(format string, args ...any) {
	mark := output.String("✗").Foreground(termenv.ANSIRed)
	fmt.Printf("%s %s\n", mark, fmt.Sprintf(format, args...))
}
