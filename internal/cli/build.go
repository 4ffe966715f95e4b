// internal/cli/build.go
package cli

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/arc-language/slangdroid"
	"github.com/arc-language/slangdroid/pkg/core"
)

var (
	buildTag           string
	buildABIs          []string
	buildPlatform      string
	buildNDK           string
	buildDist          string
	buildWorkDir       string
	buildPackage       string
	buildExtraArgs     string
	buildDryRun        bool
	buildSkipPreflight bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Cross-compile Slang into an Android shared library",
	Long: `Clone the requested Slang tag, build its host code generators, then
build libslang.so for each requested ABI with the NDK's CMake toolchain.

Libraries land in <dist>/<abi>/, headers in <dist>/include.

Examples:
  slangdroid build
  slangdroid build --tag v2025.24.2 --abi arm64-v8a,x86_64
  slangdroid build --platform android-33 --package xz
  slangdroid build --dry-run`,
	Args: cobra.NoArgs,
	RunE: runBuild,
	FParseErrWhitelist: cobra.FParseErrWhitelist{
		UnknownFlags: true,
	},
}

func init() {
	buildCmd.Flags().StringVar(&buildTag, "tag", "", "Slang git tag to build (default $SLANG_TAG or "+core.DefaultTag+")")
	buildCmd.Flags().StringSliceVar(&buildABIs, "abi", nil, "target ABIs (arm64-v8a, armeabi-v7a, x86, x86_64)")
	buildCmd.Flags().StringVar(&buildPlatform, "platform", "", "target API level, e.g. android-30")
	buildCmd.Flags().StringVar(&buildNDK, "ndk", "", "Android NDK path (auto-detected if empty)")
	buildCmd.Flags().StringVar(&buildDist, "dist", "", "output directory")
	buildCmd.Flags().StringVar(&buildWorkDir, "work-dir", "", "checkout and build directory")
	buildCmd.Flags().StringVar(&buildPackage, "package", "", "also write release archives (xz, zstd)")
	buildCmd.Flags().StringVar(&buildExtraArgs, "extra-cmake-args", "", "extra arguments passed to every configure step")
	buildCmd.Flags().BoolVar(&buildDryRun, "dry-run", false, "print the build commands without running them")
	buildCmd.Flags().BoolVar(&buildSkipPreflight, "skip-preflight", false, "skip the host tool and developer mode checks")
}

// applyBuildFlags overrides the loaded config with explicitly set flags
func applyBuildFlags(cmd *cobra.Command, cfg *core.Config) {
	flags := cmd.Flags()
	if flags.Changed("tag") {
		cfg.Tag = buildTag
	}
	if flags.Changed("abi") {
		cfg.ABIs = buildABIs
	}
	if flags.Changed("platform") {
		cfg.Platform = buildPlatform
	}
	if flags.Changed("ndk") {
		cfg.NDKPath = buildNDK
	}
	if flags.Changed("dist") {
		cfg.DistDir = buildDist
	}
	if flags.Changed("work-dir") {
		cfg.WorkDir = buildWorkDir
	}
	if flags.Changed("package") {
		cfg.Package = buildPackage
	}
	if flags.Changed("extra-cmake-args") {
		cfg.ExtraCMakeArgs = buildExtraArgs
	}
}

func runBuild(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	applyBuildFlags(cmd, config)

	opts := &slangdroid.Options{
		Logger:        logger(),
		SkipPreflight: buildSkipPreflight,
	}
	if config.Debug {
		opts.Progress = os.Stderr
	}

	b, err := slangdroid.NewBuilder(config, opts)
	if err != nil {
		return err
	}

	if buildDryRun {
		steps, err := b.Plan()
		if err != nil {
			return err
		}
		fmt.Printf("NDK: %s\n", b.NDK().Path)
		for _, step := range steps {
			fmt.Printf("[%s] %s\n", step.Stage, step.Command)
		}
		return nil
	}

	res, err := b.Build(ctx)
	if err != nil {
		fail("Build failed")
		return err
	}

	fmt.Println()
	for _, t := range res.Manifest.Targets {
		for _, f := range t.Files {
			ok("%s (%d bytes)", f.Path, f.Size)
		}
	}
	for _, a := range res.Archives {
		ok("%s", a)
	}
	fmt.Printf("\n--- Success! Check the '%s' folder.\n", res.DistDir)
	return nil
}
