// slangdroid.go
package slangdroid

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/arc-language/slangdroid/pkg/android"
	"github.com/arc-language/slangdroid/pkg/cmake"
	"github.com/arc-language/slangdroid/pkg/core"
	"github.com/arc-language/slangdroid/pkg/ndk"
	"github.com/arc-language/slangdroid/pkg/pipeline"
	"github.com/arc-language/slangdroid/pkg/platform"
	"github.com/arc-language/slangdroid/pkg/release"
	"github.com/arc-language/slangdroid/pkg/source"
)

// Re-export types for convenience
type (
	Config = core.Config
	Target = android.Target
	ABI    = android.ABI
	Result = pipeline.Result
	Step   = pipeline.Step
)

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return core.DefaultConfig()
}

// Options carries the runtime dependencies of a Builder
type Options struct {
	Logger   *log.Logger
	Runner   cmake.Runner          // nil runs real subprocesses
	Host     *platform.Platform    // nil detects the running host
	Env      *ndk.Env              // nil reads the process environment
	Progress io.Writer             // git clone progress
	Checkout pipeline.CheckoutFunc // nil clones with go-git

	// SkipPreflight disables the host checks, for hosts where the symlink
	// probe gives a false negative
	SkipPreflight bool
}

// Builder cross-compiles Slang for Android
type Builder struct {
	config   *Config
	pipeline *pipeline.Pipeline
	targets  []android.Target
	ndk      *ndk.NDK
	host     *platform.Platform
}

// NewBuilder selects the toolchain and validates the configuration
func NewBuilder(cfg *Config, opts *Options) (*Builder, error) {
	if cfg == nil {
		cfg = core.DefaultConfig()
	}
	if opts == nil {
		opts = &Options{}
	}

	if err := source.ValidateTag(cfg.Tag); err != nil {
		return nil, &Error{Op: "configure", Err: err}
	}

	targets, err := cfg.Targets()
	if err != nil {
		return nil, &Error{Op: "configure", Err: err}
	}

	format, err := release.ParseFormat(cfg.Package)
	if err != nil {
		return nil, &Error{Op: "configure", Err: err}
	}

	extra, err := cmake.ParseExtraArgs(cfg.ExtraCMakeArgs)
	if err != nil {
		return nil, &Error{Op: "configure", Err: err}
	}

	workDir, distDir, err := cfg.Paths()
	if err != nil {
		return nil, &Error{Op: "configure", Err: err}
	}

	host := opts.Host
	if host == nil {
		host, err = platform.Detect()
		if err != nil {
			return nil, &Error{Op: "detect host", Err: err}
		}
	}

	toolchain, err := selectNDK(cfg, opts.Env)
	if err != nil {
		return nil, &Error{Op: "select toolchain", Err: err}
	}

	p, err := pipeline.New(&pipeline.Config{
		Tag:       cfg.Tag,
		RepoURL:   cfg.RepoURL,
		Targets:   targets,
		NDK:       toolchain,
		WorkDir:   workDir,
		DistDir:   distDir,
		ExtraArgs: extra,
		Package:   format,
		Host:      host,

		SkipPreflight: opts.SkipPreflight,
		Runner:        opts.Runner,
		Checkout:      opts.Checkout,
		Progress:      opts.Progress,
		Logger:        opts.Logger,
	})
	if err != nil {
		return nil, err
	}

	return &Builder{
		config:   cfg,
		pipeline: p,
		targets:  targets,
		ndk:      toolchain,
		host:     host,
	}, nil
}

func selectNDK(cfg *Config, env *ndk.Env) (*ndk.NDK, error) {
	if cfg.NDKPath != "" {
		return ndk.FromPath(cfg.NDKPath)
	}
	if env == nil {
		e := ndk.HostEnv()
		env = &e
	}
	return ndk.Locate(*env)
}

// NDK returns the selected toolchain
func (b *Builder) NDK() *ndk.NDK {
	return b.ndk
}

// Targets returns the ABIs and API level being built
func (b *Builder) Targets() []Target {
	return b.targets
}

// Plan lists the build commands without running them
func (b *Builder) Plan() ([]Step, error) {
	tc, err := b.pipeline.ToolchainFile()
	if err != nil {
		return nil, &Error{Op: "plan", Err: err}
	}
	return b.pipeline.Plan(tc), nil
}

// Build runs the pipeline and returns the collected artifacts
func (b *Builder) Build(ctx context.Context) (*Result, error) {
	res, err := b.pipeline.Run(ctx)
	if err != nil {
		return nil, &Error{Op: "build", Target: describeTargets(b.targets), Err: err}
	}
	return res, nil
}

func describeTargets(targets []android.Target) string {
	names := make([]string, len(targets))
	for i, t := range targets {
		names[i] = t.String()
	}
	return strings.Join(names, ",")
}

// Fetch downloads the prebuilt library for abi from the release page
func Fetch(ctx context.Context, cfg *Config, abi ABI, dest string, logger *log.Logger) (string, error) {
	if cfg == nil {
		cfg = core.DefaultConfig()
	}

	format, err := release.ParseFormat(cfg.Package)
	if err != nil {
		return "", &Error{Op: "fetch", Err: err}
	}

	home, _ := os.UserHomeDir()
	client := release.NewClient(&release.Config{
		Repo:      cfg.ReleaseRepo,
		CachePath: filepath.Join(home, ".cache", "slangdroid"),
		Logger:    logger,
	})

	path, err := client.Fetch(ctx, release.FetchOptions{
		Tag:    cfg.Tag,
		ABI:    abi,
		Format: format,
		Dest:   dest,
	})
	if err != nil {
		return "", &Error{Op: "fetch", Target: fmt.Sprintf("%s/%s", cfg.Tag, abi), Err: err}
	}
	return path, nil
}
