// pkg/pipeline/pipeline.go
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/arc-language/slangdroid/pkg/android"
	"github.com/arc-language/slangdroid/pkg/artifact"
	"github.com/arc-language/slangdroid/pkg/cmake"
	"github.com/arc-language/slangdroid/pkg/manifest"
	"github.com/arc-language/slangdroid/pkg/ndk"
	"github.com/arc-language/slangdroid/pkg/platform"
	"github.com/arc-language/slangdroid/pkg/release"
	"github.com/arc-language/slangdroid/pkg/source"
)

// CheckoutFunc fetches the upstream source tree
type CheckoutFunc func(ctx context.Context, opts source.Options) (*source.Result, error)

// Config holds everything a build needs
type Config struct {
	Tag           string
	RepoURL       string
	Targets       []android.Target
	NDK           *ndk.NDK
	WorkDir       string // absolute
	DistDir       string // absolute
	ExtraArgs     []string
	Package       release.Format // empty skips packaging
	SkipPreflight bool

	Host     *platform.Platform
	Probe    platform.SymlinkProbe
	Runner   cmake.Runner
	Checkout CheckoutFunc
	Progress io.Writer // git clone progress
	Logger   *log.Logger
}

// Pipeline runs toolchain selection, the upstream build and artifact
// publication, in that order
type Pipeline struct {
	config *Config
	logger *log.Logger
}

// Result describes a finished build
type Result struct {
	DistDir  string
	Manifest *manifest.Manifest
	Archives []string
}

// New validates cfg and fills in defaults
func New(cfg *Config) (*Pipeline, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.NDK == nil {
		return nil, fmt.Errorf("ndk is required")
	}
	if len(cfg.Targets) == 0 {
		cfg.Targets = []android.Target{android.DefaultTarget()}
	}
	if cfg.WorkDir == "" || cfg.DistDir == "" {
		return nil, fmt.Errorf("work and dist directories are required")
	}
	if err := CheckRemovable(cfg.DistDir, cfg.WorkDir); err != nil {
		return nil, fmt.Errorf("dist dir: %w", err)
	}
	if cfg.Runner == nil {
		cfg.Runner = cmake.NewExecRunner(cfg.Logger)
	}
	if cfg.Checkout == nil {
		cfg.Checkout = source.Checkout
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	return &Pipeline{config: cfg, logger: logger}, nil
}

// SourceDir is where the upstream tree is checked out
func (p *Pipeline) SourceDir() string { return filepath.Join(p.config.WorkDir, "slang") }

func (p *Pipeline) HostBuildDir() string { return filepath.Join(p.config.WorkDir, "build-host") }

// HostToolsDir receives the installed generators component
func (p *Pipeline) HostToolsDir() string { return filepath.Join(p.config.WorkDir, "host-tools") }

// AndroidBuildDir is the cross build tree for one ABI
func (p *Pipeline) AndroidBuildDir(abi android.ABI) string {
	return filepath.Join(p.config.WorkDir, "build-android-"+abi.String())
}

// Step is one subprocess of the build
type Step struct {
	Stage   string
	Target  *android.Target // nil for host steps
	Command cmake.Command
}

// Plan returns the build commands in execution order
func (p *Pipeline) Plan(toolchainFile string) []Step {
	src := p.SourceDir()
	host := p.HostBuildDir()

	steps := []Step{
		{Stage: "host configure", Command: cmake.HostConfigure(src, host, p.config.ExtraArgs)},
		{Stage: "host build", Command: cmake.Build(host, "")},
		{Stage: "host install", Command: cmake.Install(host, p.HostToolsDir(), "generators")},
	}

	for i := range p.config.Targets {
		t := &p.config.Targets[i]
		dir := p.AndroidBuildDir(t.ABI)
		steps = append(steps,
			Step{Stage: "android configure", Target: t, Command: cmake.AndroidConfigure(cmake.AndroidOptions{
				SrcDir:        src,
				BuildDir:      dir,
				ToolchainFile: toolchainFile,
				GeneratorsDir: filepath.Join(p.HostToolsDir(), "bin"),
				Target:        *t,
				Extra:         p.config.ExtraArgs,
			})},
			Step{Stage: "android build", Target: t, Command: cmake.Build(dir, "slang")},
		)
	}
	return steps
}

// ToolchainFile selects the NDK's CMake toolchain file
func (p *Pipeline) ToolchainFile() (string, error) {
	return p.config.NDK.ToolchainFile()
}

// Run executes the whole pipeline
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	cfg := p.config

	// Toolchain selection
	fmt.Printf("--- Detected NDK: %s\n", cfg.NDK.Path)
	for _, t := range cfg.Targets {
		fmt.Printf("--- Target ABI: %s (%s)\n", t.ABI, t.ABI.Triple())
	}
	fmt.Printf("--- Target Platform: %s\n", cfg.Targets[0].Platform)

	if err := os.MkdirAll(cfg.WorkDir, 0755); err != nil {
		return nil, fmt.Errorf("creating work dir: %w", err)
	}

	if !cfg.SkipPreflight && cfg.Host != nil {
		if err := platform.Preflight(cfg.Host, cfg.WorkDir, cfg.Probe); err != nil {
			return nil, err
		}
	}

	toolchain, err := p.ToolchainFile()
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := os.RemoveAll(cfg.DistDir); err != nil {
		return nil, fmt.Errorf("clearing dist dir: %w", err)
	}
	if err := os.MkdirAll(cfg.DistDir, 0755); err != nil {
		return nil, fmt.Errorf("creating dist dir: %w", err)
	}

	// Upstream build
	checkout, err := cfg.Checkout(ctx, source.Options{
		URL:      cfg.RepoURL,
		Tag:      cfg.Tag,
		Dir:      p.SourceDir(),
		Progress: cfg.Progress,
		Logger:   p.logger,
	})
	if err != nil {
		return nil, err
	}

	announced := map[string]bool{}
	for _, step := range p.Plan(toolchain) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		switch {
		case step.Target == nil && !announced["host"]:
			fmt.Println("--- Building Host Generators...")
			announced["host"] = true
		case step.Target != nil && !announced[step.Target.ABI.String()]:
			fmt.Printf("--- Building Slang for Android (%s)...\n", step.Target.ABI)
			announced[step.Target.ABI.String()] = true
		}

		if err := os.MkdirAll(buildDirOf(step), 0755); err != nil {
			return nil, err
		}
		if err := cfg.Runner.Run(ctx, step.Command); err != nil {
			return nil, fmt.Errorf("%s: %w", step.Stage, err)
		}
	}

	// Artifact publication
	return p.publish(checkout)
}

// buildDirOf returns the -B or --build directory of a step
func buildDirOf(step Step) string {
	args := step.Command.Args
	for i := 0; i < len(args)-1; i++ {
		if args[i] == "-B" || args[i] == "--build" || args[i] == "--install" {
			return args[i+1]
		}
	}
	return "."
}

func (p *Pipeline) publish(checkout *source.Result) (*Result, error) {
	cfg := p.config
	fmt.Printf("--- Collecting binaries to %s...\n", cfg.DistDir)

	m := &manifest.Manifest{
		Tag:      cfg.Tag,
		Commit:   checkout.Commit,
		NDKPath:  cfg.NDK.Path,
		Platform: cfg.Targets[0].Platform.String(),
		BuiltAt:  time.Now().UTC(),
	}
	if rev, err := cfg.NDK.Revision(); err == nil {
		m.NDKRevision = rev
	} else {
		p.logger.Printf("Unknown NDK revision: %v", err)
	}
	if cfg.Host != nil {
		m.Host = cfg.Host.OS + "/" + cfg.Host.Arch
	}

	includeDir := filepath.Join(cfg.DistDir, "include")
	var bundles []release.Bundle

	for _, t := range cfg.Targets {
		libDir := filepath.Join(cfg.DistDir, t.ABI.String())
		libs, err := artifact.Collect(p.AndroidBuildDir(t.ABI), libDir)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", t.ABI, err)
		}

		for _, lib := range libs {
			if err := artifact.Verify(lib, t.ABI); err != nil {
				return nil, err
			}
		}

		if err := m.AddTarget(cfg.DistDir, t.ABI.String(), libs); err != nil {
			return nil, err
		}
		bundles = append(bundles, release.Bundle{ABI: t.ABI, LibDir: libDir, IncludeDir: includeDir})
	}

	if err := artifact.CopyHeaders(filepath.Join(p.SourceDir(), "include"), includeDir); err != nil {
		return nil, err
	}

	if err := manifest.Write(cfg.DistDir, m); err != nil {
		return nil, err
	}

	res := &Result{DistDir: cfg.DistDir, Manifest: m}
	if cfg.Package != "" {
		archives, err := release.Package(cfg.Tag, bundles, filepath.Join(cfg.DistDir, "release"), cfg.Package)
		if err != nil {
			return nil, err
		}
		res.Archives = archives
	}
	return res, nil
}
