// pkg/cmake/cmake.go
package cmake

import (
	"fmt"

	"github.com/mattn/go-shellwords"

	"github.com/arc-language/slangdroid/pkg/android"
)

// Program is the cmake executable name
const Program = "cmake"

// Generator used for every configure step
const Generator = "Ninja"

// CommonFlags strip the upstream build down to the compiler library
var CommonFlags = []string{
	"-DSLANG_ENABLE_GFX=OFF",
	"-DSLANG_ENABLE_SLANG_RHI=OFF",
	"-DSLANG_ENABLE_SLANGRT=OFF",
	"-DSLANG_ENABLE_EXAMPLES=OFF",
	"-DSLANG_ENABLE_TESTS=OFF",
}

// HostConfigure configures the static host build that produces the code
// generators the cross build cannot run itself
func HostConfigure(srcDir, buildDir string, extra []string) Command {
	args := []string{
		Program,
		"-S", srcDir,
		"-B", buildDir,
		"-G" + Generator,
		"-DCMAKE_BUILD_TYPE=Release",
		"-DSLANG_BUILD_GENERATORS=ON",
		"-DSLANG_LIB_TYPE=STATIC",
	}
	args = append(args, CommonFlags...)
	args = append(args, extra...)
	return Command{Args: args}
}

// AndroidOptions configures the cross build for a single target
type AndroidOptions struct {
	SrcDir        string
	BuildDir      string
	ToolchainFile string
	GeneratorsDir string // <host-tools>/bin
	Target        android.Target
	Extra         []string
}

// AndroidConfigure configures the shared library build for one ABI
func AndroidConfigure(opts AndroidOptions) Command {
	args := []string{
		Program,
		"-S", opts.SrcDir,
		"-B", opts.BuildDir,
		"-G" + Generator,
		"-DCMAKE_TOOLCHAIN_FILE=" + opts.ToolchainFile,
		"-DANDROID_ABI=" + opts.Target.ABI.String(),
		"-DANDROID_PLATFORM=" + opts.Target.Platform.String(),
		"-DCMAKE_BUILD_TYPE=Release",
		"-DSLANG_LIB_TYPE=SHARED",
		"-DSLANG_GENERATORS_PATH=" + opts.GeneratorsDir,
		"-DSLANG_SLANG_LLVM_FLAVOR=DISABLE",
	}
	args = append(args, CommonFlags...)
	args = append(args, opts.Extra...)
	return Command{Args: args}
}

// Build builds buildDir, limited to target when it is not empty
func Build(buildDir, target string) Command {
	args := []string{Program, "--build", buildDir}
	if target != "" {
		args = append(args, "--target", target)
	}
	return Command{Args: args}
}

// Install installs one component of buildDir under prefix
func Install(buildDir, prefix, component string) Command {
	args := []string{Program, "--install", buildDir, "--prefix", prefix}
	if component != "" {
		args = append(args, "--component", component)
	}
	return Command{Args: args}
}

// ParseExtraArgs splits a shell-quoted argument string from the config
func ParseExtraArgs(s string) ([]string, error) {
	if s == "" {
		return nil, nil
	}
	args, err := shellwords.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("parsing extra cmake args: %w", err)
	}
	return args, nil
}
