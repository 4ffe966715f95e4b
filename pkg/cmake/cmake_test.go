package cmake

import (
	"bytes"
	"context"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-language/slangdroid/pkg/android"
)

func TestHostConfigure(t *testing.T) {
	cmd := HostConfigure("/src/slang", "/w/build-host", []string{"-DFOO=1"})
	assert.Equal(t, []string{
		"cmake", "-S", "/src/slang", "-B", "/w/build-host", "-GNinja",
		"-DCMAKE_BUILD_TYPE=Release", "-DSLANG_BUILD_GENERATORS=ON", "-DSLANG_LIB_TYPE=STATIC",
		"-DSLANG_ENABLE_GFX=OFF", "-DSLANG_ENABLE_SLANG_RHI=OFF", "-DSLANG_ENABLE_SLANGRT=OFF",
		"-DSLANG_ENABLE_EXAMPLES=OFF", "-DSLANG_ENABLE_TESTS=OFF", "-DFOO=1",
	}, cmd.Args)
}

func TestAndroidConfigure(t *testing.T) {
	cmd := AndroidConfigure(AndroidOptions{
		SrcDir:        "/src/slang",
		BuildDir:      "/w/build-android",
		ToolchainFile: "/ndk/build/cmake/android.toolchain.cmake",
		GeneratorsDir: "/w/host-tools/bin",
		Target:        android.Target{ABI: android.ABIX86_64, Platform: 33},
	})

	assert.Contains(t, cmd.Args, "-DCMAKE_TOOLCHAIN_FILE=/ndk/build/cmake/android.toolchain.cmake")
	assert.Contains(t, cmd.Args, "-DANDROID_ABI=x86_64")
	assert.Contains(t, cmd.Args, "-DANDROID_PLATFORM=android-33")
	assert.Contains(t, cmd.Args, "-DSLANG_LIB_TYPE=SHARED")
	assert.Contains(t, cmd.Args, "-DSLANG_GENERATORS_PATH=/w/host-tools/bin")
	assert.Contains(t, cmd.Args, "-DSLANG_SLANG_LLVM_FLAVOR=DISABLE")
	assert.Contains(t, cmd.Args, "-DSLANG_ENABLE_TESTS=OFF")
}

func TestBuildAndInstall(t *testing.T) {
	assert.Equal(t, "cmake --build /b --target slang", Build("/b", "slang").String())
	assert.Equal(t, "cmake --build /b", Build("/b", "").String())
	assert.Equal(t, "cmake --install /b --prefix /p --component generators",
		Install("/b", "/p", "generators").String())
}

func TestParseExtraArgs(t *testing.T) {
	args, err := ParseExtraArgs(`-DSLANG_USE_SYSTEM_LZ4=ON "-DCMAKE_C_FLAGS=-O2 -g"`)
	require.NoError(t, err)
	assert.Equal(t, []string{"-DSLANG_USE_SYSTEM_LZ4=ON", "-DCMAKE_C_FLAGS=-O2 -g"}, args)

	args, err = ParseExtraArgs("")
	require.NoError(t, err)
	assert.Nil(t, args)

	_, err = ParseExtraArgs(`"unterminated`)
	assert.Error(t, err)
}

func TestExecRunner(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}

	var out bytes.Buffer
	r := NewExecRunner(nil)
	r.Stdout = &out
	r.Stderr = &out

	err := r.Run(context.Background(), Command{
		Args: []string{"sh", "-c", "echo $SLANGDROID_PROBE"},
		Dir:  t.TempDir(),
		Env:  map[string]string{"SLANGDROID_PROBE": "hello"},
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "> Executing: sh -c echo $SLANGDROID_PROBE")
	assert.Contains(t, out.String(), "hello")

	err = r.Run(context.Background(), Command{Args: []string{"sh", "-c", "exit 3"}})
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = r.Run(ctx, Command{Args: []string{"sh", "-c", "sleep 5"}})
	assert.ErrorIs(t, err, context.Canceled)
}
