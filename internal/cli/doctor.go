// internal/cli/doctor.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arc-language/slangdroid/pkg/ndk"
	"github.com/arc-language/slangdroid/pkg/platform"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that this host can build Slang for Android",
	Long:  `Report the host platform, build tools, Developer Mode state and the NDK that would be used.`,
	Args:  cobra.NoArgs,
	RunE:  runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	plat, err := platform.Detect()
	if err != nil {
		return fmt.Errorf("detecting platform: %w", err)
	}

	fmt.Printf("Host: %s/%s\n\n", plat.OS, plat.Arch)

	for _, tool := range plat.Tools {
		ok("%s found", tool)
	}
	for _, tool := range plat.Missing {
		fail("%s not found on PATH", tool)
	}

	if plat.NeedsDeveloperMode() {
		if plat.DeveloperMode {
			ok("Developer Mode enabled")
		} else {
			fail("Developer Mode disabled (Settings > System > For developers)")
		}
	}

	var located *ndk.NDK
	if config.NDKPath != "" {
		located, err = ndk.FromPath(config.NDKPath)
	} else {
		located, err = ndk.Locate(ndk.HostEnv())
	}
	if err != nil {
		fail("%v", err)
		return nil
	}

	rev, err := located.Revision()
	if err != nil {
		rev = "unknown revision"
	}
	ok("NDK %s (%s)", located.Path, rev)

	if tc, err := located.ToolchainFile(); err != nil {
		fail("%v", err)
	} else {
		ok("Toolchain file %s", tc)
	}

	return nil
}
