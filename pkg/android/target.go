// pkg/android/target.go
package android

import (
	"debug/elf"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrUnknownABI indicates the ABI is not one the NDK can target
	ErrUnknownABI = errors.New("unknown android abi")

	// ErrUnsupportedPlatform indicates the API level is below the NDK floor
	ErrUnsupportedPlatform = errors.New("unsupported android platform")
)

// ABI is an Android application binary interface name
type ABI string

const (
	ABIArm64  ABI = "arm64-v8a"
	ABIArmV7  ABI = "armeabi-v7a"
	ABIX86    ABI = "x86"
	ABIX86_64 ABI = "x86_64"
)

const (
	DefaultABI = ABIArm64

	// MinAPILevel is the lowest API level supported by NDK r26 and later
	MinAPILevel = 21

	DefaultAPILevel = 30
)

// abiInfo describes how each ABI maps onto compiler and ELF identifiers
var abiInfo = map[ABI]struct {
	triple  string
	machine elf.Machine
	class   elf.Class
}{
	ABIArm64:  {"aarch64-linux-android", elf.EM_AARCH64, elf.ELFCLASS64},
	ABIArmV7:  {"armv7a-linux-androideabi", elf.EM_ARM, elf.ELFCLASS32},
	ABIX86:    {"i686-linux-android", elf.EM_386, elf.ELFCLASS32},
	ABIX86_64: {"x86_64-linux-android", elf.EM_X86_64, elf.ELFCLASS64},
}

// ABIs returns every ABI in a stable order
func ABIs() []ABI {
	return []ABI{ABIArm64, ABIArmV7, ABIX86, ABIX86_64}
}

// ParseABI validates an ABI name
func ParseABI(s string) (ABI, error) {
	abi := ABI(strings.TrimSpace(s))
	if _, ok := abiInfo[abi]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownABI, s)
	}
	return abi, nil
}

// Triple returns the clang target triple for the ABI
func (a ABI) Triple() string {
	return abiInfo[a].triple
}

// Machine returns the ELF machine and class a library built for the ABI carries
func (a ABI) Machine() (elf.Machine, elf.Class) {
	info := abiInfo[a]
	return info.machine, info.class
}

func (a ABI) String() string {
	return string(a)
}

// codenames maps dessert letters to their API levels.
var codenames = map[string]int{
	"L":     21,
	"L-MR1": 22,
	"M":     23,
	"N":     24,
	"N-MR1": 25,
	"O":     26,
	"O-MR1": 27,
	"P":     28,
	"Q":     29,
	"R":     30,
	"S":     31,
	"Sv2":   32,
	"T":     33,
	"U":     34,
	"V":     35,
}

// Platform is an Android API level, written android-N on the command line
type Platform int

// ParsePlatform accepts "android-30", "30", or a codename such as "android-R"
func ParsePlatform(s string) (Platform, error) {
	raw := strings.TrimSpace(s)
	name := strings.TrimPrefix(raw, "android-")

	level, err := strconv.Atoi(name)
	if err != nil {
		l, ok := codenames[name]
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrUnsupportedPlatform, s)
		}
		level = l
	}

	if level < MinAPILevel {
		return 0, fmt.Errorf("%w: %q is below api level %d", ErrUnsupportedPlatform, s, MinAPILevel)
	}
	return Platform(level), nil
}

// Level returns the numeric API level
func (p Platform) Level() int {
	return int(p)
}

func (p Platform) String() string {
	return fmt.Sprintf("android-%d", int(p))
}

// Target is the architecture and API level a build is configured for
type Target struct {
	ABI      ABI
	Platform Platform
}

// DefaultTarget returns arm64-v8a on android-30
func DefaultTarget() Target {
	return Target{ABI: DefaultABI, Platform: Platform(DefaultAPILevel)}
}

func (t Target) String() string {
	return fmt.Sprintf("%s/%s", t.ABI, t.Platform)
}
