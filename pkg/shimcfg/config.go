// Package shimcfg models the configuration a shim carries in its resource
// section and the rules for resolving it against runtime flags.
package shimcfg

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// resource entry names. these are the public contract of a shim image -
// resource editors rely on them, so they never change.
const (
	EntryTargetPath = "SHIM_PATH"
	EntryExtraArgs  = "SHIM_ARGS"
	EntrySubsystem  = "SHIM_TYPE"
	EntryWdPolicy   = "WD_TYPE"
	EntryWdPath     = "WD_PATH"
)

type Subsystem string

const (
	SubsystemConsole Subsystem = "CONSOLE"
	SubsystemGUI     Subsystem = "GUI"
)

func ParseSubsystem(input string) (Subsystem, error) {
	switch Subsystem(strings.ToUpper(input)) {
	case SubsystemConsole:
		return SubsystemConsole, nil
	case SubsystemGUI:
		return SubsystemGUI, nil
	default:
		return "", fmt.Errorf("unknown shim type: %q", input)
	}
}

// WdPolicy selects which directory the target process starts in.
type WdPolicy string

const (
	WdCmd  WdPolicy = "CMD"  // directory the shim was invoked from
	WdApp  WdPolicy = "APP"  // target executable's directory
	WdShim WdPolicy = "SHIM" // shim's own directory
	WdPath WdPolicy = "PATH" // explicit directory from WD_PATH
)

func ParseWdPolicy(input string) (WdPolicy, error) {
	switch WdPolicy(strings.ToUpper(input)) {
	case WdCmd:
		return WdCmd, nil
	case WdApp:
		return WdApp, nil
	case WdShim:
		return WdShim, nil
	case WdPath:
		return WdPath, nil
	default:
		return "", fmt.Errorf("WD_TYPE must be CMD, APP, SHIM or PATH (got %q)", input)
	}
}

// DefaultWdPolicy is what the builder stamps when the user didn't choose:
// console shims inherit the caller's directory, GUI shims start in the
// target's own directory.
func DefaultWdPolicy(subsystem Subsystem) WdPolicy {
	if subsystem == SubsystemGUI {
		return WdApp
	}
	return WdCmd
}

// Config is the semantic object assembled from a shim's embedded entries.
type Config struct {
	TargetPath string
	Subsystem  Subsystem
	ExtraArgs  string
	WdPolicy   WdPolicy
	WdPath     string
}

var (
	ErrNoTargetPath  = errors.New("shim has no application path - shim is no longer valid and must be regenerated")
	ErrTargetMissing = errors.New("shim application path does not exist - shim is no longer valid and must be regenerated")
	ErrTargetIsSelf  = errors.New("shim points to itself - shim is no longer valid and must be regenerated")
)

// ValidateTarget checks the embedded target against the shim's own path.
// All of these are configuration errors: they fire before any process is
// created and are never retried.
func ValidateTarget(targetPath string, ownPath string) error {
	if targetPath == "" {
		return ErrNoTargetPath
	}

	targetInfo, err := os.Stat(targetPath)
	if err != nil {
		return ErrTargetMissing
	}

	if ownInfo, err := os.Stat(ownPath); err == nil && os.SameFile(targetInfo, ownInfo) {
		return ErrTargetIsSelf
	}

	return nil
}

// MergeArgs appends caller-supplied arguments after the embedded ones.
func MergeArgs(embedded string, caller []string) string {
	callerJoined := strings.Join(caller, " ")

	switch {
	case embedded == "":
		return callerJoined
	case callerJoined == "":
		return embedded
	default:
		return embedded + " " + callerJoined
	}
}
