package shimcfg

import (
	"errors"
)

var ErrWaitExitConflict = errors.New("SHIM-WAIT cannot be used with SHIM-EXIT or SHIM-GUI")

// ResolveWaitPolicy decides whether the shim blocks on the target. Precedence,
// highest first:
//
//  1. explicit exit flag (--shim-exit, or --shim-gui which implies it)
//  2. explicit wait flag (--shim-wait)
//  3. the shim's embedded subsystem: console shims wait, GUI shims exit
//
// Asking for both at once is a configuration error, rejected before any
// process is created.
func ResolveWaitPolicy(flags Flags, subsystem Subsystem) (wait bool, err error) {
	exit := flags.Exit || flags.GUI

	if exit && flags.Wait {
		return false, ErrWaitExitConflict
	}

	switch {
	case exit:
		return false, nil
	case flags.Wait:
		return true, nil
	default:
		return subsystem == SubsystemConsole, nil
	}
}

// Dirs are the three directories a working-directory policy can refer to,
// captured once at startup.
type Dirs struct {
	Current string // where the shim was invoked from
	Shim    string // the shim executable's directory
	Target  string // the target executable's directory
}

// ResolveWorkingDir maps a policy to a concrete directory. A PATH policy with
// no path falls back to the shim's directory rather than failing; shims
// already in the field rely on that.
func ResolveWorkingDir(policy WdPolicy, wdPath string, dirs Dirs) string {
	switch policy {
	case WdCmd:
		return dirs.Current
	case WdApp:
		return dirs.Target
	case WdPath:
		if wdPath == "" {
			return dirs.Shim
		}
		return wdPath
	default: // WdShim, or an absent/unknown entry in an old shim
		return dirs.Shim
	}
}

// ResolveWdOverrides applies runtime flag overrides on top of the embedded
// working-directory entries. Precedence per field: runtime flag > embedded
// entry. An invalid override policy is a configuration error.
func ResolveWdOverrides(flags Flags, embeddedPolicy WdPolicy, embeddedPath string) (WdPolicy, string, error) {
	policy := embeddedPolicy
	path := embeddedPath

	if flags.WdPolicyOverride != "" {
		parsed, err := ParseWdPolicy(flags.WdPolicyOverride)
		if err != nil {
			return "", "", err
		}
		policy = parsed
	}

	if flags.WdPathOverride != "" {
		path = flags.WdPathOverride
	}

	return policy, path, nil
}
