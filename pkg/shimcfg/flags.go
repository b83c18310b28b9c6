package shimcfg

import (
	"regexp"
	"strings"
)

// Flags are the runtime's self-identifying arguments. Anything the scanner
// doesn't recognize as a shim flag is forwarded to the target verbatim, so
// this on purpose doesn't use a regular flag parser (those either error out
// or reorder tokens they don't know about).
type Flags struct {
	Help bool
	Log  bool
	Wait bool
	Exit bool
	GUI  bool
	Noop bool

	WdPolicyOverride string
	WdPathOverride   string

	// Passthrough keeps non-shim tokens in their original order.
	Passthrough []string
}

// The historical contract (kept for shimgen compatibility): a flag matches
// "--shim[a-z]*-X[a-z]*" where X identifies it, case-insensitively. So
// --shim-log, --shimgen-log and --shim-l all mean the same thing.
var (
	reHelp = shimFlagPattern("h")
	reLog  = shimFlagPattern("l")
	reWait = shimFlagPattern("w")
	reExit = shimFlagPattern("e")
	reGUI  = shimFlagPattern("g")
	reNoop = shimFlagPattern("n")

	reWdPolicy = regexp.MustCompile(`(?i)^--shim[a-z]*-wdtype(=.*)?$`)
	reWdPath   = regexp.MustCompile(`(?i)^--shim[a-z]*-wdpath(=.*)?$`)

	reAnyShim = regexp.MustCompile(`(?i)^--shim.*$`)
)

func shimFlagPattern(letter string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)^--shim[a-z]*-` + letter + `[a-z]*$`)
}

// ScanArgs splits argv (without the program name) into shim flags and
// passthrough arguments. Valued flags accept both "--shim-wdtype=APP" and
// "--shim-wdtype APP". An unrecognized --shim* token requests help, same as
// the original behavior.
func ScanArgs(args []string) Flags {
	flags := Flags{}

	for i := 0; i < len(args); i++ {
		arg := args[i]

		// valued flags first: --shim-wdtype would otherwise match the
		// single-letter wait pattern
		if reWdPolicy.MatchString(arg) {
			flags.WdPolicyOverride, i = flagValue(arg, args, i)
			continue
		}
		if reWdPath.MatchString(arg) {
			flags.WdPathOverride, i = flagValue(arg, args, i)
			continue
		}

		switch {
		case reHelp.MatchString(arg):
			flags.Help = true
		case reLog.MatchString(arg):
			flags.Log = true
		case reWait.MatchString(arg):
			flags.Wait = true
		case reExit.MatchString(arg):
			flags.Exit = true
		case reGUI.MatchString(arg):
			flags.GUI = true
		case reNoop.MatchString(arg):
			flags.Noop = true
		case reAnyShim.MatchString(arg):
			flags.Help = true
		default:
			flags.Passthrough = append(flags.Passthrough, arg)
		}
	}

	return flags
}

func flagValue(arg string, args []string, i int) (string, int) {
	if idx := strings.IndexByte(arg, '='); idx != -1 {
		return arg[idx+1:], i
	}
	if i+1 < len(args) {
		return args[i+1], i + 1
	}
	return "", i
}
