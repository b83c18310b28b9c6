//go:build windows

package main

import (
	"fmt"
	"io"

	"github.com/function61/gokit/dynversion"
)

func printHelp(out io.Writer) {
	fmt.Fprintf(out, `This is an application shim (winshim v%s): it launches another executable
that was recorded inside this file when the shim was created. Run it with
--shim-noop to see which one.

Shim flags are consumed by the shim itself; every other argument is passed to
the target unchanged. Flags are case-insensitive and match the pattern
--shim[a-z]*-<letter>[a-z]*, so the --shimgen aliases keep working.

    --shim-help     Show this help and exit without running the target.

    --shim-log      Diagnostic messages to the console. Without a console
                    (GUI shims) a <shim path>.SHIM.LOG file is written instead.
                    (alias --shimgen-log)

    --shim-wait     Wait for the target to exit and return its exit code.
                    Default for console shims. Cannot be combined with
                    --shim-exit or --shim-gui. (alias --shimgen-waitforexit)

    --shim-exit     Exit immediately after the target process is created.
                    Default for GUI shims. (alias --shimgen-exit)

    --shim-gui      Behave as if the target were a GUI application; same
                    effect as --shim-exit. (alias --shimgen-gui)

    --shim-wdtype TYPE
                    Override the working directory policy: CMD (directory the
                    shim is run from), APP (target's directory), SHIM (shim's
                    directory) or PATH (directory given by --shim-wdpath).

    --shim-wdpath PATH
                    Working directory to use when the policy is PATH.

    --shim-noop     Resolve and log everything but create no process.
                    (alias --shimgen-noop)
`, dynversion.Version)
}
