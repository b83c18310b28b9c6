//go:build windows

// The shim runtime: a stub executable that reads its target and launch
// configuration out of its own resource section, starts the target and
// forwards or suppresses exit codes and console signals as configured.
//
// This binary is compiled twice at release time (console subsystem and, via
// -ldflags "-H=windowsgui", GUI subsystem) and both images are embedded into
// the winshim builder as the SHIM_CONSOLE / SHIM_GUI template payloads.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/function61/gokit/dynversion"
	"github.com/function61/gokit/logex"
	"github.com/function61/winshim/pkg/binres"
	"github.com/function61/winshim/pkg/launch"
	"github.com/function61/winshim/pkg/shimcfg"
)

func main() {
	os.Exit(shimMain(os.Args[1:]))
}

func shimMain(args []string) int {
	flags := shimcfg.ScanArgs(args)

	if flags.Help {
		printHelp(os.Stdout)
		return 0
	}

	// noop is a diagnostic run, so it implies logging
	flags.Log = flags.Log || flags.Noop

	shimPath, err := os.Executable()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot resolve own path: %v\n", err)
		return 1
	}
	shimDir := filepath.Dir(shimPath)

	currentDir, err := os.Getwd()
	if err != nil {
		currentDir = shimDir
	}

	logger := newShimLogger(flags.Log, shimPath)
	logl := logex.Levels(logger)
	logl.Error = errorLoggerFor(flags.Log, logger, os.Stderr)

	logl.Info.Printf("%s - shim built with winshim (v%s)", strings.ToUpper(filepath.Base(shimPath)), dynversion.Version)
	logl.Info.Printf("shim path:    '%s'", shimDir)
	logl.Info.Printf("current path: '%s'", currentDir)
	logl.Debug.Printf(
		"flags: log=%t noop=%t exit=%t wait=%t gui=%t wdtype=%q wdpath=%q args=%q",
		flags.Log, flags.Noop, flags.Exit, flags.Wait, flags.GUI,
		flags.WdPolicyOverride, flags.WdPathOverride, strings.Join(flags.Passthrough, " "))

	// conflicting flags are rejected before anything else happens, so get the
	// subsystem first and resolve the policy up front
	self := binres.Self()

	subsystem := shimcfg.SubsystemGUI // unknown SHIM_TYPE behaves like GUI, as always
	if text, found, _ := self.ReadString(shimcfg.EntrySubsystem); found {
		if parsed, err := shimcfg.ParseSubsystem(text); err == nil {
			subsystem = parsed
		}
	}

	wait, err := shimcfg.ResolveWaitPolicy(flags, subsystem)
	if err != nil {
		logl.Error.Println(err)
		return 1
	}

	targetPath, _, err := self.ReadString(shimcfg.EntryTargetPath)
	if err != nil {
		logl.Error.Printf("read embedded config: %v", err)
		return 1
	}

	if err := shimcfg.ValidateTarget(targetPath, shimPath); err != nil {
		logl.Error.Println(err)
		return 1
	}

	embeddedArgs, _, _ := self.ReadString(shimcfg.EntryExtraArgs)
	wdPolicyText, _, _ := self.ReadString(shimcfg.EntryWdPolicy)
	embeddedWdPath, _, _ := self.ReadString(shimcfg.EntryWdPath)

	wdPolicy, wdPath, err := shimcfg.ResolveWdOverrides(
		flags,
		shimcfg.WdPolicy(strings.ToUpper(wdPolicyText)),
		embeddedWdPath)
	if err != nil {
		logl.Error.Println(err)
		return 1
	}

	mergedArgs := shimcfg.MergeArgs(embeddedArgs, flags.Passthrough)

	workingDir := shimcfg.ResolveWorkingDir(wdPolicy, wdPath, shimcfg.Dirs{
		Current: currentDir,
		Shim:    shimDir,
		Target:  filepath.Dir(targetPath),
	})

	logl.Info.Printf("shim type:    %s", subsystem)
	if wait {
		logl.Info.Printf("waiting for process to finish")
	} else {
		logl.Info.Printf("exiting immediately once started")
	}
	logl.Info.Printf("creating process for application")
	logl.Info.Printf("  APP: '%s'", targetPath)
	logl.Info.Printf("  ARG: '%s'", mergedArgs)
	logl.Info.Printf("  DIR: '%s'", workingDir)

	if flags.Noop {
		logl.Info.Printf("shim exiting: noop")
		return 0
	}

	result, err := launch.Launch(targetPath, mergedArgs, workingDir, logger)
	if err != nil {
		logl.Error.Println(err)
		return 1
	}
	defer result.Handles.Close()

	if result.Elevated {
		logl.Info.Printf("target required elevation; launched via shell in a new window")
	}

	if !wait {
		logl.Info.Printf("shim exiting: 0 (not waiting)")
		return 0
	}

	exitCode, err := launch.SupervisedWait(result.Handles, logger)
	if err != nil {
		logl.Error.Println(err)
		return 1
	}

	logl.Info.Printf("shim exiting: %d", exitCode)
	return int(exitCode)
}
