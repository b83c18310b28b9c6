//go:build windows

// Package launch creates and supervises the shim's target process: suspended
// creation, the elevation fallback, console-signal suppression and the
// job-grouped wait.
package launch

import (
	"fmt"
	"log"
	"sync"
	"syscall"
	"unsafe"

	"github.com/function61/gokit/fileexists"
	"github.com/function61/gokit/logex"
	"golang.org/x/sys/windows"
)

// State names the stops of process creation. The happy path walks
// Suspended -> Running -> Launched; the elevation fallback jumps straight to
// Launched with reduced capability (no thread handle, no suspended start).
type State int

const (
	StateFailed State = iota
	StateSuspended
	StateRunning
	StateLaunched
)

func (s State) String() string {
	switch s {
	case StateSuspended:
		return "Suspended"
	case StateRunning:
		return "Running"
	case StateLaunched:
		return "Launched"
	default:
		return "Failed"
	}
}

// HandlePair owns the process and primary-thread handles from creation.
// Close is safe to call on every exit path, including partially-filled pairs.
type HandlePair struct {
	Process windows.Handle
	Thread  windows.Handle
}

func (p *HandlePair) Close() {
	if p.Thread != 0 {
		_ = windows.CloseHandle(p.Thread)
		p.Thread = 0
	}
	if p.Process != 0 {
		_ = windows.CloseHandle(p.Process)
		p.Process = 0
	}
}

// Result is the outcome of Launch.
type Result struct {
	Handles *HandlePair
	State   State

	// Elevated marks the fallback path: the target opened in its own window
	// and we only hold a process handle.
	Elevated bool
}

// Launch starts the target with the given argument string and working
// directory. The process is created suspended and resumed only once both
// handles are captured; the console control handler is installed right after
// the resume.
func Launch(targetPath string, argString string, workingDir string, logger *log.Logger) (*Result, error) {
	logl := logex.Levels(logger)

	commandLine := windows.ComposeCommandLine([]string{targetPath})
	if argString != "" {
		commandLine += " " + argString
	}

	commandLinePtr, err := windows.UTF16PtrFromString(commandLine)
	if err != nil {
		return nil, err
	}

	var workingDirPtr *uint16
	if workingDir != "" {
		if exists, _ := fileexists.Exists(workingDir); !exists {
			logl.Info.Printf("working directory %s does not exist, process may fail to start", workingDir)
		}

		if workingDirPtr, err = windows.UTF16PtrFromString(workingDir); err != nil {
			return nil, err
		}
	}

	startupInfo := &windows.StartupInfo{}
	startupInfo.Cb = uint32(unsafe.Sizeof(*startupInfo))
	processInfo := &windows.ProcessInformation{}

	err = windows.CreateProcess(
		nil,            // no module name, use command line
		commandLinePtr, // command line
		nil,
		nil,
		true, // inherit handles
		windows.CREATE_SUSPENDED,
		nil, // parent's environment block
		workingDirPtr,
		startupInfo,
		processInfo)

	switch {
	case err == nil:
		pair := &HandlePair{Process: processInfo.Process, Thread: processInfo.Thread}

		if _, err := windows.ResumeThread(pair.Thread); err != nil {
			pair.Close()
			return &Result{State: StateFailed}, fmt.Errorf("resume target thread: %w", err)
		}

		ignoreConsoleSignals(logl)

		return &Result{Handles: pair, State: StateLaunched}, nil

	case err == windows.ERROR_ELEVATION_REQUIRED:
		// CreateProcess cannot elevate. The shell can, but it opens the
		// target in a new window: no shared console, no suspended start.
		process, err := shellExecuteEx(targetPath, argString, workingDir)
		if err != nil {
			logl.Error.Printf("unable to create elevated process: error %v", err)
			return &Result{State: StateFailed}, fmt.Errorf("create elevated process: %w", err)
		}

		ignoreConsoleSignals(logl)

		return &Result{
			Handles:  &HandlePair{Process: process},
			State:    StateLaunched,
			Elevated: true,
		}, nil

	default:
		logl.Error.Printf("could not create process with command: '%s'", commandLine)
		return &Result{State: StateFailed}, fmt.Errorf("create process: %w", err)
	}
}

var installCtrlHandlerOnce sync.Once

// ignoreConsoleSignals makes the shim deaf to every console control event so
// the events reach the child through normal console group delivery instead of
// tearing the shim down first.
func ignoreConsoleSignals(logl *logex.Leveled) {
	installCtrlHandlerOnce.Do(func() {
		handler := syscall.NewCallback(func(ctrlType uintptr) uintptr {
			switch ctrlType {
			case windows.CTRL_C_EVENT,
				windows.CTRL_BREAK_EVENT,
				windows.CTRL_CLOSE_EVENT,
				windows.CTRL_LOGOFF_EVENT,
				windows.CTRL_SHUTDOWN_EVENT:
				return 1 // handled: i.e. ignored, the child decides
			default:
				return 0
			}
		})

		if err := setConsoleCtrlHandler(handler, true); err != nil {
			logl.Info.Printf("could not set control handler; Ctrl-C behavior may be invalid: %v", err)
		}
	})
}
