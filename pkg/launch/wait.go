//go:build windows

package launch

import (
	"fmt"
	"log"
	"unsafe"

	"github.com/function61/gokit/logex"
	"golang.org/x/sys/windows"
)

// SupervisedWait blocks until the launched process exits and returns its exit
// code. The process is put in a job object whose closure kills every process
// still assigned to it, so if the shim dies mid-wait the target (and its
// un-broken-away descendants) goes down with it. No timeout: a shim told to
// wait, waits.
func SupervisedWait(pair *HandlePair, logger *log.Logger) (uint32, error) {
	logl := logex.Levels(logger)

	job, err := windows.CreateJobObject(nil, nil)
	if err != nil {
		// degraded: the wait still works, only the kill cascade is lost
		logl.Error.Printf("create job object: %v", err)
	} else {
		defer windows.CloseHandle(job)

		info := windows.JOBOBJECT_EXTENDED_LIMIT_INFORMATION{}
		info.BasicLimitInformation.LimitFlags = windows.JOB_OBJECT_LIMIT_KILL_ON_JOB_CLOSE |
			windows.JOB_OBJECT_LIMIT_SILENT_BREAKAWAY_OK

		if _, err := windows.SetInformationJobObject(
			job,
			windows.JobObjectExtendedLimitInformation,
			uintptr(unsafe.Pointer(&info)),
			uint32(unsafe.Sizeof(info))); err != nil {
			logl.Error.Printf("configure job object: %v", err)
		}

		if err := windows.AssignProcessToJobObject(job, pair.Process); err != nil {
			logl.Error.Printf("assign process to job object: %v", err)
		}
	}

	if _, err := windows.WaitForSingleObject(pair.Process, windows.INFINITE); err != nil {
		return 0, fmt.Errorf("wait for process exit: %w", err)
	}

	var exitCode uint32
	if err := windows.GetExitCodeProcess(pair.Process, &exitCode); err != nil {
		return 0, fmt.Errorf("get process exit code: %w", err)
	}

	return exitCode, nil
}
