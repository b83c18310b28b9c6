//go:build windows

package launch

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")
	shell32  = windows.NewLazySystemDLL("shell32.dll")

	procSetConsoleCtrlHandler = kernel32.NewProc("SetConsoleCtrlHandler")
	procShellExecuteExW       = shell32.NewProc("ShellExecuteExW")
)

const (
	seeMaskNoCloseProcess = 0x00000040
	swShow                = 5
)

// shellExecuteInfo is SHELLEXECUTEINFOW.
type shellExecuteInfo struct {
	cbSize         uint32
	fMask          uint32
	hwnd           windows.Handle
	lpVerb         *uint16
	lpFile         *uint16
	lpParameters   *uint16
	lpDirectory    *uint16
	nShow          int32
	hInstApp       windows.Handle
	lpIDList       uintptr
	lpClass        *uint16
	hkeyClass      windows.Handle
	dwHotKey       uint32
	hIconOrMonitor windows.Handle
	hProcess       windows.Handle
}

// shellExecuteEx launches file through the shell, asking for the process
// handle back. The shell performs the elevation prompt when the target's
// manifest requires it, at the cost of a new window and no suspended start.
func shellExecuteEx(file string, parameters string, directory string) (windows.Handle, error) {
	info := shellExecuteInfo{
		fMask: seeMaskNoCloseProcess,
		nShow: swShow,
	}
	info.cbSize = uint32(unsafe.Sizeof(info))

	var err error
	if info.lpFile, err = windows.UTF16PtrFromString(file); err != nil {
		return 0, err
	}
	if parameters != "" {
		if info.lpParameters, err = windows.UTF16PtrFromString(parameters); err != nil {
			return 0, err
		}
	}
	if directory != "" {
		if info.lpDirectory, err = windows.UTF16PtrFromString(directory); err != nil {
			return 0, err
		}
	}

	ret, _, callErr := procShellExecuteExW.Call(uintptr(unsafe.Pointer(&info)))
	if ret == 0 {
		return 0, callErr
	}

	return info.hProcess, nil
}

func setConsoleCtrlHandler(handler uintptr, add bool) error {
	var addArg uintptr
	if add {
		addArg = 1
	}

	ret, _, err := procSetConsoleCtrlHandler.Call(handler, addArg)
	if ret == 0 {
		return err
	}
	return nil
}
