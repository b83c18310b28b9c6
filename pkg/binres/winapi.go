//go:build windows

package binres

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// Resource enumeration and updating aren't wrapped by x/sys/windows, so
// these few kernel32 entry points are bound here directly.
var (
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procEnumResourceTypesW     = kernel32.NewProc("EnumResourceTypesW")
	procEnumResourceNamesW     = kernel32.NewProc("EnumResourceNamesW")
	procEnumResourceLanguagesW = kernel32.NewProc("EnumResourceLanguagesW")
	procFindResourceExW        = kernel32.NewProc("FindResourceExW")
	procBeginUpdateResourceW   = kernel32.NewProc("BeginUpdateResourceW")
	procUpdateResourceW        = kernel32.NewProc("UpdateResourceW")
	procEndUpdateResourceW     = kernel32.NewProc("EndUpdateResourceW")
)

func beginUpdateResource(path string, deleteExisting bool) (windows.Handle, error) {
	pathPtr, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return 0, err
	}

	var deleteArg uintptr
	if deleteExisting {
		deleteArg = 1
	}

	ret, _, callErr := procBeginUpdateResourceW.Call(
		uintptr(unsafe.Pointer(pathPtr)),
		deleteArg)
	if ret == 0 {
		return 0, callErr
	}
	return windows.Handle(ret), nil
}

func endUpdateResource(update windows.Handle, discard bool) error {
	var discardArg uintptr
	if discard {
		discardArg = 1
	}

	ret, _, err := procEndUpdateResourceW.Call(uintptr(update), discardArg)
	if ret == 0 {
		return err
	}
	return nil
}

// updateResourceNamed writes/overwrites an RCDATA entry keyed by name.
func updateResourceNamed(update windows.Handle, name string, language uint16, data []byte) error {
	namePtr, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return err
	}

	var base uintptr
	if len(data) > 0 {
		base = uintptr(unsafe.Pointer(&data[0]))
	}

	ret, _, callErr := procUpdateResourceW.Call(
		uintptr(update),
		uintptr(windows.RT_RCDATA),
		uintptr(unsafe.Pointer(namePtr)),
		uintptr(language),
		base,
		uintptr(len(data)))
	if ret == 0 {
		return callErr
	}
	return nil
}

func enumResourceTypes(module windows.Handle, callback uintptr, lParam uintptr) error {
	ret, _, err := procEnumResourceTypesW.Call(uintptr(module), callback, lParam)
	if ret == 0 {
		return err
	}
	return nil
}

func enumResourceNames(module windows.Handle, resType uintptr, callback uintptr, lParam uintptr) error {
	ret, _, err := procEnumResourceNamesW.Call(uintptr(module), resType, callback, lParam)
	if ret == 0 {
		return err
	}
	return nil
}

func enumResourceLanguages(module windows.Handle, resType uintptr, name uintptr, callback uintptr, lParam uintptr) error {
	ret, _, err := procEnumResourceLanguagesW.Call(uintptr(module), resType, name, callback, lParam)
	if ret == 0 {
		return err
	}
	return nil
}

func findResourceEx(module windows.Handle, resType uintptr, name uintptr, language uint16) (windows.Handle, error) {
	ret, _, err := procFindResourceExW.Call(uintptr(module), resType, name, uintptr(language))
	if ret == 0 {
		return 0, err
	}
	return windows.Handle(ret), nil
}

// updateResourceRaw takes the type/name exactly as enumeration handed them
// out (numeric ID or string pointer), preserving resource identity verbatim.
func updateResourceRaw(update windows.Handle, resType uintptr, name uintptr, language uint16, data []byte) error {
	var base uintptr
	if len(data) > 0 {
		base = uintptr(unsafe.Pointer(&data[0]))
	}

	ret, _, err := procUpdateResourceW.Call(
		uintptr(update),
		resType,
		name,
		uintptr(language),
		base,
		uintptr(len(data)))
	if ret == 0 {
		return err
	}
	return nil
}
