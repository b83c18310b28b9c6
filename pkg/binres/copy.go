//go:build windows

package binres

import (
	"fmt"
	"log"
	"sync"
	"syscall"
	"unsafe"

	"github.com/function61/gokit/logex"
	"golang.org/x/sys/windows"
)

// Shims inherit only the target's visual identity. Everything else
// (manifests, dialogs, string tables, ...) is skipped on purpose.
var eligibleTypes = map[uintptr]string{
	uintptr(windows.RT_ICON):       "ICON",
	uintptr(windows.RT_GROUP_ICON): "ICON GROUP",
	uintptr(windows.RT_VERSION):    "VERSION",
}

// copyContext travels through the nested enumeration callbacks. Win32 only
// hands callbacks a LONG_PTR, so contexts are parked in a registry and the
// token rides in lParam; the callbacks never touch package-global handles.
type copyContext struct {
	update *Update
	logl   *logex.Leveled
	err    error // first leaf failure; enumeration still runs to completion
}

var copyCalls = struct {
	sync.Mutex
	nextToken uintptr
	inflight  map[uintptr]*copyContext
}{inflight: map[uintptr]*copyContext{}}

func registerCopyContext(ctx *copyContext) uintptr {
	copyCalls.Lock()
	defer copyCalls.Unlock()

	copyCalls.nextToken++
	copyCalls.inflight[copyCalls.nextToken] = ctx
	return copyCalls.nextToken
}

func copyContextFor(token uintptr) *copyContext {
	copyCalls.Lock()
	defer copyCalls.Unlock()

	return copyCalls.inflight[token]
}

func unregisterCopyContext(token uintptr) {
	copyCalls.Lock()
	defer copyCalls.Unlock()

	delete(copyCalls.inflight, token)
}

// syscall.NewCallback allocations are process-lifetime, so make each exactly once.
var (
	callbackOnce  sync.Once
	typesCallback uintptr
	namesCallback uintptr
	langsCallback uintptr
)

func copyCallbacks() (types, names, langs uintptr) {
	callbackOnce.Do(func() {
		typesCallback = syscall.NewCallback(onEnumType)
		namesCallback = syscall.NewCallback(onEnumName)
		langsCallback = syscall.NewCallback(onEnumLanguage)
	})
	return typesCallback, namesCallback, langsCallback
}

func onEnumType(module uintptr, resType uintptr, lParam uintptr) uintptr {
	if _, eligible := eligibleTypes[resType]; eligible {
		_, names, _ := copyCallbacks()
		_ = enumResourceNames(windows.Handle(module), resType, names, lParam)
	}
	return 1 // continue with remaining types
}

func onEnumName(module uintptr, resType uintptr, name uintptr, lParam uintptr) uintptr {
	_, _, langs := copyCallbacks()
	_ = enumResourceLanguages(windows.Handle(module), resType, name, langs, lParam)
	return 1
}

func onEnumLanguage(module uintptr, resType uintptr, name uintptr, language uintptr, lParam uintptr) uintptr {
	ctx := copyContextFor(lParam)
	if ctx == nil {
		return 0
	}

	copyOne := func() error {
		resInfo, err := findResourceEx(windows.Handle(module), resType, name, uint16(language))
		if err != nil {
			return fmt.Errorf("find: %w", err)
		}

		data, err := windows.LoadResourceData(windows.Handle(module), resInfo)
		if err != nil {
			return fmt.Errorf("load: %w", err)
		}

		// same (type, name, language) identity in the target, raw pointers
		// passed through so string names survive untouched
		if err := updateResourceRaw(ctx.update.handle, resType, name, uint16(language), data); err != nil {
			return fmt.Errorf("update: %w", err)
		}

		return nil
	}

	if err := copyOne(); err != nil {
		ctx.logl.Error.Printf("copy %s resource %s: %v", eligibleTypes[resType], describeName(name), err)
		if ctx.err == nil {
			ctx.err = fmt.Errorf("copy %s resource %s: %w", eligibleTypes[resType], describeName(name), err)
		}
	} else {
		ctx.logl.Debug.Printf("copied %s resource %s", eligibleTypes[resType], describeName(name))
	}

	return 1
}

// describeName renders a resource name, which is either a numeric ID or a
// pointer to a UTF-16 string (IS_INTRESOURCE semantics).
func describeName(name uintptr) string {
	if name>>16 == 0 {
		return fmt.Sprintf("#%d", name)
	}
	return windows.UTF16PtrToString(nameAsString(name))
}

// nameAsString reinterprets an enumeration-provided LONG_PTR as the string
// pointer it is. The pointer is OS memory, valid for the callback's duration,
// and never a Go pointer round-tripped through uintptr.
func nameAsString(name uintptr) *uint16 {
	return (*uint16)(*(*unsafe.Pointer)(unsafe.Pointer(&name)))
}

// CopyIconAndVersion stages the source image's icon, icon-group and
// version-info resources into an open update transaction, identities
// preserved. The caller commits; a failed leaf doesn't abort the rest.
func CopyIconAndVersion(update *Update, src *Module, logger *log.Logger) error {
	ctx := &copyContext{
		update: update,
		logl:   logex.Levels(logger),
	}

	token := registerCopyContext(ctx)
	defer unregisterCopyContext(token)

	types, _, _ := copyCallbacks()
	if err := enumResourceTypes(src.handle, types, token); err != nil {
		// a source with no resource section at all just means nothing to copy
		if err == windows.ERROR_RESOURCE_DATA_NOT_FOUND || err == windows.ERROR_RESOURCE_TYPE_NOT_FOUND {
			return ctx.err
		}
		return fmt.Errorf("enumerate source resources: %w", err)
	}

	return ctx.err
}
