//go:build windows

package binres

import (
	"os"
	"path/filepath"
	"testing"
	"unsafe"

	"github.com/function61/gokit/logex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/windows"
)

// copyTestBinary clones the running test executable, which is a valid PE
// image we're allowed to scribble resources into.
func copyTestBinary(t *testing.T) string {
	t.Helper()

	self, err := os.Executable()
	require.NoError(t, err)

	data, err := os.ReadFile(self)
	require.NoError(t, err)

	clone := filepath.Join(t.TempDir(), "clone.exe")
	require.NoError(t, os.WriteFile(clone, data, 0755))
	return clone
}

func TestEntryRoundTrip(t *testing.T) {
	image := copyTestBinary(t)

	update, err := BeginUpdate(image, logex.Discard)
	require.NoError(t, err)
	require.NoError(t, update.SetString("SHIM_PATH", `C:\APP\app.exe`))
	require.NoError(t, update.SetString("SHIM_ARGS", "--flag"))
	require.NoError(t, update.SetString("EMPTY", ""))
	require.NoError(t, update.Commit())

	module, err := Open(image)
	require.NoError(t, err)
	defer module.Close()

	text, found, err := module.ReadString("SHIM_PATH")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `C:\APP\app.exe`, text)

	// present-but-empty reads as found
	text, found, err = module.ReadString("EMPTY")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "", text)

	// absent is not an error
	_, found, err = module.ReadString("NO_SUCH_ENTRY")
	require.NoError(t, err)
	assert.False(t, found)

	assert.True(t, module.HasEntry("SHIM_ARGS"))
}

func TestDiscardLeavesImageUntouched(t *testing.T) {
	image := copyTestBinary(t)

	update, err := BeginUpdate(image, logex.Discard)
	require.NoError(t, err)
	require.NoError(t, update.SetString("DISCARDED", "value"))
	require.NoError(t, update.Discard())

	module, err := Open(image)
	require.NoError(t, err)
	defer module.Close()

	assert.False(t, module.HasEntry("DISCARDED"))
}

func TestExtractFile(t *testing.T) {
	image := copyTestBinary(t)
	payload := []byte{0x4d, 0x5a, 0x00, 0x01, 0xff}

	update, err := BeginUpdate(image, logex.Discard)
	require.NoError(t, err)
	require.NoError(t, update.SetBytes("PAYLOAD", payload))
	require.NoError(t, update.Commit())

	module, err := Open(image)
	require.NoError(t, err)
	defer module.Close()

	dest := filepath.Join(t.TempDir(), "extracted.bin")
	require.NoError(t, module.ExtractFile("PAYLOAD", dest))

	extracted, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, payload, extracted)

	assert.Error(t, module.ExtractFile("NO_SUCH_ENTRY", dest))
}

func TestCopyIconAndVersionCopiesEligibleResources(t *testing.T) {
	source := copyTestBinary(t)
	target := copyTestBinary(t)

	versionPayload := []byte{0x01, 0x02, 0x03, 0x04, 0x05}
	iconGroupPayload := []byte{0x00, 0x00, 0x01, 0x00, 0x02, 0x00}

	// a plain Go binary has no version or icon resources, so stage some into
	// the source under numeric IDs first
	stage, err := BeginUpdate(source, logex.Discard)
	require.NoError(t, err)
	require.NoError(t, updateResourceRaw(stage.handle, uintptr(windows.RT_VERSION), 1, langNeutral, versionPayload))
	require.NoError(t, updateResourceRaw(stage.handle, uintptr(windows.RT_GROUP_ICON), 7, langNeutral, iconGroupPayload))
	require.NoError(t, stage.Commit())

	src, err := Open(source)
	require.NoError(t, err)
	defer src.Close()

	update, err := BeginUpdate(target, logex.Discard)
	require.NoError(t, err)
	require.NoError(t, CopyIconAndVersion(update, src, logex.Discard))
	require.NoError(t, update.Commit())

	copied, err := Open(target)
	require.NoError(t, err)
	defer copied.Close()

	// byte-identical payloads under the identical (type, name, language)
	assert.Equal(t, versionPayload, readRawResource(t, copied, uintptr(windows.RT_VERSION), 1))
	assert.Equal(t, iconGroupPayload, readRawResource(t, copied, uintptr(windows.RT_GROUP_ICON), 7))
}

func readRawResource(t *testing.T, m *Module, resType uintptr, nameID uintptr) []byte {
	t.Helper()

	resInfo, err := findResourceEx(m.handle, resType, nameID, langNeutral)
	require.NoError(t, err)

	data, err := windows.LoadResourceData(m.handle, resInfo)
	require.NoError(t, err)
	return data
}

func TestDescribeName(t *testing.T) {
	assert.Equal(t, "#3", describeName(3))

	namePtr, err := windows.UTF16PtrFromString("APPICON")
	require.NoError(t, err)
	assert.Equal(t, "APPICON", describeName(uintptr(unsafe.Pointer(namePtr))))
}

func TestCopyIconAndVersionToleratesSourceWithoutResources(t *testing.T) {
	target := copyTestBinary(t)
	source := copyTestBinary(t)

	src, err := Open(source)
	require.NoError(t, err)
	defer src.Close()

	update, err := BeginUpdate(target, logex.Discard)
	require.NoError(t, err)

	// a plain Go test binary carries no icon/version resources; the copy
	// must come back clean with nothing staged
	require.NoError(t, CopyIconAndVersion(update, src, logex.Discard))
	require.NoError(t, update.Discard())
}
