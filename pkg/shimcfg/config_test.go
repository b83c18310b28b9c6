package shimcfg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/function61/gokit/assert"
)

func TestParseSubsystem(t *testing.T) {
	subsystem, err := ParseSubsystem("console")
	assert.Ok(t, err)
	assert.Assert(t, subsystem == SubsystemConsole)

	subsystem, err = ParseSubsystem("GUI")
	assert.Ok(t, err)
	assert.Assert(t, subsystem == SubsystemGUI)

	_, err = ParseSubsystem("TUI")
	assert.Assert(t, err != nil)
}

func TestParseWdPolicy(t *testing.T) {
	for _, valid := range []string{"cmd", "APP", "Shim", "PATH"} {
		_, err := ParseWdPolicy(valid)
		assert.Ok(t, err)
	}

	_, err := ParseWdPolicy("HOME")
	assert.EqualString(t, err.Error(), `WD_TYPE must be CMD, APP, SHIM or PATH (got "HOME")`)
}

func TestDefaultWdPolicy(t *testing.T) {
	assert.Assert(t, DefaultWdPolicy(SubsystemConsole) == WdCmd)
	assert.Assert(t, DefaultWdPolicy(SubsystemGUI) == WdApp)
}

func TestMergeArgs(t *testing.T) {
	assert.EqualString(t, MergeArgs("", nil), "")
	assert.EqualString(t, MergeArgs("--flag", nil), "--flag")
	assert.EqualString(t, MergeArgs("", []string{"X", "Y"}), "X Y")
	assert.EqualString(t, MergeArgs("--flag", []string{"X"}), "--flag X")
}

func TestValidateTarget(t *testing.T) {
	tempDir := t.TempDir()

	target := filepath.Join(tempDir, "app.exe")
	assert.Ok(t, os.WriteFile(target, []byte("MZ"), 0755))

	shim := filepath.Join(tempDir, "shim.exe")
	assert.Ok(t, os.WriteFile(shim, []byte("MZ"), 0755))

	assert.Assert(t, ValidateTarget("", shim) == ErrNoTargetPath)
	assert.Assert(t, ValidateTarget(filepath.Join(tempDir, "gone.exe"), shim) == ErrTargetMissing)
	assert.Assert(t, ValidateTarget(shim, shim) == ErrTargetIsSelf)
	assert.Ok(t, ValidateTarget(target, shim))
}
