package shimcfg

import (
	"testing"

	"github.com/function61/gokit/assert"
)

func TestResolveWaitPolicy(t *testing.T) {
	tests := []struct {
		name      string
		flags     Flags
		subsystem Subsystem
		wait      bool
	}{
		{"console defaults to wait", Flags{}, SubsystemConsole, true},
		{"gui defaults to exit", Flags{}, SubsystemGUI, false},
		{"exit flag overrides console default", Flags{Exit: true}, SubsystemConsole, false},
		{"gui flag implies exit", Flags{GUI: true}, SubsystemConsole, false},
		{"wait flag overrides gui default", Flags{Wait: true}, SubsystemGUI, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			wait, err := ResolveWaitPolicy(test.flags, test.subsystem)
			assert.Ok(t, err)
			assert.Assert(t, wait == test.wait)
		})
	}
}

func TestResolveWaitPolicyConflict(t *testing.T) {
	// conflicting flags fail no matter the subsystem
	for _, subsystem := range []Subsystem{SubsystemConsole, SubsystemGUI} {
		_, err := ResolveWaitPolicy(Flags{Wait: true, Exit: true}, subsystem)
		assert.Assert(t, err == ErrWaitExitConflict)

		_, err = ResolveWaitPolicy(Flags{Wait: true, GUI: true}, subsystem)
		assert.Assert(t, err == ErrWaitExitConflict)
	}
}

func TestResolveWorkingDir(t *testing.T) {
	dirs := Dirs{
		Current: `C:\invoked-from`,
		Shim:    `C:\shims`,
		Target:  `C:\apps\foo`,
	}

	assert.EqualString(t, ResolveWorkingDir(WdCmd, "", dirs), `C:\invoked-from`)
	assert.EqualString(t, ResolveWorkingDir(WdApp, "", dirs), `C:\apps\foo`)
	assert.EqualString(t, ResolveWorkingDir(WdShim, "", dirs), `C:\shims`)
	assert.EqualString(t, ResolveWorkingDir(WdPath, `D:\explicit`, dirs), `D:\explicit`)

	// PATH with no path falls back to the shim's directory
	assert.EqualString(t, ResolveWorkingDir(WdPath, "", dirs), `C:\shims`)

	// old shims without a WD_TYPE entry behave like SHIM
	assert.EqualString(t, ResolveWorkingDir(WdPolicy(""), "", dirs), `C:\shims`)
}

func TestResolveWdOverrides(t *testing.T) {
	policy, path, err := ResolveWdOverrides(Flags{}, WdCmd, "")
	assert.Ok(t, err)
	assert.Assert(t, policy == WdCmd)
	assert.EqualString(t, path, "")

	policy, path, err = ResolveWdOverrides(
		Flags{WdPolicyOverride: "path", WdPathOverride: `D:\o`},
		WdCmd,
		"")
	assert.Ok(t, err)
	assert.Assert(t, policy == WdPath)
	assert.EqualString(t, path, `D:\o`)

	_, _, err = ResolveWdOverrides(Flags{WdPolicyOverride: "BOGUS"}, WdCmd, "")
	assert.Assert(t, err != nil)
}
