//go:build windows

package binres

import (
	"fmt"
	"os"

	"golang.org/x/sys/windows"
)

// Module is a read-only view into an executable image's resources. Entries
// written by the builder are RCDATA blobs keyed by ASCII name.
type Module struct {
	handle windows.Handle
}

// Self views the running executable's own resources.
func Self() *Module {
	return &Module{handle: 0}
}

// Open loads an arbitrary executable image as data only, so its resources can
// be read without running any of its code.
func Open(path string) (*Module, error) {
	handle, err := windows.LoadLibraryEx(path, 0, windows.LOAD_LIBRARY_AS_DATAFILE)
	if err != nil {
		return nil, fmt.Errorf("open %s as data image: %w", path, err)
	}
	return &Module{handle: handle}, nil
}

// Close frees the loaded image. Closing the self-view is a no-op.
func (m *Module) Close() error {
	if m.handle == 0 {
		return nil
	}
	return windows.FreeLibrary(m.handle)
}

// HasEntry probes for a named entry. Lookup misses of any kind read as false.
func (m *Module) HasEntry(name string) bool {
	_, err := windows.FindResource(m.handle, name, windows.RT_RCDATA)
	return err == nil
}

// ReadBytes returns the raw payload of a named entry. Absence is reported via
// found, not as an error: callers must distinguish "not present" from
// "present but empty".
func (m *Module) ReadBytes(name string) (data []byte, found bool, err error) {
	resInfo, err := windows.FindResource(m.handle, name, windows.RT_RCDATA)
	if err != nil {
		return nil, false, nil
	}

	data, err = windows.LoadResourceData(m.handle, resInfo)
	if err != nil {
		return nil, true, fmt.Errorf("load resource %s: %w", name, err)
	}

	return data, true, nil
}

// ReadString returns the decoded text payload of a named entry, assuming
// UTF-16LE code units.
func (m *Module) ReadString(name string) (text string, found bool, err error) {
	data, found, err := m.ReadBytes(name)
	if err != nil || !found {
		return "", found, err
	}
	return decodeText(data), true, nil
}

// ExtractFile materializes a named entry into a newly created file,
// overwriting destPath if it exists. Unlike the Read variants, an absent
// entry is an error here: the caller asked for something that must exist.
func (m *Module) ExtractFile(name string, destPath string) error {
	data, found, err := m.ReadBytes(name)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("resource %s not found", name)
	}

	if err := os.WriteFile(destPath, data, 0755); err != nil {
		return fmt.Errorf("extract resource %s: %w", name, err)
	}

	return nil
}
