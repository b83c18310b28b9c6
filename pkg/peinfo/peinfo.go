// Package peinfo answers the one question the builder has about a target
// executable: which Windows subsystem was it linked for.
package peinfo

import (
	"debug/pe"
	"fmt"

	"github.com/function61/winshim/pkg/shimcfg"
)

// Subsystem reports whether the executable at path is a console or GUI
// application, read from its PE optional header. Anything that doesn't parse
// as a PE image is rejected: shims to non-executable targets aren't supported.
func Subsystem(path string) (shimcfg.Subsystem, error) {
	file, err := pe.Open(path)
	if err != nil {
		return "", fmt.Errorf("%s must be an executable: %w", path, err)
	}
	defer file.Close()

	var subsystem uint16
	switch header := file.OptionalHeader.(type) {
	case *pe.OptionalHeader32:
		subsystem = header.Subsystem
	case *pe.OptionalHeader64:
		subsystem = header.Subsystem
	default:
		return "", fmt.Errorf("%s has no optional header; object files cannot be shimmed", path)
	}

	switch subsystem {
	case pe.IMAGE_SUBSYSTEM_WINDOWS_GUI:
		return shimcfg.SubsystemGUI, nil
	case pe.IMAGE_SUBSYSTEM_WINDOWS_CUI:
		return shimcfg.SubsystemConsole, nil
	default:
		return "", fmt.Errorf("%s: unsupported PE subsystem %d", path, subsystem)
	}
}
