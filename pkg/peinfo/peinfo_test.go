package peinfo

import (
	"bytes"
	"debug/pe"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/function61/winshim/pkg/shimcfg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeMinimalPE synthesizes the smallest PE32+ image debug/pe will parse:
// DOS header, PE signature, file header, optional header, zero sections.
func writeMinimalPE(t *testing.T, subsystem uint16) string {
	t.Helper()

	buf := &bytes.Buffer{}

	dosHeader := make([]byte, 64)
	dosHeader[0] = 'M'
	dosHeader[1] = 'Z'
	binary.LittleEndian.PutUint32(dosHeader[0x3c:], 64) // e_lfanew: PE header right after us
	buf.Write(dosHeader)

	buf.WriteString("PE\x00\x00")

	fileHeader := pe.FileHeader{
		Machine:              pe.IMAGE_FILE_MACHINE_AMD64,
		NumberOfSections:     0,
		SizeOfOptionalHeader: 240, // sizeof PE32+ optional header
		Characteristics:      pe.IMAGE_FILE_EXECUTABLE_IMAGE | pe.IMAGE_FILE_LARGE_ADDRESS_AWARE,
	}
	require.NoError(t, binary.Write(buf, binary.LittleEndian, fileHeader))

	optionalHeader := pe.OptionalHeader64{
		Magic:               0x20b, // PE32+
		Subsystem:           subsystem,
		NumberOfRvaAndSizes: 16,
	}
	require.NoError(t, binary.Write(buf, binary.LittleEndian, optionalHeader))

	path := filepath.Join(t.TempDir(), "min.exe")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0755))
	return path
}

func TestSubsystemConsole(t *testing.T) {
	subsystem, err := Subsystem(writeMinimalPE(t, pe.IMAGE_SUBSYSTEM_WINDOWS_CUI))
	require.NoError(t, err)
	assert.Equal(t, shimcfg.SubsystemConsole, subsystem)
}

func TestSubsystemGUI(t *testing.T) {
	subsystem, err := Subsystem(writeMinimalPE(t, pe.IMAGE_SUBSYSTEM_WINDOWS_GUI))
	require.NoError(t, err)
	assert.Equal(t, shimcfg.SubsystemGUI, subsystem)
}

func TestSubsystemRejectsDrivers(t *testing.T) {
	_, err := Subsystem(writeMinimalPE(t, pe.IMAGE_SUBSYSTEM_NATIVE))
	assert.Error(t, err)
}

func TestSubsystemRejectsNonExecutables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("not an executable"), 0644))

	_, err := Subsystem(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "must be an executable")
}
