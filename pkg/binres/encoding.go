// Package binres reads and writes named configuration blobs in the resource
// section of a Windows executable image, and copies icon/version resource
// subtrees between images.
package binres

import (
	"encoding/binary"
	"unicode/utf16"
)

// Text entries are stored as UTF-16LE code units with no BOM and no
// terminator, matching what resource editors show for RCDATA strings.

func encodeText(text string) []byte {
	units := utf16.Encode([]rune(text))

	encoded := make([]byte, len(units)*2)
	for i, unit := range units {
		binary.LittleEndian.PutUint16(encoded[i*2:], unit)
	}
	return encoded
}

func decodeText(data []byte) string {
	units := make([]uint16, len(data)/2) // stray trailing byte is dropped
	for i := range units {
		units[i] = binary.LittleEndian.Uint16(data[i*2:])
	}
	return string(utf16.Decode(units))
}
