//go:build windows

package main

import (
	"fmt"
	"io"

	"github.com/function61/gokit/atomicfilewrite"
	"github.com/function61/winshim/pkg/binres"
	"github.com/function61/winshim/pkg/shimcfg"
)

// unpackTemplate materializes one of the prebuilt shim stubs (carried in the
// builder's own resources) at outputPath, overwriting what's there. The write
// is atomic so a failed build never leaves a half-written shim behind.
func unpackTemplate(outputPath string, subsystem shimcfg.Subsystem) error {
	payloadName := stubEntryName(subsystem)

	payload, found, err := binres.Self().ReadBytes(payloadName)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf(
			"template payload %s not embedded - this winshim binary is corrupted or wasn't packaged with embed-stubs",
			payloadName)
	}

	return atomicfilewrite.Write(outputPath, func(output io.Writer) error {
		_, err := output.Write(payload)
		return err
	})
}

func stubEntryName(subsystem shimcfg.Subsystem) string {
	return "SHIM_" + string(subsystem)
}
