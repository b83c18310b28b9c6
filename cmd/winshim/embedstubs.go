//go:build windows

package main

import (
	"fmt"
	"log"
	"os"

	"github.com/function61/gokit/logex"
	"github.com/function61/winshim/pkg/binres"
	"github.com/function61/winshim/pkg/shimcfg"
	"github.com/spf13/cobra"
)

// used at release build time to package the shim stubs inside the builder
// itself, so a single winshim.exe can unpack them without extra files on disk
func embedStubsEntry() *cobra.Command {
	return &cobra.Command{
		Use:    "embed-stubs [builder] [consoleStub] [guiStub]",
		Short:  "Embed shim stub executables into the builder binary",
		Hidden: true,
		Args:   cobra.ExactArgs(3),
		Run: func(_ *cobra.Command, args []string) {
			exitWithErrorIfErr(embedStubs(args[0], args[1], args[2], logex.StandardLogger()))
		},
	}
}

func embedStubs(builderPath string, consoleStubPath string, guiStubPath string, logger *log.Logger) error {
	for _, stub := range []struct {
		subsystem shimcfg.Subsystem
		path      string
	}{
		{shimcfg.SubsystemConsole, consoleStubPath},
		{shimcfg.SubsystemGUI, guiStubPath},
	} {
		payload, err := os.ReadFile(stub.path)
		if err != nil {
			return err
		}

		update, err := binres.BeginUpdate(builderPath, logger)
		if err != nil {
			return err
		}

		if err := update.SetBytes(stubEntryName(stub.subsystem), payload); err != nil {
			update.Discard()
			return err
		}

		if err := update.Commit(); err != nil {
			return err
		}

		logex.Levels(logger).Info.Printf("embedded %s (%d bytes)", stubEntryName(stub.subsystem), len(payload))
	}

	fmt.Println("Stubs embedded")
	return nil
}
