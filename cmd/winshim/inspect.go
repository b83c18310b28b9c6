//go:build windows

package main

import (
	"fmt"

	"github.com/function61/winshim/pkg/binres"
	"github.com/function61/winshim/pkg/shimcfg"
	"github.com/scylladb/termtables"
	"github.com/spf13/cobra"
)

func inspectEntry() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [shim]",
		Short: "Show the configuration embedded in a shim",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			exitWithErrorIfErr(inspectShim(args[0]))
		},
	}
}

func inspectShim(path string) error {
	module, err := binres.Open(path)
	if err != nil {
		return err
	}
	defer module.Close()

	entriesTbl := termtables.CreateTable()
	entriesTbl.AddHeaders("Entry", "Present", "Value")

	entryNames := []string{
		shimcfg.EntryTargetPath,
		shimcfg.EntrySubsystem,
		shimcfg.EntryExtraArgs,
		shimcfg.EntryWdPolicy,
		shimcfg.EntryWdPath,
	}

	foundAny := false
	for _, name := range entryNames {
		value, found, err := module.ReadString(name)
		if err != nil {
			return err
		}

		if found {
			foundAny = true
			entriesTbl.AddRow(name, "yes", value)
		} else {
			entriesTbl.AddRow(name, "no", "")
		}
	}

	fmt.Println(entriesTbl.Render())

	if !foundAny {
		return fmt.Errorf("%s carries no shim configuration - not a shim?", path)
	}

	return nil
}
