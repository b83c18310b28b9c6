//go:build windows

package main

import (
	"fmt"
	"log"
	"os"

	"github.com/function61/gokit/logex"
	"github.com/function61/winshim/pkg/binres"
	"github.com/function61/winshim/pkg/peinfo"
	"github.com/function61/winshim/pkg/shimcfg"
)

type buildRequest struct {
	InputPath  string // target executable to shim (may be relative)
	OutputPath string // where the shim goes (optional)
	ExtraArgs  string // arguments the shim always passes to the target
	Subsystem  string // CONSOLE | GUI | empty to infer from the target
	WdType     string // CMD | APP | SHIM | PATH | empty for subsystem default
	WdPath     string
}

// buildShim unpacks a template stub and stamps it with the target's identity:
// icon/version resources copied over, launch configuration embedded.
func buildShim(req buildRequest, logger *log.Logger) error {
	logl := logex.Levels(logger)

	currentDir, err := os.Getwd()
	if err != nil {
		return err
	}

	inputPath := expandPath(req.InputPath, currentDir)
	outputPath := deriveOutputPath(req.OutputPath, inputPath, currentDir)

	if err := validateBuildPaths(inputPath, outputPath); err != nil {
		return err
	}

	subsystem, err := resolveSubsystem(req.Subsystem, inputPath, logl)
	if err != nil {
		return err
	}

	wdType, err := resolveWdType(req.WdType, req.WdPath, subsystem, logl)
	if err != nil {
		return err
	}

	logl.Debug.Printf("source: %s (%s)", inputPath, subsystem)
	logl.Debug.Printf("output: %s", outputPath)

	if err := unpackTemplate(outputPath, subsystem); err != nil {
		return fmt.Errorf("could not unpack shim: %w", err)
	}

	logl.Debug.Printf("created shim from SHIM_%s template", subsystem)

	source, err := binres.Open(inputPath)
	if err != nil {
		return err
	}
	defer func() {
		// copy already landed at this point; only worth a mention
		if err := source.Close(); err != nil {
			logl.Info.Printf("could not free source image: %v", err)
		}
	}()

	update, err := binres.BeginUpdate(outputPath, logger)
	if err != nil {
		return err
	}

	if err := binres.CopyIconAndVersion(update, source, logger); err != nil {
		// shim still works without the target's looks
		logl.Error.Printf("copying icon/version resources: %v", err)
	}

	if err := writeShimConfig(update, inputPath, subsystem, wdType, req); err != nil {
		_ = update.Discard()
		return err
	}

	if err := update.Commit(); err != nil {
		return err
	}

	logl.Info.Printf("successfully created %s", outputPath)
	return nil
}

// all config keys ride in the one transaction the icon/version copy already
// opened: one commit, one failure scope
func writeShimConfig(update *binres.Update, inputPath string, subsystem shimcfg.Subsystem, wdType shimcfg.WdPolicy, req buildRequest) error {
	if err := update.SetString(shimcfg.EntryTargetPath, inputPath); err != nil {
		return err
	}
	if err := update.SetString(shimcfg.EntrySubsystem, string(subsystem)); err != nil {
		return err
	}
	if err := update.SetString(shimcfg.EntryWdPolicy, string(wdType)); err != nil {
		return err
	}
	if wdType == shimcfg.WdPath && req.WdPath != "" {
		if err := update.SetString(shimcfg.EntryWdPath, req.WdPath); err != nil {
			return err
		}
	}
	if req.ExtraArgs != "" {
		if err := update.SetString(shimcfg.EntryExtraArgs, req.ExtraArgs); err != nil {
			return err
		}
	}
	return nil
}

func resolveSubsystem(forced string, inputPath string, logl *logex.Leveled) (shimcfg.Subsystem, error) {
	if forced != "" {
		subsystem, err := shimcfg.ParseSubsystem(forced)
		if err != nil {
			return "", err
		}
		logl.Debug.Printf("shim type: %s (manually selected)", subsystem)
		return subsystem, nil
	}

	subsystem, err := peinfo.Subsystem(inputPath)
	if err != nil {
		return "", err
	}
	logl.Debug.Printf("shim type: %s (automatically selected)", subsystem)
	return subsystem, nil
}

func resolveWdType(wdType string, wdPath string, subsystem shimcfg.Subsystem, logl *logex.Leveled) (shimcfg.WdPolicy, error) {
	if wdType == "" {
		return shimcfg.DefaultWdPolicy(subsystem), nil
	}

	policy, err := shimcfg.ParseWdPolicy(wdType)
	if err != nil {
		return "", err
	}

	if policy == shimcfg.WdPath && wdPath == "" {
		logl.Info.Printf("WD_TYPE is PATH but WD_PATH is empty; shim will use its own directory")
	}

	return policy, nil
}
