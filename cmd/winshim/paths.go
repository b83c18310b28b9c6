package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// expandPath makes path absolute relative to currentDir (originals resolved
// everything against the invocation directory; so do we).
func expandPath(path string, currentDir string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(currentDir, path)
}

// deriveOutputPath fills in what the user left out: no output means "current
// directory, same filename as the target"; an output that is an existing
// directory gets the target's filename appended.
func deriveOutputPath(output string, inputPath string, currentDir string) string {
	if output == "" {
		return filepath.Join(currentDir, filepath.Base(inputPath))
	}

	outputPath := expandPath(output, currentDir)

	if info, err := os.Stat(outputPath); err == nil && info.IsDir() {
		return filepath.Join(outputPath, filepath.Base(inputPath))
	}

	return outputPath
}

func validateBuildPaths(inputPath string, outputPath string) error {
	inputInfo, err := os.Stat(inputPath)
	if err != nil {
		return fmt.Errorf("SOURCE path %s does not exist", inputPath)
	}

	if !inputInfo.Mode().IsRegular() {
		return fmt.Errorf("SOURCE %s must be a regular file", filepath.Base(inputPath))
	}

	if parentInfo, err := os.Stat(filepath.Dir(outputPath)); err != nil || !parentInfo.IsDir() {
		return fmt.Errorf("OUTPUT directory %s does not exist", filepath.Dir(outputPath))
	}

	if outputInfo, err := os.Stat(outputPath); err == nil {
		if os.SameFile(inputInfo, outputInfo) {
			return errors.New("cannot overwrite SOURCE - choose a different filename or directory")
		}

		if !outputInfo.Mode().IsRegular() {
			return errors.New("OUTPUT already exists but is not a regular file - choose a different filename or directory")
		}
	}

	return nil
}
