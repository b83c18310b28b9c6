package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/function61/gokit/assert"
)

func TestExpandPath(t *testing.T) {
	currentDir := t.TempDir()

	assert.EqualString(t,
		expandPath("app.exe", currentDir),
		filepath.Join(currentDir, "app.exe"))

	abs := filepath.Join(currentDir, "sub", "app.exe")
	assert.EqualString(t, expandPath(abs, currentDir), abs)
}

func TestDeriveOutputPathDefaultsToCurrentDir(t *testing.T) {
	currentDir := t.TempDir()
	input := filepath.Join(t.TempDir(), "apps", "tool.exe")

	assert.EqualString(t,
		deriveOutputPath("", input, currentDir),
		filepath.Join(currentDir, "tool.exe"))
}

func TestDeriveOutputPathAppendsFilenameToDirectory(t *testing.T) {
	currentDir := t.TempDir()
	input := filepath.Join(t.TempDir(), "apps", "tool.exe")
	outDir := filepath.Join(currentDir, "shims")
	assert.Ok(t, os.Mkdir(outDir, 0755))

	assert.EqualString(t,
		deriveOutputPath(outDir, input, currentDir),
		filepath.Join(outDir, "tool.exe"))
}

func TestDeriveOutputPathExpandsRelative(t *testing.T) {
	currentDir := t.TempDir()
	input := filepath.Join(t.TempDir(), "apps", "tool.exe")

	assert.EqualString(t,
		deriveOutputPath("renamed.exe", input, currentDir),
		filepath.Join(currentDir, "renamed.exe"))
}

func TestValidateBuildPaths(t *testing.T) {
	tempDir := t.TempDir()

	input := filepath.Join(tempDir, "app.exe")
	assert.Ok(t, os.WriteFile(input, []byte("MZ"), 0755))

	// happy path
	assert.Ok(t, validateBuildPaths(input, filepath.Join(tempDir, "shim.exe")))

	// missing source
	err := validateBuildPaths(filepath.Join(tempDir, "gone.exe"), filepath.Join(tempDir, "shim.exe"))
	assert.Assert(t, err != nil && strings.Contains(err.Error(), "does not exist"))

	// output into a nonexistent directory
	err = validateBuildPaths(input, filepath.Join(tempDir, "nodir", "shim.exe"))
	assert.Assert(t, err != nil && strings.Contains(err.Error(), "OUTPUT directory"))

	// overwriting the source itself
	err = validateBuildPaths(input, input)
	assert.Assert(t, err != nil && strings.Contains(err.Error(), "cannot overwrite SOURCE"))

	// output exists but is a directory-like non-regular file
	subDir := filepath.Join(tempDir, "taken")
	assert.Ok(t, os.Mkdir(subDir, 0755))
	err = validateBuildPaths(input, subDir)
	assert.Assert(t, err != nil && strings.Contains(err.Error(), "not a regular file"))
}
