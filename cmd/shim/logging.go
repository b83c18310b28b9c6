//go:build windows

package main

import (
	"io"
	"log"
	"os"

	"github.com/function61/gokit/logex"
	"golang.org/x/sys/windows"
)

var procGetConsoleWindow = windows.NewLazySystemDLL("kernel32.dll").NewProc("GetConsoleWindow")

func hasConsole() bool {
	hwnd, _, _ := procGetConsoleWindow.Call()
	return hwnd != 0
}

// newShimLogger picks where diagnostics go: nowhere unless asked, the console
// when one is attached, otherwise a sibling log file (a GUI shim started from
// Explorer has no console to write to).
func newShimLogger(enabled bool, shimPath string) *log.Logger {
	if !enabled {
		return logex.Discard
	}

	if hasConsole() {
		return log.New(os.Stderr, "", 0)
	}

	logFile, err := os.Create(shimPath + ".SHIM.LOG")
	if err != nil {
		return logex.Discard
	}

	return log.New(logFile, "", log.LstdFlags)
}

// errorLoggerFor keeps failures visible even when --shim-log is off: only the
// Info/Debug levels are gated on the flag, errors always land somewhere (the
// enabled logger's sink, or fallback).
func errorLoggerFor(logEnabled bool, base *log.Logger, fallback io.Writer) *log.Logger {
	if logEnabled {
		return logex.Levels(base).Error
	}
	return log.New(fallback, "[ERROR] ", 0)
}
