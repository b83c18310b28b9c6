//go:build windows

package main

import (
	"bytes"
	"io"
	"log"
	"strings"
	"testing"

	"github.com/function61/gokit/assert"
	"github.com/function61/gokit/logex"
)

func TestErrorsReportedEvenWithoutLogFlag(t *testing.T) {
	fallback := &bytes.Buffer{}

	errLog := errorLoggerFor(false, logex.Discard, fallback)
	errLog.Println("shim has no application path")

	assert.Assert(t, strings.Contains(fallback.String(), "shim has no application path"))
}

func TestErrorsFollowEnabledLogger(t *testing.T) {
	sink := &bytes.Buffer{}

	errLog := errorLoggerFor(true, log.New(sink, "", 0), io.Discard)
	errLog.Println("could not create process")

	assert.Assert(t, strings.Contains(sink.String(), "could not create process"))
}
