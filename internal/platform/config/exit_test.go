package config

import (
	"bytes"
	"testing"
)

func TestExitfWritesPrefixedMessage(t *testing.T) {
	var out bytes.Buffer
	var code int
	prevOut, prevExit := exitOutput, exitFunc
	exitOutput = &out
	exitFunc = func(c int) { code = c }
	t.Cleanup(func() { exitOutput, exitFunc = prevOut, prevExit })

	Exitf("parse flags: %v", "bad flag")

	if got, want := out.String(), "orgdash: parse flags: bad flag\n"; got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
}
