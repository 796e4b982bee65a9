package config

import (
	"fmt"
	"io"
	"os"
)

var (
	exitOutput io.Writer = os.Stderr
	exitFunc             = os.Exit
)

// Exitf reports a startup failure on stderr and exits with status 1. Commands
// use it for errors raised before a logger exists.
func Exitf(format string, args ...any) {
	_, _ = fmt.Fprintf(exitOutput, "orgdash: "+format+"\n", args...)
	exitFunc(1)
}
