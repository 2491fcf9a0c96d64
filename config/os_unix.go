//go:build !windows

package config

import (
	"os"

	"golang.org/x/term"
)

const forbiddenChars = "/:"

func reservedName(string) bool {
	return false
}

// EnableColorOutput checks if colorized output is possible.
func EnableColorOutput(stream *os.File) bool {
	return term.IsTerminal(int(stream.Fd()))
}
