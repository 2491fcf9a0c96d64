//go:build windows

package config

import (
	"os"
	"strings"

	"golang.org/x/sys/windows"
	"golang.org/x/term"
)

const forbiddenChars = `<>":/\|?*;`

var reservedNames = []string{
	"CON", "PRN", "AUX", "NUL",
	"COM1", "COM2", "COM3", "COM4", "COM5", "COM6", "COM7", "COM8", "COM9",
	"LPT1", "LPT2", "LPT3", "LPT4", "LPT5", "LPT6", "LPT7", "LPT8", "LPT9",
}

// reservedName reports device names which cannot be used for files even
// with extension.
func reservedName(name string) bool {
	base, _, _ := strings.Cut(name, ".")
	for _, r := range reservedNames {
		if strings.EqualFold(base, r) {
			return true
		}
	}
	return false
}

// EnableColorOutput checks if colorized output is possible and enables VT100
// sequence processing in console. Consoles which do not support it refuse
// the mode.
func EnableColorOutput(stream *os.File) bool {
	if !term.IsTerminal(int(stream.Fd())) {
		return false
	}
	h := windows.Handle(stream.Fd())
	var mode uint32
	if err := windows.GetConsoleMode(h, &mode); err != nil {
		return false
	}
	if mode&windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING != 0 {
		return true
	}
	return windows.SetConsoleMode(h, mode|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING) == nil
}
