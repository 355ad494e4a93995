// Package osutil holds small platform helpers.
package osutil

import (
	"os"
	"runtime"
)

const (
	Windows = "windows"
	Darwin  = "darwin"
)

type exitCode int

const (
	ExitOK    exitCode = 0
	ExitError exitCode = 1
)

// Exit terminates the process with code.
func Exit(code exitCode) {
	os.Exit(int(code))
}

// Editor returns the user's preferred text editor: $VISUAL, then $EDITOR,
// then a platform default.
func Editor() string {
	for _, name := range []string{"VISUAL", "EDITOR"} {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}

	return defaultEditor(runtime.GOOS)
}

func defaultEditor(goos string) string {
	switch goos {
	case Windows:
		return "C:\\Windows\\system32\\notepad.exe"
	case Darwin:
		return "open -t"
	}

	return "nano"
}
