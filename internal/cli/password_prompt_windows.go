//go:build windows

package cli

import (
	"fmt"
	"os"

	"golang.org/x/sys/windows"
)

func withEchoDisabled(stdin *os.File, read func() error) error {
	console := windows.Handle(stdin.Fd())
	var savedMode uint32
	if err := windows.GetConsoleMode(console, &savedMode); err != nil {
		return fmt.Errorf("%w: %v", errNotTerminal, err)
	}

	if err := windows.SetConsoleMode(console, savedMode&^windows.ENABLE_ECHO_INPUT); err != nil {
		return fmt.Errorf("disable echo: %w", err)
	}
	defer func() {
		_ = windows.SetConsoleMode(console, savedMode)
	}()

	return read()
}
