//go:build !windows && !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly

package cli

import "os"

func withEchoDisabled(_ *os.File, _ func() error) error {
	return errNotTerminal
}
