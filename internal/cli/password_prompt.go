package cli

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"
)

var errNotTerminal = errors.New("stdin is not a terminal")

// readSecret reads one line from stdin with terminal echo switched off.
// It fails with errNotTerminal when stdin is not an interactive console.
func readSecret(stdin *os.File) ([]byte, error) {
	if stdin == nil {
		return nil, errNotTerminal
	}

	var line string
	err := withEchoDisabled(stdin, func() error {
		var readErr error
		line, readErr = bufio.NewReader(stdin).ReadString('\n')
		if errors.Is(readErr, io.EOF) {
			return nil
		}
		return readErr
	})
	if err != nil {
		return nil, err
	}
	return []byte(strings.TrimRight(line, "\r\n")), nil
}
