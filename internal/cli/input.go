package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword is a seam for term.ReadPassword
var readPassword = term.ReadPassword

// isTerminal is a seam for term.IsTerminal
var isTerminal = term.IsTerminal

// readLine reads one line from reader with the trailing newline trimmed.
// A final line without a newline is returned as is.
func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// prompt writes label to w and reads the answer from reader
func prompt(reader *bufio.Reader, w io.Writer, label string) (string, error) {
	if _, err := fmt.Fprintf(w, "%s: ", label); err != nil {
		return "", err
	}
	return readLine(reader)
}

// promptPassword reads a password without echo when in is a terminal.
// Otherwise the password is read as a plain line from reader.
func promptPassword(reader *bufio.Reader, in io.Reader, w io.Writer) (string, error) {
	fmt.Fprint(w, "Password: ")

	f, ok := in.(*os.File)
	if !ok || !isTerminal(int(f.Fd())) {
		return readLine(reader)
	}

	pw, err := readPassword(int(f.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}
