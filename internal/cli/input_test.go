package cli

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestReadLine(t *testing.T) {
	got, err := readLine(rdr("  hello world \n"))
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)

	got, err = readLine(rdr("lastline"))
	require.NoError(t, err)
	assert.Equal(t, "lastline", got)

	_, err = readLine(rdr(""))
	assert.ErrorIs(t, err, io.EOF)
}

func TestPrompt_WritesLabel(t *testing.T) {
	var out bytes.Buffer
	got, err := prompt(rdr("ada@example.com\n"), &out, "Email")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", got)
	assert.Equal(t, "Email: ", out.String())
}

func TestPromptPassword_PlainInput(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("s3cret-pass\n")

	got, err := promptPassword(bufio.NewReader(in), in, &out)

	require.NoError(t, err)
	assert.Equal(t, "s3cret-pass", got)
}

func TestPromptPassword_Terminal(t *testing.T) {
	oldRead, oldTerm := readPassword, isTerminal
	t.Cleanup(func() { readPassword, isTerminal = oldRead, oldTerm })
	isTerminal = func(int) bool { return true }
	readPassword = func(int) ([]byte, error) { return []byte("hidden"), nil }

	var out bytes.Buffer
	got, err := promptPassword(rdr(""), os.Stdin, &out)

	require.NoError(t, err)
	assert.Equal(t, "hidden", got)
	assert.Equal(t, "Password: \n", out.String())
}

func TestPromptPassword_TerminalError(t *testing.T) {
	oldRead, oldTerm := readPassword, isTerminal
	t.Cleanup(func() { readPassword, isTerminal = oldRead, oldTerm })
	isTerminal = func(int) bool { return true }
	readPassword = func(int) ([]byte, error) { return nil, errors.New("boom") }

	_, err := promptPassword(rdr(""), os.Stdin, io.Discard)
	assert.Error(t, err)
}
