package main

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/passgen/passgen-go/internal/clipboard"
	"github.com/passgen/passgen-go/internal/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClipboard struct {
	text string
}

func (f *fakeClipboard) WriteAll(text string) error {
	f.text = text
	return nil
}

type harness struct {
	app    *app
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	cb     *fakeClipboard
}

func newHarness(t *testing.T, stdin string, tty bool) *harness {
	t.Helper()
	for _, key := range []string{"ENV", "LOG_LEVEL", "PASSGEN_CONFIG", "PASSGEN_LENGTH", "PASSGEN_CLASSES", "PASSGEN_COPY"} {
		t.Setenv(key, "")
	}

	h := &harness{stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}, cb: &fakeClipboard{}}
	h.app = &app{
		stdin:     strings.NewReader(stdin),
		stdout:    h.stdout,
		stderr:    h.stderr,
		clipboard: func() clipboard.Writer { return h.cb },
		isTTY:     func(io.Reader) bool { return tty },
	}
	return h
}

func (h *harness) run(args ...string) error {
	cmd := h.app.rootCmd()
	cmd.SetArgs(args)
	return cmd.Execute()
}

func (h *harness) lines() []string {
	return strings.Split(strings.TrimSpace(h.stdout.String()), "\n")
}

func TestRun_DefaultsWithoutTerminal(t *testing.T) {
	h := newHarness(t, "", false)

	require.NoError(t, h.run())
	lines := h.lines()
	require.Len(t, lines, 1)
	assert.Len(t, lines[0], crypto.DefaultLength)
}

func TestRun_DigitsOnly(t *testing.T) {
	h := newHarness(t, "", false)

	require.NoError(t, h.run("--length", "8", "--digits"))
	assert.Regexp(t, `^[0-9]{8}$`, h.lines()[0])
}

func TestRun_ClassesListAndCount(t *testing.T) {
	h := newHarness(t, "", false)

	require.NoError(t, h.run("-l", "20", "-c", "upper,lower", "-n", "4"))
	lines := h.lines()
	require.Len(t, lines, 4)
	for _, line := range lines {
		assert.Regexp(t, `^[A-Za-z]{20}$`, line)
	}
}

func TestRun_ZeroLength(t *testing.T) {
	h := newHarness(t, "", false)

	err := h.run("--length", "0", "--lower")
	assert.ErrorIs(t, err, crypto.ErrInvalidLength)
	assert.Empty(t, h.stdout.String())
}

func TestRun_NoClassSelected(t *testing.T) {
	h := newHarness(t, "", false)

	err := h.run("--length", "5", "--upper=false")
	assert.ErrorIs(t, err, crypto.ErrNoCharacterClassSelected)
}

func TestRun_UnknownClass(t *testing.T) {
	h := newHarness(t, "", false)

	err := h.run("--classes", "upper,emoji")
	assert.ErrorIs(t, err, crypto.ErrUnknownClass)
}

func TestRun_InvalidCount(t *testing.T) {
	h := newHarness(t, "", false)

	assert.Error(t, h.run("--count", "0"))
}

func TestRun_Copy(t *testing.T) {
	h := newHarness(t, "", false)

	require.NoError(t, h.run("--copy", "-d"))
	assert.Equal(t, h.lines()[0], h.cb.text)
	assert.Contains(t, h.stderr.String(), "Password copied to clipboard!")
}

func TestRun_DialogOnTerminal(t *testing.T) {
	h := newHarness(t, "6\nn\nn\ny\nn\ny\n", true)

	require.NoError(t, h.run())
	assert.Contains(t, h.stdout.String(), "=== Password Options ===")
	assert.Regexp(t, `(?m)^Generated Password: [0-9]{6}$`, h.stdout.String())
	assert.Len(t, h.cb.text, 6)
}

func TestRun_FlagsSkipDialogOnTerminal(t *testing.T) {
	h := newHarness(t, "", true)

	require.NoError(t, h.run("-l", "7"))
	assert.NotContains(t, h.stdout.String(), "Password Options")
	assert.Len(t, h.lines()[0], 7)
}

func TestRun_InteractiveFlag(t *testing.T) {
	h := newHarness(t, "", false)

	err := h.run("-i")
	assert.Error(t, err, "dialog on empty input is cancelled")
	assert.Contains(t, h.stdout.String(), "Password length [12]: ")
}

func TestRun_RejectsArguments(t *testing.T) {
	h := newHarness(t, "", false)

	assert.Error(t, h.run("extra"))
}
