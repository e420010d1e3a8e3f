// Package clipboard places generated passwords on the system clipboard.
package clipboard

import (
	"errors"

	"github.com/atotto/clipboard"
)

var ErrUnsupported = errors.New("clipboard is not available on this system")

// Writer copies text to a clipboard.
type Writer interface {
	WriteAll(text string) error
}

// System writes to the operating system clipboard.
type System struct{}

// New returns the system clipboard, or an Unavailable writer when the platform
// has no clipboard utility (for example a headless Linux box without xclip).
func New() Writer {
	if !Available() {
		return Unavailable{}
	}
	return System{}
}

// Available reports whether a system clipboard can be written.
func Available() bool {
	return !clipboard.Unsupported
}

func (System) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// Unavailable rejects every write with ErrUnsupported.
type Unavailable struct{}

func (Unavailable) WriteAll(string) error {
	return ErrUnsupported
}
