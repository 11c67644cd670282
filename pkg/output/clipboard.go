package output

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

// ErrClipboardUnsupported is returned when no clipboard utility is available.
var ErrClipboardUnsupported = errors.New("no clipboard utility available")

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

// Copy puts text on the system clipboard.
func Copy(text string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnsupported
	}
	if err := writeClipboard(text); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}
