package adapter_bubbletea

import (
	"github.com/atotto/clipboard"

	editor "github.com/ionut-t/lineedit/core"
)

// clipboardImpl is the system clipboard. Read fails when no clipboard
// utility is installed, which the engine treats as an absent paste.
type clipboardImpl struct{}

func (c *clipboardImpl) Write(text string) error {
	return clipboard.WriteAll(text)
}

func (c *clipboardImpl) Read() (string, error) {
	if clipboard.Unsupported {
		return "", editor.ErrClipboardUnavailable
	}
	return clipboard.ReadAll()
}
