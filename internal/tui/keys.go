package tui

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/interpretive-systems/histui/internal/shell"
)

// KeyHandler turns key presses into command IDs through the shell keymap
// and maintains a numeric count buffer for movement commands.
type KeyHandler struct {
	keymap    *shell.KeymapRegistry
	keyBuffer string
}

// NewKeyHandler creates a key handler resolving against the given keymap.
func NewKeyHandler(keymap *shell.KeymapRegistry) *KeyHandler {
	return &KeyHandler{keymap: keymap}
}

// Handle processes a key message in the active keybinding context and
// returns the resolved command ID (empty when unbound) plus the count.
func (k *KeyHandler) Handle(msg tea.KeyMsg, context string) (string, int) {
	key := msg.String()

	if isNumericKey(key) {
		k.keyBuffer += key
		return "", 0
	}

	count := 1
	if k.keyBuffer != "" {
		if n, err := strconv.Atoi(k.keyBuffer); err == nil && n > 0 {
			count = n
		}
	}
	k.keyBuffer = ""

	cmdID, ok := k.keymap.Resolve(key, context)
	if !ok {
		return "", count
	}
	return cmdID, count
}

// KeyBuffer returns the pending count buffer.
func (k *KeyHandler) KeyBuffer() string {
	return k.keyBuffer
}

// ClearBuffer clears the count buffer.
func (k *KeyHandler) ClearBuffer() {
	k.keyBuffer = ""
}

func isNumericKey(key string) bool {
	return len(key) == 1 && key >= "0" && key <= "9"
}
