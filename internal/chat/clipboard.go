package chat

import (
	"time"

	"github.com/atotto/clipboard"
)

// CopyAckDuration is how long the UI shows the "copied" acknowledgment.
const CopyAckDuration = 2 * time.Second

// CopyMessage writes a message's text to the system clipboard. It has no
// effect on persisted data.
func CopyMessage(text string) error {
	return clipboard.WriteAll(text)
}
