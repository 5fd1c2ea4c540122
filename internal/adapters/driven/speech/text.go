package speech

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/custodia-labs/wayfinder-cli/internal/core/ports/driven"
)

// Ensure TextSink implements the interface.
var _ driven.SpeechSink = (*TextSink)(nil)

// TextSink prints narration lines instead of speaking them.
type TextSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewTextSink creates a sink writing to w.
func NewTextSink(w io.Writer) *TextSink {
	return &TextSink{w: w}
}

// Speak writes text on its own line.
func (t *TextSink) Speak(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	_, err := fmt.Fprintf(t.w, "🔊 %s\n", text)
	return err
}

// Cancel is a no-op; printed lines cannot be taken back.
func (t *TextSink) Cancel() error {
	return nil
}
