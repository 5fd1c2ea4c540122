// Package recognizer provides speech recognisers.
package recognizer

import (
	"bufio"
	"context"
	"io"
	"strings"
	"sync"

	"github.com/custodia-labs/wayfinder-cli/internal/core/ports/driven"
)

// Ensure LineRecognizer implements the interface.
var _ driven.SpeechRecognizer = (*LineRecognizer)(nil)

// LineRecognizer treats each non-blank input line as one utterance.
// It stands in for a microphone in terminals and scripted sessions.
type LineRecognizer struct {
	r    io.Reader
	once sync.Once

	lines chan string
	err   error // set before lines is closed
}

// NewLineRecognizer creates a recogniser reading transcripts from r.
func NewLineRecognizer(r io.Reader) *LineRecognizer {
	return &LineRecognizer{
		r:     r,
		lines: make(chan string),
	}
}

// Listen returns the next non-blank line.
// Returns io.EOF once the input is exhausted.
func (l *LineRecognizer) Listen(ctx context.Context) (string, error) {
	l.once.Do(func() { go l.scan() })

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-l.lines:
		if !ok {
			return "", l.err
		}
		return line, nil
	}
}

func (l *LineRecognizer) scan() {
	defer close(l.lines)

	scanner := bufio.NewScanner(l.r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		l.lines <- line
	}
	l.err = scanner.Err()
	if l.err == nil {
		l.err = io.EOF
	}
}
