package recognizer

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineRecognizer_Listen(t *testing.T) {
	r := NewLineRecognizer(strings.NewReader("start navigation\n\n   \n  mute voice  \n"))
	ctx := context.Background()

	got, err := r.Listen(ctx)
	require.NoError(t, err)
	assert.Equal(t, "start navigation", got)

	got, err = r.Listen(ctx)
	require.NoError(t, err)
	assert.Equal(t, "mute voice", got)

	_, err = r.Listen(ctx)
	assert.ErrorIs(t, err, io.EOF)

	_, err = r.Listen(ctx)
	assert.ErrorIs(t, err, io.EOF)
}

func TestLineRecognizer_ContextCancelled(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	r := NewLineRecognizer(pr)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := r.Listen(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	go func() { _, _ = pw.Write([]byte("repeat instruction\n")) }()

	got, err := r.Listen(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "repeat instruction", got)
}
