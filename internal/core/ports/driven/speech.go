package driven

import "context"

// SpeechSink speaks narration aloud.
// Speak must cancel any in-progress utterance before starting the new one,
// and should return once the new utterance has started.
type SpeechSink interface {
	Speak(ctx context.Context, text string) error

	// Cancel stops the current utterance, if any.
	Cancel() error
}

// SpeechRecognizer produces one transcript per recognised utterance.
type SpeechRecognizer interface {
	// Listen blocks until an utterance is recognised or ctx is done.
	Listen(ctx context.Context) (string, error)
}
