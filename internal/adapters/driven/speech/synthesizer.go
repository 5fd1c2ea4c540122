package speech

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"sync"

	"github.com/custodia-labs/wayfinder-cli/internal/core/domain"
	"github.com/custodia-labs/wayfinder-cli/internal/core/ports/driven"
	"github.com/custodia-labs/wayfinder-cli/internal/logger"
)

// Ensure Synthesizer implements the interface.
var _ driven.SpeechSink = (*Synthesizer)(nil)

var log = logger.Named("speech")

// ErrEngineUnavailable indicates the requested synthesiser is not installed.
var ErrEngineUnavailable = errors.New("speech engine not installed")

// DefaultRate is the speaking rate in words per minute.
const DefaultRate = 175

// ArgsFunc builds the command line arguments for one utterance.
type ArgsFunc func(rate int, text string) []string

// Synthesizer speaks through an external text-to-speech binary.
// Each utterance runs in its own process; starting one kills the previous.
type Synthesizer struct {
	binary string
	args   ArgsFunc
	rate   int

	mu      sync.Mutex
	current *exec.Cmd
	done    chan struct{}
}

// NewSynthesizer creates a synthesiser running binary with args per utterance.
func NewSynthesizer(binary string, args ArgsFunc, rate int) *Synthesizer {
	if rate <= 0 {
		rate = DefaultRate
	}
	return &Synthesizer{binary: binary, args: args, rate: rate}
}

// Binary returns the executable the synthesiser runs.
func (s *Synthesizer) Binary() string {
	return s.binary
}

// Speak cancels the current utterance and starts speaking text.
// It returns once the process has started.
func (s *Synthesizer) Speak(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()

	// Not tied to ctx: an utterance outlives the call that started it.
	cmd := exec.Command(s.binary, s.args(s.rate, text)...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", s.binary, err)
	}
	log.Debug("speaking (pid %d): %s", cmd.Process.Pid, text)

	done := make(chan struct{})
	s.current = cmd
	s.done = done
	go func() {
		_ = cmd.Wait()
		close(done)
	}()
	return nil
}

// Cancel kills the current utterance, if any.
func (s *Synthesizer) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
	return nil
}

// Wait blocks until the current utterance finishes or ctx is done.
func (s *Synthesizer) Wait(ctx context.Context) error {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()

	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Synthesizer) stopLocked() {
	if s.current == nil {
		return
	}
	select {
	case <-s.done:
	default:
		if err := s.current.Process.Kill(); err != nil {
			log.Debug("kill utterance: %v", err)
		}
		<-s.done
	}
	s.current = nil
	s.done = nil
}

// espeakArgs works for both espeak and espeak-ng.
func espeakArgs(rate int, text string) []string {
	return []string{"-s", strconv.Itoa(rate), text}
}

func sayArgs(rate int, text string) []string {
	return []string{"-r", strconv.Itoa(rate), text}
}

// synthesizers maps each binary engine to its argument builder, in
// the order auto-detection tries them.
var synthesizers = []struct {
	engine domain.VoiceEngine
	args   ArgsFunc
}{
	{domain.VoiceEngineEspeakNG, espeakArgs},
	{domain.VoiceEngineEspeak, espeakArgs},
	{domain.VoiceEngineSay, sayArgs},
}
