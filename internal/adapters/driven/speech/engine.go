package speech

import (
	"fmt"
	"io"
	"os/exec"

	"github.com/custodia-labs/wayfinder-cli/internal/core/domain"
	"github.com/custodia-labs/wayfinder-cli/internal/core/ports/driven"
)

// lookPath is swapped in tests.
var lookPath = exec.LookPath

// New returns the sink for engine.
// Auto picks the first installed synthesiser and falls back to text on out.
// An explicit binary engine that is not installed returns ErrEngineUnavailable.
func New(engine domain.VoiceEngine, rate int, out io.Writer) (driven.SpeechSink, error) {
	switch engine {
	case domain.VoiceEngineText:
		return NewTextSink(out), nil
	case domain.VoiceEngineAuto, "":
		for _, s := range synthesizers {
			if path, err := lookPath(string(s.engine)); err == nil {
				log.Debug("auto-detected %s at %s", s.engine, path)
				return NewSynthesizer(path, s.args, rate), nil
			}
		}
		log.Debug("no synthesiser installed, using text narration")
		return NewTextSink(out), nil
	}

	for _, s := range synthesizers {
		if s.engine != engine {
			continue
		}
		path, err := lookPath(string(s.engine))
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrEngineUnavailable, engine)
		}
		return NewSynthesizer(path, s.args, rate), nil
	}
	return nil, fmt.Errorf("%w: unknown voice engine %q", domain.ErrInvalidInput, engine)
}
