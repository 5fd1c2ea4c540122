// Package speech provides narration sinks.
//
// Synthesizer drives a text-to-speech binary (espeak-ng, espeak or say),
// one process per utterance. TextSink prints narration instead and is
// the fallback when no synthesiser is installed.
package speech
