package services

import (
	"strings"

	"github.com/custodia-labs/wayfinder-cli/internal/core/domain"
)

// Narration phrases.
const (
	phraseNavigationStarted = "Navigation started."
	phraseStopping          = "Stopping navigation"
	phraseVoiceDisabled     = "Voice guidance disabled"
	phraseVoiceEnabled      = "Voice guidance enabled"
	phraseNoInstruction     = "No current instruction to repeat"
	phraseNoRoute           = "There is no route to navigate yet"
	phraseNotNavigating     = "Navigation is not active"
	phraseListening         = "Listening for your command"
	phraseDidNotCatch       = "Sorry, I didn't catch that. Please try again"
	phraseNotRecognized     = "Command not recognized. " +
		"Try saying 'start navigation', 'stop navigation', or 'mute voice'"
)

// voicePhrases maps recognised phrases to commands. Order matters:
// the first entry with a matching phrase wins.
var voicePhrases = []struct {
	command domain.VoiceCommand
	phrases []string
}{
	{domain.VoiceStart, []string{"start navigation", "begin navigation"}},
	{domain.VoiceStop, []string{"stop navigation", "end navigation"}},
	{domain.VoiceMute, []string{"mute voice", "turn off voice"}},
	{domain.VoiceEnable, []string{"enable voice", "turn on voice"}},
	{domain.VoiceRepeat, []string{"repeat instruction", "say again"}},
}

// MatchVoiceCommand maps a transcript to a command by case-insensitive
// substring match. Unmatched transcripts return domain.VoiceUnknown.
func MatchVoiceCommand(transcript string) domain.VoiceCommand {
	text := strings.ToLower(transcript)
	for _, entry := range voicePhrases {
		for _, phrase := range entry.phrases {
			if strings.Contains(text, phrase) {
				return entry.command
			}
		}
	}
	return domain.VoiceUnknown
}
