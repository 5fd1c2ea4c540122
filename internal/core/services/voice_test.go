package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/wayfinder-cli/internal/core/domain"
)

func TestMatchVoiceCommand(t *testing.T) {
	tests := []struct {
		transcript string
		expected   domain.VoiceCommand
	}{
		{"start navigation", domain.VoiceStart},
		{"Start Navigation", domain.VoiceStart},
		{"ok please begin navigation now", domain.VoiceStart},
		{"stop navigation", domain.VoiceStop},
		{"END NAVIGATION", domain.VoiceStop},
		{"mute voice", domain.VoiceMute},
		{"turn off voice", domain.VoiceMute},
		{"enable voice", domain.VoiceEnable},
		{"turn on voice", domain.VoiceEnable},
		{"repeat instruction", domain.VoiceRepeat},
		{"could you say again", domain.VoiceRepeat},
		{"", domain.VoiceUnknown},
		{"navigate", domain.VoiceUnknown},
		{"start", domain.VoiceUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.transcript, func(t *testing.T) {
			assert.Equal(t, tt.expected, MatchVoiceCommand(tt.transcript))
		})
	}
}

func TestMatchVoiceCommand_FirstEntryWins(t *testing.T) {
	assert.Equal(t, domain.VoiceStart, MatchVoiceCommand("start navigation then stop navigation"))
	assert.Equal(t, domain.VoiceStart, MatchVoiceCommand("stop navigation then start navigation"))
}
