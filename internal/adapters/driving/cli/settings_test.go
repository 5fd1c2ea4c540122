package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wayfinder-cli/internal/core/domain"
)

// Test helper functions in settings.go

func TestParseChoice(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		maxVal     int
		defaultVal int
		expected   int
	}{
		{name: "Empty uses default", input: "", maxVal: 3, defaultVal: 2, expected: 2},
		{name: "Valid choice", input: "3", maxVal: 3, defaultVal: 1, expected: 3},
		{name: "Zero", input: "0", maxVal: 3, defaultVal: 1, expected: 1},
		{name: "Too large", input: "4", maxVal: 3, defaultVal: 1, expected: 1},
		{name: "Not a number", input: "cycling", maxVal: 3, defaultVal: 2, expected: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseChoice(tt.input, tt.maxVal, tt.defaultVal))
		})
	}
}

func TestParseYesNo(t *testing.T) {
	tests := []struct {
		input      string
		defaultVal bool
		expected   bool
	}{
		{"y", false, true},
		{"YES", false, true},
		{"n", true, false},
		{"No", true, false},
		{"", true, true},
		{"", false, false},
		{"maybe", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseYesNo(tt.input, tt.defaultVal))
		})
	}
}

func TestYesNoPrompt(t *testing.T) {
	assert.Equal(t, "[Y/n]", yesNoPrompt(true))
	assert.Equal(t, "[y/N]", yesNoPrompt(false))
}

func TestSettingsShow(t *testing.T) {
	setupTestServices(t)

	out, err := executeCommand(t, "", "settings")
	require.NoError(t, err)

	assert.Contains(t, out, "Current Settings")
	assert.Contains(t, out, "[routing]")
	assert.Contains(t, out, "  profile: driving")
	assert.Contains(t, out, "[voice]")
	assert.Contains(t, out, "  enabled: true")
	assert.Contains(t, out, "  fix_file: (not set)")
}

func TestSettingsGetSetReset(t *testing.T) {
	setupTestServices(t)

	out, err := executeCommand(t, "", "settings", "set", "routing.profile", "Cycling")
	require.NoError(t, err)
	assert.Equal(t, "routing.profile = cycling\n", out)

	out, err = executeCommand(t, "", "settings", "get", "routing.profile")
	require.NoError(t, err)
	assert.Equal(t, "cycling\n", out)

	out, err = executeCommand(t, "", "settings", "reset", "routing.profile")
	require.NoError(t, err)
	assert.Equal(t, "routing.profile reset to driving\n", out)
}

func TestSettingsSet_Invalid(t *testing.T) {
	setupTestServices(t)

	_, err := executeCommand(t, "", "settings", "set", "routing.profile", "teleport")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = executeCommand(t, "", "settings", "set", "voice.rate", "-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.NotContains(t, err.Error(), "unknown shorthand flag")
}

func TestSettingsSet_NegativeValueIsArgument(t *testing.T) {
	svc := setupTestServices(t)

	_, err := executeCommand(t, "", "settings", "set", "location.arrival_radius_meters", "-5")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	value, err := svc.settings.GetValue("location.arrival_radius_meters")
	require.NoError(t, err)
	assert.NotEqual(t, "-5", value)
}

func TestSettingsGet_UnknownKey(t *testing.T) {
	setupTestServices(t)

	_, err := executeCommand(t, "", "settings", "get", "routing.colour")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown setting "routing.colour"`)
}

func TestSettingsWizard(t *testing.T) {
	ts := setupTestServices(t)

	out, err := executeCommand(t, "2\n5\nn\n", "settings", "wizard")
	require.NoError(t, err)

	assert.Contains(t, out, "Travel mode: walking")
	assert.Contains(t, out, "Voice engine: Text (print to terminal)")
	assert.Contains(t, out, "Configuration Complete!")

	settings, err := ts.settings.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.ProfileWalking, settings.Routing.Profile)
	assert.Equal(t, domain.VoiceEngineText, settings.Voice.Engine)
	assert.False(t, settings.Voice.Enabled)
}

func TestSettingsWizard_DefaultsKeepCurrentValues(t *testing.T) {
	ts := setupTestServices(t)

	_, err := executeCommand(t, "\n\n\n", "settings", "wizard")
	require.NoError(t, err)

	settings, err := ts.settings.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.ProfileDriving, settings.Routing.Profile)
	assert.Equal(t, domain.VoiceEngineAuto, settings.Voice.Engine)
	assert.True(t, settings.Voice.Enabled)
}

func TestSettings_NotConfigured(t *testing.T) {
	setupTestServices(t)
	settingsService = nil

	_, err := executeCommand(t, "", "settings", "show")
	assert.ErrorIs(t, err, errSettingsNotConfigured)
}
