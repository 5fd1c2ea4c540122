package domain

import "time"

const unknownDescription = "Unknown"

// VoiceEngine selects how narration is produced.
type VoiceEngine string

// Available voice engines.
const (
	// VoiceEngineAuto picks the first installed synthesiser, else text.
	VoiceEngineAuto VoiceEngine = "auto"

	// VoiceEngineEspeakNG uses the espeak-ng binary.
	VoiceEngineEspeakNG VoiceEngine = "espeak-ng"

	// VoiceEngineEspeak uses the espeak binary.
	VoiceEngineEspeak VoiceEngine = "espeak"

	// VoiceEngineSay uses the macOS say binary.
	VoiceEngineSay VoiceEngine = "say"

	// VoiceEngineText prints narration to the terminal.
	VoiceEngineText VoiceEngine = "text"
)

// IsValid returns true if the engine is recognised.
func (e VoiceEngine) IsValid() bool {
	switch e {
	case VoiceEngineAuto, VoiceEngineEspeakNG, VoiceEngineEspeak, VoiceEngineSay, VoiceEngineText:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (e VoiceEngine) String() string {
	return string(e)
}

// Description returns a human-readable description of the engine.
func (e VoiceEngine) Description() string {
	switch e {
	case VoiceEngineAuto:
		return "Auto (first available synthesiser)"
	case VoiceEngineEspeakNG:
		return "espeak-ng"
	case VoiceEngineEspeak:
		return "espeak"
	case VoiceEngineSay:
		return "say (macOS)"
	case VoiceEngineText:
		return "Text (print to terminal)"
	default:
		return unknownDescription
	}
}

// RoutingSettings configures the routing provider.
type RoutingSettings struct {
	BaseURL string
	Profile TravelProfile
	Timeout time.Duration
}

// GeocodingSettings configures the address lookup provider.
type GeocodingSettings struct {
	BaseURL           string
	UserAgent         string
	Language          string
	RequestsPerSecond float64
	Timeout           time.Duration
}

// VoiceSettings configures narration.
type VoiceSettings struct {
	Enabled bool
	Engine  VoiceEngine
	// Rate is words per minute for engines that support it.
	Rate int
}

// ShareSettings configures shareable links.
type ShareSettings struct {
	BaseURL string
}

// LocationSettings configures location tracking.
type LocationSettings struct {
	// FixFile is a JSON file holding the latest position, e.g. {"lat":1,"lng":2}.
	FixFile string
	// ArrivalRadiusMeters is how close a fix must be to count as arrived.
	ArrivalRadiusMeters float64
}

// HistorySettings configures route history.
type HistorySettings struct {
	Enabled bool
}

// AppSettings holds all application configuration.
type AppSettings struct {
	Routing   RoutingSettings
	Geocoding GeocodingSettings
	Voice     VoiceSettings
	Share     ShareSettings
	Location  LocationSettings
	History   HistorySettings
}

// DefaultAppSettings returns sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Routing: RoutingSettings{
			BaseURL: "https://router.project-osrm.org",
			Profile: ProfileDriving,
			Timeout: 30 * time.Second,
		},
		Geocoding: GeocodingSettings{
			BaseURL:           "https://nominatim.openstreetmap.org",
			UserAgent:         "wayfinder-cli",
			Language:          "en",
			RequestsPerSecond: 1,
			Timeout:           10 * time.Second,
		},
		Voice: VoiceSettings{
			Enabled: true,
			Engine:  VoiceEngineAuto,
			Rate:    175,
		},
		Share: ShareSettings{
			BaseURL: "https://wayfinder.app/map",
		},
		Location: LocationSettings{
			ArrivalRadiusMeters: 30,
		},
		History: HistorySettings{
			Enabled: true,
		},
	}
}

// AllTravelProfiles returns all travel profiles.
func AllTravelProfiles() []TravelProfile {
	return []TravelProfile{ProfileDriving, ProfileWalking, ProfileCycling}
}

// AllVoiceEngines returns all voice engines.
func AllVoiceEngines() []VoiceEngine {
	return []VoiceEngine{
		VoiceEngineAuto, VoiceEngineEspeakNG, VoiceEngineEspeak, VoiceEngineSay, VoiceEngineText,
	}
}
