package services

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/wayfinder-cli/internal/core/domain"
	"github.com/custodia-labs/wayfinder-cli/internal/core/ports/driven"
	"github.com/custodia-labs/wayfinder-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyRoutingBaseURL      = "routing.base_url"
	keyRoutingProfile      = "routing.profile"
	keyRoutingTimeout      = "routing.timeout_seconds"
	keyGeocodingBaseURL    = "geocoding.base_url"
	keyGeocodingUserAgent  = "geocoding.user_agent"
	keyGeocodingLanguage   = "geocoding.language"
	keyGeocodingRate       = "geocoding.requests_per_second"
	keyGeocodingTimeout    = "geocoding.timeout_seconds"
	keyVoiceEnabled        = "voice.enabled"
	keyVoiceEngine         = "voice.engine"
	keyVoiceRate           = "voice.rate"
	keyShareBaseURL        = "share.base_url"
	keyLocationFixFile     = "location.fix_file"
	keyLocationArrival     = "location.arrival_radius_meters"
	keyHistoryEnabled      = "history.enabled"
	maxRequestsPerSecond   = 100
	maxVoiceRate           = 500
	maxTimeoutSeconds      = 600
	maxArrivalRadiusMeters = 10000
)

// settingKeys lists every supported key in display order.
var settingKeys = []string{
	keyRoutingBaseURL, keyRoutingProfile, keyRoutingTimeout,
	keyGeocodingBaseURL, keyGeocodingUserAgent, keyGeocodingLanguage, keyGeocodingRate, keyGeocodingTimeout,
	keyVoiceEnabled, keyVoiceEngine, keyVoiceRate,
	keyShareBaseURL,
	keyLocationFixFile, keyLocationArrival,
	keyHistoryEnabled,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings. Missing or invalid stored
// values fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Routing: domain.RoutingSettings{
			BaseURL: s.getString(keyRoutingBaseURL, defaults.Routing.BaseURL),
			Profile: s.getProfile(defaults.Routing.Profile),
			Timeout: time.Duration(s.getInt(keyRoutingTimeout, int(defaults.Routing.Timeout/time.Second))) * time.Second,
		},
		Geocoding: domain.GeocodingSettings{
			BaseURL:           s.getString(keyGeocodingBaseURL, defaults.Geocoding.BaseURL),
			UserAgent:         s.getString(keyGeocodingUserAgent, defaults.Geocoding.UserAgent),
			Language:          s.getString(keyGeocodingLanguage, defaults.Geocoding.Language),
			RequestsPerSecond: s.getFloat(keyGeocodingRate, defaults.Geocoding.RequestsPerSecond),
			Timeout:           time.Duration(s.getInt(keyGeocodingTimeout, int(defaults.Geocoding.Timeout/time.Second))) * time.Second,
		},
		Voice: domain.VoiceSettings{
			Enabled: s.getBool(keyVoiceEnabled, defaults.Voice.Enabled),
			Engine:  s.getEngine(defaults.Voice.Engine),
			Rate:    s.getInt(keyVoiceRate, defaults.Voice.Rate),
		},
		Share: domain.ShareSettings{
			BaseURL: s.getString(keyShareBaseURL, defaults.Share.BaseURL),
		},
		Location: domain.LocationSettings{
			FixFile:             s.configStore.GetString(keyLocationFixFile), // empty means the default under the config dir
			ArrivalRadiusMeters: s.getFloat(keyLocationArrival, defaults.Location.ArrivalRadiusMeters),
		},
		History: domain.HistorySettings{
			Enabled: s.getBool(keyHistoryEnabled, defaults.History.Enabled),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{keyRoutingBaseURL, settings.Routing.BaseURL},
		{keyRoutingProfile, settings.Routing.Profile.String()},
		{keyRoutingTimeout, int(settings.Routing.Timeout / time.Second)},
		{keyGeocodingBaseURL, settings.Geocoding.BaseURL},
		{keyGeocodingUserAgent, settings.Geocoding.UserAgent},
		{keyGeocodingLanguage, settings.Geocoding.Language},
		{keyGeocodingRate, settings.Geocoding.RequestsPerSecond},
		{keyGeocodingTimeout, int(settings.Geocoding.Timeout / time.Second)},
		{keyVoiceEnabled, settings.Voice.Enabled},
		{keyVoiceEngine, settings.Voice.Engine.String()},
		{keyVoiceRate, settings.Voice.Rate},
		{keyShareBaseURL, settings.Share.BaseURL},
		{keyLocationFixFile, settings.Location.FixFile},
		{keyLocationArrival, settings.Location.ArrivalRadiusMeters},
		{keyHistoryEnabled, settings.History.Enabled},
	}

	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// GetValue returns the effective value of a single key as text.
func (s *SettingsService) GetValue(key string) (string, error) {
	settings, err := s.Get()
	if err != nil {
		return "", err
	}

	switch key {
	case keyRoutingBaseURL:
		return settings.Routing.BaseURL, nil
	case keyRoutingProfile:
		return settings.Routing.Profile.String(), nil
	case keyRoutingTimeout:
		return strconv.Itoa(int(settings.Routing.Timeout / time.Second)), nil
	case keyGeocodingBaseURL:
		return settings.Geocoding.BaseURL, nil
	case keyGeocodingUserAgent:
		return settings.Geocoding.UserAgent, nil
	case keyGeocodingLanguage:
		return settings.Geocoding.Language, nil
	case keyGeocodingRate:
		return formatFloat(settings.Geocoding.RequestsPerSecond), nil
	case keyGeocodingTimeout:
		return strconv.Itoa(int(settings.Geocoding.Timeout / time.Second)), nil
	case keyVoiceEnabled:
		return strconv.FormatBool(settings.Voice.Enabled), nil
	case keyVoiceEngine:
		return settings.Voice.Engine.String(), nil
	case keyVoiceRate:
		return strconv.Itoa(settings.Voice.Rate), nil
	case keyShareBaseURL:
		return settings.Share.BaseURL, nil
	case keyLocationFixFile:
		return settings.Location.FixFile, nil
	case keyLocationArrival:
		return formatFloat(settings.Location.ArrivalRadiusMeters), nil
	case keyHistoryEnabled:
		return strconv.FormatBool(settings.History.Enabled), nil
	default:
		return "", unknownKey(key)
	}
}

// SetValue parses, validates and stores a single key.
func (s *SettingsService) SetValue(key, value string) error {
	value = strings.TrimSpace(value)

	var parsed any
	var err error

	switch key {
	case keyRoutingBaseURL, keyGeocodingBaseURL, keyShareBaseURL:
		parsed, err = parseBaseURL(value)
	case keyRoutingProfile:
		profile := domain.TravelProfile(strings.ToLower(value))
		if !profile.IsValid() {
			err = fmt.Errorf("unknown travel profile %q", value)
		}
		parsed = profile.String()
	case keyVoiceEngine:
		engine := domain.VoiceEngine(strings.ToLower(value))
		if !engine.IsValid() {
			err = fmt.Errorf("unknown voice engine %q", value)
		}
		parsed = engine.String()
	case keyRoutingTimeout, keyGeocodingTimeout:
		parsed, err = parseBoundedInt(value, 1, maxTimeoutSeconds)
	case keyVoiceRate:
		parsed, err = parseBoundedInt(value, 1, maxVoiceRate)
	case keyGeocodingRate:
		parsed, err = parseBoundedFloat(value, maxRequestsPerSecond)
	case keyLocationArrival:
		parsed, err = parseBoundedFloat(value, maxArrivalRadiusMeters)
	case keyVoiceEnabled, keyHistoryEnabled:
		parsed, err = strconv.ParseBool(value)
	case keyGeocodingUserAgent, keyGeocodingLanguage:
		if value == "" {
			err = errors.New("value must not be empty")
		}
		parsed = value
	case keyLocationFixFile:
		parsed = value
	default:
		return unknownKey(key)
	}

	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
	}
	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Reset removes a stored key so its default applies.
func (s *SettingsService) Reset(key string) error {
	if !isSettingKey(key) {
		return unknownKey(key)
	}
	if err := s.configStore.Unset(key); err != nil {
		return fmt.Errorf("reset %s: %w", key, err)
	}
	return nil
}

// Keys returns every supported key in display order.
func (s *SettingsService) Keys() []string {
	return append([]string(nil), settingKeys...)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val := s.configStore.GetFloat(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getProfile(defaultVal domain.TravelProfile) domain.TravelProfile {
	profile := domain.TravelProfile(s.configStore.GetString(keyRoutingProfile))
	if !profile.IsValid() {
		return defaultVal
	}
	return profile
}

func (s *SettingsService) getEngine(defaultVal domain.VoiceEngine) domain.VoiceEngine {
	engine := domain.VoiceEngine(s.configStore.GetString(keyVoiceEngine))
	if !engine.IsValid() {
		return defaultVal
	}
	return engine
}

func isSettingKey(key string) bool {
	for _, k := range settingKeys {
		if k == key {
			return true
		}
	}
	return false
}

func unknownKey(key string) error {
	return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
}

func parseBaseURL(value string) (string, error) {
	u, err := url.Parse(value)
	if err != nil {
		return "", err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", errors.New("must be an http(s) URL")
	}
	if u.Host == "" {
		return "", errors.New("missing host")
	}
	return strings.TrimRight(value, "/"), nil
}

func parseBoundedInt(value string, lo, hi int) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	if n < lo || n > hi {
		return 0, fmt.Errorf("must be between %d and %d", lo, hi)
	}
	return n, nil
}

func parseBoundedFloat(value string, hi float64) (float64, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}
	if f <= 0 || f > hi {
		return 0, fmt.Errorf("must be greater than 0 and at most %g", hi)
	}
	return f, nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
