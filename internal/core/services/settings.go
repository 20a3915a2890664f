package services

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
	"github.com/custodia-labs/docchat-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docchat-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyBackendURL        = "backend.base_url"
	KeyBackendTimeout    = "backend.timeout_seconds"
	KeyRequestsPerSecond = "backend.requests_per_second"
	KeyNoticeCancelled   = "notices.cancelled"
	KeyNoticeRateLimited = "notices.rate_limited"
	KeyLogFile           = "log.file"
)

// descriptions explains each key in listings.
var descriptions = map[string]string{
	KeyBackendURL:        "Backend API root",
	KeyBackendTimeout:    "Seconds to wait for a single request",
	KeyRequestsPerSecond: "Client-side request limit, 0 disables it",
	KeyNoticeCancelled:   "Shown when a question is cancelled",
	KeyNoticeRateLimited: "Shown when the backend is rate limited",
	KeyLogFile:           "Log file, relative to the config directory",
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings, filling gaps with defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Backend: domain.BackendSettings{
			BaseURL:           s.getString(KeyBackendURL, defaults.Backend.BaseURL),
			Timeout:           s.getDuration(KeyBackendTimeout, defaults.Backend.Timeout),
			RequestsPerSecond: s.configStore.GetFloat(KeyRequestsPerSecond),
		},
		Notices: domain.NoticeSettings{
			Cancelled:   s.getString(KeyNoticeCancelled, defaults.Notices.Cancelled),
			RateLimited: s.getString(KeyNoticeRateLimited, defaults.Notices.RateLimited),
		},
		Log: domain.LogSettings{
			File: s.getString(KeyLogFile, defaults.Log.File),
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
		{KeyBackendURL, settings.Backend.BaseURL},
		{KeyBackendTimeout, int64(settings.Backend.Timeout / time.Second)},
		{KeyRequestsPerSecond, settings.Backend.RequestsPerSecond},
		{KeyNoticeCancelled, settings.Notices.Cancelled},
		{KeyNoticeRateLimited, settings.Notices.RateLimited},
		{KeyLogFile, settings.Log.File},
	}

	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Set updates a single setting, converting value to the key's type.
func (s *SettingsService) Set(key, value string) error {
	switch key {
	case KeyBackendURL, KeyNoticeCancelled, KeyNoticeRateLimited, KeyLogFile:
		return s.configStore.Set(key, value)

	case KeyBackendTimeout:
		secs, err := strconv.ParseInt(value, 10, 64)
		if err != nil || secs <= 0 {
			return fmt.Errorf("%w: %s must be a positive number of seconds", domain.ErrInvalidInput, key)
		}
		return s.configStore.Set(key, secs)

	case KeyRequestsPerSecond:
		rps, err := strconv.ParseFloat(value, 64)
		if err != nil || rps < 0 {
			return fmt.Errorf("%w: %s must be zero or a positive number", domain.ErrInvalidInput, key)
		}
		return s.configStore.Set(key, rps)

	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
}

// Keys returns the dotted keys accepted by Set.
func (s *SettingsService) Keys() []string {
	keys := []string{
		KeyBackendURL, KeyBackendTimeout, KeyRequestsPerSecond,
		KeyNoticeCancelled, KeyNoticeRateLimited, KeyLogFile,
	}
	sort.Strings(keys)
	return keys
}

// List returns every setting with its effective value, ordered by key.
func (s *SettingsService) List() ([]domain.Setting, error) {
	settings, err := s.Get()
	if err != nil {
		return nil, err
	}

	values := map[string]string{
		KeyBackendURL:        settings.Backend.BaseURL,
		KeyBackendTimeout:    strconv.FormatInt(int64(settings.Backend.Timeout/time.Second), 10),
		KeyRequestsPerSecond: strconv.FormatFloat(settings.Backend.RequestsPerSecond, 'f', -1, 64),
		KeyNoticeCancelled:   settings.Notices.Cancelled,
		KeyNoticeRateLimited: settings.Notices.RateLimited,
		KeyLogFile:           settings.Log.File,
	}

	keys := s.Keys()
	out := make([]domain.Setting, 0, len(keys))
	for _, key := range keys {
		out = append(out, domain.Setting{
			Key:         key,
			Value:       values[key],
			Description: descriptions[key],
		})
	}
	return out, nil
}

func (s *SettingsService) getString(key, fallback string) string {
	if v := s.configStore.GetString(key); v != "" {
		return v
	}
	return fallback
}

func (s *SettingsService) getDuration(key string, fallback time.Duration) time.Duration {
	if d := s.configStore.GetDuration(key); d > 0 {
		return d
	}
	return fallback
}
