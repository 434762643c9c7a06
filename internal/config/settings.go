package config

import (
	"fmt"
	"strconv"
	"time"
)

// Settings holds the per-repository options kept in config.json.
type Settings struct {
	Timezone string `json:"timezone"`
}

// DefaultSettings returns the settings written by init.
func DefaultSettings() Settings {
	return Settings{Timezone: DefaultTimezone}
}

// Location returns the fixed-offset zone commit dates are rendered in.
func (s Settings) Location() (*time.Location, error) {
	tz := s.Timezone
	if tz == "" {
		tz = DefaultTimezone
	}
	if len(tz) != 5 || (tz[0] != '+' && tz[0] != '-') {
		return nil, fmt.Errorf("invalid timezone %q (want ±HHMM)", tz)
	}
	hours, err := strconv.Atoi(tz[1:3])
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}
	minutes, err := strconv.Atoi(tz[3:5])
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}
	if hours > 14 || minutes > 59 {
		return nil, fmt.Errorf("invalid timezone %q: out of range", tz)
	}
	offset := hours*3600 + minutes*60
	if tz[0] == '-' {
		offset = -offset
	}
	return time.FixedZone(tz, offset), nil
}
