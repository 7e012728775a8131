package config

import (
	"fmt"
	"strings"
	"time"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if err := c.Reminder.validate(); err != nil {
		return fmt.Errorf("reminder: %w", err)
	}
	if err := c.Compliance.validate(); err != nil {
		return fmt.Errorf("compliance: %w", err)
	}
	if err := c.Calendar.validate(); err != nil {
		return fmt.Errorf("calendar: %w", err)
	}

	return nil
}

func (c *ReminderConfig) validate() error {
	if c.LookaheadDays < 0 {
		return fmt.Errorf("lookahead_days must be >= 0 (got %d)", c.LookaheadDays)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be >= 1 (got %d)", c.Workers)
	}
	if c.SendTimeout <= 0 {
		return fmt.Errorf("send_timeout must be > 0 (got %v)", c.SendTimeout)
	}
	return nil
}

func (c *ComplianceConfig) validate() error {
	if c.TargetPoints <= 0 {
		return fmt.Errorf("target_points must be > 0 (got %d)", c.TargetPoints)
	}
	if c.OnlineCap < 0 {
		return fmt.Errorf("online_cap must be >= 0 (got %d)", c.OnlineCap)
	}
	if c.InPersonMin < 0 {
		return fmt.Errorf("in_person_min must be >= 0 (got %d)", c.InPersonMin)
	}
	return nil
}

func (c *CalendarConfig) validate() error {
	if _, err := time.Parse("15:04", c.EventStartTime); err != nil {
		return fmt.Errorf("event_start_time: want HH:MM, got %q", c.EventStartTime)
	}
	if c.EventDuration <= 0 {
		return fmt.Errorf("event_duration must be > 0 (got %v)", c.EventDuration)
	}
	if _, err := time.LoadLocation(c.EventTimezone); err != nil {
		return fmt.Errorf("event_timezone: %w", err)
	}

	offsets, err := ParseReminderOffsets(c.ReminderOffsetsRaw)
	if err != nil {
		return fmt.Errorf("reminder_offsets: %w", err)
	}
	c.ReminderOffsets = offsets

	return nil
}

// ParseReminderOffsets parses a comma-separated string of durations
// (e.g. "1h,24h") into a slice of time.Duration. An empty string returns
// a nil slice.
func ParseReminderOffsets(raw string) ([]time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	offsets := make([]time.Duration, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		d, err := time.ParseDuration(p)
		if err != nil {
			return nil, fmt.Errorf("invalid duration %q: %w", p, err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("offset must be positive, got %v", d)
		}
		offsets = append(offsets, d)
	}

	return offsets, nil
}
