package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Auth       AuthConfig       `yaml:"auth"`
	Reminder   ReminderConfig   `yaml:"reminder"`
	Compliance ComplianceConfig `yaml:"compliance"`
	Calendar   CalendarConfig   `yaml:"calendar"`
	Notifier   NotifierConfig   `yaml:"notifier"`
	Log        LogConfig        `yaml:"log"`
	CORS       CORSConfig       `yaml:"cors"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// AuthConfig holds access-token validation settings. Tokens are issued by the
// identity provider in front of this service; we only verify them.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"       env-required:"true"`
	JWTIssuer      string        `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"       env-default:"cpd-backend"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"AUTH_ACCESS_TOKEN_TTL" env-default:"15m"`
}

// ReminderConfig holds deadline-reminder scheduler settings.
type ReminderConfig struct {
	// LookaheadDays is how many days before a deadline its reminder fires.
	LookaheadDays int `yaml:"lookahead_days" env:"REMINDER_LOOKAHEAD_DAYS" env-default:"3"`
	// CronSecret authorizes the hosted scheduler's calls to /cron endpoints.
	CronSecret  string        `yaml:"cron_secret"  env:"REMINDER_CRON_SECRET"  env-required:"true"`
	SendTimeout time.Duration `yaml:"send_timeout" env:"REMINDER_SEND_TIMEOUT" env-default:"15s"`
	// Workers bounds concurrent plan processing within one dispatcher run.
	Workers int `yaml:"workers" env:"REMINDER_WORKERS" env-default:"4"`
}

// ComplianceConfig holds the renewal-policy thresholds.
type ComplianceConfig struct {
	TargetPoints   int `yaml:"target_points"    env:"COMPLIANCE_TARGET_POINTS"    env-default:"15"`
	OnlineCap      int `yaml:"online_cap"       env:"COMPLIANCE_ONLINE_CAP"       env-default:"7"`
	InPersonMin    int `yaml:"in_person_min"    env:"COMPLIANCE_IN_PERSON_MIN"    env-default:"8"`
}

// CalendarConfig holds Google Calendar OAuth and event settings.
type CalendarConfig struct {
	GoogleClientID     string `yaml:"google_client_id"     env:"CALENDAR_GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `yaml:"google_client_secret" env:"CALENDAR_GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURI  string `yaml:"google_redirect_uri"  env:"CALENDAR_GOOGLE_REDIRECT_URI"`

	// EventStartTime is the default time-of-day (HH:MM, event timezone) a
	// deadline event is anchored at.
	EventStartTime string        `yaml:"event_start_time" env:"CALENDAR_EVENT_START_TIME" env-default:"09:00"`
	EventDuration  time.Duration `yaml:"event_duration"   env:"CALENDAR_EVENT_DURATION"   env-default:"1h"`
	EventTimezone  string        `yaml:"event_timezone"   env:"CALENDAR_EVENT_TIMEZONE"   env-default:"Asia/Tokyo"`
	// ReminderOffsetsRaw is a comma-separated list of provider-side popup
	// reminder offsets (e.g. "1h,24h"). Parsed during validation.
	ReminderOffsetsRaw string `yaml:"reminder_offsets" env:"CALENDAR_REMINDER_OFFSETS" env-default:"1h,24h"`

	// ReminderOffsets is parsed from ReminderOffsetsRaw during validation.
	ReminderOffsets []time.Duration `yaml:"-" env:"-"`
}

// Enabled reports whether the Google credentials are configured.
func (c CalendarConfig) Enabled() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != "" && c.GoogleRedirectURI != ""
}

// NotifierConfig holds email-delivery settings.
type NotifierConfig struct {
	ResendAPIKey string `yaml:"resend_api_key" env:"NOTIFIER_RESEND_API_KEY" env-required:"true"`
	FromAddress  string `yaml:"from_address"   env:"NOTIFIER_FROM_ADDRESS"   env-default:"noreply@example.com"`
	AppName      string `yaml:"app_name"       env:"NOTIFIER_APP_NAME"       env-default:"臨床心理士ポイントマネージャー"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}
