// Package config resolves unroll's settings from viper: config file,
// UNROLL_* environment variables and bound command-line flags.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Veraticus/unroll/internal/common"
	"github.com/Veraticus/unroll/internal/model"
	"github.com/Veraticus/unroll/internal/notify"
)

// Viper keys.
const (
	KeyDatabasePath    = "database.path"
	KeyLogLevel        = "logging.level"
	KeyLogFormat       = "logging.format"
	KeyNotificationTTL = "notifications.ttl"
	KeyThemeOverride   = "ui.theme_override"
)

const (
	// DefaultDatabasePath is expanded against the environment at load time.
	DefaultDatabasePath = "$HOME/.local/share/unroll/unroll.db"
	// EnvPrefix namespaces environment overrides, e.g. UNROLL_DATABASE_PATH.
	EnvPrefix = "UNROLL"
)

// Config is the resolved process configuration.
type Config struct {
	DatabasePath    string
	LogLevel        string
	LogFormat       string
	ThemeOverride   model.Theme
	NotificationTTL time.Duration
}

// SetDefaults installs defaults and environment lookup on v.
// UNROLL_DATABASE_PATH maps to database.path.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyDatabasePath, DefaultDatabasePath)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyNotificationTTL, notify.DefaultTTL)
	v.SetDefault(KeyThemeOverride, "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load reads the resolved values from v and validates them.
func Load(v *viper.Viper) (*Config, error) {
	dbPath := v.GetString(KeyDatabasePath)
	if strings.TrimSpace(dbPath) == "" {
		dbPath = DefaultDatabasePath
	}

	override, err := ParseThemeOverride(v.GetString(KeyThemeOverride))
	if err != nil {
		return nil, err
	}

	ttl := v.GetDuration(KeyNotificationTTL)
	if ttl <= 0 {
		return nil, common.NewUserError(
			fmt.Sprintf("%s must be a positive duration, got %q", KeyNotificationTTL, v.GetString(KeyNotificationTTL)),
			common.ErrInvalidConfig)
	}

	return &Config{
		DatabasePath:    ExpandPath(dbPath),
		LogLevel:        v.GetString(KeyLogLevel),
		LogFormat:       v.GetString(KeyLogFormat),
		ThemeOverride:   override,
		NotificationTTL: ttl,
	}, nil
}

// ParseThemeOverride validates a theme pin. Empty means follow the stored setting.
func ParseThemeOverride(value string) (model.Theme, error) {
	switch t := model.Theme(strings.ToLower(strings.TrimSpace(value))); t {
	case "", model.ThemeLight, model.ThemeDark:
		return t, nil
	default:
		return "", common.NewUserError(
			fmt.Sprintf("%s must be light or dark, got %q", KeyThemeOverride, value),
			common.ErrInvalidConfig)
	}
}
