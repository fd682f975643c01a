// Package config loads taskmate settings from an optional taskmate.yaml and
// TASKMATE_* environment variables.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	DBPath string `mapstructure:"db_path"`
	Log    struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"log"`
	Auth struct {
		Delay time.Duration `mapstructure:"delay"`
	} `mapstructure:"auth"`
	// Theme overrides the terminal's dark-mode hint when no theme is stored.
	Theme string `mapstructure:"theme"`
}

// Load reads configuration. It never fails: unreadable files and bad values
// fall back to defaults.
func Load() Config {
	v := viper.New()
	v.SetDefault("db_path", "")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")
	v.SetDefault("auth.delay", "0s")
	v.SetDefault("theme", "")

	v.SetConfigName("taskmate")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, "taskmate"))
	}
	_ = v.ReadInConfig()

	v.SetEnvPrefix("TASKMATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// explicit bindings
	_ = v.BindEnv("db_path", "TASKMATE_DB")
	_ = v.BindEnv("log.level", "TASKMATE_LOG_LEVEL")
	_ = v.BindEnv("log.format", "TASKMATE_LOG_FORMAT")
	_ = v.BindEnv("auth.delay", "TASKMATE_AUTH_DELAY")
	_ = v.BindEnv("theme", "TASKMATE_THEME")

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		c = Config{DBPath: v.GetString("db_path"), Theme: v.GetString("theme")}
		c.Log.Level = v.GetString("log.level")
		c.Log.Format = v.GetString("log.format")
	}
	if c.Auth.Delay < 0 {
		c.Auth.Delay = 0
	}
	c.Theme = strings.ToLower(strings.TrimSpace(c.Theme))
	return c
}
