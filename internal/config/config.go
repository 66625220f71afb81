// Package config loads the apps served by the tame command from tame.yaml
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/tameorm/tame"
	"github.com/tameorm/tame/logger"
)

// Config represents the tame.yaml configuration
type Config struct {
	UseTZ    bool        `mapstructure:"use_tz"`
	Timezone string      `mapstructure:"timezone"`
	Log      LogConfig   `mapstructure:"log"`
	Apps     []AppConfig `mapstructure:"apps"`
}

// LogConfig represents logger configuration
type LogConfig struct {
	Format        string        `mapstructure:"format"`
	Level         string        `mapstructure:"level"`
	SlowThreshold time.Duration `mapstructure:"slow_threshold"`
}

// AppConfig represents one app to load
type AppConfig struct {
	Name     string   `mapstructure:"name"`
	Models   []string `mapstructure:"models"`
	DBURL    string   `mapstructure:"db_url"`
	CreateDB bool     `mapstructure:"create_db"`
	Generate bool     `mapstructure:"generate_schemas"`
	Safe     bool     `mapstructure:"safe"`
}

// Load loads the configuration from path, or from tame.yaml in the working
// directory when path is empty. TAME_ prefixed environment variables override
// top level keys, e.g. TAME_TIMEZONE or TAME_LOG_LEVEL.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("timezone", tame.DefaultTimezone)
	v.SetDefault("log.format", "zap")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.slow_threshold", 200*time.Millisecond)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("tame")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("tame")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks every app has a name, model locations and a database url
func (c *Config) Validate() error {
	seen := map[string]bool{}
	for i, app := range c.Apps {
		switch {
		case app.Name == "":
			return fmt.Errorf("apps[%d]: name is required", i)
		case seen[app.Name]:
			return fmt.Errorf("apps[%d]: app %q declared twice", i, app.Name)
		case len(app.Models) == 0:
			return fmt.Errorf("app %q: models are required", app.Name)
		case app.DBURL == "":
			return fmt.Errorf("app %q: db_url is required", app.Name)
		}
		seen[app.Name] = true
	}

	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// Logger builds the logger described by the log section
func (c *Config) Logger() (logger.Interface, error) {
	level, err := logger.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, err
	}
	return logger.New(c.Log.Format, logger.Config{LogLevel: level, SlowThreshold: c.Log.SlowThreshold})
}

// LoadOptions returns the options loading app
func (c *Config) LoadOptions(app AppConfig) tame.LoadOptions {
	return tame.LoadOptions{
		App:             app.Name,
		Models:          app.Models,
		DBURL:           app.DBURL,
		UseTZ:           c.UseTZ,
		Timezone:        c.Timezone,
		GenerateSchemas: app.Generate,
		CreateDB:        app.CreateDB,
		Safe:            app.Safe,
	}
}
