package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Port          int
	DatabasePath  string
	DataDir       string
	LogLevel      string
	BaseURL       string
	CSRFKey       string
	ClassPrefix   string
	FixturesPath  string
	BannerLevel   string
	BannerMessage string
}

// Load reads configuration from the environment, layered over an optional
// YAML file. An empty configFile falls back to CONFIG_FILE.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	v.SetDefault("port", 8080)
	v.SetDefault("database_path", "data/blogdesign.db")
	v.SetDefault("data_dir", "data")
	v.SetDefault("log_level", "info")
	v.SetDefault("base_url", "http://localhost:8080")
	v.SetDefault("class_prefix", "ant")
	v.SetDefault("fixtures_path", "")
	v.SetDefault("banner_level", "")
	v.SetDefault("banner_message", "")
	v.SetDefault("csrf_key", "")
	v.AutomaticEnv()

	if configFile == "" {
		configFile = os.Getenv("CONFIG_FILE")
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", configFile, err)
		}
	}

	cfg := &Config{
		Port:          v.GetInt("port"),
		DatabasePath:  v.GetString("database_path"),
		DataDir:       v.GetString("data_dir"),
		LogLevel:      v.GetString("log_level"),
		BaseURL:       v.GetString("base_url"),
		CSRFKey:       v.GetString("csrf_key"),
		ClassPrefix:   v.GetString("class_prefix"),
		FixturesPath:  v.GetString("fixtures_path"),
		BannerLevel:   v.GetString("banner_level"),
		BannerMessage: v.GetString("banner_message"),
	}

	var missing []string

	if len(cfg.CSRFKey) != 32 {
		missing = append(missing, "CSRF_KEY (must be exactly 32 characters)")
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		missing = append(missing, "PORT (must be between 1 and 65535)")
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		missing = append(missing, "LOG_LEVEL (must be one of debug, info, warn, error)")
	}
	if cfg.ClassPrefix == "" {
		missing = append(missing, "CLASS_PREFIX (must not be empty)")
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("missing or invalid configuration: %v", missing)
	}

	return cfg, nil
}
