package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	API    APIConfig    `mapstructure:"api"`
	Client ClientConfig `mapstructure:"client"`
	Seed   SeedConfig   `mapstructure:"seed"`
}

// APIConfig locates the remote Jub API service
type APIConfig struct {
	Hostname string `mapstructure:"hostname"`
	Port     int    `mapstructure:"port"`

	// BaseURL, when set, overrides hostname/port and is used verbatim
	BaseURL string `mapstructure:"base_url"`
}

// ClientConfig holds client behavior configuration
type ClientConfig struct {
	Timeout              int    `mapstructure:"timeout"`
	MaxRequestsPerSecond int    `mapstructure:"max_requests_per_second"`
	IDAlphabet           string `mapstructure:"id_alphabet"`
	IDSize               int    `mapstructure:"id_size"`
}

// SeedConfig holds settings for the catalog seeding service
type SeedConfig struct {
	CatalogDir       string `mapstructure:"catalog_dir"`
	ObservatoryTitle string `mapstructure:"observatory_title"`
}

// Load loads configuration from an optional YAML file with environment
// variable overrides (JUB_ prefix; JUB_PORT maps to the API port)
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	setDefaults()

	viper.SetEnvPrefix("jub")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	_ = viper.BindEnv("api.port", "JUB_PORT")
	_ = viper.BindEnv("api.hostname", "JUB_HOSTNAME")

	if err := viper.ReadInConfig(); err != nil {
		// The config file is optional; defaults plus env cover the library use case
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("api.hostname", "localhost")
	viper.SetDefault("api.port", 5000)
	viper.SetDefault("api.base_url", "")

	viper.SetDefault("client.timeout", 60)
	viper.SetDefault("client.max_requests_per_second", 0)
	viper.SetDefault("client.id_alphabet", "")
	viper.SetDefault("client.id_size", 0)

	viper.SetDefault("seed.catalog_dir", "./catalogs")
	viper.SetDefault("seed.observatory_title", "Observatory")
}
