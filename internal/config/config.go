package config

import (
	"os"

	"tableside/internal/util"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config provides configuration for the tableside client
type Config struct {
	loaded bool

	// ServerURL is the card room's websocket base URL
	ServerURL string `yaml:"serverUrl" envconfig:"server_url"`

	// TableID and PlayerID form the connect endpoint path. Both are
	// usually supplied on the command line instead.
	TableID  string `yaml:"tableId" envconfig:"table_id"`
	PlayerID string `yaml:"playerId" envconfig:"player_id"`

	Log struct {
		Level string `yaml:"level"`
	}
}

var config Config

// DefaultConfig returns a configuration with sane defaults
func DefaultConfig() Config {
	cfg := Config{
		ServerURL: "ws://localhost:2222",
	}
	cfg.Log.Level = "info"
	return cfg
}

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration. A missing config file is fine; the
// defaults plus TS_* environment variables still apply.
func Load() error {
	config = DefaultConfig()

	configFile := util.Getenv("TS_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err == nil {
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&config); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	if err := envconfig.Process("ts", &config); err != nil {
		return err
	}

	config.loaded = true
	return nil
}
