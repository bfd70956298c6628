package config

import (
	"os"
	"pokerbot-server/internal/util"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config provides configuration for the poker bot server
type Config struct {
	loaded         bool
	PGDSN          string `yaml:"pgDsn" envconfig:"pg_dsn"`
	MigrationsPath string `yaml:"migrationsPath" envconfig:"migrations_path"`
	JWT            struct {
		PublicKey  string `yaml:"publicKey" envconfig:"public_key"`
		PrivateKey string `yaml:"privateKey" envconfig:"private_key"`
	}
	Log struct {
		Level             string `yaml:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	}
	Game struct {
		// TurnTimeoutSeconds is how long a player may sit on their turn before
		// they are automatically folded
		TurnTimeoutSeconds  int `yaml:"turnTimeoutSeconds" envconfig:"turn_timeout_seconds"`
		SweepIntervalMillis int `yaml:"sweepIntervalMillis" envconfig:"sweep_interval_millis"`
	}
}

var config Config

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

// Load will load the configuration
func Load() error {
	config = Config{}
	config.Game.TurnTimeoutSeconds = 60
	config.Game.SweepIntervalMillis = 1000

	configFile := util.Getenv("PBS_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err == nil {
		defer file.Close()

		if err := yaml.NewDecoder(file).Decode(&config); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	if err := envconfig.Process("pbs", &config); err != nil {
		return err
	}

	config.loaded = true
	return nil
}
