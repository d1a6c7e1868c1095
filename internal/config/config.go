// This file defines the configuration structure for the application.
package config

import (
	// use Viper for loading the config.yml file.
	"log"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds all configuration settings for the application.
// It maps directly to the structure of config.yml.
type Config struct {
	Port     int `mapstructure:"port"`
	Database struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"database"`
	Downloads struct {
		// Path is the downloads root. It may change while the server runs.
		Path string `mapstructure:"path"`
		// TmpSweepInterval is in minutes; 0 disables the sweep.
		TmpSweepInterval int `mapstructure:"tmp_sweep_interval"`
		// TmpMaxAge is in hours; 0 or less disables the sweep.
		TmpMaxAge int `mapstructure:"tmp_max_age"`
	} `mapstructure:"downloads"`
	Similar struct {
		BaseURL string `mapstructure:"base_url"`
	} `mapstructure:"similar"`
}

// Load reads configuration from a file named "config.yml" in the
// current directory and unmarshals it into a Config struct.
func Load() (*Config, error) {
	viper.SetConfigName("config") // name of config file (without extension)
	viper.SetConfigType("yml")    // or "yaml"
	viper.AddConfigPath(".")      // looking for config in the current directory

	// --- Environment Variable Overrides ---
	// e.g., MANGO_DOWNLOADS_PATH will override the `downloads.path` key.
	viper.SetEnvPrefix("MANGO")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Set default values
	viper.SetDefault("port", 8080)
	viper.SetDefault("database.path", "./mango.db")
	viper.SetDefault("downloads.path", "./downloads")
	viper.SetDefault("downloads.tmp_sweep_interval", 60)
	viper.SetDefault("downloads.tmp_max_age", 24)
	viper.SetDefault("similar.base_url", "https://raw.githubusercontent.com")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; ignore error and use defaults
		} else {
			// Config file was found but another error was produced
			return nil, err
		}
	}

	return unmarshal()
}

func unmarshal() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

// Watch calls onChange with the reloaded configuration every time the
// config file changes. It does nothing when no config file was loaded.
func Watch(onChange func(*Config)) {
	if viper.ConfigFileUsed() == "" {
		log.Println("No config file in use, configuration changes will not be watched.")
		return
	}
	viper.OnConfigChange(func(e fsnotify.Event) {
		reload(e, onChange)
	})
	viper.WatchConfig()
	log.Printf("Watching %s for changes", viper.ConfigFileUsed())
}

func reload(e fsnotify.Event, onChange func(*Config)) {
	cfg, err := unmarshal()
	if err != nil {
		log.Printf("Ignoring invalid configuration change in %s: %v", e.Name, err)
		return
	}
	log.Printf("Configuration reloaded after %s on %s", e.Op, e.Name)
	onChange(cfg)
}
