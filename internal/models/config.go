package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Config holds process-level knobs: where the store and exports live and how
// the sheet is fetched. Café identity, sheet url, interval and VAT live in the
// persisted Settings record, not here.
type Config struct {
	StorePath    string        `mapstructure:"store_path"`
	ExportDir    string        `mapstructure:"export_dir"`
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
	BackupBucket string        `mapstructure:"backup_bucket"`
	BackupRegion string        `mapstructure:"backup_region"`
}

// LoadConfig initializes and reads the configuration using Viper
func LoadConfig(cfgFile string) (*Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("cafetill")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv() // Read in environment variables that match

	viper.SetDefault("store_path", "cafetill.db")
	viper.SetDefault("export_dir", ".")
	viper.SetDefault("fetch_timeout", "15s")

	if err := viper.ReadInConfig(); err != nil {
		// a config file is optional unless one was named explicitly
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			config.DecodeHook,
			mapstructure.StringToTimeDurationHookFunc(),
		)
	})
	if err := viper.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	return &config, nil
}
