package models

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

type CloudStorageConfig struct {
	Provider   string `mapstructure:"provider"`
	BucketName string `mapstructure:"bucket_name"`
	Region     string `mapstructure:"region"`
}

type Config struct {
	// Simulation parameters.
	Capacity      int     `mapstructure:"capacity"`
	Speed         float64 `mapstructure:"speed"`
	MaxWaitTime   float64 `mapstructure:"max_wait_time"` // reserved, not used by grouping
	MaxDelay      float64 `mapstructure:"max_delay"`
	MaxDistance   float64 `mapstructure:"max_distance"`
	MinEfficiency float64 `mapstructure:"min_efficiency"`

	// Input settings. Format is "csv" or "stream"; an empty input file with
	// the stream format reads the original whitespace protocol from stdin.
	InputFile   string `mapstructure:"input_file"`
	InputFormat string `mapstructure:"input_format"`

	// Output settings.
	OutputDestination string `mapstructure:"output_destination"`
	OutputPath        string `mapstructure:"output_path"`
	OutputFolder      string `mapstructure:"output_folder"`
	KafkaBrokerList   string `mapstructure:"kafka_broker_list"`
	SessionTimeoutMs  int    `mapstructure:"session_timeout_ms"`

	Database     DatabaseConfig     `mapstructure:"database"`
	CloudStorage CloudStorageConfig `mapstructure:"cloud_storage"`

	// Workload generator settings.
	GeneratorRequests int     `mapstructure:"generator_requests"`
	GeneratorHotspots int     `mapstructure:"generator_hotspots"`
	GeneratorTimeSpan int64   `mapstructure:"generator_time_span"`
	GeneratorAreaSize float64 `mapstructure:"generator_area_size"`
	GeneratorSpread   float64 `mapstructure:"generator_spread"`
	Seed              int64   `mapstructure:"seed"`
}

// LoadConfig initializes and reads the configuration using Viper. Flags
// bound by the command layer and environment variables override file values;
// a missing config file is not an error unless one was named explicitly.
func LoadConfig(cfgFile string) (*Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath("examples")
		viper.SetConfigName("config")
		viper.SetConfigType("json")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound || cfgFile != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(dc *mapstructure.DecoderConfig) {
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			dc.DecodeHook,
			mapstructure.StringToSliceHookFunc(","),
		)
	})
	if err := viper.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	return &config, nil
}
