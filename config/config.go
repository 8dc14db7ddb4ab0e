package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	LogLevel int `yaml:"log_level"`

	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Engine  EngineConfig  `yaml:"engine"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

type StorageConfig struct {
	// Path to the sqlite database file.
	Path string `yaml:"path"`
}

// EngineConfig carries the setlist engine tuning. The engine packages take
// these as plain values and never read configuration themselves.
type EngineConfig struct {
	BaseTransitionSeconds float64 `yaml:"base_transition_seconds"`
	BpmPenaltyPerBpm      float64 `yaml:"bpm_penalty_per_bpm"`
	KeyMismatchPenalty    float64 `yaml:"key_mismatch_penalty"`
	MaxTransitionSeconds  float64 `yaml:"max_transition_seconds"`

	DefaultSongDurationSeconds int `yaml:"default_song_duration_seconds"`

	DuplicateThreshold float64 `yaml:"duplicate_threshold"`
	RankLimit          int     `yaml:"rank_limit"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config *Config

	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, err
	}
	if config == nil {
		config = &Config{}
	}

	applyDefaults(config)
	return config, nil
}

// Default returns a config with all defaults applied, for callers that run
// without a config file.
func Default() *Config {
	config := &Config{}
	applyDefaults(config)
	return config
}

func applyDefaults(config *Config) {
	if config.Server.Port == "" {
		config.Server.Port = "8080"
	}

	if config.Storage.Path == "" {
		config.Storage.Path = "data/stagekit.db"
	}

	if config.Engine.BaseTransitionSeconds == 0 {
		config.Engine.BaseTransitionSeconds = 15
	}

	if config.Engine.BpmPenaltyPerBpm == 0 {
		config.Engine.BpmPenaltyPerBpm = 0.2
	}

	if config.Engine.KeyMismatchPenalty == 0 {
		config.Engine.KeyMismatchPenalty = 10
	}

	if config.Engine.MaxTransitionSeconds == 0 {
		config.Engine.MaxTransitionSeconds = 45
	}

	if config.Engine.DefaultSongDurationSeconds == 0 {
		config.Engine.DefaultSongDurationSeconds = 240
	}

	if config.Engine.DuplicateThreshold == 0 {
		config.Engine.DuplicateThreshold = 0.8
	}

	if config.Engine.RankLimit == 0 {
		config.Engine.RankLimit = 5
	}
}
