package appconf

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// FileConfig is the optional YAML configuration file. Every field is optional;
// set fields override the corresponding flag values.
type FileConfig struct {
	Server struct {
		Port int `yaml:"port" validate:"omitempty,gt=0,lte=65535"`
	} `yaml:"server"`
	Luas struct {
		StopCode              string `yaml:"stopCode" validate:"omitempty,lowercase,alphanum"`
		FeedURL               string `yaml:"feedURL" validate:"omitempty,url"`
		PollIntervalSeconds   int    `yaml:"pollIntervalSeconds" validate:"gte=0"`
		DetectIntervalSeconds int    `yaml:"detectIntervalSeconds" validate:"gte=0"`
	} `yaml:"luas"`
	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`
}

// LoadFile reads and validates a YAML configuration file.
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}

	return &cfg, nil
}

// Apply overlays the set fields of the file onto cfg.
func (f *FileConfig) Apply(cfg *Config) {
	if f.Server.Port != 0 {
		cfg.Port = f.Server.Port
	}
	if f.Luas.StopCode != "" {
		cfg.StopCode = f.Luas.StopCode
	}
	if f.Luas.FeedURL != "" {
		cfg.FeedURL = f.Luas.FeedURL
	}
	if f.Luas.PollIntervalSeconds != 0 {
		cfg.PollInterval = time.Duration(f.Luas.PollIntervalSeconds) * time.Second
	}
	if f.Luas.DetectIntervalSeconds != 0 {
		cfg.DetectInterval = time.Duration(f.Luas.DetectIntervalSeconds) * time.Second
	}
	if f.Database.Path != "" {
		cfg.DBPath = f.Database.Path
	}
}
