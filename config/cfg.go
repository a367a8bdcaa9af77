// Package config loads, validates and dumps program configuration.
package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	// ReaderConfig tunes pagination and chapter building.
	ReaderConfig struct {
		PagesPerChapter int     `yaml:"pages_per_chapter" validate:"min=1,max=100"`
		FillThreshold   float64 `yaml:"fill_threshold" validate:"gt=0,lte=1"`
		WordsPerMinute  int     `yaml:"words_per_minute" validate:"min=60,max=1200"`
		TitleScanPages  int     `yaml:"title_scan_pages" validate:"min=1,max=10"`
		TitleMaxLength  int     `yaml:"title_max_length" validate:"min=8,max=200"`
	}

	// ViewportConfig tunes the resize stability filter.
	ViewportConfig struct {
		MinHeightDelta   int `yaml:"min_height_delta" validate:"min=0"`
		ResizeDebounceMs int `yaml:"resize_debounce_ms" validate:"min=0"`
		SettleMs         int `yaml:"settle_ms" validate:"min=0"`
	}

	// StorageConfig selects and locates the durable progress store.
	StorageConfig struct {
		Kind            StoreKind `yaml:"kind" validate:"gte=0"`
		Path            string    `yaml:"path,omitempty" sanitize:"path_clean,assure_dir_exists_for_file" validate:"omitempty,filepath"`
		FlushDebounceMs int       `yaml:"flush_debounce_ms" validate:"min=0"`
	}

	LoggerConfig struct {
		Level       string `yaml:"level" validate:"required,oneof=none debug normal"`
		Destination string `yaml:"destination,omitempty" sanitize:"path_clean,assure_dir_exists_for_file" validate:"omitempty,filepath"`
		Mode        string `yaml:"mode,omitempty" validate:"omitempty,oneof=append overwrite"`
	}

	LoggingConfig struct {
		FileLogger    LoggerConfig `yaml:"file"`
		ConsoleLogger LoggerConfig `yaml:"console"`
	}

	Config struct {
		Version  int            `yaml:"version" validate:"eq=1"`
		Reader   ReaderConfig   `yaml:"reader"`
		Viewport ViewportConfig `yaml:"viewport"`
		Storage  StorageConfig  `yaml:"storage"`
		Logging  LoggingConfig  `yaml:"logging"`
	}
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
