// Package config holds the server and dataset settings, with YAML file
// overrides on top of built-in defaults.
package config

import (
	"fmt"
	"os"

	"github.com/me/taskplan/pkg/model"
	"gopkg.in/yaml.v3"
)

// ServerConfig holds configuration for the HTTP API server.
type ServerConfig struct {
	Addr      string `yaml:"addr"`       // Listen address (default ":8080")
	LogLevel  string `yaml:"log_level"`  // debug, info, warn, error
	LogFormat string `yaml:"log_format"` // text, json
}

// DefaultServerConfig returns sensible defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:      ":8080",
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// DatasetConfig describes an offline dataset build.
type DatasetConfig struct {
	Kind      model.DatasetKind `yaml:"kind"`
	Batches   int               `yaml:"batches"`
	Seed      uint64            `yaml:"seed"`
	Workers   int               `yaml:"workers"` // 0 means GOMAXPROCS
	MinTasks  int               `yaml:"min_tasks"`
	MaxTasks  int               `yaml:"max_tasks"`
	StartDate string            `yaml:"start_date"`
	Quanta    []int             `yaml:"quanta"`
	DBPath    string            `yaml:"db_path"`  // optional SQLite file recording the run
	OutPath   string            `yaml:"out_path"` // CSV destination; empty means stdout
}

// DefaultDatasetConfig returns the settings the shipped classifiers were trained with.
func DefaultDatasetConfig() DatasetConfig {
	return DatasetConfig{
		Kind:      model.DatasetAlgorithm,
		Batches:   1000,
		Seed:      1,
		MinTasks:  4,
		MaxTasks:  10,
		StartDate: "2025-09-27",
		Quanta:    []int{1, 2, 4, 6},
	}
}

// Validate returns a VALIDATION_ERROR listing every invalid field.
func (c DatasetConfig) Validate() error {
	var details []model.FieldError
	if !c.Kind.Valid() {
		details = append(details, model.FieldError{Field: "kind", Message: fmt.Sprintf("must be algo or tq, got %q", c.Kind)})
	}
	if c.Batches <= 0 {
		details = append(details, model.FieldError{Field: "batches", Message: "must be positive"})
	}
	if c.Workers < 0 {
		details = append(details, model.FieldError{Field: "workers", Message: "must not be negative"})
	}
	if c.MinTasks <= 0 || c.MaxTasks < c.MinTasks {
		details = append(details, model.FieldError{Field: "min_tasks", Message: "need 0 < min_tasks <= max_tasks"})
	}
	if len(c.Quanta) == 0 {
		details = append(details, model.FieldError{Field: "quanta", Message: "must not be empty"})
	}
	for _, q := range c.Quanta {
		if q <= 0 {
			details = append(details, model.FieldError{Field: "quanta", Message: fmt.Sprintf("quantum %d is not positive", q)})
			break
		}
	}
	if len(details) > 0 {
		return model.NewValidationError("invalid dataset config", details...)
	}
	return nil
}

// file is the on-disk layout; both sections are optional.
type file struct {
	Server  ServerConfig  `yaml:"server"`
	Dataset DatasetConfig `yaml:"dataset"`
}

// Load reads a YAML config at path over the defaults. Keys absent from the
// file keep their default value.
func Load(path string) (ServerConfig, DatasetConfig, error) {
	f := file{Server: DefaultServerConfig(), Dataset: DefaultDatasetConfig()}
	data, err := os.ReadFile(path)
	if err != nil {
		return f.Server, f.Dataset, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return f.Server, f.Dataset, fmt.Errorf("parse config %s: %w", path, err)
	}
	return f.Server, f.Dataset, nil
}
