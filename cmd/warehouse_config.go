package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/inference-sim/warehouse-sim/sim"
	"github.com/inference-sim/warehouse-sim/sim/trace"
)

// ServerConfig controls the observer HTTP endpoint.
type ServerConfig struct {
	Addr string `yaml:"addr"` // listen address; empty disables the server
}

// TraceFileConfig mirrors trace.TraceConfig in YAML form.
type TraceFileConfig struct {
	Level      string `yaml:"level"`       // "none" or "tasks"
	MaxRecords int    `yaml:"max_records"` // 0 = unbounded
}

// WarehouseConfig represents the full warehouse.yaml structure.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type WarehouseConfig struct {
	Sim    sim.SimConfig   `yaml:"sim"`
	Server ServerConfig    `yaml:"server"`
	Trace  TraceFileConfig `yaml:"trace"`
}

// DefaultWarehouseConfig is used when no config file is given.
func DefaultWarehouseConfig() WarehouseConfig {
	return WarehouseConfig{
		Sim:    sim.DefaultSimConfig(),
		Server: ServerConfig{Addr: ":8080"},
		Trace:  TraceFileConfig{Level: string(trace.TraceLevelNone)},
	}
}

// LoadWarehouseConfig reads path over the defaults. Fields the file omits keep
// their default values; unknown fields are an error. An empty path returns
// the defaults.
func LoadWarehouseConfig(path string) (WarehouseConfig, error) {
	cfg := DefaultWarehouseConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every section.
func (c WarehouseConfig) Validate() error {
	if err := c.Sim.Validate(); err != nil {
		return fmt.Errorf("sim: %w", err)
	}
	if !trace.IsValidTraceLevel(c.Trace.Level) {
		return fmt.Errorf("trace: unknown level %q (valid: none, tasks)", c.Trace.Level)
	}
	if c.Trace.MaxRecords < 0 {
		return fmt.Errorf("trace: max_records must be >= 0, got %d", c.Trace.MaxRecords)
	}
	return nil
}

// TraceConfig converts the YAML section to the trace package's config.
func (c WarehouseConfig) TraceConfig() trace.TraceConfig {
	return trace.TraceConfig{Level: trace.TraceLevel(c.Trace.Level), MaxRecords: c.Trace.MaxRecords}
}
