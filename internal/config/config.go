// Package config loads the command's YAML configuration file.
//
// A configuration file looks like:
//
//	policy:
//	  create_parents: true
//	  overwrite: false
//	  recursive: false
//	  atomic: false
//	  dereference: false
//	  sync: false
//	log:
//	  level: info
//	  format: text
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"lesiw.io/fsops"
	"lesiw.io/fsops/internal/logging"
)

// Config is the contents of a configuration file.
type Config struct {
	Policy Policy `yaml:"policy"`
	Log    Log    `yaml:"log"`
}

// Policy holds the default capability choices. Each field matches one
// [fsops.Capability].
type Policy struct {
	CreateParents bool `yaml:"create_parents"`
	Overwrite     bool `yaml:"overwrite"`
	Recursive     bool `yaml:"recursive"`
	Atomic        bool `yaml:"atomic"`
	Dereference   bool `yaml:"dereference"`
	Sync          bool `yaml:"sync"`
}

// Log configures logging.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{Log: Log{Level: "info", Format: "text"}}
}

// Load reads the configuration at name. A missing file yields [Default].
// Fields the file leaves out keep their default values.
func Load(name string) (Config, error) {
	cfg := Default()
	if name == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, err
	}
	if err := Parse(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: %w", name, err)
	}
	return cfg, nil
}

// Parse decodes YAML data into cfg and validates the result.
func Parse(data []byte, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return err
	}
	return cfg.Validate()
}

// Validate reports whether c names a known log level and format.
func (c Config) Validate() error {
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if _, err := logging.ParseFormat(c.Log.Format); err != nil {
		return err
	}
	return nil
}

// ExecutorPolicy returns the executor policy c describes.
func (c Config) ExecutorPolicy() fsops.Policy {
	return fsops.Policy{
		CreateParents: fsops.CreateNonexistentParents(c.Policy.CreateParents),
		Overwrite:     fsops.OverwritePreexisting(c.Policy.Overwrite),
		Recurse:       fsops.DeleteRecursively(c.Policy.Recursive),
		Atomic:        fsops.MoveAtomically(c.Policy.Atomic),
		Dereference:   fsops.DereferenceSymlinks(c.Policy.Dereference),
		Sync:          fsops.WriteSynchronously(c.Policy.Sync),
	}
}

// Logger returns the logger c describes, writing to opts.Output.
func (c Config) Logger(opts logging.Options) (*slog.Logger, error) {
	level, err := logging.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, err
	}
	json, err := logging.ParseFormat(c.Log.Format)
	if err != nil {
		return nil, err
	}
	opts.Level, opts.JSON = level, json
	return logging.NewLogger(&opts), nil
}
