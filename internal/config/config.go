// Package config handles tool configuration loading and management.
package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all converter settings.
type Config struct {
	Convert ConvertConfig `yaml:"convert"`
	Export  ExportConfig  `yaml:"export"`
	Watch   WatchConfig   `yaml:"watch"`
	Logging LoggingConfig `yaml:"logging"`
}

// ConvertConfig holds settings for the document conversion itself.
type ConvertConfig struct {
	// TextureDir overrides the directory external textures are read
	// from. Empty means the directory of the source document.
	TextureDir string `yaml:"texture_dir"`
	// ExternalTextures enables reading texture files from disk. When
	// disabled only embedded clips resolve.
	ExternalTextures bool `yaml:"external_textures"`
	// UnitScale overrides the document's unit scale factor when positive.
	// Useful for documents exported with wrong unit metadata.
	UnitScale float64 `yaml:"unit_scale"`
}

// ExportConfig holds output settings.
type ExportConfig struct {
	// Format selects the container: "gltf" for JSON or "glb" for binary.
	Format string `yaml:"format"`
	OutDir string `yaml:"out_dir"`
}

// WatchConfig holds directory watching settings.
type WatchConfig struct {
	// Debounce delays reconversion after a change so editors that write
	// in bursts trigger one run.
	Debounce time.Duration `yaml:"debounce"`
	// Extensions lists the file suffixes that trigger reconversion.
	Extensions []string `yaml:"extensions"`
}

// UnmarshalYAML accepts "500ms" style debounce values. Fields absent from
// the file keep whatever the config already holds.
func (w *WatchConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Debounce   string   `yaml:"debounce"`
		Extensions []string `yaml:"extensions"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	if raw.Debounce != "" {
		d, err := time.ParseDuration(raw.Debounce)
		if err != nil {
			return fmt.Errorf("watch.debounce: %w", err)
		}
		w.Debounce = d
	}
	if raw.Extensions != nil {
		w.Extensions = raw.Extensions
	}
	return nil
}

// MarshalYAML writes the debounce back in the same "500ms" form.
func (w WatchConfig) MarshalYAML() (interface{}, error) {
	return struct {
		Debounce   string   `yaml:"debounce"`
		Extensions []string `yaml:"extensions"`
	}{Debounce: w.Debounce.String(), Extensions: w.Extensions}, nil
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Convert: ConvertConfig{
			TextureDir:       "",
			ExternalTextures: true,
			UnitScale:        0,
		},
		Export: ExportConfig{
			Format: "gltf",
			OutDir: "out",
		},
		Watch: WatchConfig{
			Debounce:   500 * time.Millisecond,
			Extensions: []string{".fbx"},
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
