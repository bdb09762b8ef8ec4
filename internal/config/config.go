package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/tailscale/hujson"

	"github.com/treykane/vscroll/internal/logging"
	"github.com/treykane/vscroll/internal/scroller"
)

const (
	configDirName  = ".vscroll"
	configFileName = "config.json"
)

var log = logging.New("config")

var (
	ErrNotConfigured = errors.New("vscroll is not configured")
	ErrInvalidConfig = errors.New("invalid config")
)

// Config stores user settings. The file may contain comments and trailing
// commas. Zero sizes select the engine defaults.
type Config struct {
	NotesDir     string `json:"notes_dir,omitempty"`
	Synthetic    bool   `json:"synthetic,omitempty"`
	InitialIndex int    `json:"initial_index"`
	MinIndex     *int   `json:"min_index,omitempty"`
	MaxIndex     *int   `json:"max_index,omitempty"`

	BatchSize           int `json:"batch_size,omitempty"`
	BufferSize          int `json:"buffer_size,omitempty"`
	EstimatedCellHeight int `json:"estimated_cell_height,omitempty"`
	CellHeight          int `json:"cell_height,omitempty"`
	ScrollThreshold     int `json:"scroll_threshold,omitempty"`

	GlamourStyle string `json:"glamour_style,omitempty"`

	// Keybindings maps action names to keys, replacing the defaults.
	Keybindings map[string]string `json:"keybindings,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() (Config, error) {
	dir, err := DefaultNotesDir()
	if err != nil {
		return Config{}, err
	}
	return Config{NotesDir: dir}, nil
}

// DefaultNotesDir returns the notes directory used when none is configured.
func DefaultNotesDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, "notes"), nil
}

// ConfigPath returns the configuration file path.
func ConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, configDirName, configFileName), nil
}

// Exists reports whether the config file exists.
func Exists() (bool, error) {
	path, err := ConfigPath()
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("stat config path: %w", err)
}

// Load reads and validates the saved configuration.
func Load() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, ErrNotConfigured
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, err
	}
	log.Debug("loaded config", "path", path)
	return cfg, nil
}

// Parse decodes commented JSON and normalizes the result.
func Parse(data []byte) (Config, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	var cfg Config
	dec := json.NewDecoder(bytes.NewReader(standardized))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg.Normalize()
}

// Save validates cfg and writes it atomically.
func Save(cfg Config) error {
	cfg, err := cfg.Normalize()
	if err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	data = append(data, '\n')

	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := os.Chmod(path, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	log.Info("saved config", "path", path)
	return nil
}

// Normalize expands the notes directory and validates the sizes and bounds.
func (c Config) Normalize() (Config, error) {
	if strings.TrimSpace(c.NotesDir) != "" {
		dir, err := NormalizeNotesDir(c.NotesDir)
		if err != nil {
			return Config{}, fmt.Errorf("%w: notes_dir: %w", ErrInvalidConfig, err)
		}
		c.NotesDir = dir
	} else {
		c.NotesDir = ""
	}
	if c.NotesDir == "" && !c.Synthetic {
		return Config{}, fmt.Errorf("%w: notes_dir is required unless synthetic is set", ErrInvalidConfig)
	}

	sizes := []struct {
		name  string
		value int
	}{
		{"batch_size", c.BatchSize},
		{"buffer_size", c.BufferSize},
		{"estimated_cell_height", c.EstimatedCellHeight},
		{"cell_height", c.CellHeight},
		{"scroll_threshold", c.ScrollThreshold},
	}
	for _, s := range sizes {
		if s.value < 0 {
			return Config{}, fmt.Errorf("%w: %s must not be negative, got %d", ErrInvalidConfig, s.name, s.value)
		}
	}
	if c.CellHeight > 0 && c.EstimatedCellHeight > 0 {
		return Config{}, fmt.Errorf("%w: cell_height and estimated_cell_height are mutually exclusive", ErrInvalidConfig)
	}
	if (c.MinIndex == nil) != (c.MaxIndex == nil) {
		return Config{}, fmt.Errorf("%w: min_index and max_index must be set together", ErrInvalidConfig)
	}
	if c.MinIndex != nil && *c.MinIndex > *c.MaxIndex {
		return Config{}, fmt.Errorf("%w: min_index %d exceeds max_index %d", ErrInvalidConfig, *c.MinIndex, *c.MaxIndex)
	}
	c.GlamourStyle = strings.ToLower(strings.TrimSpace(c.GlamourStyle))
	return c, nil
}

// Bounds returns the configured index range, or nil when none is set.
func (c Config) Bounds() *scroller.Bounds {
	if c.MinIndex == nil || c.MaxIndex == nil {
		return nil
	}
	return &scroller.Bounds{Min: *c.MinIndex, Max: *c.MaxIndex}
}

// EngineOptions returns engine options for a viewport of width x height.
// Bounds are left for the caller, which knows whether the source is finite.
func (c Config) EngineOptions(width, height int) scroller.Options {
	return scroller.Options{
		InitialIndex:        c.InitialIndex,
		ViewportWidth:       width,
		ViewportHeight:      height,
		BatchSize:           c.BatchSize,
		BufferSize:          c.BufferSize,
		CellHeight:          c.CellHeight,
		EstimatedCellHeight: c.EstimatedCellHeight,
		ScrollThreshold:     c.ScrollThreshold,
	}
}

// NormalizeNotesDir expands and normalizes a notes directory path.
func NormalizeNotesDir(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", errors.New("path is required")
	}

	expanded, err := expandHome(trimmed)
	if err != nil {
		return "", err
	}

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", err
	}

	return filepath.Clean(abs), nil
}

func expandHome(path string) (string, error) {
	if path == "~" {
		return os.UserHomeDir()
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
	}
	return path, nil
}
