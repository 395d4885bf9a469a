// Package config loads and saves asmodeus-sub000's TOML configuration
// file, mirroring the emulator's own Execution/Machine/Disassembler/
// Display sections.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config is the full on-disk configuration.
type Config struct {
	// Execution controls how a loaded program runs.
	Execution struct {
		MaxSteps        uint64 `toml:"max_steps"`
		ExtendedOpcodes bool   `toml:"extended_opcodes"`
		DefaultEntry    int    `toml:"default_entry"`
		InteractiveIO   bool   `toml:"interactive_io"`
		EnableTrace     bool   `toml:"enable_trace"`
	} `toml:"execution"`

	// Machine controls the emulated architecture's fixed parameters.
	Machine struct {
		MemorySize int `toml:"memory_size"`
	} `toml:"machine"`

	// Disassembler selects between the naive and flow-aware passes.
	Disassembler struct {
		Naive bool `toml:"naive"`
	} `toml:"disassembler"`

	// Display controls how addresses and words are formatted for
	// presentation by an external front-end.
	Display struct {
		NumberFormat string `toml:"number_format"` // hex, dec, both
		WordsPerLine int    `toml:"words_per_line"`
	} `toml:"display"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Execution.MaxSteps = 1000000
	cfg.Execution.ExtendedOpcodes = false
	cfg.Execution.DefaultEntry = 0
	cfg.Execution.InteractiveIO = false
	cfg.Execution.EnableTrace = false

	cfg.Machine.MemorySize = 2048

	cfg.Disassembler.Naive = false

	cfg.Display.NumberFormat = "hex"
	cfg.Display.WordsPerLine = 8

	return cfg
}

// GetConfigPath returns the platform-specific config file path.
func GetConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "asmodeus")

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "config.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "asmodeus")

	default:
		return "config.toml"
	}

	if err := os.MkdirAll(configDir, 0750); err != nil {
		return "config.toml"
	}

	return filepath.Join(configDir, "config.toml")
}

// GetLogPath returns the platform-specific log directory path.
func GetLogPath() string {
	var logDir string

	switch runtime.GOOS {
	case "windows":
		logDir = os.Getenv("APPDATA")
		if logDir == "" {
			logDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		logDir = filepath.Join(logDir, "asmodeus", "logs")

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "logs"
		}
		logDir = filepath.Join(homeDir, ".local", "share", "asmodeus", "logs")

	default:
		return "logs"
	}

	if err := os.MkdirAll(logDir, 0750); err != nil {
		return "logs"
	}

	return logDir
}

// Load loads configuration from the default config file.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom loads configuration from the specified file. A missing
// file is not an error: it yields the default configuration.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Save saves configuration to the default config file.
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo saves configuration to the specified file.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path) // #nosec G304 -- user config file path
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close config file: %w", closeErr)
		}
	}()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}
