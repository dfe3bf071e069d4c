package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"
)

// Order values accepted by config and flags.
const (
	OrderMin = "min"
	OrderMax = "max"
)

// ConfigFileName is the default project config file name.
const ConfigFileName = ".ringy.json"

const historyFileName = ".ringy_history"

// Config holds all configuration options.
type Config struct {
	Capacity    int    `json:"capacity,omitempty"`
	Order       string `json:"order,omitempty"`
	History     *bool  `json:"history,omitempty"`
	HistoryFile string `json:"history_file,omitempty"` //nolint:tagliatelle // snake_case for config file
}

// ConfigSources tracks which config files were loaded.
type ConfigSources struct {
	Global  string // Path to global config if loaded, empty otherwise
	Project string // Path to project or explicit config if loaded, empty otherwise
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	history := true

	return Config{
		Capacity: 16,
		Order:    OrderMin,
		History:  &history,
	}
}

// HistoryEnabled reports whether the REPL should persist its history.
func (c Config) HistoryEnabled() bool {
	return c.History == nil || *c.History
}

// LoadConfig loads configuration with the following precedence (highest wins):
// 1. Defaults
// 2. Global user config ($XDG_CONFIG_HOME/ringy/config.json or ~/.config/ringy/config.json)
// 3. Project config file at default location (.ringy.json, if exists)
// 4. Explicit config file via configPath (if non-empty, must exist)
// 5. CLI overrides (non-zero fields of overrides).
func LoadConfig(workDir, configPath string, overrides Config, env map[string]string) (Config, ConfigSources, error) {
	cfg := DefaultConfig()

	var sources ConfigSources

	if globalPath := globalConfigPath(env); globalPath != "" {
		globalCfg, loaded, err := loadConfigFile(globalPath, false)
		if err != nil {
			return Config{}, ConfigSources{}, err
		}

		if loaded {
			sources.Global = globalPath
			cfg = mergeConfig(cfg, globalCfg)
		}
	}

	projectPath := filepath.Join(workDir, ConfigFileName)
	mustExist := false

	if configPath != "" {
		projectPath = configPath
		if !filepath.IsAbs(projectPath) {
			projectPath = filepath.Join(workDir, projectPath)
		}

		mustExist = true
	}

	projectCfg, loaded, err := loadConfigFile(projectPath, mustExist)
	if err != nil {
		return Config{}, ConfigSources{}, err
	}

	if loaded {
		sources.Project = projectPath
		cfg = mergeConfig(cfg, projectCfg)
	}

	cfg = mergeConfig(cfg, overrides)

	if cfg.HistoryFile == "" {
		if home := homeDir(env); home != "" {
			cfg.HistoryFile = filepath.Join(home, historyFileName)
		}
	}

	err = validateConfig(cfg)
	if err != nil {
		return Config{}, ConfigSources{}, err
	}

	return cfg, sources, nil
}

// globalConfigPath returns the path to the global config file.
// Returns empty string if no home directory can be determined.
func globalConfigPath(env map[string]string) string {
	if xdg := env["XDG_CONFIG_HOME"]; xdg != "" {
		return filepath.Join(xdg, "ringy", "config.json")
	}

	if home := homeDir(env); home != "" {
		return filepath.Join(home, ".config", "ringy", "config.json")
	}

	return ""
}

func homeDir(env map[string]string) string {
	if home, ok := env["HOME"]; ok {
		return home
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return home
}

// loadConfigFile loads a config file. If mustExist is false, a missing file
// returns a zero config and loaded=false.
func loadConfigFile(path string, mustExist bool) (Config, bool, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is intentionally user-controlled
	if err != nil {
		if os.IsNotExist(err) {
			if mustExist {
				return Config{}, false, fmt.Errorf("%w: %s", ErrConfigFileNotFound, path)
			}

			return Config{}, false, nil
		}

		return Config{}, false, fmt.Errorf("%w: %s: %w", ErrConfigFileRead, path, err)
	}

	cfg, err := parseConfig(data)
	if err != nil {
		return Config{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, err)
	}

	return cfg, true, nil
}

func parseConfig(data []byte) (Config, error) {
	// Standardize JSONC to JSON
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg Config

	err = json.Unmarshal(standardized, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSON: %w", err)
	}

	return cfg, nil
}

func mergeConfig(base, overlay Config) Config {
	if overlay.Capacity != 0 {
		base.Capacity = overlay.Capacity
	}

	if overlay.Order != "" {
		base.Order = overlay.Order
	}

	if overlay.History != nil {
		history := *overlay.History
		base.History = &history
	}

	if overlay.HistoryFile != "" {
		base.HistoryFile = overlay.HistoryFile
	}

	return base
}

func validateConfig(cfg Config) error {
	if cfg.Capacity <= 0 {
		return fmt.Errorf("%w, got %d", ErrInvalidCapacity, cfg.Capacity)
	}

	if cfg.Order != OrderMin && cfg.Order != OrderMax {
		return fmt.Errorf("%w, got %q", ErrInvalidOrder, cfg.Order)
	}

	return nil
}

// FormatConfig returns the config as formatted JSON.
func FormatConfig(cfg Config) (string, error) {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to format config: %w", err)
	}

	return string(data), nil
}
