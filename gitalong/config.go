package gitalong

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// ConfigFileName is the fixed name of the per-repository config document,
// committed at the managed repository's root.
const ConfigFileName = ".gitalong.json"

// DefaultPullThreshold is used by setup when no --pull-threshold flag is given.
const DefaultPullThreshold = 30

// Config is the per-repository document pinned at .gitalong.json.
type Config struct {
	StoreURL          string            `json:"store_url"`
	StoreHeaders      map[string]string `json:"store_headers,omitempty"`
	ModifyPermissions bool              `json:"modify_permissions"`
	TrackedExtensions []string          `json:"tracked_extensions,omitempty"`
	TrackUncommitted  bool              `json:"track_uncommitted"`
	PullThreshold     float64           `json:"pull_threshold"`
}

// Validate checks the required fields of a config loaded from disk or built
// by setup, returning an InvalidConfigError naming the first offending field.
func (c Config) Validate() error {
	if c.StoreURL == "" {
		return InvalidConfigError{Field: "store_url", Reason: "must not be empty"}
	}
	if c.PullThreshold < 0 {
		return InvalidConfigError{Field: "pull_threshold", Reason: "must not be negative"}
	}
	return nil
}

// configPath returns the path to .gitalong.json under repoRoot.
func configPath(repoRoot string) string {
	return filepath.Join(repoRoot, ConfigFileName)
}

// LoadConfig reads and validates .gitalong.json from repoRoot. It returns a
// NotSetUpError if the file does not exist.
func LoadConfig(repoRoot string) (Config, error) {
	data, err := os.ReadFile(configPath(repoRoot))
	if os.IsNotExist(err) {
		return Config{}, NotSetUpError{RepoRoot: repoRoot}
	}
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, InvalidConfigError{Field: "<root>", Reason: err.Error()}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Save writes cfg to .gitalong.json under repoRoot, failing with
// AlreadySetUpError if the file already exists.
func (c Config) Save(repoRoot string) error {
	path := configPath(repoRoot)
	if _, err := os.Stat(path); err == nil {
		return AlreadySetUpError{RepoRoot: repoRoot}
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}

// Overwrite writes cfg to .gitalong.json under repoRoot regardless of
// whether one already exists; it is the unconditional variant of Save.
func (c Config) Overwrite(repoRoot string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(configPath(repoRoot), data, 0o644)
}
