package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mekedron/yemek-cli/internal/domain"
)

const (
	defaultDirName  = ".yemek"
	defaultFileName = ".yemek-config.json"
	// EnvConfigPath overrides the config file location.
	EnvConfigPath = "YEMEK_CONFIG_PATH"
)

var (
	// ErrConfigNotFound is returned when config file does not exist.
	ErrConfigNotFound = errors.New("config file not found")
	// ErrInvalidConfig is returned when config payload is malformed.
	ErrInvalidConfig = errors.New("config file is invalid")
)

// Store reads and writes the local profile file. Only delivery defaults and
// the backend address live there; sessions and roles are never written.
type Store struct {
	path string
}

// NewStore creates a store at YEMEK_CONFIG_PATH or ~/.yemek/.yemek-config.json.
func NewStore() (*Store, error) {
	if path := strings.TrimSpace(os.Getenv(EnvConfigPath)); path != "" {
		return NewStoreAt(path), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}
	return NewStoreAt(filepath.Join(home, defaultDirName, defaultFileName)), nil
}

// NewStoreAt creates a store for an explicit file.
func NewStoreAt(path string) *Store {
	return &Store{path: path}
}

// Path returns current config path.
func (s *Store) Path() string {
	return s.path
}

// Load reads and validates configuration.
func (s *Store) Load(_ context.Context) (domain.Config, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.Config{}, ErrConfigNotFound
		}
		return domain.Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg domain.Config
	if err := json.Unmarshal(payload, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := validate(cfg); err != nil {
		return domain.Config{}, err
	}
	return cfg, nil
}

// Save writes a configuration payload.
func (s *Store) Save(_ context.Context, cfg domain.Config) error {
	if err := validate(cfg); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	payload, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(s.path, append(payload, '\n'), 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Upsert stores profile, replacing one with the same name. A default profile
// clears the flag on every other profile; the first profile is always default.
func (s *Store) Upsert(ctx context.Context, profile domain.Profile) (domain.Config, error) {
	profile.Name = strings.TrimSpace(profile.Name)
	if profile.Name == "" {
		return domain.Config{}, fmt.Errorf("%w: profile name is empty", ErrInvalidConfig)
	}

	cfg, err := s.Load(ctx)
	if err != nil && !errors.Is(err, ErrConfigNotFound) {
		return domain.Config{}, err
	}
	if len(cfg.Profiles) == 0 {
		profile.IsDefault = true
	}

	replaced := false
	for i := range cfg.Profiles {
		if strings.EqualFold(cfg.Profiles[i].Name, profile.Name) {
			if cfg.Profiles[i].IsDefault {
				profile.IsDefault = true
			}
			cfg.Profiles[i] = profile
			replaced = true
			continue
		}
		if profile.IsDefault {
			cfg.Profiles[i].IsDefault = false
		}
	}
	if !replaced {
		cfg.Profiles = append(cfg.Profiles, profile)
	}
	if err := s.Save(ctx, cfg); err != nil {
		return domain.Config{}, err
	}
	return cfg, nil
}

func validate(cfg domain.Config) error {
	if len(cfg.Profiles) == 0 {
		return fmt.Errorf("%w: profiles is empty", ErrInvalidConfig)
	}
	seen := make(map[string]struct{}, len(cfg.Profiles))
	for _, profile := range cfg.Profiles {
		name := strings.ToLower(strings.TrimSpace(profile.Name))
		if name == "" {
			return fmt.Errorf("%w: profile without name", ErrInvalidConfig)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("%w: duplicate profile %q", ErrInvalidConfig, profile.Name)
		}
		seen[name] = struct{}{}
	}
	return nil
}
