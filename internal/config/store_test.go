package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mekedron/yemek-cli/internal/domain"
)

func TestNewStoreUsesEnvConfigPath(t *testing.T) {
	t.Setenv(EnvConfigPath, "/tmp/custom-yemek-config.json")
	store, err := NewStore()
	if err != nil {
		t.Fatalf("unexpected error creating store: %v", err)
	}
	if store.Path() != "/tmp/custom-yemek-config.json" {
		t.Fatalf("expected env path, got %q", store.Path())
	}
}

func TestStoreSaveAndLoadRoundTrip(t *testing.T) {
	store := NewStoreAt(filepath.Join(t.TempDir(), "config.json"))

	input := domain.Config{
		Profiles: []domain.Profile{{
			Name:      "default",
			IsDefault: true,
			BaseURL:   "http://localhost:5000",
			Customer:  domain.CustomerDefaults{Name: "Ayşe", Address: "Moda Cad. 3", Phone: "555"},
		}},
	}
	if err := store.Save(context.Background(), input); err != nil {
		t.Fatalf("unexpected save error: %v", err)
	}

	output, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	if len(output.Profiles) != 1 || output.Profiles[0].Customer.Address != "Moda Cad. 3" {
		t.Fatalf("unexpected roundtrip config: %+v", output)
	}

	raw, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	for _, forbidden := range []string{"session", "role", "cookie"} {
		if strings.Contains(string(raw), forbidden) {
			t.Fatalf("config must not persist %s: %s", forbidden, raw)
		}
	}
}

func TestStoreLoadMissingConfig(t *testing.T) {
	store := NewStoreAt(filepath.Join(t.TempDir(), "missing.json"))
	_, err := store.Load(context.Background())
	if !errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("expected ErrConfigNotFound, got %v", err)
	}
}

func TestStoreLoadInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invalid.json")
	if err := os.WriteFile(path, []byte("{"), 0o644); err != nil {
		t.Fatalf("write invalid config: %v", err)
	}
	_, err := NewStoreAt(path).Load(context.Background())
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestStoreRejectsDuplicateProfiles(t *testing.T) {
	store := NewStoreAt(filepath.Join(t.TempDir(), "config.json"))
	err := store.Save(context.Background(), domain.Config{Profiles: []domain.Profile{{Name: "ev"}, {Name: "EV"}}})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestStoreUpsertKeepsSingleDefault(t *testing.T) {
	ctx := context.Background()
	store := NewStoreAt(filepath.Join(t.TempDir(), "config.json"))

	cfg, err := store.Upsert(ctx, domain.Profile{Name: "ev"})
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if !cfg.Profiles[0].IsDefault {
		t.Fatalf("first profile should become default: %+v", cfg)
	}

	cfg, err = store.Upsert(ctx, domain.Profile{Name: "is", IsDefault: true})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if cfg.Profiles[0].IsDefault || !cfg.Profiles[1].IsDefault {
		t.Fatalf("expected only the new profile to be default: %+v", cfg)
	}

	cfg, err = store.Upsert(ctx, domain.Profile{Name: "IS", Customer: domain.CustomerDefaults{Phone: "212"}})
	if err != nil {
		t.Fatalf("replace upsert: %v", err)
	}
	if len(cfg.Profiles) != 2 || !cfg.Profiles[1].IsDefault || cfg.Profiles[1].Customer.Phone != "212" {
		t.Fatalf("expected replaced default profile: %+v", cfg)
	}
}
