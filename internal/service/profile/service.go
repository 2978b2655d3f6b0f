package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mekedron/yemek-cli/internal/config"
	"github.com/mekedron/yemek-cli/internal/domain"
)

var (
	// ErrDefaultProfileNotFound indicates config has no default profile.
	ErrDefaultProfileNotFound = errors.New("no default profile found")
	// ErrProfileNotFound indicates requested profile does not exist.
	ErrProfileNotFound = errors.New("profile not found")
)

// Loader provides config payloads.
type Loader interface {
	Load(ctx context.Context) (domain.Config, error)
}

// Resolver resolves profile names.
type Resolver struct {
	loader Loader
}

// NewResolver creates a profile resolver.
func NewResolver(loader Loader) *Resolver {
	return &Resolver{loader: loader}
}

// Find resolves explicit profile names or defaults.
func (r *Resolver) Find(ctx context.Context, profileName string) (domain.Profile, error) {
	cfg, err := r.loader.Load(ctx)
	if err != nil {
		return domain.Profile{}, err
	}
	if strings.TrimSpace(profileName) == "" {
		for _, profile := range cfg.Profiles {
			if profile.IsDefault {
				return profile, nil
			}
		}
		return domain.Profile{}, ErrDefaultProfileNotFound
	}

	want := strings.TrimSpace(profileName)
	for _, profile := range cfg.Profiles {
		if strings.EqualFold(profile.Name, want) {
			return profile, nil
		}
	}
	available := make([]string, 0, len(cfg.Profiles))
	for _, profile := range cfg.Profiles {
		available = append(available, profile.Name)
	}
	return domain.Profile{}, fmt.Errorf("%w: %s (available: %s)", ErrProfileNotFound, want, strings.Join(available, ", "))
}

// Settings is what one invocation runs with.
type Settings struct {
	Profile domain.Profile
	BaseURL string
}

// Request names the inputs that can pick a profile or a backend address.
type Request struct {
	ProfileName string
	// BaseURL is the --base-url flag.
	BaseURL string
	// EnvBaseURL is YEMEK_BASE_URL.
	EnvBaseURL string
	// FallbackBaseURL is used when nothing else names a backend.
	FallbackBaseURL string
}

// Resolve picks the profile and backend address. The config file is
// optional: without it, or without a default profile, an unnamed empty
// profile is used. A profile asked for by name must exist.
// The base URL precedence is flag, profile, env, fallback.
func (r *Resolver) Resolve(ctx context.Context, req Request) (Settings, error) {
	selected, err := r.Find(ctx, req.ProfileName)
	switch {
	case err == nil:
	case strings.TrimSpace(req.ProfileName) == "" &&
		(errors.Is(err, config.ErrConfigNotFound) || errors.Is(err, ErrDefaultProfileNotFound)):
		selected = domain.Profile{}
	default:
		return Settings{}, err
	}

	baseURL := firstNonEmpty(req.BaseURL, selected.BaseURL, req.EnvBaseURL, req.FallbackBaseURL)
	return Settings{Profile: selected, BaseURL: baseURL}, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

