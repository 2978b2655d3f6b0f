package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"time"

	"github.com/mekedron/yemek-cli/internal/domain"
	yemekgateway "github.com/mekedron/yemek-cli/internal/gateway/yemek"
	"github.com/mekedron/yemek-cli/internal/service/profile"
)

var unknownCommandPattern = regexp.MustCompile(`unknown command "([^"]+)"`)

// ProfileResolver resolves the profile and backend address of a run.
type ProfileResolver interface {
	Resolve(ctx context.Context, req profile.Request) (profile.Settings, error)
}

// ConfigManager stores profile config payloads.
type ConfigManager interface {
	Path() string
	Load(ctx context.Context) (domain.Config, error)
	Upsert(ctx context.Context, p domain.Profile) (domain.Config, error)
}

// APIFactory builds a gateway for the resolved backend address.
type APIFactory func(baseURL string) yemekgateway.API

// Dependencies wires runtime services.
type Dependencies struct {
	NewAPI   APIFactory
	Profiles ProfileResolver
	Config   ConfigManager
	Logger   *slog.Logger
	// EnvBaseURL is the backend address from the environment.
	EnvBaseURL string
	// Location is used for displayed timestamps; nil means local time.
	Location *time.Location
	Stdin    io.Reader
	Version  string
}

var errVersionShown = fmt.Errorf("version shown")

// Execute runs the CLI with injected dependencies.
func Execute(ctx context.Context, args []string, deps Dependencies, stdout io.Writer, stderr io.Writer) int {
	cmd := NewRootCommand(deps)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if deps.Stdin != nil {
		cmd.SetIn(deps.Stdin)
	}
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil || errors.Is(err, errVersionShown) {
		return 0
	}
	var controlled *exitError
	if errors.As(err, &controlled) {
		return controlled.code
	}

	if matches := unknownCommandPattern.FindStringSubmatch(err.Error()); len(matches) > 1 {
		_, _ = fmt.Fprintf(stderr, "No such command '%s'\n", matches[1])
		return 2
	}

	if msg := err.Error(); msg != "" {
		_, _ = fmt.Fprintln(stderr, msg)
	}
	return 1
}
