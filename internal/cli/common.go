package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mekedron/yemek-cli/internal/app"
	yemekgateway "github.com/mekedron/yemek-cli/internal/gateway/yemek"
	"github.com/mekedron/yemek-cli/internal/logging"
	"github.com/mekedron/yemek-cli/internal/service/output"
	"github.com/mekedron/yemek-cli/internal/service/profile"
	"github.com/mekedron/yemek-cli/internal/service/view"
)

type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return ""
}

const (
	codeUpstream        = "YEMEK_UPSTREAM_ERROR"
	codeInvalidArgument = "YEMEK_INVALID_ARGUMENT"
	codeProfile         = "YEMEK_PROFILE_ERROR"
	codeOrderRejected   = "YEMEK_ORDER_REJECTED"
	codeReviewRejected  = "YEMEK_REVIEW_REJECTED"
	codeMenuRejected    = "YEMEK_MENU_REJECTED"
	codeAuthRejected    = "YEMEK_AUTH_REJECTED"
)

type globalFlags struct {
	Format  string
	Profile string
	BaseURL string
	Output  string
	Verbose bool
}

const sharedGlobalFlagAnnotation = "yemek_cli_shared_global"

func addGlobalFlags(cmd *cobra.Command, flags *globalFlags) {
	addSharedGlobalFlag(cmd, "format", func() {
		cmd.Flags().StringVar(&flags.Format, "format", "table", "Output format: table, json, or yaml.")
	})
	addSharedGlobalFlag(cmd, "profile", func() {
		cmd.Flags().StringVar(&flags.Profile, "profile", "", "Profile name for saved delivery defaults and backend address.")
	})
	addSharedGlobalFlag(cmd, "base-url", func() {
		cmd.Flags().StringVar(&flags.BaseURL, "base-url", "", "Backend address for this command, for example http://localhost:5000.")
	})
	addSharedGlobalFlag(cmd, "output", func() {
		cmd.Flags().StringVar(&flags.Output, "output", "", "Also write the rendered output to this file.")
	})
	addSharedGlobalFlag(cmd, "verbose", func() {
		cmd.Flags().BoolVar(&flags.Verbose, "verbose", false, "Enable verbose output (prints backend request trace and debug logs).")
	})
}

func addSharedGlobalFlag(cmd *cobra.Command, name string, register func()) {
	if cmd.Flags().Lookup(name) != nil {
		return
	}
	register()
	flag := cmd.Flags().Lookup(name)
	if flag == nil {
		return
	}
	if flag.Annotations == nil {
		flag.Annotations = map[string][]string{}
	}
	flag.Annotations[sharedGlobalFlagAnnotation] = []string{"true"}
}

func resolveProfileLabel(profileName string) string {
	trimmed := strings.TrimSpace(profileName)
	if trimmed == "" {
		return "anonymous"
	}
	return trimmed
}

// session is one command's view of the backend: resolved profile, gateway
// and the controller that owns the client state.
type session struct {
	cmd        *cobra.Command
	deps       Dependencies
	flags      globalFlags
	format     output.Format
	settings   profile.Settings
	api        yemekgateway.API
	logger     *slog.Logger
	controller *app.Controller
}

func openSession(cmd *cobra.Command, deps Dependencies, flags globalFlags, opts ...app.Option) (*session, error) {
	format, err := output.ParseFormat(flags.Format)
	if err != nil {
		return nil, err
	}
	s := &session{cmd: cmd, deps: deps, flags: flags, format: format}

	if deps.Profiles != nil {
		settings, err := deps.Profiles.Resolve(cmd.Context(), profile.Request{
			ProfileName:     flags.Profile,
			BaseURL:         flags.BaseURL,
			EnvBaseURL:      deps.EnvBaseURL,
			FallbackBaseURL: yemekgateway.DefaultBaseURL,
		})
		if err != nil {
			return nil, s.emitError(codeProfile, err.Error())
		}
		s.settings = settings
	} else {
		s.settings.BaseURL = firstNonBlank(flags.BaseURL, deps.EnvBaseURL, yemekgateway.DefaultBaseURL)
	}

	if deps.NewAPI == nil {
		return nil, fmt.Errorf("backend client is not configured")
	}
	s.api = deps.NewAPI(s.settings.BaseURL)
	attachVerboseHTTPTrace(cmd, s.api)

	s.logger = deps.Logger
	if flags.Verbose {
		s.logger = logging.New(cmd.ErrOrStderr(), logging.Config{Level: "debug"})
	}
	if s.logger == nil {
		s.logger = logging.Discard()
	}

	customer := s.settings.Profile.Customer
	base := []app.Option{
		app.WithLogger(s.logger.With(slog.String("profile", s.profileLabel()))),
		app.WithOrderDefaults(app.OrderForm{
			CustomerName: customer.Name,
			Address:      customer.Address,
			Phone:        customer.Phone,
		}),
	}
	s.controller = app.NewController(s.api, append(base, opts...)...)
	return s, nil
}

func (s *session) profileLabel() string {
	if s.settings.Profile.Name != "" {
		return s.settings.Profile.Name
	}
	return resolveProfileLabel(s.flags.Profile)
}

// write renders blocks as text, or data inside the envelope for machine formats.
func (s *session) write(data any, warnings []string, blocks ...view.Block) error {
	if s.format == output.FormatTable {
		texts := make([]string, 0, len(blocks)+len(warnings))
		for _, block := range blocks {
			texts = append(texts, block.Text())
		}
		for _, warning := range warnings {
			texts = append(texts, "uyarı: "+warning)
		}
		return writeTable(s.cmd, output.JoinBlocks(texts...), s.flags.Output)
	}
	env := output.BuildEnvelope(s.profileLabel(), s.settings.BaseURL, data, warnings)
	return writeMachinePayload(s.cmd, env, s.format, s.flags.Output)
}

func (s *session) emitError(code, message string) error {
	return emitError(s.cmd, s.format, s.profileLabel(), s.settings.BaseURL, s.flags.Output, code, message)
}

func (s *session) emitUpstreamError(err error) error {
	return emitUpstreamError(s.cmd, s.format, s.profileLabel(), s.settings.BaseURL, s.flags.Output, s.flags.Verbose, err)
}

// reject reports a failed submission. Answers from the backend carry the
// status line shown in the region; transport failures are upstream errors.
func (s *session) reject(err error, code string, status string) error {
	var httpErr *yemekgateway.HTTPError
	if errors.As(err, &httpErr) && httpErr.StatusCode < 500 {
		return s.emitError(code, status)
	}
	return s.emitUpstreamError(err)
}

func (s *session) loadCatalog() error {
	if err := s.controller.LoadCatalog(s.cmd.Context()); err != nil {
		return s.emitUpstreamError(err)
	}
	return nil
}

// restaurantID parses the optional restaurant argument, defaulting to the
// first catalog entry.
func (s *session) restaurantID(args []string) (int, error) {
	if len(args) > 0 {
		id, err := strconv.Atoi(strings.TrimSpace(args[0]))
		if err != nil {
			return 0, s.emitError(codeInvalidArgument, fmt.Sprintf("restaurant id must be a number, got %q", args[0]))
		}
		if _, ok := s.controller.Snapshot().Restaurant(id); !ok {
			return 0, s.emitError(codeInvalidArgument, fmt.Sprintf("restaurant %d not found", id))
		}
		return id, nil
	}
	restaurants := s.controller.Snapshot().Restaurants
	if len(restaurants) == 0 {
		return 0, s.emitError(codeInvalidArgument, "no restaurants available")
	}
	return restaurants[0].ID, nil
}

func writeTable(cmd *cobra.Command, text string, outputPath string) error {
	return output.WriteOutput(cmd.OutOrStdout(), text, outputPath)
}

func writeMachinePayload(cmd *cobra.Command, env output.Envelope, format output.Format, outputPath string) error {
	rendered, err := output.RenderPayload(env, format)
	if err != nil {
		return err
	}
	return output.WriteOutput(cmd.OutOrStdout(), rendered, outputPath)
}

func emitError(
	cmd *cobra.Command,
	format output.Format,
	profile string,
	baseURL string,
	outputPath string,
	code string,
	message string,
) error {
	if format == output.FormatTable {
		if err := output.WriteOutput(cmd.OutOrStdout(), message, outputPath); err != nil {
			return err
		}
		return &exitError{code: 1}
	}
	env := output.BuildErrorEnvelope(profile, baseURL, code, message)
	if err := writeMachinePayload(cmd, env, format, outputPath); err != nil {
		return err
	}
	return &exitError{code: 1}
}

func emitUpstreamError(
	cmd *cobra.Command,
	format output.Format,
	profile string,
	baseURL string,
	outputPath string,
	verbose bool,
	err error,
) error {
	if err == nil {
		err = yemekgateway.ErrUpstream
	}
	if verbose {
		return emitError(cmd, format, profile, baseURL, outputPath, codeUpstream, err.Error())
	}

	message := yemekgateway.ErrUpstream.Error() + " (use --verbose for details)"
	switch {
	case yemekgateway.StatusCode(err) > 0:
		message = fmt.Sprintf("%s (status %d, use --verbose for details)", yemekgateway.ErrUpstream.Error(), yemekgateway.StatusCode(err))
	case errors.Is(err, yemekgateway.ErrTransport):
		message = fmt.Sprintf("%s (%s at %s, use --verbose for details)", yemekgateway.ErrUpstream.Error(), yemekgateway.ErrTransport.Error(), baseURL)
	}
	return emitError(cmd, format, profile, baseURL, outputPath, codeUpstream, message)
}

func requiredArg(name string) string {
	return fmt.Sprintf("%s is required", name)
}

func firstNonBlank(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
