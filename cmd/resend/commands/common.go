package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/resend/resend-cli/internal/api"
	"github.com/resend/resend-cli/internal/config"
	"github.com/resend/resend-cli/internal/output"
	"github.com/resend/resend-cli/internal/storage"
	"github.com/resend/resend-cli/internal/ui"
	"github.com/resend/resend-cli/internal/validation"
	"github.com/spf13/cobra"
)

// ErrMissingCredentials is returned when a command needs an API key and none
// was resolved
var ErrMissingCredentials = errors.New("missing API key")

const missingCredentialsMessage = "Missing API key. Run 'resend config setup' or set RESEND_API_KEY."

var validator = validation.NewValidator()

// session is the resolved configuration of one invocation
type session struct {
	cfg   config.EffectiveConfig
	store storage.Store
}

func openStore() (storage.Store, error) {
	fs, err := storage.NewDefaultFileStore()
	if err != nil {
		return nil, err
	}
	return fs, nil
}

// resolveSession applies flags, environment and the stored profile
func resolveSession() (*session, error) {
	store, err := openStore()
	if err != nil {
		return nil, err
	}

	opts := config.Options{
		Profile: profileName,
		Output:  outputFile,
		Verbose: verbose,
	}
	selected, err := outputFormat()
	if err != nil {
		return nil, err
	}
	opts.Format = selected

	cfg, err := config.Resolve(store, opts)
	if err != nil {
		return nil, err
	}

	eventLog.LogConfig(cfg.Profile, map[string]interface{}{
		"source":   credentialSource(cfg),
		"format":   cfg.Format.String(),
		"output":   cfg.Output,
		"document": store.Path(),
	})
	return &session{cfg: cfg, store: store}, nil
}

// outputFormat combines --format and --json; nil leaves the default
func outputFormat() (*config.OutputFormat, error) {
	var selected *config.OutputFormat
	if formatName != "" {
		f, err := config.ParseOutputFormat(formatName)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", validation.ErrInvalidInput, err)
		}
		selected = &f
	}
	if jsonOutput {
		if selected != nil && *selected != config.FormatJSON {
			return nil, fmt.Errorf("%w: --json conflicts with --format %s", validation.ErrInvalidInput, formatName)
		}
		f := config.FormatJSON
		selected = &f
	}
	return selected, nil
}

func credentialSource(cfg config.EffectiveConfig) string {
	switch {
	case !cfg.HasCredential():
		return "none"
	case config.APIKeyFromEnv():
		return "environment"
	default:
		return "profile"
	}
}

// client is the credential gate: it fails before any request is attempted
func (s *session) client() (*api.Client, error) {
	if !s.cfg.HasCredential() {
		return nil, ErrMissingCredentials
	}
	if err := validator.ValidateAPIKey(s.cfg.APIKey); err != nil {
		return nil, err
	}
	return newClient(s.cfg.APIKey)
}

func newClient(apiKey string) (*api.Client, error) {
	opts := []api.Option{api.WithLogger(eventLog)}
	if base := config.BaseURL(); base != "" {
		opts = append(opts, api.WithBaseURL(base))
	}
	return api.New(apiKey, opts...)
}

func (s *session) jsonMode() bool {
	return s.cfg.Format == config.FormatJSON
}

// render writes a resource or list in the selected format
func (s *session) render(cmd *cobra.Command, v interface{}) error {
	return output.Emit(s.cfg, cmd.OutOrStdout(), v)
}

// report prints a short confirmation, or v as JSON in JSON mode
func (s *session) report(cmd *cobra.Command, v interface{}, human func(p *output.Printer)) error {
	if s.jsonMode() {
		return s.render(cmd, v)
	}
	human(output.NewPrinter(cmd.OutOrStdout()))
	return nil
}

// announce prints a confirmation in table mode only
func (s *session) announce(cmd *cobra.Command, format string, args ...interface{}) {
	if s.jsonMode() {
		return
	}
	output.NewPrinter(cmd.OutOrStdout()).Success(format, args...)
}

// inputArgs reports positional argument mistakes as invalid input
func inputArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return fmt.Errorf("%w: %v", validation.ErrInvalidInput, err)
		}
		return nil
	}
}

// requireFlags fails unless every named flag was given
func requireFlags(cmd *cobra.Command, names ...string) error {
	var missing []string
	for _, name := range names {
		if !cmd.Flags().Changed(name) {
			missing = append(missing, "--"+name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: required flag(s) %s not set", validation.ErrInvalidInput, strings.Join(missing, ", "))
	}
	return nil
}

// requireAny fails unless at least one of the named flags was given
func requireAny(cmd *cobra.Command, names ...string) error {
	for _, name := range names {
		if cmd.Flags().Changed(name) {
			return nil
		}
	}
	flags := make([]string, len(names))
	for i, name := range names {
		flags[i] = "--" + name
	}
	return fmt.Errorf("%w: nothing to update, pass at least one of %s", validation.ErrInvalidInput, strings.Join(flags, ", "))
}

func requireNonEmpty(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s cannot be empty", validation.ErrInvalidInput, field)
	}
	return nil
}

// describeError maps err to its machine-readable tag and user message
func describeError(err error) (string, string) {
	var apiErr *api.Error
	var decodeErr *api.DecodeError
	var parseErr *storage.ParseError

	switch {
	case errors.As(err, &apiErr):
		return apiErr.Kind.Tag(), apiErr.Error()
	case errors.As(err, &decodeErr):
		return "decode_error", decodeErr.Error()
	case errors.As(err, &parseErr):
		return "config_parse_error", parseErr.Error()
	case errors.Is(err, ErrMissingCredentials):
		return "missing_credentials", missingCredentialsMessage
	case errors.Is(err, validation.ErrInvalidInput), errors.Is(err, ui.ErrNotInteractive):
		return "invalid_input", err.Error()
	default:
		return "error", err.Error()
	}
}

func errorTag(err error) string {
	tag, _ := describeError(err)
	return tag
}

// ReportError writes err to w as a single-line JSON error object
func ReportError(w io.Writer, err error) {
	tag, message := describeError(err)
	output.WriteError(w, tag, message)
}
