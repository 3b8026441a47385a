package config

import (
	"fmt"
	"strings"

	"github.com/resend/resend-cli/internal/storage"
	"github.com/spf13/viper"
)

const (
	// APIKeyEnv overrides the credential of any profile
	APIKeyEnv = "RESEND_API_KEY"
	// ProfileEnv selects the profile when no --profile flag is given
	ProfileEnv = "RESEND_PROFILE"
	// BaseURLEnv points the client at a different API endpoint
	BaseURLEnv = "RESEND_BASE_URL"
	// DefaultProfile is used when no profile is requested
	DefaultProfile = "default"
)

// OutputFormat selects how command results are rendered
type OutputFormat int

const (
	FormatTable OutputFormat = iota
	FormatJSON
)

func (f OutputFormat) String() string {
	switch f {
	case FormatJSON:
		return "json"
	default:
		return "table"
	}
}

// ParseOutputFormat converts "table" or "json" to an OutputFormat
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "table":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatTable, fmt.Errorf("unknown output format %q (expected table or json)", s)
	}
}

// Options carries what the caller asked for. Zero values mean "not requested".
type Options struct {
	Profile string
	Format  *OutputFormat
	Output  string
	Verbose bool
}

// EffectiveConfig is the resolved configuration for one invocation.
// An empty APIKey means no credential was found.
type EffectiveConfig struct {
	APIKey  string
	Profile string
	Format  OutputFormat
	Output  string
	Verbose bool
}

// HasCredential reports whether an API key was resolved
func (c EffectiveConfig) HasCredential() bool {
	return c.APIKey != ""
}

// Resolve merges the requested options, the environment and the stored
// profile document. A missing credential is not an error; an unreadable
// document is.
func Resolve(loader storage.Loader, opts Options) (EffectiveConfig, error) {
	v := newEnv()

	cfg := EffectiveConfig{
		Profile: profileName(v, opts.Profile),
		Format:  FormatTable,
		Output:  opts.Output,
		Verbose: opts.Verbose,
	}

	if opts.Format != nil {
		cfg.Format = *opts.Format
	}

	doc, err := loader.Load()
	if err != nil {
		return EffectiveConfig{}, err
	}

	cfg.APIKey = v.GetString("api_key")
	if cfg.APIKey == "" {
		if prof, ok := doc.Profiles.Get(cfg.Profile); ok {
			cfg.APIKey = prof.APIKey
		}
	}

	return cfg, nil
}

// ProfileName returns requested, else the profile named by the environment,
// else DefaultProfile
func ProfileName(requested string) string {
	return profileName(newEnv(), requested)
}

// APIKeyFromEnv reports whether the credential override variable is set
func APIKeyFromEnv() bool {
	return newEnv().GetString("api_key") != ""
}

// BaseURL returns the API endpoint override, or "" for the default
func BaseURL() string {
	return newEnv().GetString("base_url")
}

func newEnv() *viper.Viper {
	v := viper.New()
	_ = v.BindEnv("api_key", APIKeyEnv)
	_ = v.BindEnv("profile", ProfileEnv)
	_ = v.BindEnv("base_url", BaseURLEnv)
	return v
}

func profileName(v *viper.Viper, requested string) string {
	if requested != "" {
		return requested
	}
	if name := v.GetString("profile"); name != "" {
		return name
	}
	return DefaultProfile
}
