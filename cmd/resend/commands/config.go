package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/resend/resend-cli/internal/audit"
	"github.com/resend/resend-cli/internal/config"
	"github.com/resend/resend-cli/internal/crypto"
	"github.com/resend/resend-cli/internal/output"
	"github.com/resend/resend-cli/internal/storage"
	"github.com/resend/resend-cli/internal/ui"
	"github.com/resend/resend-cli/internal/validation"
	"github.com/resend/resend-cli/pkg/types"
	"github.com/spf13/cobra"
)

var setupFlags struct {
	apiKey   string
	skipTest bool
}

var configDeleteFlags struct {
	yes bool
}

// confirmTimeout bounds an unanswered delete confirmation; silence means no
var confirmTimeout = 2 * time.Minute

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage stored credentials",
	Long: `Create, inspect and remove named profiles.

Profiles are stored in config.yml under the configuration directory
(RESEND_CONFIG_DIR overrides it). The file is readable by its owner only.`,
}

// configSetupCmd represents the config setup command
var configSetupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Store an API key in a profile",
	Long: `Store an API key under a profile name, creating or replacing it.

The key is read from a hidden prompt unless --api-key is given, and is tested
against the API before it is saved unless --skip-test is given.`,
	Example: `  resend config setup
  resend config setup --profile staging --skip-test`,
	Args: inputArgs(cobra.NoArgs),
	RunE: runConfigSetup,
}

// configShowCmd represents the config show command
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the active profile",
	Args:  inputArgs(cobra.NoArgs),
	RunE:  runConfigShow,
}

// configListCmd represents the config list command
var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored profiles",
	Args:  inputArgs(cobra.NoArgs),
	RunE:  runConfigList,
}

// configDeleteCmd represents the config delete command
var configDeleteCmd = &cobra.Command{
	Use:   "delete <profile>",
	Short: "Delete a stored profile",
	Long:  `Delete a stored profile. This action cannot be undone.`,
	Args:  inputArgs(cobra.ExactArgs(1)),
	RunE:  runConfigDelete,
}

// configPathCmd represents the config path command
var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the location of the profile file",
	Args:  inputArgs(cobra.NoArgs),
	RunE:  runConfigPath,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSetupCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configDeleteCmd)
	configCmd.AddCommand(configPathCmd)

	configSetupCmd.Flags().StringVar(&setupFlags.apiKey, "api-key", "", "API key to store (prompted when omitted)")
	configSetupCmd.Flags().BoolVar(&setupFlags.skipTest, "skip-test", false, "save without testing the key")

	configDeleteCmd.Flags().BoolVarP(&configDeleteFlags.yes, "yes", "y", false, "delete without asking")
}

func runConfigSetup(cmd *cobra.Command, args []string) error {
	name := config.ProfileName(profileName)
	if err := validator.ValidateProfileName(name); err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}

	p := output.NewPrinter(cmd.OutOrStdout())
	p.Line("Setting up profile: %s", name)
	p.Line("")

	apiKey := setupFlags.apiKey
	if !cmd.Flags().Changed("api-key") {
		prompter := ui.NewPrompter(cmd.InOrStdin(), cmd.ErrOrStderr(), ui.Options{})
		apiKey, err = prompter.ReadSecret("API Key")
		if err != nil {
			return err
		}
	}
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return fmt.Errorf("%w: API key cannot be empty", validation.ErrInvalidInput)
	}
	if err := validator.ValidateAPIKey(apiKey); err != nil {
		return err
	}

	if !setupFlags.skipTest {
		p.Line("Testing connection...")
		client, err := newClient(apiKey)
		if err != nil {
			return err
		}
		if err := client.TestConnection(cmd.Context()); err != nil {
			p.Warning("Connection failed: %v", err)
			return err
		}
		p.Success("Connection successful!")
	}

	if err := store.SetProfile(name, apiKey); err != nil {
		eventLog.LogProfile(audit.EventProfileWrite, name, false, map[string]interface{}{"document": store.Path()})
		return err
	}
	eventLog.LogProfile(audit.EventProfileWrite, name, true, map[string]interface{}{
		"document": store.Path(),
		"tested":   !setupFlags.skipTest,
	})

	p.Line("Configuration saved to %s", store.Path())
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	s, err := resolveSession()
	if err != nil {
		return err
	}

	summary := summarize(s.cfg.Profile, s.cfg.APIKey, true)
	if s.jsonMode() {
		return s.render(cmd, &summary)
	}

	masked := summary.MaskedKey
	if masked == "" {
		masked = "(not set)"
	}

	p := output.NewPrinter(cmd.OutOrStdout())
	p.Field("Profile", summary.Name)
	p.Field("API Key", masked)
	if summary.Fingerprint != "" {
		p.Field("Fingerprint", summary.Fingerprint)
	}
	p.Field("Source", credentialSource(s.cfg))
	p.Field("Config file", s.store.Path())
	return nil
}

func runConfigList(cmd *cobra.Command, args []string) error {
	s, err := resolveSession()
	if err != nil {
		return err
	}

	names, err := s.store.ListProfileNames()
	if err != nil {
		return err
	}
	doc, err := s.store.Load()
	if err != nil {
		return err
	}

	summaries := make([]types.ProfileSummary, 0, len(names))
	for _, name := range names {
		prof, _ := doc.Profiles.Get(name)
		summaries = append(summaries, summarize(name, prof.APIKey, name == s.cfg.Profile))
	}

	if len(summaries) == 0 && !s.jsonMode() {
		p := output.NewPrinter(cmd.OutOrStdout())
		p.Line("No profiles configured.")
		p.Line("Run 'resend config setup' to create one.")
		return nil
	}
	return s.render(cmd, summaries)
}

func runConfigDelete(cmd *cobra.Command, args []string) error {
	name := args[0]
	if err := validator.ValidateProfileName(name); err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	doc, err := store.Load()
	if err != nil {
		return err
	}
	if _, ok := doc.Profiles.Get(name); !ok {
		return fmt.Errorf("%w: profile '%s' does not exist", validation.ErrInvalidInput, name)
	}

	p := output.NewPrinter(cmd.OutOrStdout())
	prompter := ui.NewPrompter(cmd.InOrStdin(), cmd.ErrOrStderr(), ui.Options{
		AssumeYes:   configDeleteFlags.yes,
		DefaultDeny: true,
		Timeout:     confirmTimeout,
	})
	result := prompter.Confirm(cmd.Context(), fmt.Sprintf("Delete profile '%s'?", name))
	if result.Error != nil {
		return result.Error
	}
	if !result.Approved {
		p.Line("Aborted.")
		return nil
	}

	if err := store.DeleteProfile(name); err != nil {
		eventLog.LogProfile(audit.EventProfileDelete, name, false, nil)
		if errors.Is(err, storage.ErrProfileNotFound) {
			return fmt.Errorf("%w: profile '%s' does not exist", validation.ErrInvalidInput, name)
		}
		return err
	}
	eventLog.LogProfile(audit.EventProfileDelete, name, true, map[string]interface{}{"document": store.Path()})

	p.Success("Profile '%s' deleted.", name)
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	output.NewPrinter(cmd.OutOrStdout()).Line("%s", store.Path())
	return nil
}

// summarize describes a profile without exposing its key
func summarize(name, apiKey string, active bool) types.ProfileSummary {
	summary := types.ProfileSummary{Name: name, Active: active}
	if apiKey != "" {
		summary.MaskedKey = config.MaskCredential(apiKey)
		summary.Fingerprint = crypto.Fingerprint(apiKey)
	}
	return summary
}
