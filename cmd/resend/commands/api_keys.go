package commands

import (
	"github.com/resend/resend-cli/internal/output"
	"github.com/resend/resend-cli/pkg/types"
	"github.com/spf13/cobra"
)

var keyPermissions = []string{"full_access", "sending_access"}

var apiKeyCreateFlags struct {
	permission string
	domainID   string
}

// apiKeysCmd represents the api-keys command
var apiKeysCmd = &cobra.Command{
	Use:   "api-keys",
	Short: "Manage API keys",
}

// apiKeysCreateCmd represents the api-keys create command
var apiKeysCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create an API key",
	Long: `Create an API key. The token is printed once and cannot be
retrieved again.`,
	Args: inputArgs(cobra.ExactArgs(1)),
	RunE: runAPIKeysCreate,
}

// apiKeysListCmd represents the api-keys list command
var apiKeysListCmd = &cobra.Command{
	Use:   "list",
	Short: "List API keys",
	Args:  inputArgs(cobra.NoArgs),
	RunE:  runAPIKeysList,
}

// apiKeysDeleteCmd represents the api-keys delete command
var apiKeysDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Revoke an API key",
	Args:  inputArgs(cobra.ExactArgs(1)),
	RunE:  runAPIKeysDelete,
}

func init() {
	rootCmd.AddCommand(apiKeysCmd)
	apiKeysCmd.AddCommand(apiKeysCreateCmd)
	apiKeysCmd.AddCommand(apiKeysListCmd)
	apiKeysCmd.AddCommand(apiKeysDeleteCmd)

	apiKeysCreateCmd.Flags().StringVar(&apiKeyCreateFlags.permission, "permission", "", "access level (full_access, sending_access)")
	apiKeysCreateCmd.Flags().StringVar(&apiKeyCreateFlags.domainID, "domain-id", "", "restrict a sending key to one domain")
}

func runAPIKeysCreate(cmd *cobra.Command, args []string) error {
	name := args[0]
	if err := requireNonEmpty("name", name); err != nil {
		return err
	}
	if err := validator.ValidateOneOf("permission", apiKeyCreateFlags.permission, keyPermissions...); err != nil {
		return err
	}
	if apiKeyCreateFlags.domainID != "" {
		if err := validator.ValidateResourceID("domain", apiKeyCreateFlags.domainID); err != nil {
			return err
		}
	}

	s, err := resolveSession()
	if err != nil {
		return err
	}
	client, err := s.client()
	if err != nil {
		return err
	}

	key, err := client.CreateAPIKey(cmd.Context(), &types.CreateAPIKeyRequest{
		Name:       name,
		Permission: apiKeyCreateFlags.permission,
		DomainID:   apiKeyCreateFlags.domainID,
	})
	if err != nil {
		return err
	}

	return s.report(cmd, key, func(p *output.Printer) {
		p.Success("API key created successfully!")
		p.Field("ID", key.ID)
		p.Field("Name", key.Name)
		if key.Token == nil {
			return
		}
		p.Line("")
		p.Field("Token", *key.Token)
		p.Line("")
		p.Warning("Save this token - it won't be shown again!")
	})
}

func runAPIKeysList(cmd *cobra.Command, args []string) error {
	s, err := resolveSession()
	if err != nil {
		return err
	}
	client, err := s.client()
	if err != nil {
		return err
	}

	keys, err := client.ListAPIKeys(cmd.Context())
	if err != nil {
		return err
	}
	return s.render(cmd, keys)
}

func runAPIKeysDelete(cmd *cobra.Command, args []string) error {
	s, err := resolveSession()
	if err != nil {
		return err
	}
	client, err := s.client()
	if err != nil {
		return err
	}

	if err := client.DeleteAPIKey(cmd.Context(), args[0]); err != nil {
		return err
	}
	s.announce(cmd, "API key deleted successfully!")
	return nil
}
