package commands

import (
	"github.com/resend/resend-cli/internal/output"
	"github.com/resend/resend-cli/pkg/types"
	"github.com/spf13/cobra"
)

var templateFlags struct {
	name    string
	subject string
	html    string
	text    string
}

// templatesCmd represents the templates command
var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Manage email templates",
}

// templatesCreateCmd represents the templates create command
var templatesCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a template",
	Args:  inputArgs(cobra.ExactArgs(1)),
	RunE:  runTemplatesCreate,
}

// templatesListCmd represents the templates list command
var templatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List templates",
	Args:  inputArgs(cobra.NoArgs),
	RunE:  runTemplatesList,
}

// templatesGetCmd represents the templates get command
var templatesGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a template",
	Args:  inputArgs(cobra.ExactArgs(1)),
	RunE:  runTemplatesGet,
}

// templatesUpdateCmd represents the templates update command
var templatesUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change a template",
	Args:  inputArgs(cobra.ExactArgs(1)),
	RunE:  runTemplatesUpdate,
}

// templatesDeleteCmd represents the templates delete command
var templatesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a template",
	Args:  inputArgs(cobra.ExactArgs(1)),
	RunE:  runTemplatesDelete,
}

func init() {
	rootCmd.AddCommand(templatesCmd)
	templatesCmd.AddCommand(templatesCreateCmd)
	templatesCmd.AddCommand(templatesListCmd)
	templatesCmd.AddCommand(templatesGetCmd)
	templatesCmd.AddCommand(templatesUpdateCmd)
	templatesCmd.AddCommand(templatesDeleteCmd)

	templatesCreateCmd.Flags().StringVar(&templateFlags.subject, "subject", "", "subject line (required)")
	templatesCreateCmd.Flags().StringVar(&templateFlags.html, "html", "", "HTML body")
	templatesCreateCmd.Flags().StringVar(&templateFlags.text, "text", "", "plain text body")

	templatesUpdateCmd.Flags().StringVar(&templateFlags.name, "name", "", "new name")
	templatesUpdateCmd.Flags().StringVar(&templateFlags.subject, "subject", "", "new subject line")
	templatesUpdateCmd.Flags().StringVar(&templateFlags.html, "html", "", "new HTML body")
	templatesUpdateCmd.Flags().StringVar(&templateFlags.text, "text", "", "new plain text body")
}

func runTemplatesCreate(cmd *cobra.Command, args []string) error {
	name := args[0]
	if err := requireNonEmpty("name", name); err != nil {
		return err
	}
	if err := requireFlags(cmd, "subject"); err != nil {
		return err
	}
	if err := requireNonEmpty("subject", templateFlags.subject); err != nil {
		return err
	}

	s, err := resolveSession()
	if err != nil {
		return err
	}
	client, err := s.client()
	if err != nil {
		return err
	}

	tmpl, err := client.CreateTemplate(cmd.Context(), &types.CreateTemplateRequest{
		Name:    name,
		Subject: templateFlags.subject,
		HTML:    templateFlags.html,
		Text:    templateFlags.text,
	})
	if err != nil {
		return err
	}

	return s.report(cmd, tmpl, func(p *output.Printer) {
		p.Success("Template created successfully!")
		p.Field("ID", tmpl.ID)
		p.Field("Name", tmpl.Name)
	})
}

func runTemplatesList(cmd *cobra.Command, args []string) error {
	s, err := resolveSession()
	if err != nil {
		return err
	}
	client, err := s.client()
	if err != nil {
		return err
	}

	templates, err := client.ListTemplates(cmd.Context())
	if err != nil {
		return err
	}
	return s.render(cmd, templates)
}

func runTemplatesGet(cmd *cobra.Command, args []string) error {
	s, err := resolveSession()
	if err != nil {
		return err
	}
	client, err := s.client()
	if err != nil {
		return err
	}

	tmpl, err := client.GetTemplate(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return s.render(cmd, tmpl)
}

func runTemplatesUpdate(cmd *cobra.Command, args []string) error {
	if err := requireAny(cmd, "name", "subject", "html", "text"); err != nil {
		return err
	}

	s, err := resolveSession()
	if err != nil {
		return err
	}
	client, err := s.client()
	if err != nil {
		return err
	}

	tmpl, err := client.UpdateTemplate(cmd.Context(), args[0], &types.UpdateTemplateRequest{
		Name:    templateFlags.name,
		Subject: templateFlags.subject,
		HTML:    templateFlags.html,
		Text:    templateFlags.text,
	})
	if err != nil {
		return err
	}

	return s.report(cmd, tmpl, func(p *output.Printer) {
		p.Success("Template updated successfully!")
		p.Field("ID", tmpl.ID)
	})
}

func runTemplatesDelete(cmd *cobra.Command, args []string) error {
	s, err := resolveSession()
	if err != nil {
		return err
	}
	client, err := s.client()
	if err != nil {
		return err
	}

	if err := client.DeleteTemplate(cmd.Context(), args[0]); err != nil {
		return err
	}
	s.announce(cmd, "Template deleted successfully!")
	return nil
}
