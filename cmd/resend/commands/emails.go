package commands

import (
	"github.com/resend/resend-cli/internal/output"
	"github.com/resend/resend-cli/pkg/types"
	"github.com/spf13/cobra"
)

var sendFlags struct {
	from        string
	to          []string
	subject     string
	html        string
	text        string
	cc          []string
	bcc         []string
	replyTo     []string
	scheduledAt string
}

var emailUpdateFlags struct {
	scheduledAt string
}

// emailsCmd represents the emails command
var emailsCmd = &cobra.Command{
	Use:   "emails",
	Short: "Send and manage emails",
}

// emailsSendCmd represents the emails send command
var emailsSendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send an email",
	Long: `Send an email to one or more recipients.

Repeat --to, --cc, --bcc and --reply-to for multiple addresses. Use
--scheduled-at with an ISO 8601 timestamp to deliver later.`,
	Example: `  resend emails send --from "Acme <hi@acme.dev>" --to user@example.com --subject Hello --text "Hi there"`,
	Args:    inputArgs(cobra.NoArgs),
	RunE:    runEmailsSend,
}

// emailsGetCmd represents the emails get command
var emailsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show an email",
	Args:  inputArgs(cobra.ExactArgs(1)),
	RunE:  runEmailsGet,
}

// emailsListCmd represents the emails list command
var emailsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sent emails",
	Args:  inputArgs(cobra.NoArgs),
	RunE:  runEmailsList,
}

// emailsCancelCmd represents the emails cancel command
var emailsCancelCmd = &cobra.Command{
	Use:   "cancel <id>",
	Short: "Cancel a scheduled email",
	Args:  inputArgs(cobra.ExactArgs(1)),
	RunE:  runEmailsCancel,
}

// emailsUpdateCmd represents the emails update command
var emailsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Reschedule a scheduled email",
	Args:  inputArgs(cobra.ExactArgs(1)),
	RunE:  runEmailsUpdate,
}

func init() {
	rootCmd.AddCommand(emailsCmd)
	emailsCmd.AddCommand(emailsSendCmd)
	emailsCmd.AddCommand(emailsGetCmd)
	emailsCmd.AddCommand(emailsListCmd)
	emailsCmd.AddCommand(emailsCancelCmd)
	emailsCmd.AddCommand(emailsUpdateCmd)

	emailsSendCmd.Flags().StringVar(&sendFlags.from, "from", "", "sender address (required)")
	emailsSendCmd.Flags().StringArrayVar(&sendFlags.to, "to", nil, "recipient address (required, repeatable)")
	emailsSendCmd.Flags().StringVar(&sendFlags.subject, "subject", "", "subject line (required)")
	emailsSendCmd.Flags().StringVar(&sendFlags.html, "html", "", "HTML body")
	emailsSendCmd.Flags().StringVar(&sendFlags.text, "text", "", "plain text body")
	emailsSendCmd.Flags().StringArrayVar(&sendFlags.cc, "cc", nil, "carbon copy address (repeatable)")
	emailsSendCmd.Flags().StringArrayVar(&sendFlags.bcc, "bcc", nil, "blind carbon copy address (repeatable)")
	emailsSendCmd.Flags().StringArrayVar(&sendFlags.replyTo, "reply-to", nil, "reply-to address (repeatable)")
	emailsSendCmd.Flags().StringVar(&sendFlags.scheduledAt, "scheduled-at", "", "delivery time in ISO 8601 format")

	emailsUpdateCmd.Flags().StringVar(&emailUpdateFlags.scheduledAt, "scheduled-at", "", "new delivery time in ISO 8601 format (required)")
}

func runEmailsSend(cmd *cobra.Command, args []string) error {
	if err := requireFlags(cmd, "from", "to", "subject"); err != nil {
		return err
	}
	if err := validator.ValidateEmailAddress(sendFlags.from); err != nil {
		return err
	}
	recipients := []struct {
		field     string
		addresses []string
	}{
		{"to", sendFlags.to},
		{"cc", sendFlags.cc},
		{"bcc", sendFlags.bcc},
		{"reply-to", sendFlags.replyTo},
	}
	for _, r := range recipients {
		if err := validator.ValidateEmailAddresses(r.field, r.addresses); err != nil {
			return err
		}
	}
	if err := requireNonEmpty("subject", sendFlags.subject); err != nil {
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

	resp, err := client.SendEmail(cmd.Context(), &types.SendEmailRequest{
		From:        sendFlags.from,
		To:          sendFlags.to,
		Subject:     sendFlags.subject,
		HTML:        sendFlags.html,
		Text:        sendFlags.text,
		Cc:          sendFlags.cc,
		Bcc:         sendFlags.bcc,
		ReplyTo:     sendFlags.replyTo,
		ScheduledAt: sendFlags.scheduledAt,
	})
	if err != nil {
		return err
	}

	return s.report(cmd, resp, func(p *output.Printer) {
		p.Success("Email sent successfully!")
		p.Field("ID", resp.ID)
	})
}

func runEmailsGet(cmd *cobra.Command, args []string) error {
	s, err := resolveSession()
	if err != nil {
		return err
	}
	client, err := s.client()
	if err != nil {
		return err
	}

	email, err := client.GetEmail(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return s.render(cmd, email)
}

func runEmailsList(cmd *cobra.Command, args []string) error {
	s, err := resolveSession()
	if err != nil {
		return err
	}
	client, err := s.client()
	if err != nil {
		return err
	}

	emails, err := client.ListEmails(cmd.Context())
	if err != nil {
		return err
	}
	return s.render(cmd, emails)
}

func runEmailsCancel(cmd *cobra.Command, args []string) error {
	s, err := resolveSession()
	if err != nil {
		return err
	}
	client, err := s.client()
	if err != nil {
		return err
	}

	email, err := client.CancelEmail(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	return s.report(cmd, email, func(p *output.Printer) {
		p.Success("Email cancelled successfully!")
		p.Field("ID", email.ID)
	})
}

func runEmailsUpdate(cmd *cobra.Command, args []string) error {
	if err := requireFlags(cmd, "scheduled-at"); err != nil {
		return err
	}
	if err := requireNonEmpty("scheduled-at", emailUpdateFlags.scheduledAt); err != nil {
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

	email, err := client.UpdateEmail(cmd.Context(), args[0], &types.UpdateEmailRequest{
		ScheduledAt: emailUpdateFlags.scheduledAt,
	})
	if err != nil {
		return err
	}

	return s.report(cmd, email, func(p *output.Printer) {
		p.Success("Email updated successfully!")
		p.Field("ID", email.ID)
	})
}
