package commands

import (
	"github.com/resend/resend-cli/internal/output"
	"github.com/resend/resend-cli/pkg/types"
	"github.com/spf13/cobra"
)

var (
	domainRegions = []string{"us-east-1", "eu-west-1", "sa-east-1", "ap-northeast-1"}
	tlsModes      = []string{"enforced", "opportunistic"}
)

var domainCreateFlags struct {
	region string
}

var domainUpdateFlags struct {
	clickTracking bool
	openTracking  bool
	tls           string
}

// domainsCmd represents the domains command
var domainsCmd = &cobra.Command{
	Use:   "domains",
	Short: "Manage sending domains",
}

// domainsCreateCmd represents the domains create command
var domainsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Add a sending domain",
	Long: `Add a sending domain and print the DNS records that must be
published before it can be verified.`,
	Args: inputArgs(cobra.ExactArgs(1)),
	RunE: runDomainsCreate,
}

// domainsListCmd represents the domains list command
var domainsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List domains",
	Args:  inputArgs(cobra.NoArgs),
	RunE:  runDomainsList,
}

// domainsGetCmd represents the domains get command
var domainsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a domain",
	Args:  inputArgs(cobra.ExactArgs(1)),
	RunE:  runDomainsGet,
}

// domainsVerifyCmd represents the domains verify command
var domainsVerifyCmd = &cobra.Command{
	Use:   "verify <id>",
	Short: "Start DNS verification of a domain",
	Args:  inputArgs(cobra.ExactArgs(1)),
	RunE:  runDomainsVerify,
}

// domainsUpdateCmd represents the domains update command
var domainsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change tracking and TLS settings of a domain",
	Example: `  resend domains update d_123 --open-tracking --click-tracking=false
  resend domains update d_123 --tls enforced`,
	Args: inputArgs(cobra.ExactArgs(1)),
	RunE: runDomainsUpdate,
}

// domainsDeleteCmd represents the domains delete command
var domainsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a domain",
	Args:  inputArgs(cobra.ExactArgs(1)),
	RunE:  runDomainsDelete,
}

func init() {
	rootCmd.AddCommand(domainsCmd)
	domainsCmd.AddCommand(domainsCreateCmd)
	domainsCmd.AddCommand(domainsListCmd)
	domainsCmd.AddCommand(domainsGetCmd)
	domainsCmd.AddCommand(domainsVerifyCmd)
	domainsCmd.AddCommand(domainsUpdateCmd)
	domainsCmd.AddCommand(domainsDeleteCmd)

	domainsCreateCmd.Flags().StringVar(&domainCreateFlags.region, "region", "", "sending region (us-east-1, eu-west-1, sa-east-1, ap-northeast-1)")

	domainsUpdateCmd.Flags().BoolVar(&domainUpdateFlags.clickTracking, "click-tracking", false, "track link clicks")
	domainsUpdateCmd.Flags().BoolVar(&domainUpdateFlags.openTracking, "open-tracking", false, "track email opens")
	domainsUpdateCmd.Flags().StringVar(&domainUpdateFlags.tls, "tls", "", "TLS mode (enforced, opportunistic)")
}

func runDomainsCreate(cmd *cobra.Command, args []string) error {
	name := args[0]
	if err := validator.ValidateDomainName(name); err != nil {
		return err
	}
	if err := validator.ValidateOneOf("region", domainCreateFlags.region, domainRegions...); err != nil {
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

	domain, err := client.CreateDomain(cmd.Context(), &types.CreateDomainRequest{
		Name:   name,
		Region: domainCreateFlags.region,
	})
	if err != nil {
		return err
	}

	return s.report(cmd, domain, func(p *output.Printer) {
		p.Success("Domain created successfully!")
		p.Field("ID", domain.ID)
		p.Field("Name", domain.Name)
		if len(domain.Records) == 0 {
			return
		}
		p.Line("")
		p.Line("DNS Records to add:")
		for _, r := range domain.Records {
			p.Line("  %s %s -> %s", r.Record, r.Name, r.Value)
		}
	})
}

func runDomainsList(cmd *cobra.Command, args []string) error {
	s, err := resolveSession()
	if err != nil {
		return err
	}
	client, err := s.client()
	if err != nil {
		return err
	}

	domains, err := client.ListDomains(cmd.Context())
	if err != nil {
		return err
	}
	return s.render(cmd, domains)
}

func runDomainsGet(cmd *cobra.Command, args []string) error {
	s, err := resolveSession()
	if err != nil {
		return err
	}
	client, err := s.client()
	if err != nil {
		return err
	}

	domain, err := client.GetDomain(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return s.render(cmd, domain)
}

func runDomainsVerify(cmd *cobra.Command, args []string) error {
	s, err := resolveSession()
	if err != nil {
		return err
	}
	client, err := s.client()
	if err != nil {
		return err
	}

	domain, err := client.VerifyDomain(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	return s.report(cmd, domain, func(p *output.Printer) {
		status := types.Deref(domain.Status)
		if status == "" {
			status = "pending"
		}
		p.Success("Verification initiated!")
		p.Field("ID", domain.ID)
		p.Field("Status", status)
	})
}

func runDomainsUpdate(cmd *cobra.Command, args []string) error {
	if err := requireAny(cmd, "click-tracking", "open-tracking", "tls"); err != nil {
		return err
	}
	if err := validator.ValidateOneOf("tls", domainUpdateFlags.tls, tlsModes...); err != nil {
		return err
	}

	req := &types.UpdateDomainRequest{TLS: domainUpdateFlags.tls}
	if cmd.Flags().Changed("click-tracking") {
		v := domainUpdateFlags.clickTracking
		req.ClickTracking = &v
	}
	if cmd.Flags().Changed("open-tracking") {
		v := domainUpdateFlags.openTracking
		req.OpenTracking = &v
	}

	s, err := resolveSession()
	if err != nil {
		return err
	}
	client, err := s.client()
	if err != nil {
		return err
	}

	domain, err := client.UpdateDomain(cmd.Context(), args[0], req)
	if err != nil {
		return err
	}

	return s.report(cmd, domain, func(p *output.Printer) {
		p.Success("Domain updated successfully!")
		p.Field("ID", domain.ID)
	})
}

func runDomainsDelete(cmd *cobra.Command, args []string) error {
	s, err := resolveSession()
	if err != nil {
		return err
	}
	client, err := s.client()
	if err != nil {
		return err
	}

	if err := client.DeleteDomain(cmd.Context(), args[0]); err != nil {
		return err
	}
	s.announce(cmd, "Domain deleted successfully!")
	return nil
}
