package commands

import (
	"fmt"

	"github.com/resend/resend-cli/internal/audit"
	"github.com/resend/resend-cli/internal/config"
	"github.com/resend/resend-cli/internal/validation"
	"github.com/spf13/cobra"
)

var (
	version     = "dev"
	profileName string
	jsonOutput  bool
	formatName  string
	outputFile  string
	verbose     bool
	logFile     string

	// eventLog is nil unless --verbose or --log-file is set
	eventLog *audit.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "resend",
	Short: "Command line client for the Resend email API",
	Long: `Send email and manage domains, API keys and templates on Resend.

Credentials are read from RESEND_API_KEY or from a named profile created with
'resend config setup'.`,
	Version:           version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: prepare,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	defer closeEventLog()

	err := rootCmd.Execute()
	if err != nil {
		eventLog.LogError("cli", err, map[string]interface{}{"kind": errorTag(err)})
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&profileName, "profile", "", "profile to use (default is $RESEND_PROFILE or \"default\")")
	rootCmd.PersistentFlags().StringVar(&formatName, "format", "", "output format: table or json (default table)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print results as JSON (same as --format json)")
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "write results to a file instead of stdout")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log requests and configuration to stderr")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "append the event log to a file")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", validation.ErrInvalidInput, err)
	})
}

// SetVersion sets the version for the CLI
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// prepare runs before every command
func prepare(cmd *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	switch {
	case logFile != "":
		logger, err := audit.NewFileLogger(logFile)
		if err != nil {
			return err
		}
		eventLog = logger
	case verbose:
		eventLog = audit.NewLogger(cmd.ErrOrStderr())
	}
	return nil
}

func closeEventLog() {
	_ = eventLog.Close()
	eventLog = nil
}
