package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hellopaaitech-arch/hellopaai-go/cmd/hpanelctl/cmd/auth"
	"github.com/hellopaaitech-arch/hellopaai-go/cmd/hpanelctl/cmd/clients"
	"github.com/hellopaaitech-arch/hellopaai-go/cmd/hpanelctl/cmd/users"
	"github.com/hellopaaitech-arch/hellopaai-go/cmd/hpanelctl/internal/client"
	"github.com/hellopaaitech-arch/hellopaai-go/cmd/hpanelctl/internal/config"
)

var (
	serverURL      string
	storeBackend   string
	storeDSN       string
	bearerToken    string
	nonInteractive bool
	verbose        bool
)

var rootCmd = &cobra.Command{
	Use:   "hpanelctl",
	Short: "hellopaai panel CLI - multi-role session client",
	Long: `hpanelctl is the command-line interface for the hellopaai panel backend.
It keeps independent credentials per role (super-admin, admin, client, user),
refreshes them transparently, and exposes the panel's account operations.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := config.LoadEnv(ctx)
		if err != nil {
			return err
		}
		if serverURL == "" {
			serverURL = env.ServerURL
		}
		if storeBackend == "" {
			storeBackend = env.StoreBackend
		}
		if storeDSN == "" {
			storeDSN = env.StoreDSN
		}
		if bearerToken == "" {
			bearerToken = env.BearerToken
		}
		if env.NonInteractive {
			nonInteractive = true
		}

		logger := zerolog.Nop()
		if verbose {
			logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
				With().Timestamp().Logger().Level(zerolog.DebugLevel)
		}

		provider := client.NewProvider(serverURL, storeBackend, storeDSN, logger)
		if bearerToken != "" {
			provider.SetBearerToken(bearerToken)
		}

		cfg := &config.GlobalConfig{
			ServerURL:      serverURL,
			NonInteractive: nonInteractive,
			Provider:       provider,
		}
		cmd.SetContext(config.InjectConfig(ctx, cfg))
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "panel API server URL (default $HPANEL_SERVER_URL)")
	rootCmd.PersistentFlags().StringVar(&storeBackend, "store", "", "credential store backend: file, memory or redis")
	rootCmd.PersistentFlags().StringVar(&storeDSN, "store-dsn", "", "credential store location (file path or redis URL)")
	rootCmd.PersistentFlags().StringVar(&bearerToken, "bearer-token", "", "ephemeral bearer token bypassing the credential store")
	rootCmd.PersistentFlags().BoolVar(&nonInteractive, "non-interactive", false, "disable interactive prompts (also set via HPANEL_NON_INTERACTIVE=1)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(auth.AuthCmd)
	rootCmd.AddCommand(auth.ImpersonateCmd)
	rootCmd.AddCommand(clients.ClientsCmd)
	rootCmd.AddCommand(users.UsersCmd)
}
