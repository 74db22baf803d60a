package auth

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/hellopaaitech-arch/hellopaai-go/cmd/hpanelctl/internal/config"
)

// ImpersonateCmd mints a credential for another identity ("login as").
// It is registered at the root so the verb reads naturally.
var ImpersonateCmd = &cobra.Command{
	Use:   "impersonate <role> <id>",
	Short: "Obtain a credential for another identity",
	Long: `Asks the backend to issue a credential for the target identity and
stores it under the target role's slot. Your own credential stays valid,
so you keep operating as yourself while the target session exists in
parallel.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg := config.MustFromContext(ctx)

		targetRole, err := parseRoleFlag(args[0])
		if err != nil {
			return err
		}
		targetID := args[1]

		session, err := cfg.Provider.Session(ctx)
		if err != nil {
			return err
		}
		cred, err := session.Impersonate(ctx, targetRole, targetID)
		if err != nil {
			return err
		}

		pterm.Success.Printf("Impersonation credential for %s %s stored under the %s slot\n",
			targetRole, targetID, cred.Role)
		pterm.Info.Println("Your own role's credential was not modified.")
		return nil
	},
}
