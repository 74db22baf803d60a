package auth

import (
	"errors"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/hellopaaitech-arch/hellopaai-go/cmd/hpanelctl/internal/config"
	"github.com/hellopaaitech-arch/hellopaai-go/pkg/sdk"
)

var (
	loginRole     string
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate a role with the panel backend",
	Long: `Logs in with email and password and stores the minted credential under
the role's own slot. Other roles' credentials are left untouched, so
several roles can stay signed in side by side.

Super-admins and admins share the admin login form; the server reports
which of the two the account actually is.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg := config.MustFromContext(ctx)

		role, err := parseRoleFlag(loginRole)
		if err != nil {
			return err
		}
		if loginEmail == "" || loginPassword == "" {
			if cfg.NonInteractive {
				return fmt.Errorf("--email and --password are required in non-interactive mode")
			}
			if loginEmail == "" {
				loginEmail, _ = pterm.DefaultInteractiveTextInput.Show("Email")
			}
			if loginPassword == "" {
				loginPassword, _ = pterm.DefaultInteractiveTextInput.WithMask("*").Show("Password")
			}
		}

		session, err := cfg.Provider.Session(ctx)
		if err != nil {
			return err
		}

		me, err := session.Login(ctx, role, sdk.LoginInput{Email: loginEmail, Password: loginPassword})
		if err != nil {
			if errors.Is(err, sdk.ErrRoleMismatch) {
				return fmt.Errorf("this account is not a %s: %w", role, err)
			}
			return err
		}

		pterm.Success.Printf("Logged in as %s (%s)\n", me.Subject.Email, me.EffectiveRole())
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginRole, "role", "", "role to log in as: super-admin, admin, client or user")
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "account password")
	loginCmd.MarkFlagRequired("role")
}
