package auth

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/hellopaaitech-arch/hellopaai-go/cmd/hpanelctl/internal/config"
)

var (
	logoutRole string
	logoutAll  bool
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log a role out",
	Long: `Clears one role's stored credential. Other roles stay signed in.
Use --all to clear every slot.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg := config.MustFromContext(ctx)

		store, err := cfg.Provider.Store(ctx)
		if err != nil {
			return err
		}

		if logoutAll {
			if err := store.Clear(ctx); err != nil {
				return err
			}
			pterm.Success.Println("Logged out of all roles")
			return nil
		}

		role, err := parseRoleFlag(logoutRole)
		if err != nil {
			return err
		}
		if err := store.Delete(ctx, role); err != nil {
			return err
		}
		pterm.Success.Printf("Logged out of %s\n", role)
		return nil
	},
}

func init() {
	logoutCmd.Flags().StringVar(&logoutRole, "role", "", "role to log out")
	logoutCmd.Flags().BoolVar(&logoutAll, "all", false, "clear every role's credential")
	logoutCmd.MarkFlagsOneRequired("role", "all")
	logoutCmd.MarkFlagsMutuallyExclusive("role", "all")
}
