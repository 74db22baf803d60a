package auth

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/hellopaaitech-arch/hellopaai-go/cmd/hpanelctl/internal/config"
	"github.com/hellopaaitech-arch/hellopaai-go/pkg/sdk"
)

var whoamiRole string

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Resolve the identity behind a stored credential",
	Long: `Asks the backend which subject the stored credential belongs to.
With --role the named slot is validated specifically; otherwise the
usual fallback order picks a credential.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg := config.MustFromContext(ctx)

		if whoamiRole != "" {
			role, err := parseRoleFlag(whoamiRole)
			if err != nil {
				return err
			}
			ctx = sdk.WithRoleHint(ctx, role)
		}

		apiClient, err := cfg.Provider.Client(ctx)
		if err != nil {
			return err
		}
		me, err := apiClient.WhoAmI(ctx)
		if err != nil {
			return err
		}

		rows := pterm.TableData{
			{"Subject type", string(me.SubjectType)},
			{"Role", me.EffectiveRole().String()},
			{"Email", me.Subject.Email},
		}
		if me.Subject.FullName != "" {
			rows = append(rows, []string{"Name", me.Subject.FullName})
		}
		if me.Subject.BusinessName != "" {
			rows = append(rows, []string{"Business", me.Subject.BusinessName})
		}
		return pterm.DefaultTable.WithData(rows).Render()
	},
}

func init() {
	whoamiCmd.Flags().StringVar(&whoamiRole, "role", "", "validate this role's slot specifically")
}
