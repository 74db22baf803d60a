package clients

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/hellopaaitech-arch/hellopaai-go/cmd/hpanelctl/internal/config"
	"github.com/hellopaaitech-arch/hellopaai-go/pkg/sdk"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List client accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg := config.MustFromContext(ctx)

		apiClient, err := cfg.Provider.Client(ctx)
		if err != nil {
			return err
		}

		var list []sdk.Subject
		if superScope {
			list, err = apiClient.ListSuperClients(ctx)
		} else {
			list, err = apiClient.ListAdminClients(ctx)
		}
		if err != nil {
			return err
		}

		if len(list) == 0 {
			pterm.Info.Println("No client accounts found.")
			return nil
		}

		rows := pterm.TableData{{"ID", "BUSINESS", "EMAIL", "CITY", "APPROVED"}}
		for _, c := range list {
			approved := "no"
			if c.Approved {
				approved = "yes"
			}
			rows = append(rows, []string{c.ID, c.BusinessName, c.Email, c.City, approved})
		}
		return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
	},
}
