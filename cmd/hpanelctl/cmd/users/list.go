package users

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/hellopaaitech-arch/hellopaai-go/cmd/hpanelctl/internal/config"
	"github.com/hellopaaitech-arch/hellopaai-go/pkg/sdk"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List end-user accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg := config.MustFromContext(ctx)

		apiClient, err := cfg.Provider.Client(ctx)
		if err != nil {
			return err
		}

		var list []sdk.Subject
		switch scope {
		case "admin":
			list, err = apiClient.ListAdminUsers(ctx)
		case "client":
			list, err = apiClient.ListClientUsers(ctx)
		case "super":
			list, err = apiClient.ListSuperUsers(ctx)
		default:
			return fmt.Errorf("unknown scope %q (want admin, client or super)", scope)
		}
		if err != nil {
			return err
		}

		if len(list) == 0 {
			pterm.Info.Println("No user accounts found.")
			return nil
		}

		rows := pterm.TableData{{"ID", "NAME", "EMAIL", "MOBILE"}}
		for _, u := range list {
			rows = append(rows, []string{u.ID, u.FullName, u.Email, u.MobileNumber})
		}
		return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
	},
}
