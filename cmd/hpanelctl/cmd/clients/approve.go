package clients

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/hellopaaitech-arch/hellopaai-go/cmd/hpanelctl/internal/config"
)

var approveCmd = &cobra.Command{
	Use:   "approve <id>",
	Short: "Approve a pending client account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg := config.MustFromContext(ctx)
		id := args[0]

		apiClient, err := cfg.Provider.Client(ctx)
		if err != nil {
			return err
		}

		if superScope {
			err = apiClient.ApproveSuperResource(ctx, "clients", id)
		} else {
			err = apiClient.ApproveClient(ctx, id)
		}
		if err != nil {
			return err
		}

		pterm.Success.Printfln("Client %s approved.", id)
		return nil
	},
}
