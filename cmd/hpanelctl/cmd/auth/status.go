package auth

import (
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/hellopaaitech-arch/hellopaai-go/cmd/hpanelctl/internal/config"
	"github.com/hellopaaitech-arch/hellopaai-go/pkg/sdk"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display per-role authentication status",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg := config.MustFromContext(ctx)

		store, err := cfg.Provider.Store(ctx)
		if err != nil {
			return err
		}

		pterm.DefaultSection.Println("Authentication Status")

		rows := pterm.TableData{{"ROLE", "SUBJECT", "EXPIRES", "STATE"}}
		anyStored := false
		for _, role := range sdk.Roles() {
			cred, err := store.Load(ctx, role)
			if err != nil {
				return err
			}
			if cred == nil {
				rows = append(rows, []string{role.String(), "-", "-", "signed out"})
				continue
			}
			anyStored = true

			subject := cred.Subject()
			if subject == "" {
				subject = "-"
			}
			expires := "-"
			state := "valid"
			if exp, ok := cred.ExpiresAt(); ok {
				expires = exp.Format(time.RFC1123)
				if cred.IsExpired() {
					state = "expired"
				}
			}
			rows = append(rows, []string{role.String(), subject, expires, state})
		}

		if err := pterm.DefaultTable.WithHasHeader().WithData(rows).Render(); err != nil {
			return err
		}
		if !anyStored {
			pterm.Info.Println("No stored credentials; run `hpanelctl auth login`.")
		}
		return nil
	},
}
