package clients

import (
	"github.com/spf13/cobra"
)

// ClientsCmd is the parent command for client account operations.
var ClientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "Manage client accounts",
	Long:  `List and approve client accounts with admin or super-admin scope.`,
}

// superScope switches commands to the super-admin endpoints.
var superScope bool

func init() {
	ClientsCmd.PersistentFlags().BoolVar(&superScope, "super", false, "use super-admin scope")
	ClientsCmd.AddCommand(listCmd)
	ClientsCmd.AddCommand(approveCmd)
}
