package users

import (
	"github.com/spf13/cobra"
)

// UsersCmd is the parent command for end-user account operations.
var UsersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage end-user accounts",
	Long: `List end-user accounts. The --scope flag picks which credential
and endpoint family the request uses: "client" lists the calling
client's own users, "admin" and "super" list platform-wide.`,
}

var scope string

func init() {
	UsersCmd.PersistentFlags().StringVar(&scope, "scope", "admin", "request scope: admin, client or super")
	UsersCmd.AddCommand(listCmd)
}
