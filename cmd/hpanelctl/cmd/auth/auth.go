package auth

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hellopaaitech-arch/hellopaai-go/pkg/sdk"
)

// AuthCmd is the parent command for auth operations.
var AuthCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage authentication",
	Long:  `Commands for logging role sessions in and out and inspecting their status.`,
}

func init() {
	AuthCmd.AddCommand(loginCmd)
	AuthCmd.AddCommand(logoutCmd)
	AuthCmd.AddCommand(statusCmd)
	AuthCmd.AddCommand(whoamiCmd)
}

// parseRoleFlag accepts both spellings ("super-admin" and "super_admin").
func parseRoleFlag(value string) (sdk.Role, error) {
	role, ok := sdk.ParseRole(strings.ReplaceAll(value, "-", "_"))
	if !ok {
		return "", fmt.Errorf("unknown role %q (expected super-admin, admin, client or user)", value)
	}
	return role, nil
}
