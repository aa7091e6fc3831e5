package auth

import (
	"errors"
	"fmt"

	"upmgr/internal/server/providers"
	"upmgr/internal/services/auth"

	"github.com/spf13/cobra"
)

func StatusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show authentication status for providers",
		Long: `Show which providers have stored API credentials.

Example:
  upmgr auth status`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := auth.DefaultStore()

			providerNames := providers.List()
			if len(providerNames) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No providers registered.")
				return nil
			}

			for _, provider := range providerNames {
				_, err := store.GetToken(provider + "-username")
				switch {
				case err == nil:
					fmt.Fprintf(cmd.OutOrStdout(), "%s: logged in\n", provider)
				case errors.Is(err, auth.ErrTokenNotFound):
					fmt.Fprintf(cmd.OutOrStdout(), "%s: not logged in\n", provider)
				default:
					fmt.Fprintf(cmd.OutOrStdout(), "%s: error (%v)\n", provider, err)
				}
			}
			return nil
		},
		SilenceUsage: true,
	}

	return cmd
}
