package auth

import (
	"fmt"
	"os"
	"strings"

	"upmgr/internal/services/auth"
	"upmgr/internal/util"

	"golang.org/x/term"

	"github.com/spf13/cobra"
)

func LoginCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login <provider>",
		Short: "Store API credentials for a provider",
		Long: `Store API credentials for a provider using the local keychain.

UpCloud authenticates with an API username and password; both are stored
as separate keychain entries.

Example:
  upmgr auth login upcloud`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			provider := util.NormalizeKey(args[0])
			if provider == "" {
				fmt.Fprintln(os.Stderr, "provider is required")
				return
			}

			username, _ := cmd.Flags().GetString("username")
			password, _ := cmd.Flags().GetString("password")

			username = strings.TrimSpace(username)
			if username == "" {
				fmt.Fprint(os.Stdout, "Enter API username: ")
				if _, err := fmt.Fscanln(os.Stdin, &username); err != nil {
					fmt.Fprintln(os.Stderr, err)
					return
				}
				username = strings.TrimSpace(username)
			}
			if username == "" {
				fmt.Fprintln(os.Stderr, "username cannot be empty")
				return
			}

			password = strings.TrimSpace(password)
			if password == "" {
				fmt.Fprint(os.Stdout, "Enter API password: ")
				bytes, err := term.ReadPassword(int(os.Stdin.Fd()))
				fmt.Fprintln(os.Stdout)
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					return
				}
				password = strings.TrimSpace(string(bytes))
			}
			if password == "" {
				fmt.Fprintln(os.Stderr, "password cannot be empty")
				return
			}

			store := auth.DefaultStore()
			if err := store.SetToken(provider+"-username", username); err != nil {
				fmt.Fprintln(os.Stderr, err)
				return
			}
			if err := store.SetToken(provider+"-password", password); err != nil {
				fmt.Fprintln(os.Stderr, err)
				return
			}

			fmt.Fprintf(os.Stdout, "Saved credentials for provider %s\n", provider)
		},
	}

	cmd.Flags().String("username", "", "API username (optional, overrides prompt)")
	cmd.Flags().String("password", "", "API password (optional, overrides prompt)")

	return cmd
}
