package cmd

import (
	"os"

	"upmgr/cmd/commands/auth"
	cfgcmd "upmgr/cmd/commands/config"
	"upmgr/cmd/commands/server"
	"upmgr/internal/server/providers"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
func rootCmd() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "upmgr",
		Short: "A CLI tool for managing cloud servers",
		Long: `upmgr is a command-line tool for managing virtual machines on cloud
providers. It supports creating, listing, modifying, and deleting servers,
plus firewall rule management, with an interactive wizard for guided
server creation.

Supported providers: UpCloud.

Quick start:
  upmgr auth login upcloud           # Store your API credentials
  upmgr server list                  # List all servers
  upmgr server create                # Interactive server creation
  upmgr server delete --uuid <uuid>  # Delete a server`,
	}

	cmd.AddCommand(auth.NewCommand())
	cmd.AddCommand(cfgcmd.NewCommand())
	cmd.AddCommand(server.NewCommand())

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	providers.RegisterUpCloud()

	var root = rootCmd()
	err := root.Execute()
	if err != nil {
		os.Exit(1)
	}
}
