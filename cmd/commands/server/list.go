package server

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func ListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all servers",
		Long: `List all servers from the specified provider.

By default a single list call is made and only the lightweight fields each
record carries are shown. With --populate every server is fetched
individually so storage devices and IP addresses are included; this costs
one extra API call per server.

Examples:
  upmgr server list
  upmgr server list --populate -o json`,
		RunE:         runList,
		SilenceUsage: true,
	}

	cmd.Flags().Bool("populate", false, "Fetch full details for every server (1 extra call per server)")
	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	service, _, err := getService(cmd)
	if err != nil {
		return err
	}

	populate, _ := cmd.Flags().GetBool("populate")

	servers, err := service.ListServers(context.Background(), populate)
	if err != nil {
		return fmt.Errorf("failed to list servers: %w", err)
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "json" {
		printServersJSON(cmd, servers)
		return nil
	}

	if len(servers) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No servers found.")
		return nil
	}

	printServersTable(cmd, servers)
	return nil
}
