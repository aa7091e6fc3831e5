package server

import (
	"context"
	"fmt"

	"upmgr/internal/server/domain"

	"github.com/spf13/cobra"
)

func ModifyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "modify",
		Short: "Modify an existing server",
		Long: `Modify the updateable fields of an existing server.

Only the flags you pass are changed; everything else is left as is. Storage
devices and IP addresses cannot be modified here.

Most changes to a running server are applied by the provider on the next
restart.

Examples:
  upmgr server modify --uuid 009d64ef-31d1-4684-a26b-c86c955cbf46 --memory 4096
  upmgr server modify --uuid 009d64ef-31d1-4684-a26b-c86c955cbf46 --firewall on --hostname web-2`,
		RunE:         runModify,
		SilenceUsage: true,
	}

	cmd.Flags().String("uuid", "", "Server UUID to modify (required)")
	cmd.Flags().Int("cores", 0, "New number of CPU cores")
	cmd.Flags().Int("memory", 0, "New memory amount in megabytes")
	cmd.Flags().String("hostname", "", "New hostname")
	cmd.Flags().String("zone", "", "New zone identifier")
	cmd.Flags().String("title", "", "New title")
	cmd.Flags().String("firewall", "", "Firewall state: on or off")
	cmd.Flags().String("boot-order", "", "Boot device order (e.g. cdrom,disk)")
	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")
	cmd.MarkFlagRequired("uuid")

	return cmd
}

func runModify(cmd *cobra.Command, args []string) error {
	service, _, err := getService(cmd)
	if err != nil {
		return err
	}

	uuid, _ := cmd.Flags().GetString("uuid")

	var opts domain.ModifyServerOpts
	if cmd.Flags().Changed("cores") {
		opts.CoreNumber, _ = cmd.Flags().GetInt("cores")
	}
	if cmd.Flags().Changed("memory") {
		opts.MemoryAmount, _ = cmd.Flags().GetInt("memory")
	}
	if cmd.Flags().Changed("hostname") {
		opts.Hostname, _ = cmd.Flags().GetString("hostname")
	}
	if cmd.Flags().Changed("zone") {
		zone, _ := cmd.Flags().GetString("zone")
		opts.Zone = domain.Zone(zone)
	}
	if cmd.Flags().Changed("title") {
		opts.Title, _ = cmd.Flags().GetString("title")
	}
	if cmd.Flags().Changed("firewall") {
		opts.Firewall, _ = cmd.Flags().GetString("firewall")
	}
	if cmd.Flags().Changed("boot-order") {
		opts.BootOrder, _ = cmd.Flags().GetString("boot-order")
	}

	server, err := service.ModifyServer(context.Background(), uuid, opts)
	if err != nil {
		return fmt.Errorf("failed to modify server: %w", err)
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "json" {
		printServerJSON(cmd, server)
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Server modified.")
	fmt.Fprintln(cmd.OutOrStdout())
	printServerDetail(cmd, server)
	return nil
}
