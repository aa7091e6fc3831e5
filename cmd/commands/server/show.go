package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// ShowCommand returns a cobra.Command that displays details for a single server.
func ShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show details for a server",
		Long: `Display detailed information about a single server.

With --raw the record is shown as the API reports it, including fields that
have no typed counterpart, with the storage device and IP address lists
materialised separately.

Examples:
  # Typed view
  upmgr server show --uuid 009d64ef-31d1-4684-a26b-c86c955cbf46

  # JSON output for scripting
  upmgr server show --uuid 009d64ef-31d1-4684-a26b-c86c955cbf46 -o json

  # Raw record as reported by the API
  upmgr server show --uuid 009d64ef-31d1-4684-a26b-c86c955cbf46 --raw`,
		RunE:         runShow,
		SilenceUsage: true,
	}

	cmd.Flags().String("uuid", "", "Server UUID to show (required)")
	cmd.Flags().Bool("raw", false, "Show the raw record as reported by the API")
	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")
	cmd.MarkFlagRequired("uuid")

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	service, _, err := getService(cmd)
	if err != nil {
		return err
	}

	uuid, _ := cmd.Flags().GetString("uuid")
	raw, _ := cmd.Flags().GetBool("raw")
	output, _ := cmd.Flags().GetString("output")

	ctx := context.Background()

	if raw {
		details, err := service.GetServerData(ctx, uuid)
		if err != nil {
			return fmt.Errorf("failed to fetch server: %w", err)
		}
		if output == "json" {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			enc.Encode(details)
			return nil
		}
		printServerData(cmd, details)
		return nil
	}

	server, err := service.GetServer(ctx, uuid)
	if err != nil {
		return fmt.Errorf("failed to fetch server: %w", err)
	}

	if output == "json" {
		printServerJSON(cmd, server)
		return nil
	}
	printServerDetail(cmd, server)
	return nil
}
