package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"upmgr/internal/server/domain"

	"github.com/spf13/cobra"
)

func FirewallCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "firewall",
		Short: "Configure firewall rules for a server",
		Long: `Apply firewall rules to an existing server and print the resulting
rule list.

Rules are read as a JSON array from the file given with --file, or from
stdin when --file is "-". Each rule needs a direction ("in" or "out") and
an action ("accept" or "drop"); protocol, ports, and position are optional.

Example rules file:
  [
    {"direction": "in", "action": "accept", "protocol": "tcp", "destination_port_start": "22", "destination_port_end": "22"},
    {"direction": "in", "action": "drop"}
  ]

Examples:
  upmgr server firewall --uuid 009d64ef-31d1-4684-a26b-c86c955cbf46 --file rules.json
  cat rules.json | upmgr server firewall --uuid 009d64ef-31d1-4684-a26b-c86c955cbf46 --file -`,
		RunE:         runFirewall,
		SilenceUsage: true,
	}

	cmd.Flags().String("uuid", "", "Server UUID to configure (required)")
	cmd.Flags().String("file", "", "Path to a JSON rules file, or - for stdin (required)")
	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")
	cmd.MarkFlagRequired("uuid")
	cmd.MarkFlagRequired("file")

	return cmd
}

func runFirewall(cmd *cobra.Command, args []string) error {
	service, _, err := getService(cmd)
	if err != nil {
		return err
	}

	uuid, _ := cmd.Flags().GetString("uuid")
	file, _ := cmd.Flags().GetString("file")

	rules, err := readRules(cmd, file)
	if err != nil {
		return err
	}

	applied, err := service.ConfigureFirewall(context.Background(), uuid, rules)
	if err != nil {
		return fmt.Errorf("failed to configure firewall: %w", err)
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		enc.Encode(applied)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Applied %d rule(s). Current rule list:\n\n", len(rules))
	printFirewallRules(cmd, applied)
	return nil
}

// readRules loads a JSON array of firewall rules from a file or stdin.
func readRules(cmd *cobra.Command, file string) ([]domain.FirewallRule, error) {
	var reader io.Reader
	if file == "-" {
		reader = cmd.InOrStdin()
	} else {
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("failed to open rules file: %w", err)
		}
		defer f.Close()
		reader = f
	}

	var rules []domain.FirewallRule
	if err := json.NewDecoder(reader).Decode(&rules); err != nil {
		return nil, fmt.Errorf("failed to parse rules: expected a JSON array of rule objects: %w", err)
	}
	return rules, nil
}
