package server

import (
	"encoding/json"
	"fmt"
	"sort"
	"text/tabwriter"

	"upmgr/internal/server/domain"
	"upmgr/internal/tui/styles"

	"github.com/spf13/cobra"
)

// printServerJSON encodes a server as indented JSON to the command's stdout.
func printServerJSON(cmd *cobra.Command, server *domain.Server) {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	enc.Encode(server)
}

// printServersJSON encodes a slice of servers as indented JSON to stdout.
func printServersJSON(cmd *cobra.Command, servers []domain.Server) {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	enc.Encode(servers)
}

// printServersTable prints one row per server.
func printServersTable(cmd *cobra.Command, servers []domain.Server) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "UUID\tHOSTNAME\tZONE\tSTATE\tCORES\tMEMORY")
	fmt.Fprintln(w, "----\t--------\t----\t-----\t-----\t------")

	for _, server := range servers {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			server.UUID,
			server.Hostname,
			server.Zone,
			server.State,
			formatCount(server.CoreNumber),
			formatMemory(server.MemoryAmount),
		)
	}

	w.Flush()
}

// printServerDetail prints a vertical key-value view of all server fields,
// followed by storage device and IP address tables when present.
func printServerDetail(cmd *cobra.Command, server *domain.Server) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "  UUID:\t%s\n", server.UUID)
	fmt.Fprintf(w, "  Hostname:\t%s\n", server.Hostname)
	if server.Title != "" {
		fmt.Fprintf(w, "  Title:\t%s\n", server.Title)
	}
	fmt.Fprintf(w, "  Zone:\t%s\n", server.Zone)
	if server.State != "" {
		fmt.Fprintf(w, "  State:\t%s\n", styles.StateStyle(server.State).Render(server.State))
	}
	fmt.Fprintf(w, "  Cores:\t%s\n", formatCount(server.CoreNumber))
	fmt.Fprintf(w, "  Memory:\t%s\n", formatMemory(server.MemoryAmount))
	w.Flush()

	if len(server.StorageDevices) > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "\n  Storage devices:")
		printStorageTable(cmd, server.StorageDevices)
	}
	if len(server.IPAddresses) > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "\n  IP addresses:")
		printIPTable(cmd, server.IPAddresses)
	}
}

func printStorageTable(cmd *cobra.Command, devices []domain.Storage) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "  TITLE\tSIZE\tTIER\tOS\tADDRESS\tUUID")
	for _, d := range devices {
		os := d.OS
		if os == "" {
			os = "-"
		}
		address := d.Address
		if address == "" {
			address = "-"
		}
		fmt.Fprintf(w, "  %s\t%d GB\t%s\t%s\t%s\t%s\n", d.Title, d.Size, d.Tier, os, address, d.UUID)
	}
	w.Flush()
}

func printIPTable(cmd *cobra.Command, addrs []domain.IPAddress) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "  ACCESS\tADDRESS")
	for _, a := range addrs {
		fmt.Fprintf(w, "  %s\t%s\n", a.Access, a.Address)
	}
	w.Flush()
}

// printServerData prints a raw server record: scalar fields sorted by key,
// then the materialised storage and IP lists.
func printServerData(cmd *cobra.Command, details *domain.ServerDetails) {
	keys := make([]string, 0, len(details.Fields))
	for k := range details.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	for _, k := range keys {
		fmt.Fprintf(w, "  %s:\t%v\n", k, details.Fields[k])
	}
	w.Flush()

	if len(details.StorageDevices) > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "\n  Storage devices:")
		printStorageTable(cmd, details.StorageDevices)
	}
	if len(details.IPAddresses) > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "\n  IP addresses:")
		printIPTable(cmd, details.IPAddresses)
	}
}

// printFirewallRules prints one row per firewall rule, ordered by position.
func printFirewallRules(cmd *cobra.Command, rules []domain.FirewallRule) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "POS\tDIR\tACTION\tPROTO\tSRC PORTS\tDST PORTS")
	for _, r := range rules {
		proto := r.Protocol
		if proto == "" {
			proto = "any"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Position,
			r.Direction,
			r.Action,
			proto,
			formatPortRange(r.SourcePortStart, r.SourcePortEnd),
			formatPortRange(r.DestinationPortStart, r.DestinationPortEnd),
		)
	}
	w.Flush()
}

func formatPortRange(start, end string) string {
	switch {
	case start == "" && end == "":
		return "any"
	case end == "" || start == end:
		return start
	default:
		return start + "-" + end
	}
}

func formatCount(n int) string {
	if n == 0 {
		return "-"
	}
	return fmt.Sprintf("%d", n)
}

func formatMemory(mb int) string {
	if mb == 0 {
		return "-"
	}
	if mb >= 1024 && mb%1024 == 0 {
		return fmt.Sprintf("%d GB", mb/1024)
	}
	return fmt.Sprintf("%d MB", mb)
}
