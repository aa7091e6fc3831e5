package server

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"upmgr/internal/config"
	"upmgr/internal/server/domain"
	"upmgr/internal/tui"
	"upmgr/internal/tui/styles"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func CreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new server",
		Long: `Create a new server with the specified provider.

All of --hostname, --zone, --cores, --memory, and --os are required unless
you use interactive mode: if any are missing and you are in a terminal, a
wizard will guide you through the choices.

Each --storage flag attaches one extra disk. Size defaults to 10 GB and
tier to maxiops; a disk title is derived from the hostname when omitted.

Examples:
  # Minimal
  upmgr server create --hostname web-1 --zone uk-lon1 --cores 2 --memory 2048 --os "Ubuntu 14.04"

  # With an extra 100 GB HDD-tier data disk
  upmgr server create --hostname web-1 --zone uk-lon1 --cores 2 --memory 2048 \
    --os "Ubuntu 14.04" \
    --storage size=100,tier=hdd,title=data

  # JSON output for scripting
  upmgr server create --hostname web-1 --zone uk-lon1 --cores 2 --memory 2048 \
    --os "Ubuntu 14.04" -o json`,
		RunE:         runCreate,
		SilenceUsage: true,
	}

	// Required for flag mode
	cmd.Flags().String("hostname", "", "Server hostname (must be a valid hostname)")
	cmd.Flags().String("zone", "", "Zone identifier (e.g. uk-lon1)")
	cmd.Flags().Int("cores", 0, "Number of CPU cores")
	cmd.Flags().Int("memory", 0, "Memory in megabytes")
	cmd.Flags().String("os", "", "Operating system for the OS disk (e.g. \"Ubuntu 14.04\")")

	// Optional
	cmd.Flags().String("title", "", "Server title (defaults to hostname on the provider side)")
	cmd.Flags().StringArray("storage", nil, "Extra disk as key=value pairs: size=,tier=,title= (can be specified multiple times)")

	// Output
	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	service, _, err := getService(cmd)
	if err != nil {
		return err
	}

	hostname, _ := cmd.Flags().GetString("hostname")
	zone, _ := cmd.Flags().GetString("zone")
	cores, _ := cmd.Flags().GetInt("cores")
	memory, _ := cmd.Flags().GetInt("memory")
	osImage, _ := cmd.Flags().GetString("os")
	title, _ := cmd.Flags().GetString("title")
	storageFlags, _ := cmd.Flags().GetStringArray("storage")

	var missing []string
	if hostname == "" {
		missing = append(missing, "--hostname")
	}
	if zone == "" {
		missing = append(missing, "--zone")
	}
	if cores <= 0 {
		missing = append(missing, "--cores")
	}
	if memory <= 0 {
		missing = append(missing, "--memory")
	}
	if osImage == "" {
		missing = append(missing, "--os")
	}

	server := domain.Server{
		Hostname:     hostname,
		Zone:         domain.Zone(zone),
		CoreNumber:   cores,
		MemoryAmount: memory,
		Title:        title,
	}
	if osImage != "" {
		server.StorageDevices = append(server.StorageDevices, domain.Storage{OS: osImage})
	}
	for _, raw := range storageFlags {
		device, err := parseStorageFlag(raw)
		if err != nil {
			return err
		}
		server.StorageDevices = append(server.StorageDevices, device)
	}

	useInteractive := len(missing) > 0
	if useInteractive {
		// Interactive mode requires a terminal.
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return fmt.Errorf("missing required flag(s): %s (interactive mode requires a terminal)", strings.Join(missing, ", "))
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		final, err := tui.CreateServerForm(server, cfg.DefaultZone)
		if err != nil {
			if errors.Is(err, tui.ErrAborted) {
				fmt.Fprintln(cmd.ErrOrStderr(), "Server creation cancelled.")
				return nil
			}
			return err
		}
		server = *final
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Creating server %q [zone=%s, cores=%d, memory=%d MB, disks=%d]\n",
		server.Hostname, server.Zone, server.CoreNumber, server.MemoryAmount, len(server.StorageDevices))

	ctx := context.Background()
	if useInteractive {
		accessible := os.Getenv("ACCESSIBLE") != ""
		var createErr error
		spinErr := spinner.New().
			Title("Creating server...").
			Accessible(accessible).
			Output(cmd.ErrOrStderr()).
			Action(func() {
				createErr = service.CreateServer(ctx, &server)
			}).
			Run()
		if spinErr != nil {
			return spinErr
		}
		err = createErr
	} else {
		err = service.CreateServer(ctx, &server)
	}
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "json" {
		printServerJSON(cmd, &server)
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), styles.SuccessText.Render("Server created successfully!"))
	fmt.Fprintln(cmd.OutOrStdout())
	printServerDetail(cmd, &server)
	return nil
}

// parseStorageFlag parses one --storage value ("size=100,tier=hdd,title=data")
// into a Storage. Unset keys stay at their zero values so the defaulting
// rules apply downstream.
func parseStorageFlag(raw string) (domain.Storage, error) {
	var device domain.Storage
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			return domain.Storage{}, fmt.Errorf("invalid --storage entry %q: expected key=value pairs", raw)
		}
		switch strings.TrimSpace(key) {
		case "size":
			size, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				return domain.Storage{}, fmt.Errorf("invalid --storage size %q: not a number", value)
			}
			device.Size = size
		case "tier":
			device.Tier = domain.StorageTier(strings.TrimSpace(value))
		case "title":
			device.Title = strings.TrimSpace(value)
		case "os":
			device.OS = strings.TrimSpace(value)
		default:
			return domain.Storage{}, fmt.Errorf("unknown --storage key %q (valid: size, tier, title, os)", key)
		}
	}
	return device, nil
}
