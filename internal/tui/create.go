// Package tui holds the interactive flows used by the CLI when required
// flags are missing and stdout is a terminal.
package tui

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"upmgr/internal/server/domain"
	"upmgr/internal/util"

	"github.com/charmbracelet/huh"
)

// ErrAborted is returned when a user cancels an interactive flow.
var ErrAborted = errors.New("aborted by user")

// CreateServerForm runs an interactive wizard that collects a server
// creation request. Fields already set in prefill are kept as defaults.
// The returned server carries one OS-bearing storage device plus the chosen
// number of blank extra disks; defaulting of sizes, tiers, and titles is the
// service layer's job.
func CreateServerForm(prefill domain.Server, defaultZone string) (*domain.Server, error) {
	accessible := os.Getenv("ACCESSIBLE") != ""

	server := prefill

	zone := string(server.Zone)
	if zone == "" {
		zone = defaultZone
	}

	cores := numericDefault(server.CoreNumber)
	memory := numericDefault(server.MemoryAmount)

	osImage := ""
	extraDisks := "0"
	for _, d := range server.StorageDevices {
		if d.OS != "" {
			osImage = d.OS
		}
	}

	confirmed := false

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Hostname").
				Value(&server.Hostname).
				Validate(func(value string) error {
					return util.ValidateHostname(strings.TrimSpace(value))
				}),
			huh.NewSelect[string]().
				Title("Zone").
				Options(zoneOptions()...).
				Value(&zone),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("CPU cores").
				Value(&cores).
				Validate(validatePositiveInt("cores")),
			huh.NewInput().
				Title("Memory (MB)").
				Value(&memory).
				Validate(validatePositiveInt("memory")),
			huh.NewInput().
				Title("Title (optional)").
				Value(&server.Title),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Operating system").
				Options(osOptions()...).
				Value(&osImage),
			huh.NewInput().
				Title("Extra blank disks").
				Value(&extraDisks).
				Validate(validateDiskCount),
			huh.NewConfirm().
				Title("Create this server?").
				Affirmative("Create").
				Negative("Cancel").
				Value(&confirmed),
		),
	).WithAccessible(accessible)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, ErrAborted
		}
		return nil, err
	}
	if !confirmed {
		return nil, ErrAborted
	}

	server.Hostname = strings.TrimSpace(server.Hostname)
	server.Zone = domain.Zone(zone)
	server.CoreNumber, _ = strconv.Atoi(strings.TrimSpace(cores))
	server.MemoryAmount, _ = strconv.Atoi(strings.TrimSpace(memory))

	devices := []domain.Storage{{OS: osImage}}
	n, _ := strconv.Atoi(strings.TrimSpace(extraDisks))
	for range n {
		devices = append(devices, domain.Storage{})
	}
	server.StorageDevices = devices

	return &server, nil
}

func numericDefault(v int) string {
	if v <= 0 {
		return ""
	}
	return strconv.Itoa(v)
}

func zoneOptions() []huh.Option[string] {
	zones := domain.Zones()
	opts := make([]huh.Option[string], 0, len(zones))
	for _, z := range zones {
		opts = append(opts, huh.NewOption(string(z), string(z)))
	}
	return opts
}

func osOptions() []huh.Option[string] {
	images := domain.SupportedOS()
	opts := make([]huh.Option[string], 0, len(images))
	for _, img := range images {
		opts = append(opts, huh.NewOption(img, img))
	}
	return opts
}

func validatePositiveInt(label string) func(string) error {
	return func(value string) error {
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || n <= 0 {
			return fmt.Errorf("%s must be a positive integer", label)
		}
		return nil
	}
}

func validateDiskCount(value string) error {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < 0 {
		return errors.New("disk count must be zero or a positive integer")
	}
	if n > 7 {
		return errors.New("at most 7 extra disks can be attached at creation")
	}
	return nil
}
