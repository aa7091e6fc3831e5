// Package services provides the server business logic layer.
//
// The Service type wraps a domain.Provider and adds input validation and
// storage defaulting before delegating to the provider. CLI commands
// construct a Service from a resolved provider and call service methods
// rather than calling the provider directly.
package services

import (
	"context"
	"fmt"

	"upmgr/internal/server/domain"
	"upmgr/internal/util"

	"golang.org/x/sync/errgroup"
)

// Service is the server business logic layer. It is stateless apart from the
// provider reference and safe for concurrent use.
type Service struct {
	provider domain.Provider
}

// New returns a Service backed by the given provider.
func New(provider domain.Provider) *Service {
	return &Service{provider: provider}
}

// ListServers returns the account's servers. With populate false this is a
// single list call returning lightweight records. With populate true every
// listed server is fetched individually (1 + N calls, fanned out
// concurrently); if any fetch fails the whole operation fails and no partial
// result is returned, so the result set is always internally consistent.
func (s *Service) ListServers(ctx context.Context, populate bool) ([]domain.Server, error) {
	servers, err := s.provider.ListServers(ctx)
	if err != nil || !populate {
		return servers, err
	}

	populated := make([]domain.Server, len(servers))
	g, ctx := errgroup.WithContext(ctx)
	for i, srv := range servers {
		g.Go(func() error {
			full, err := s.provider.GetServer(ctx, srv.UUID)
			if err != nil {
				return err
			}
			populated[i] = *full
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return populated, nil
}

// GetServer returns a fully populated server.
func (s *Service) GetServer(ctx context.Context, uuid string) (*domain.Server, error) {
	if uuid == "" {
		return nil, fmt.Errorf("%w: server UUID is required", domain.ErrValidation)
	}
	return s.provider.GetServer(ctx, uuid)
}

// GetServerData returns a server record as a generic mapping with its nested
// IP address and storage entries materialised as value objects.
func (s *Service) GetServerData(ctx context.Context, uuid string) (*domain.ServerDetails, error) {
	if uuid == "" {
		return nil, fmt.Errorf("%w: server UUID is required", domain.ErrValidation)
	}
	return s.provider.GetServerData(ctx, uuid)
}

// CreateServer validates server locally, normalises its storage device list,
// and creates it. On success server is overwritten in place with the remote
// record; on any failure (local or remote) server is left unmodified.
func (s *Service) CreateServer(ctx context.Context, server *domain.Server) error {
	if err := validateCreate(server); err != nil {
		return err
	}

	normalized, err := NormalizeStorageDevices(server.Hostname, server.StorageDevices)
	if err != nil {
		return err
	}

	// Work on a copy so a failed create leaves the caller's server intact,
	// defaults included.
	work := *server
	work.StorageDevices = normalized
	if err := s.provider.CreateServer(ctx, &work); err != nil {
		return err
	}

	*server = work
	return nil
}

// validateCreate checks the required creation fields before any network call.
func validateCreate(server *domain.Server) error {
	if server.CoreNumber <= 0 {
		return fmt.Errorf("%w: core_number must be a positive integer", domain.ErrValidation)
	}
	if server.MemoryAmount <= 0 {
		return fmt.Errorf("%w: memory_amount must be a positive integer", domain.ErrValidation)
	}
	if server.Hostname == "" {
		return fmt.Errorf("%w: hostname is required", domain.ErrValidation)
	}
	if err := util.ValidateHostname(server.Hostname); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if server.Zone == "" {
		return fmt.Errorf("%w: zone is required", domain.ErrValidation)
	}
	if !domain.ValidZone(server.Zone) {
		return fmt.Errorf("%w: unsupported zone %q", domain.ErrValidation, server.Zone)
	}
	return nil
}

// ModifyServer updates the updateable fields of an existing server and
// returns the record the API reports after the change. Storage devices and
// IP addresses cannot be modified here; they have dedicated operations.
func (s *Service) ModifyServer(ctx context.Context, uuid string, opts domain.ModifyServerOpts) (*domain.Server, error) {
	if uuid == "" {
		return nil, fmt.Errorf("%w: server UUID is required", domain.ErrValidation)
	}
	if opts.IsZero() {
		return nil, fmt.Errorf("%w: no fields to modify", domain.ErrValidation)
	}
	if opts.CoreNumber < 0 {
		return nil, fmt.Errorf("%w: core_number must be a positive integer", domain.ErrValidation)
	}
	if opts.MemoryAmount < 0 {
		return nil, fmt.Errorf("%w: memory_amount must be a positive integer", domain.ErrValidation)
	}
	if opts.Hostname != "" {
		if err := util.ValidateHostname(opts.Hostname); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
	}
	if opts.Zone != "" && !domain.ValidZone(opts.Zone) {
		return nil, fmt.Errorf("%w: unsupported zone %q", domain.ErrValidation, opts.Zone)
	}
	if opts.Firewall != "" && opts.Firewall != "on" && opts.Firewall != "off" {
		return nil, fmt.Errorf("%w: firewall must be \"on\" or \"off\", got %q", domain.ErrValidation, opts.Firewall)
	}

	return s.provider.ModifyServer(ctx, uuid, opts)
}

// DeleteServer permanently destroys the virtual machine. The server's
// storage disks are not deleted and remain as orphaned remote resources.
func (s *Service) DeleteServer(ctx context.Context, uuid string) error {
	if uuid == "" {
		return fmt.Errorf("%w: server UUID is required", domain.ErrValidation)
	}
	return s.provider.DeleteServer(ctx, uuid)
}

// ConfigureFirewall validates and applies firewall rules to an existing
// server, returning the server's resulting rule list.
func (s *Service) ConfigureFirewall(ctx context.Context, uuid string, rules []domain.FirewallRule) ([]domain.FirewallRule, error) {
	if uuid == "" {
		return nil, fmt.Errorf("%w: server UUID is required", domain.ErrValidation)
	}
	if len(rules) == 0 {
		return nil, fmt.Errorf("%w: at least one firewall rule is required", domain.ErrValidation)
	}
	for i, rule := range rules {
		if rule.Direction != "in" && rule.Direction != "out" {
			return nil, fmt.Errorf("%w: rule %d: direction must be \"in\" or \"out\", got %q", domain.ErrValidation, i+1, rule.Direction)
		}
		if rule.Action != "accept" && rule.Action != "drop" {
			return nil, fmt.Errorf("%w: rule %d: action must be \"accept\" or \"drop\", got %q", domain.ErrValidation, i+1, rule.Action)
		}
	}

	return s.provider.ConfigureFirewall(ctx, uuid, rules)
}
