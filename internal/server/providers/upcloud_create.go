package providers

import (
	"context"
	"fmt"
	"net/http"

	"upmgr/internal/server/domain"
)

// buildCreateBody produces the POST /server envelope from a local server
// whose storage device list has already been normalised. Remote-assigned
// storage fields (uuid, address) are never sent.
func buildCreateBody(s *domain.Server) serverEnvelope {
	devices := make([]upcloudStorageDevice, 0, len(s.StorageDevices))
	for _, d := range s.StorageDevices {
		devices = append(devices, upcloudStorageDevice{
			OS:    d.OS,
			Size:  d.Size,
			Tier:  string(d.Tier),
			Title: d.Title,
		})
	}

	return serverEnvelope{Server: upcloudServer{
		CoreNumber:     s.CoreNumber,
		MemoryAmount:   s.MemoryAmount,
		Hostname:       s.Hostname,
		Zone:           string(s.Zone),
		Title:          s.Title,
		StorageDevices: &upcloudStorageDevices{StorageDevice: devices},
	}}
}

// CreateServer creates the server described by s and, on success, overwrites
// s in place with the record the API returns (UUID, state, rebuilt storage
// and IP address lists). On any failure s is left exactly as it was.
func (u *UpCloudProvider) CreateServer(ctx context.Context, s *domain.Server) error {
	body := buildCreateBody(s)

	var out serverEnvelope
	if err := u.doJSON(ctx, http.MethodPost, "/server", body, &out); err != nil {
		return fmt.Errorf("failed to create server %q: %w", s.Hostname, err)
	}

	populateServer(s, out.Server)
	return nil
}

// ModifyServer updates the updateable fields of an existing server. Zero
// values in opts are left out of the request body entirely, so unset fields
// stay unchanged remotely.
func (u *UpCloudProvider) ModifyServer(ctx context.Context, uuid string, opts domain.ModifyServerOpts) (*domain.Server, error) {
	body := serverEnvelope{Server: upcloudServer{
		CoreNumber:   opts.CoreNumber,
		MemoryAmount: opts.MemoryAmount,
		Hostname:     opts.Hostname,
		Zone:         string(opts.Zone),
		Title:        opts.Title,
		Firewall:     opts.Firewall,
		BootOrder:    opts.BootOrder,
	}}

	var out serverEnvelope
	if err := u.doJSON(ctx, http.MethodPut, "/server/"+uuid, body, &out); err != nil {
		return nil, fmt.Errorf("failed to modify server %q: %w", uuid, err)
	}

	server := toDomainServer(out.Server)
	return &server, nil
}
