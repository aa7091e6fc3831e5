package domain

import "context"

// ServerDetails is the raw decoded server record alongside materialised
// value objects for its nested IP address and storage entries. Fields holds
// the remaining top-level record fields as the API returned them.
type ServerDetails struct {
	Fields         map[string]any `json:"fields"`
	IPAddresses    []IPAddress    `json:"ip_addresses"`
	StorageDevices []Storage      `json:"storage_devices"`
}

// Provider is the control-plane client for one cloud provider account.
//
// Implementations are stateless beyond their credentials and connection
// configuration, and must be safe for concurrent use.
type Provider interface {
	GetDisplayName() string

	// ListServers returns lightweight server records from a single list
	// call. Storage and IP detail is typically absent.
	ListServers(ctx context.Context) ([]Server, error)

	// GetServer returns a fully populated server, or ErrNotFound.
	GetServer(ctx context.Context, uuid string) (*Server, error)

	// GetServerData returns the decoded server record as a generic mapping
	// with its nested IP address and storage entries materialised.
	GetServerData(ctx context.Context, uuid string) (*ServerDetails, error)

	// CreateServer creates the server described by s, which must already
	// have a normalised storage device list, and on success overwrites s in
	// place with the remote record (including the assigned UUID). On failure
	// s is left unmodified.
	CreateServer(ctx context.Context, s *Server) error

	// ModifyServer updates the updateable fields of an existing server and
	// returns the record the API reports after the change.
	ModifyServer(ctx context.Context, uuid string, opts ModifyServerOpts) (*Server, error)

	// DeleteServer permanently destroys the virtual machine. Storage disks
	// attached to it are NOT deleted; they remain as orphaned resources.
	DeleteServer(ctx context.Context, uuid string) error

	// ConfigureFirewall applies the given rules to an existing server, one
	// by one, and returns the server's resulting firewall rule list.
	ConfigureFirewall(ctx context.Context, uuid string, rules []FirewallRule) ([]FirewallRule, error)
}
