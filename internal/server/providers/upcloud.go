package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"upmgr/internal/server/domain"
	"upmgr/internal/services/auth"
)

const (
	upcloudBaseURL = "https://api.upcloud.com/1.2"
	upcloudTimeout = 30 * time.Second

	// UpCloud authenticates with an API username and password, stored as two
	// separate keychain entries.
	UpCloudUsernameStore = "upcloud-username"
	UpCloudPasswordStore = "upcloud-password"
)

// Compile-time check that UpCloudProvider satisfies domain.Provider.
var _ domain.Provider = (*UpCloudProvider)(nil)

// UpCloudProvider implements domain.Provider against the UpCloud API.
// It uses a direct HTTP client rather than an SDK to keep the dependency
// tree light; the API is small enough that the wire types below cover it.
type UpCloudProvider struct {
	username string
	password string
	baseURL  string
	client   *http.Client
}

// NewUpCloudProvider creates an UpCloudProvider with the given API credentials.
func NewUpCloudProvider(username, password string) *UpCloudProvider {
	return &UpCloudProvider{
		username: username,
		password: password,
		baseURL:  upcloudBaseURL,
		client:   &http.Client{Timeout: upcloudTimeout},
	}
}

// RegisterUpCloud registers the UpCloud provider factory with the registry.
// It reads two keychain entries: upcloud-username and upcloud-password.
func RegisterUpCloud() {
	Register("upcloud", func(store auth.Store) (domain.Provider, error) {
		username, err := store.GetToken(UpCloudUsernameStore)
		if err != nil {
			return nil, fmt.Errorf("upcloud auth: username not found (run 'upmgr auth login upcloud'): %w", err)
		}
		password, err := store.GetToken(UpCloudPasswordStore)
		if err != nil {
			return nil, fmt.Errorf("upcloud auth: password not found (run 'upmgr auth login upcloud'): %w", err)
		}
		return NewUpCloudProvider(username, password), nil
	})
}

// GetDisplayName returns the human-readable provider name.
func (u *UpCloudProvider) GetDisplayName() string {
	return "UpCloud"
}

// --- Wire types ---
//
// The UpCloud API wraps every payload in a named envelope and nests list
// fields one level deeper than usual: a server's addresses live at
// server.ip_addresses.ip_address and its disks at
// server.storage_devices.storage_device.

type upcloudServer struct {
	UUID           string                 `json:"uuid,omitempty"`
	CoreNumber     int                    `json:"core_number,omitempty"`
	MemoryAmount   int                    `json:"memory_amount,omitempty"`
	Hostname       string                 `json:"hostname,omitempty"`
	Zone           string                 `json:"zone,omitempty"`
	Title          string                 `json:"title,omitempty"`
	State          string                 `json:"state,omitempty"`
	Firewall       string                 `json:"firewall,omitempty"`
	BootOrder      string                 `json:"boot_order,omitempty"`
	IPAddresses    *upcloudIPAddresses    `json:"ip_addresses,omitempty"`
	StorageDevices *upcloudStorageDevices `json:"storage_devices,omitempty"`
}

type upcloudIPAddresses struct {
	IPAddress []upcloudIPAddress `json:"ip_address"`
}

type upcloudIPAddress struct {
	Access  string `json:"access"`
	Address string `json:"address"`
}

type upcloudStorageDevices struct {
	StorageDevice []upcloudStorageDevice `json:"storage_device"`
}

type upcloudStorageDevice struct {
	UUID    string `json:"uuid,omitempty"`
	OS      string `json:"os,omitempty"`
	Size    int    `json:"size,omitempty"`
	Tier    string `json:"tier,omitempty"`
	Title   string `json:"title,omitempty"`
	Address string `json:"address,omitempty"`
}

type serverEnvelope struct {
	Server upcloudServer `json:"server"`
}

type serversEnvelope struct {
	Servers struct {
		Server []upcloudServer `json:"server"`
	} `json:"servers"`
}

// upcloudError is the API's error envelope.
type upcloudError struct {
	Error struct {
		Code    string `json:"error_code"`
		Message string `json:"error_message"`
	} `json:"error"`
}

// --- HTTP helpers ---

// doJSON sends a request with an optional JSON body and decodes a 2xx
// response into out (which may be nil for empty-body operations). Non-2xx
// responses become a *domain.APIError carrying the status and the API's
// error message.
func (u *UpCloudProvider) doJSON(ctx context.Context, method, path string, body any, out any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("upcloud: failed to encode request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("upcloud: failed to build request: %w", err)
	}
	req.SetBasicAuth(u.username, u.password)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := u.client.Do(req)
	if err != nil {
		return fmt.Errorf("upcloud: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("upcloud: failed to decode response: %w", err)
	}
	return nil
}

// apiError builds a *domain.APIError from a non-2xx response, preferring the
// API's error envelope and falling back to the raw body.
func apiError(resp *http.Response) error {
	raw, _ := io.ReadAll(resp.Body)

	message := string(bytes.TrimSpace(raw))
	var envelope upcloudError
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error.Message != "" {
		message = envelope.Error.Message
		if envelope.Error.Code != "" {
			message = envelope.Error.Code + ": " + message
		}
	}

	return &domain.APIError{StatusCode: resp.StatusCode, Message: message}
}

// --- Conversion helpers ---

// toDomainServer converts a wire record to a domain.Server.
func toDomainServer(rec upcloudServer) domain.Server {
	s := domain.Server{
		UUID:         rec.UUID,
		CoreNumber:   rec.CoreNumber,
		MemoryAmount: rec.MemoryAmount,
		Hostname:     rec.Hostname,
		Zone:         domain.Zone(rec.Zone),
		Title:        rec.Title,
		State:        rec.State,
	}
	if rec.IPAddresses != nil {
		s.IPAddresses = toDomainIPAddresses(rec.IPAddresses.IPAddress)
	}
	if rec.StorageDevices != nil {
		s.StorageDevices = toDomainStorages(rec.StorageDevices.StorageDevice)
	}
	return s
}

func toDomainIPAddresses(recs []upcloudIPAddress) []domain.IPAddress {
	out := make([]domain.IPAddress, 0, len(recs))
	for _, r := range recs {
		out = append(out, domain.IPAddress{Access: r.Access, Address: r.Address})
	}
	return out
}

func toDomainStorages(recs []upcloudStorageDevice) []domain.Storage {
	out := make([]domain.Storage, 0, len(recs))
	for _, r := range recs {
		out = append(out, domain.Storage{
			UUID:    r.UUID,
			OS:      r.OS,
			Size:    r.Size,
			Tier:    domain.StorageTier(r.Tier),
			Title:   r.Title,
			Address: r.Address,
		})
	}
	return out
}

// populateServer overwrites s with the remote record, including the UUID and
// the rebuilt storage and IP address lists. It mutates in place so the
// caller's reference stays valid.
func populateServer(s *domain.Server, rec upcloudServer) {
	*s = toDomainServer(rec)
}

// --- Provider implementation ---

// ListServers retrieves lightweight server records in a single list call.
func (u *UpCloudProvider) ListServers(ctx context.Context) ([]domain.Server, error) {
	var out serversEnvelope
	if err := u.doJSON(ctx, http.MethodGet, "/server", nil, &out); err != nil {
		return nil, fmt.Errorf("failed to list servers: %w", err)
	}

	servers := make([]domain.Server, 0, len(out.Servers.Server))
	for _, rec := range out.Servers.Server {
		servers = append(servers, toDomainServer(rec))
	}
	return servers, nil
}

// GetServer retrieves a fully populated server record.
func (u *UpCloudProvider) GetServer(ctx context.Context, uuid string) (*domain.Server, error) {
	var out serverEnvelope
	if err := u.doJSON(ctx, http.MethodGet, "/server/"+uuid, nil, &out); err != nil {
		return nil, fmt.Errorf("failed to get server %q: %w", uuid, err)
	}

	server := toDomainServer(out.Server)
	return &server, nil
}

// GetServerData retrieves a server record as a generic mapping, with the
// nested ip_address and storage_device entries lifted out and materialised
// as value objects.
func (u *UpCloudProvider) GetServerData(ctx context.Context, uuid string) (*domain.ServerDetails, error) {
	var out struct {
		Server map[string]any `json:"server"`
	}
	if err := u.doJSON(ctx, http.MethodGet, "/server/"+uuid, nil, &out); err != nil {
		return nil, fmt.Errorf("failed to get server %q: %w", uuid, err)
	}

	details := &domain.ServerDetails{Fields: out.Server}

	var addrs upcloudIPAddresses
	if decodeSubtree(out.Server, "ip_addresses", &addrs) {
		details.IPAddresses = toDomainIPAddresses(addrs.IPAddress)
		delete(out.Server, "ip_addresses")
	}

	var disks upcloudStorageDevices
	if decodeSubtree(out.Server, "storage_devices", &disks) {
		details.StorageDevices = toDomainStorages(disks.StorageDevice)
		delete(out.Server, "storage_devices")
	}

	return details, nil
}

// decodeSubtree re-decodes one generic map entry into a typed wire struct.
// It returns false when the key is absent or cannot be interpreted.
func decodeSubtree(fields map[string]any, key string, out any) bool {
	sub, ok := fields[key]
	if !ok {
		return false
	}
	raw, err := json.Marshal(sub)
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, out) == nil
}

// DeleteServer permanently destroys the virtual machine. The server's
// storage disks are NOT removed; they stay behind as detached resources and
// must be deleted separately.
func (u *UpCloudProvider) DeleteServer(ctx context.Context, uuid string) error {
	if err := u.doJSON(ctx, http.MethodDelete, "/server/"+uuid, nil, nil); err != nil {
		return fmt.Errorf("failed to delete server %q: %w", uuid, err)
	}
	return nil
}
