package domain

// Zone is an UpCloud datacenter location code.
type Zone string

// The closed set of zones a server can be provisioned in.
const (
	ZoneHelsinki  Zone = "fi-hel1"
	ZoneLondon    Zone = "uk-lon1"
	ZoneChicago   Zone = "us-chi1"
	ZoneFrankfurt Zone = "de-fra1"
)

// Zones returns all supported zones in a stable order.
func Zones() []Zone {
	return []Zone{ZoneHelsinki, ZoneLondon, ZoneChicago, ZoneFrankfurt}
}

// ValidZone reports whether z is one of the supported datacenter codes.
func ValidZone(z Zone) bool {
	for _, known := range Zones() {
		if z == known {
			return true
		}
	}
	return false
}

// Server represents a virtual machine on UpCloud.
//
// A Server with an empty UUID is local-only: it describes a machine that has
// not been created yet. Once a create or get call populates the UUID, the
// struct mirrors the remote record. Mutating it locally never changes the
// remote copy; that requires an explicit modify call.
type Server struct {
	UUID         string    `json:"uuid,omitempty"`
	CoreNumber   int       `json:"core_number"`
	MemoryAmount int       `json:"memory_amount"` // megabytes
	Hostname     string    `json:"hostname"`
	Zone         Zone      `json:"zone"`
	Title        string    `json:"title,omitempty"`
	State        string    `json:"state,omitempty"` // remote lifecycle state, e.g. "started"
	// StorageDevices is ordered; the first device carries the operating
	// system on creation requests.
	StorageDevices []Storage   `json:"storage_devices,omitempty"`
	IPAddresses    []IPAddress `json:"ip_addresses,omitempty"`
}

// IsRemote reports whether the server is backed by a remote record.
func (s *Server) IsRemote() bool {
	return s.UUID != ""
}
