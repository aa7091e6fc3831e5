package domain

// StorageTier is a storage performance class.
type StorageTier string

const (
	TierMaxIOPS StorageTier = "maxiops"
	TierHDD     StorageTier = "hdd"
)

// DefaultStorageSize is the disk size in gigabytes applied when a storage
// device does not specify one.
const DefaultStorageSize = 10

// DefaultStorageTier is the tier applied when a storage device does not
// specify one.
const DefaultStorageTier = TierMaxIOPS

// supportedOS is the closed set of operating system images a storage device
// may be created from.
var supportedOS = []string{
	"CentOS 6.5",
	"CentOS 7.0",
	"Debian 7.8",
	"Ubuntu 12.04",
	"Ubuntu 14.04",
	"Windows 2003",
	"Windows 2008",
	"Windows 2012",
}

// SupportedOS returns the supported operating system identifiers in a stable
// order.
func SupportedOS() []string {
	out := make([]string, len(supportedOS))
	copy(out, supportedOS)
	return out
}

// ValidOS reports whether name is a supported operating system identifier.
func ValidOS(name string) bool {
	for _, os := range supportedOS {
		if name == os {
			return true
		}
	}
	return false
}

// Storage represents a virtual disk attached to a server.
//
// On creation requests only OS, Size, Tier and Title are meaningful; UUID and
// Address are assigned by the remote system and populated from responses.
type Storage struct {
	UUID    string      `json:"uuid,omitempty"`
	OS      string      `json:"os,omitempty"`
	Size    int         `json:"size,omitempty"` // gigabytes
	Tier    StorageTier `json:"tier,omitempty"`
	Title   string      `json:"title,omitempty"`
	Address string      `json:"address,omitempty"` // bus address, e.g. "virtio:0"
}
