package services

import (
	"fmt"
	"strings"

	"upmgr/internal/server/domain"
)

// NormalizeStorageDevices turns a partially-specified storage device list
// into a fully-specified one for a server creation request:
//
//   - size defaults to 10 GB and tier to maxiops
//   - a missing title becomes "<hostname> OS disk" for the first device and
//     "<hostname> storage disk N" for the rest, N counting the non-OS
//     devices from 1
//   - exactly one device must carry a supported operating system
//
// The input slice is not modified; output order matches input order.
func NormalizeStorageDevices(hostname string, devices []domain.Storage) ([]domain.Storage, error) {
	if len(devices) == 0 {
		return nil, fmt.Errorf("%w: a server needs at least one storage device carrying an operating system", domain.ErrValidation)
	}

	osCount := 0
	for _, d := range devices {
		if d.OS == "" {
			continue
		}
		if !domain.ValidOS(d.OS) {
			return nil, fmt.Errorf("%w: unsupported operating system %q (supported: %s)",
				domain.ErrValidation, d.OS, strings.Join(domain.SupportedOS(), ", "))
		}
		osCount++
	}
	if osCount == 0 {
		return nil, fmt.Errorf("%w: exactly one storage device must specify an operating system, none does", domain.ErrValidation)
	}
	if osCount > 1 {
		return nil, fmt.Errorf("%w: exactly one storage device may specify an operating system, %d do", domain.ErrValidation, osCount)
	}

	out := make([]domain.Storage, len(devices))
	copy(out, devices)

	extraDisks := 0 // running counter over the non-OS devices
	for i := range out {
		if out[i].Size == 0 {
			out[i].Size = domain.DefaultStorageSize
		}
		if out[i].Size < 0 {
			return nil, fmt.Errorf("%w: storage size must be positive, got %d", domain.ErrValidation, out[i].Size)
		}

		if out[i].Tier == "" {
			out[i].Tier = domain.DefaultStorageTier
		}
		if out[i].Tier != domain.TierMaxIOPS && out[i].Tier != domain.TierHDD {
			return nil, fmt.Errorf("%w: unsupported storage tier %q", domain.ErrValidation, out[i].Tier)
		}

		isOSDisk := i == 0 || out[i].OS != ""
		if !isOSDisk {
			extraDisks++
		}

		if out[i].Title == "" {
			if isOSDisk {
				out[i].Title = hostname + " OS disk"
			} else {
				out[i].Title = fmt.Sprintf("%s storage disk %d", hostname, extraDisks)
			}
		}
	}

	return out, nil
}
