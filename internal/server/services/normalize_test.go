package services

import (
	"errors"
	"testing"

	"upmgr/internal/server/domain"

	"github.com/google/go-cmp/cmp"
)

func TestNormalizeStorageDevices_Defaults(t *testing.T) {
	devices := []domain.Storage{
		{OS: "Ubuntu 14.04"},
		{},
		{Size: 100, Tier: domain.TierHDD},
	}

	got, err := NormalizeStorageDevices("web1.example.com", devices)
	if err != nil {
		t.Fatalf("NormalizeStorageDevices: %v", err)
	}

	want := []domain.Storage{
		{OS: "Ubuntu 14.04", Size: 10, Tier: domain.TierMaxIOPS, Title: "web1.example.com OS disk"},
		{Size: 10, Tier: domain.TierMaxIOPS, Title: "web1.example.com storage disk 1"},
		{Size: 100, Tier: domain.TierHDD, Title: "web1.example.com storage disk 2"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("normalized devices mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeStorageDevices_ExplicitFieldsKept(t *testing.T) {
	devices := []domain.Storage{
		{OS: "Debian 7.8", Size: 25, Tier: domain.TierHDD, Title: "custom root"},
	}

	got, err := NormalizeStorageDevices("db1", devices)
	if err != nil {
		t.Fatalf("NormalizeStorageDevices: %v", err)
	}

	if diff := cmp.Diff(devices, got); diff != "" {
		t.Errorf("explicit fields should pass through unchanged (-want +got):\n%s", diff)
	}
}

func TestNormalizeStorageDevices_InputNotMutated(t *testing.T) {
	devices := []domain.Storage{{OS: "Ubuntu 14.04"}}

	if _, err := NormalizeStorageDevices("web1", devices); err != nil {
		t.Fatalf("NormalizeStorageDevices: %v", err)
	}

	if devices[0].Size != 0 || devices[0].Tier != "" || devices[0].Title != "" {
		t.Errorf("input slice was mutated: %+v", devices[0])
	}
}

func TestNormalizeStorageDevices_Errors(t *testing.T) {
	tests := []struct {
		name    string
		devices []domain.Storage
	}{
		{"empty list", nil},
		{"no OS device", []domain.Storage{{Size: 10}, {Size: 20}}},
		{"two OS devices", []domain.Storage{{OS: "Ubuntu 14.04"}, {OS: "Debian 7.8"}}},
		{"unsupported OS", []domain.Storage{{OS: "TempleOS 5.03"}}},
		{"unsupported tier", []domain.Storage{{OS: "Ubuntu 14.04", Tier: "ssd"}}},
		{"negative size", []domain.Storage{{OS: "Ubuntu 14.04", Size: -5}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizeStorageDevices("web1", tt.devices)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("error should wrap ErrValidation, got %v", err)
			}
		})
	}
}
