package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"upmgr/internal/server/domain"

	"github.com/google/go-cmp/cmp"
)

// fakeProvider implements domain.Provider and records every call so tests
// can assert what reached the provider (and, crucially, what did not).
type fakeProvider struct {
	servers     []domain.Server
	getErr      map[string]error
	createErr   error
	createdUUID string

	listCalls     int
	getCalls      []string
	createCalls   int
	deleteCalls   []string
	modifyCalls   []string
	firewallCalls []string
}

func (f *fakeProvider) GetDisplayName() string { return "Fake" }

func (f *fakeProvider) ListServers(_ context.Context) ([]domain.Server, error) {
	f.listCalls++
	return f.servers, nil
}

func (f *fakeProvider) GetServer(_ context.Context, uuid string) (*domain.Server, error) {
	f.getCalls = append(f.getCalls, uuid)
	if err := f.getErr[uuid]; err != nil {
		return nil, err
	}
	for _, s := range f.servers {
		if s.UUID == uuid {
			full := s
			full.State = "started"
			return &full, nil
		}
	}
	return nil, fmt.Errorf("get server: %w", domain.ErrNotFound)
}

func (f *fakeProvider) GetServerData(_ context.Context, uuid string) (*domain.ServerDetails, error) {
	return &domain.ServerDetails{Fields: map[string]any{"uuid": uuid}}, nil
}

func (f *fakeProvider) CreateServer(_ context.Context, s *domain.Server) error {
	f.createCalls++
	if f.createErr != nil {
		return f.createErr
	}
	s.UUID = f.createdUUID
	s.State = "maintenance"
	return nil
}

func (f *fakeProvider) ModifyServer(_ context.Context, uuid string, opts domain.ModifyServerOpts) (*domain.Server, error) {
	f.modifyCalls = append(f.modifyCalls, uuid)
	return &domain.Server{UUID: uuid, Hostname: opts.Hostname}, nil
}

func (f *fakeProvider) DeleteServer(_ context.Context, uuid string) error {
	f.deleteCalls = append(f.deleteCalls, uuid)
	return nil
}

func (f *fakeProvider) ConfigureFirewall(_ context.Context, uuid string, rules []domain.FirewallRule) ([]domain.FirewallRule, error) {
	f.firewallCalls = append(f.firewallCalls, uuid)
	return rules, nil
}

func validServer() domain.Server {
	return domain.Server{
		CoreNumber:     2,
		MemoryAmount:   2048,
		Hostname:       "web1.example.com",
		Zone:           domain.ZoneLondon,
		StorageDevices: []domain.Storage{{OS: "Ubuntu 14.04"}},
	}
}

func TestCreateServer_PopulatesInPlace(t *testing.T) {
	fake := &fakeProvider{createdUUID: "00af0f73-7082-4283-b925-811d1585774b"}
	svc := New(fake)

	server := validServer()
	if err := svc.CreateServer(context.Background(), &server); err != nil {
		t.Fatalf("CreateServer: %v", err)
	}

	if server.UUID != fake.createdUUID {
		t.Errorf("UUID = %q, want %q", server.UUID, fake.createdUUID)
	}
	if server.State != "maintenance" {
		t.Errorf("State = %q, want %q", server.State, "maintenance")
	}
	// Defaulting happened before the provider call and survives on the
	// caller's value.
	want := []domain.Storage{
		{OS: "Ubuntu 14.04", Size: 10, Tier: domain.TierMaxIOPS, Title: "web1.example.com OS disk"},
	}
	if diff := cmp.Diff(want, server.StorageDevices); diff != "" {
		t.Errorf("storage devices mismatch (-want +got):\n%s", diff)
	}
}

func TestCreateServer_InvalidZoneMakesNoProviderCall(t *testing.T) {
	fake := &fakeProvider{}
	svc := New(fake)

	server := validServer()
	server.Zone = "mars-central1"

	err := svc.CreateServer(context.Background(), &server)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if fake.createCalls != 0 {
		t.Errorf("provider was called %d times, want 0", fake.createCalls)
	}
}

func TestCreateServer_RequiredFields(t *testing.T) {
	mutations := map[string]func(*domain.Server){
		"zero cores":       func(s *domain.Server) { s.CoreNumber = 0 },
		"zero memory":      func(s *domain.Server) { s.MemoryAmount = 0 },
		"missing hostname": func(s *domain.Server) { s.Hostname = "" },
		"bad hostname":     func(s *domain.Server) { s.Hostname = "-bad-.example.com" },
		"missing zone":     func(s *domain.Server) { s.Zone = "" },
		"no storage":       func(s *domain.Server) { s.StorageDevices = nil },
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			fake := &fakeProvider{}
			svc := New(fake)

			server := validServer()
			mutate(&server)

			err := svc.CreateServer(context.Background(), &server)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			if fake.createCalls != 0 {
				t.Errorf("provider was called %d times, want 0", fake.createCalls)
			}
		})
	}
}

func TestCreateServer_FailureLeavesServerUntouched(t *testing.T) {
	fake := &fakeProvider{createErr: &domain.APIError{StatusCode: 409, Message: "HOST_MAINTENANCE"}}
	svc := New(fake)

	server := validServer()
	before := server

	err := svc.CreateServer(context.Background(), &server)
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if diff := cmp.Diff(before, server); diff != "" {
		t.Errorf("server was modified on failed create (-want +got):\n%s", diff)
	}
}

func TestListServers_WithoutPopulate(t *testing.T) {
	fake := &fakeProvider{servers: []domain.Server{{UUID: "a"}, {UUID: "b"}}}
	svc := New(fake)

	servers, err := svc.ListServers(context.Background(), false)
	if err != nil {
		t.Fatalf("ListServers: %v", err)
	}
	if len(servers) != 2 {
		t.Fatalf("got %d servers, want 2", len(servers))
	}
	if len(fake.getCalls) != 0 {
		t.Errorf("populate=false made %d get calls, want 0", len(fake.getCalls))
	}
}

func TestListServers_PopulateFetchesEach(t *testing.T) {
	fake := &fakeProvider{servers: []domain.Server{{UUID: "a"}, {UUID: "b"}, {UUID: "c"}}}
	svc := New(fake)

	servers, err := svc.ListServers(context.Background(), true)
	if err != nil {
		t.Fatalf("ListServers: %v", err)
	}
	if len(fake.getCalls) != 3 {
		t.Fatalf("got %d get calls, want 3", len(fake.getCalls))
	}
	// Order is preserved even though fetches run concurrently.
	for i, uuid := range []string{"a", "b", "c"} {
		if servers[i].UUID != uuid {
			t.Errorf("servers[%d].UUID = %q, want %q", i, servers[i].UUID, uuid)
		}
		if servers[i].State != "started" {
			t.Errorf("servers[%d] was not populated", i)
		}
	}
}

func TestListServers_PopulateIsAllOrNothing(t *testing.T) {
	fake := &fakeProvider{
		servers: []domain.Server{{UUID: "a"}, {UUID: "b"}, {UUID: "c"}},
		getErr:  map[string]error{"b": &domain.APIError{StatusCode: 404, Message: "SERVER_NOT_FOUND"}},
	}
	svc := New(fake)

	servers, err := svc.ListServers(context.Background(), true)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if servers != nil {
		t.Errorf("expected no partial result, got %d servers", len(servers))
	}
}

func TestGetServer_RequiresUUID(t *testing.T) {
	svc := New(&fakeProvider{})
	if _, err := svc.GetServer(context.Background(), ""); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
	if _, err := svc.GetServerData(context.Background(), ""); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestModifyServer_Validation(t *testing.T) {
	tests := []struct {
		name string
		opts domain.ModifyServerOpts
	}{
		{"empty opts", domain.ModifyServerOpts{}},
		{"negative cores", domain.ModifyServerOpts{CoreNumber: -1}},
		{"bad zone", domain.ModifyServerOpts{Zone: "mars-central1"}},
		{"bad hostname", domain.ModifyServerOpts{Hostname: "-bad-"}},
		{"bad firewall", domain.ModifyServerOpts{Firewall: "maybe"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeProvider{}
			svc := New(fake)

			_, err := svc.ModifyServer(context.Background(), "some-uuid", tt.opts)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			if len(fake.modifyCalls) != 0 {
				t.Errorf("provider was called, want no calls")
			}
		})
	}
}

func TestModifyServer_PassesThrough(t *testing.T) {
	fake := &fakeProvider{}
	svc := New(fake)

	server, err := svc.ModifyServer(context.Background(), "some-uuid", domain.ModifyServerOpts{Hostname: "renamed"})
	if err != nil {
		t.Fatalf("ModifyServer: %v", err)
	}
	if server.Hostname != "renamed" {
		t.Errorf("Hostname = %q, want %q", server.Hostname, "renamed")
	}
}

func TestDeleteServer_IssuesSingleDelete(t *testing.T) {
	fake := &fakeProvider{}
	svc := New(fake)

	if err := svc.DeleteServer(context.Background(), "some-uuid"); err != nil {
		t.Fatalf("DeleteServer: %v", err)
	}
	if len(fake.deleteCalls) != 1 || fake.deleteCalls[0] != "some-uuid" {
		t.Errorf("delete calls = %v, want [some-uuid]", fake.deleteCalls)
	}
	if err := svc.DeleteServer(context.Background(), ""); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation for empty UUID, got %v", err)
	}
}

func TestConfigureFirewall_Validation(t *testing.T) {
	fake := &fakeProvider{}
	svc := New(fake)

	cases := [][]domain.FirewallRule{
		nil,
		{{Direction: "sideways", Action: "accept"}},
		{{Direction: "in", Action: "shrug"}},
	}
	for _, rules := range cases {
		if _, err := svc.ConfigureFirewall(context.Background(), "some-uuid", rules); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("rules %v: expected ErrValidation, got %v", rules, err)
		}
	}
	if len(fake.firewallCalls) != 0 {
		t.Errorf("provider was called, want no calls")
	}

	valid := []domain.FirewallRule{{Direction: "in", Action: "accept", Protocol: "tcp"}}
	applied, err := svc.ConfigureFirewall(context.Background(), "some-uuid", valid)
	if err != nil {
		t.Fatalf("ConfigureFirewall: %v", err)
	}
	if len(applied) != 1 {
		t.Errorf("got %d rules back, want 1", len(applied))
	}
}
