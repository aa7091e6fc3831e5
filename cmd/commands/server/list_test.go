package server

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"upmgr/internal/config"
	"upmgr/internal/server/domain"
	"upmgr/internal/server/providers"
	"upmgr/internal/services/auth"
)

// mockProvider implements domain.Provider for CLI testing.
type mockProvider struct {
	servers   []domain.Server
	listErr   error
	deleted   []string
	getCalled int
}

func (m *mockProvider) GetDisplayName() string { return "Mock" }
func (m *mockProvider) ListServers(_ context.Context) ([]domain.Server, error) {
	return m.servers, m.listErr
}
func (m *mockProvider) GetServer(_ context.Context, uuid string) (*domain.Server, error) {
	m.getCalled++
	for _, s := range m.servers {
		if s.UUID == uuid {
			full := s
			return &full, nil
		}
	}
	return nil, fmt.Errorf("get server: %w", domain.ErrNotFound)
}
func (m *mockProvider) GetServerData(_ context.Context, uuid string) (*domain.ServerDetails, error) {
	return nil, fmt.Errorf("not implemented")
}
func (m *mockProvider) CreateServer(_ context.Context, s *domain.Server) error {
	return fmt.Errorf("not implemented")
}
func (m *mockProvider) ModifyServer(_ context.Context, uuid string, opts domain.ModifyServerOpts) (*domain.Server, error) {
	return nil, fmt.Errorf("not implemented")
}
func (m *mockProvider) DeleteServer(_ context.Context, uuid string) error {
	m.deleted = append(m.deleted, uuid)
	return nil
}
func (m *mockProvider) ConfigureFirewall(_ context.Context, uuid string, rules []domain.FirewallRule) ([]domain.FirewallRule, error) {
	return nil, fmt.Errorf("not implemented")
}

// registerMockProvider resets the global registry and registers a mock provider factory.
func registerMockProvider(t *testing.T, name string, mock *mockProvider) {
	t.Helper()
	providers.Reset()
	t.Cleanup(providers.Reset)
	providers.Register(name, func(store auth.Store) (domain.Provider, error) {
		return mock, nil
	})

	// Keep the resolveProvider pre-run away from any real user config.
	config.SetPath(t.TempDir() + "/config.json")
	t.Cleanup(config.ResetPath)
}

// execServer creates the server command, wires up output buffers, runs the
// given args, and returns what was written to stdout and stderr.
func execServer(t *testing.T, args ...string) (stdout, stderr string) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	cmd := NewCommand()
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	cmd.Execute()
	return outBuf.String(), errBuf.String()
}

// assertContainsAll verifies that output contains every expected substring.
func assertContainsAll(t *testing.T, output string, label string, expected []string) {
	t.Helper()
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in %s output:\n%s", want, label, output)
		}
	}
}

func TestListCommand_DisplaysServers(t *testing.T) {
	mock := &mockProvider{
		servers: []domain.Server{
			{UUID: "uuid-1", Hostname: "web-server", Zone: "uk-lon1", State: "started", CoreNumber: 2, MemoryAmount: 2048},
			{UUID: "uuid-2", Hostname: "db-server", Zone: "fi-hel1", State: "stopped", CoreNumber: 4, MemoryAmount: 4096},
		},
	}

	registerMockProvider(t, "mock", mock)

	stdout, _ := execServer(t, "list", "--provider", "mock")

	// Verify table headers and both server rows in one pass.
	assertContainsAll(t, stdout, "stdout", []string{
		// Headers
		"UUID", "HOSTNAME", "ZONE", "STATE",
		// First server
		"uuid-1", "web-server", "uk-lon1", "started", "2 GB",
		// Second server
		"uuid-2", "db-server", "fi-hel1", "stopped", "4 GB",
	})

	// Verify both rows appear on separate lines (header + separator + 2 data rows = 4).
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 4 {
		t.Errorf("expected 4 lines (header + separator + 2 rows), got %d:\n%s", len(lines), stdout)
	}

	if mock.getCalled != 0 {
		t.Errorf("list without --populate made %d get calls, want 0", mock.getCalled)
	}
}

func TestListCommand_PopulateFetchesEachServer(t *testing.T) {
	mock := &mockProvider{
		servers: []domain.Server{
			{UUID: "uuid-1", Hostname: "web-server", Zone: "uk-lon1"},
			{UUID: "uuid-2", Hostname: "db-server", Zone: "fi-hel1"},
		},
	}

	registerMockProvider(t, "mock", mock)

	execServer(t, "list", "--provider", "mock", "--populate")

	if mock.getCalled != 2 {
		t.Errorf("list --populate made %d get calls, want 2", mock.getCalled)
	}
}

func TestListCommand_JSONOutput(t *testing.T) {
	mock := &mockProvider{
		servers: []domain.Server{
			{UUID: "uuid-1", Hostname: "web-server", Zone: "uk-lon1", State: "started"},
		},
	}

	registerMockProvider(t, "mock", mock)

	stdout, _ := execServer(t, "list", "--provider", "mock", "-o", "json")

	assertContainsAll(t, stdout, "stdout", []string{
		`"uuid": "uuid-1"`,
		`"hostname": "web-server"`,
		`"zone": "uk-lon1"`,
	})
}

func TestListCommand_EmptyList(t *testing.T) {
	mock := &mockProvider{servers: []domain.Server{}}

	registerMockProvider(t, "mock", mock)

	stdout, _ := execServer(t, "list", "--provider", "mock")

	if !strings.Contains(stdout, "No servers found") {
		t.Errorf("expected 'No servers found' message, got:\n%s", stdout)
	}
}

func TestListCommand_ProviderListError(t *testing.T) {
	mock := &mockProvider{listErr: fmt.Errorf("api connection failed")}

	registerMockProvider(t, "mock", mock)

	_, stderr := execServer(t, "list", "--provider", "mock")

	if !strings.Contains(stderr, "api connection failed") {
		t.Errorf("expected error 'api connection failed' on stderr, got:\n%s", stderr)
	}
}

func TestListCommand_UnknownProvider(t *testing.T) {
	registerMockProvider(t, "mock", &mockProvider{})

	_, stderr := execServer(t, "list", "--provider", "nonexistent")

	if !strings.Contains(stderr, "unknown provider") {
		t.Errorf("expected 'unknown provider' error on stderr, got:\n%s", stderr)
	}
}

func TestDeleteCommand_ForceSkipsConfirmation(t *testing.T) {
	mock := &mockProvider{}

	registerMockProvider(t, "mock", mock)

	stdout, _ := execServer(t, "delete", "--provider", "mock", "--uuid", "uuid-1", "--force")

	if len(mock.deleted) != 1 || mock.deleted[0] != "uuid-1" {
		t.Errorf("deleted = %v, want [uuid-1]", mock.deleted)
	}
	assertContainsAll(t, stdout, "stdout", []string{
		"deleted",
		"storage disks were not deleted",
	})
}
