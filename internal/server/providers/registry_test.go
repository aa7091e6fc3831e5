package providers

import (
	"testing"

	"upmgr/internal/server/domain"
	"upmgr/internal/services/auth"
)

func resetRegistry(t *testing.T) {
	t.Helper()
	Reset()
	t.Cleanup(Reset)
}

func TestRegisterAndGet(t *testing.T) {
	resetRegistry(t)

	Register("UpCloud", func(store auth.Store) (domain.Provider, error) {
		return NewUpCloudProvider("u", "p"), nil
	})

	// Lookup is case-insensitive via key normalization.
	provider, err := Get("  upcloud ", auth.NewMockStore())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if provider.GetDisplayName() != "UpCloud" {
		t.Errorf("GetDisplayName = %q, want UpCloud", provider.GetDisplayName())
	}

	names := List()
	if len(names) != 1 || names[0] != "upcloud" {
		t.Errorf("List = %v, want [upcloud]", names)
	}
}

func TestGet_UnknownProvider(t *testing.T) {
	resetRegistry(t)

	if _, err := Get("nonexistent", auth.NewMockStore()); err == nil {
		t.Fatal("expected error for unknown provider, got nil")
	}
}

func TestRegister_DuplicatePanics(t *testing.T) {
	resetRegistry(t)

	factory := func(store auth.Store) (domain.Provider, error) {
		return NewUpCloudProvider("u", "p"), nil
	}
	Register("upcloud", factory)

	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	Register("upcloud", factory)
}

func TestRegisterUpCloud_RequiresCredentials(t *testing.T) {
	resetRegistry(t)
	RegisterUpCloud()

	// No credentials stored: factory must fail.
	if _, err := Get("upcloud", auth.NewMockStore()); err == nil {
		t.Fatal("expected error when credentials are missing, got nil")
	}

	store := auth.NewMockStore()
	store.SetToken(UpCloudUsernameStore, "user")
	store.SetToken(UpCloudPasswordStore, "pass")

	provider, err := Get("upcloud", store)
	if err != nil {
		t.Fatalf("Get with stored credentials: %v", err)
	}
	if provider.GetDisplayName() != "UpCloud" {
		t.Errorf("GetDisplayName = %q, want UpCloud", provider.GetDisplayName())
	}
}
