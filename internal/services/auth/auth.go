package auth

import (
	"errors"

	"upmgr/internal/util"
)

const ServiceName = "upmgr"

var ErrTokenNotFound = errors.New("auth token not found")

type Store interface {
	SetToken(key string, token string) error
	GetToken(key string) (string, error)
	DeleteToken(key string) error
}

// DefaultStore returns the standard auth store backed by the OS keychain.
func DefaultStore() Store {
	return NewKeyringStore(ServiceName)
}

// NormalizeKey normalizes a credential key for consistent lookup.
func NormalizeKey(key string) string {
	return util.NormalizeKey(key)
}
