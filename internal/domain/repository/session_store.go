// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers
// and the infrastructure layer.
package repository

import (
	"context"

	"github.com/pkg/errors"
)

// ErrKeyNotFound is returned when a session key has no persisted value.
// Callers treat it as an empty slot, never as a failure.
var ErrKeyNotFound = errors.New("session key not found")

// SessionStore is the persisted per-browser key/value namespace holding the
// auth token, the cached profile, display preferences and the per-identity
// cart snapshots. Implementations must be safe for concurrent use; writers
// for the same key are last-write-wins with no cross-client locking.
type SessionStore interface {
	// Get returns the value stored under key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key string, value string) error

	// Delete removes key from the store. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// Fixed slots in the session namespace.
const (
	// KeyToken holds the bearer credential string.
	KeyToken = "token"
	// KeyProfile holds the last-known serialized identity, cached ahead of server truth.
	KeyProfile = "user"
	// KeyDarkMode holds the display theme preference.
	KeyDarkMode = "darkMode"
	// KeyHasSeenWelcome gates the one-time welcome overlay.
	KeyHasSeenWelcome = "hasSeenWelcome"
)

// CartKey returns the per-identity slot for the cart snapshot. Namespacing
// by identity ID is what keeps one identity's cart invisible to another.
func CartKey(identityID string) string {
	return "cart_" + identityID
}

// DiscountKey returns the per-identity slot for the applied discount percentage.
func DiscountKey(identityID string) string {
	return "discount_" + identityID
}
