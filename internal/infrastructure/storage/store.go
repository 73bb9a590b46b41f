// Package storage defines the persistent key-value store that holds every
// visitor's storefront state, plus helpers shared by all backends.
package storage

import (
	"context"
	"errors"
)

// Keys under which each entity is persisted. Values are JSON documents.
const (
	KeyCart            = "cart"
	KeyWishlist        = "wishlist"
	KeyUserProfile     = "userProfile"
	KeyUserAddresses   = "userAddresses"
	KeyUserWallet      = "userWallet"
	KeyUserOrders      = "userOrders"
	KeyContactMessages = "contactMessages"
)

// ErrClosed is returned by stores used after Close.
var ErrClosed = errors.New("store is closed")

// Store is a namespaced key-value store. The namespace is a visitor session ID.
// Set overwrites a value wholesale; SetMany writes all entries or none.
type Store interface {
	Get(ctx context.Context, namespace, key string) ([]byte, bool, error)
	Set(ctx context.Context, namespace, key string, value []byte) error
	SetMany(ctx context.Context, namespace string, values map[string][]byte) error
	Health(ctx context.Context) error
	Close() error
}
