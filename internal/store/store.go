// Package store provides the gateway's keyed byte store: one shared bag for
// session records, banner bytes, the logo preview cache and draft recovery
// snapshots, behind an explicit interface with a Redis implementation for
// deployment and an in-memory one for tests and Redis-less development.
// Semantics are last-write-wins: there is no transaction protocol between
// writers.
package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a key is absent or expired.
var ErrNotFound = errors.New("key not found")

// KeyedStore is a minimal get/set/remove byte store with per-key TTL.
type KeyedStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Remove(ctx context.Context, key string) error
}

// Key builders.  Each independent concern gets its own prefix so the
// uncoordinated writers at least never collide on keys.
func SessionKey(hash string) string       { return "session:" + hash }
func BannerKey(draftID string) string     { return "draft:banner:" + draftID }
func LogoPreviewKey(userID string) string { return "logo:preview:" + userID }
func RecoveryKey(userID string) string    { return "recovery:" + userID }
