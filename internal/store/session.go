package store

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// SessionRecord wraps the upstream bearer token behind a gateway session.
// The browser only ever holds the opaque session id; the upstream token
// stays server-side so an XSS'd page cannot exfiltrate it.  AccessToken is
// replaced in place when the submission pipeline refreshes an expired token.
type SessionRecord struct {
	UserID      string    `json:"userId"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	AccessToken string    `json:"accessToken"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewSessionID returns a cryptographically random session id (96 hex chars).
func NewSessionID() (string, error) {
	buf := make([]byte, 48)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// HashSessionID returns the SHA-256 hex digest of a raw session id.  Only
// the hash is used as a store key, so a leaked store dump cannot be replayed
// as live sessions.
func HashSessionID(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// SaveSession writes a session record under the hashed id with the given TTL.
func SaveSession(ctx context.Context, s KeyedStore, rawID string, rec SessionRecord, ttl time.Duration) error {
	bs, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.Set(ctx, SessionKey(HashSessionID(rawID)), bs, ttl)
}

// LoadSession resolves a raw session id to its record.  ErrNotFound means
// the session is absent, expired or revoked.
func LoadSession(ctx context.Context, s KeyedStore, rawID string) (SessionRecord, error) {
	bs, err := s.Get(ctx, SessionKey(HashSessionID(rawID)))
	if err != nil {
		return SessionRecord{}, err
	}
	var rec SessionRecord
	if err := json.Unmarshal(bs, &rec); err != nil {
		return SessionRecord{}, err
	}
	return rec, nil
}

// DeleteSession revokes a session.
func DeleteSession(ctx context.Context, s KeyedStore, rawID string) error {
	return s.Remove(ctx, SessionKey(HashSessionID(rawID)))
}
