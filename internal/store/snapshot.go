package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/volunteerin/partner-gateway/internal/model"
)

// SnapshotTTL bounds how long a recovery draft is kept.  A week covers the
// "come back tomorrow and retry" case without the store accumulating
// abandoned drafts forever.
const SnapshotTTL = 7 * 24 * time.Hour

// SaveSnapshot writes the best-effort recovery snapshot for a user.  The
// snapshot carries banner metadata only; the image bytes are deliberately
// not serialized (they stay under their own banner key until it expires).
func SaveSnapshot(ctx context.Context, s KeyedStore, userID string, snap model.DraftSnapshot) error {
	bs, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return s.Set(ctx, RecoveryKey(userID), bs, SnapshotTTL)
}

// LoadSnapshot returns the user's recovery snapshot, if any.
func LoadSnapshot(ctx context.Context, s KeyedStore, userID string) (model.DraftSnapshot, error) {
	bs, err := s.Get(ctx, RecoveryKey(userID))
	if err != nil {
		return model.DraftSnapshot{}, err
	}
	var snap model.DraftSnapshot
	if err := json.Unmarshal(bs, &snap); err != nil {
		return model.DraftSnapshot{}, err
	}
	return snap, nil
}

// ClearSnapshot removes the user's recovery snapshot.
func ClearSnapshot(ctx context.Context, s KeyedStore, userID string) error {
	return s.Remove(ctx, RecoveryKey(userID))
}
