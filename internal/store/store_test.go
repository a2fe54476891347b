package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/volunteerin/partner-gateway/internal/model"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	_, err := m.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.Set(ctx, "k", []byte("v1"), 0))
	bs, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), bs)

	// Last write wins.
	require.NoError(t, m.Set(ctx, "k", []byte("v2"), 0))
	bs, _ = m.Get(ctx, "k")
	assert.Equal(t, []byte("v2"), bs)

	require.NoError(t, m.Remove(ctx, "k"))
	_, err = m.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	require.NoError(t, m.Set(ctx, "k", []byte("v"), 10*time.Millisecond))
	time.Sleep(30 * time.Millisecond)
	_, err := m.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	id, err := NewSessionID()
	require.NoError(t, err)
	assert.Len(t, id, 96)

	rec := SessionRecord{UserID: "u-1", Email: "partner@example.org", Role: "PARTNER", AccessToken: "tok"}
	require.NoError(t, SaveSession(ctx, m, id, rec, time.Minute))

	got, err := LoadSession(ctx, m, id)
	require.NoError(t, err)
	assert.Equal(t, rec.UserID, got.UserID)
	assert.Equal(t, rec.AccessToken, got.AccessToken)

	// The raw id never appears as a key; only its hash does.
	_, err = m.Get(ctx, SessionKey(id))
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = m.Get(ctx, SessionKey(HashSessionID(id)))
	assert.NoError(t, err)

	require.NoError(t, DeleteSession(ctx, m, id))
	_, err = LoadSession(ctx, m, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSnapshotKeepsBannerMetadataOnly(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	snap := model.DraftSnapshot{
		DraftID: "d-1",
		Draft: model.DraftEvent{
			Title:  "Clean Beach",
			Banner: &model.BannerMeta{FileName: "banner.jpg", Size: 120_000, Mime: "image/jpeg"},
		},
		Reason:  "upstream unavailable",
		SavedAt: time.Now().UTC(),
	}
	require.NoError(t, SaveSnapshot(ctx, m, "u-1", snap))

	got, err := LoadSnapshot(ctx, m, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "Clean Beach", got.Draft.Title)
	require.NotNil(t, got.Draft.Banner)
	assert.Equal(t, "banner.jpg", got.Draft.Banner.FileName)

	require.NoError(t, ClearSnapshot(ctx, m, "u-1"))
	_, err = LoadSnapshot(ctx, m, "u-1")
	assert.ErrorIs(t, err, ErrNotFound)
}
