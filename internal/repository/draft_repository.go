package repository // repository holds data access logic for domain entities

import (
	"context"      // context is used to manage deadlines and cancellation
	"database/sql" // sql provides DB primitives
)

// DraftRow represents a persisted draft event session. The Payload column
// holds the merged draft record as JSON; the gateway treats it as an opaque
// blob and only the draft package decodes it. UserID scopes every access so
// one partner can never read or delete another partner's draft.
type DraftRow struct {
	ID        string // ID is the draft's UUID, generated by the gateway
	UserID    string // UserID references the owning partner's upstream user id
	Payload   []byte // Payload is the merged draft encoded as JSON
	CreatedAt string // CreatedAt stores when the row was created
	UpdatedAt string // UpdatedAt stores when the payload was last written
}

// DraftRepo encapsulates all database queries related to draft sessions. It
// depends on a sql.DB connection which should be configured elsewhere.
type DraftRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewDraftRepo constructs a DraftRepo with the provided DB handle. This
// allows dependency injection of the database in tests and at startup.
func NewDraftRepo(db *sql.DB) *DraftRepo {
	return &DraftRepo{db: db}
}

// Create inserts a new draft row with its initial (usually empty) payload.
func (r *DraftRepo) Create(ctx context.Context, id, userID string, payload []byte) error {
	const q = "INSERT INTO drafts (id, user_id, payload) VALUES (?, ?, ?)"
	_, err := r.db.ExecContext(ctx, q, id, userID, payload)
	return err
}

// GetByIDAndOwner returns the payload of a draft if and only if it belongs
// to userID. A missing row yields ErrDraftNotFound; a row owned by another
// user yields ErrForbidden so handlers can answer 403 instead of 404.
func (r *DraftRepo) GetByIDAndOwner(ctx context.Context, id, userID string) ([]byte, error) {
	const q = "SELECT user_id, payload FROM drafts WHERE id = ?"
	var owner string
	var payload []byte
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&owner, &payload); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrDraftNotFound
		}
		return nil, err // propagate DB errors to the caller
	}
	if owner != userID {
		return nil, ErrForbidden
	}
	return payload, nil
}

// SavePayload overwrites the draft's payload. The write-behind calls this on
// every settled edit burst, so it touches nothing but the blob and the
// updated_at timestamp.
func (r *DraftRepo) SavePayload(ctx context.Context, id string, payload []byte) error {
	const q = "UPDATE drafts SET payload = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	res, err := r.db.ExecContext(ctx, q, payload, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// The row may have been discarded between the edit and the flush;
		// report it so the caller can drop the stale session.
		return ErrDraftNotFound
	}
	return nil
}

// Delete removes the draft row, enforcing ownership in the same statement.
// A zero row count is disambiguated with a follow-up existence check so the
// caller can tell "already gone" from "not yours".
func (r *DraftRepo) Delete(ctx context.Context, id, userID string) error {
	const q = "DELETE FROM drafts WHERE id = ? AND user_id = ?"
	res, err := r.db.ExecContext(ctx, q, id, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		const qExists = "SELECT COUNT(*) FROM drafts WHERE id = ?"
		var cnt int
		if err := r.db.QueryRowContext(ctx, qExists, id).Scan(&cnt); err != nil {
			return err
		}
		if cnt > 0 {
			return ErrForbidden
		}
		return ErrDraftNotFound
	}
	return nil
}

// ListByOwner returns the partner's draft rows without payloads, newest
// first. The dashboard uses it to offer "continue editing" entries.
func (r *DraftRepo) ListByOwner(ctx context.Context, userID string) ([]DraftRow, error) {
	const q = "SELECT id, user_id, created_at, updated_at FROM drafts WHERE user_id = ? ORDER BY updated_at DESC"
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DraftRow
	for rows.Next() {
		var d DraftRow
		if err := rows.Scan(&d.ID, &d.UserID, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
