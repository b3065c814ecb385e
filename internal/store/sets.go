package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/roach88/animset/internal/animation"
	"github.com/roach88/animset/internal/animset"
	"github.com/roach88/animset/internal/llsd"
)

// Save stores the current state of set for avatarID.
//
// Returns changed=false without writing when the stored digest already
// matches. Otherwise the row is upserted and a history entry appended in
// the same transaction.
func (s *Store) Save(ctx context.Context, avatarID uuid.UUID, set *animset.Set) (changed bool, err error) {
	return s.SaveArray(ctx, avatarID, set.ToSerializableArray())
}

// SaveArray is Save for an already serialized set.
func (s *Store) SaveArray(ctx context.Context, avatarID uuid.UUID, arr llsd.Array) (changed bool, err error) {
	payload, encoding, digest, err := s.encodePayload(arr)
	if err != nil {
		return false, fmt.Errorf("save animation set: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("save animation set: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	var current string
	err = tx.QueryRowContext(ctx,
		`SELECT digest FROM animation_sets WHERE avatar_id = ?`,
		avatarID.String(),
	).Scan(&current)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return false, fmt.Errorf("save animation set: select digest: %w", err)
	case current == digest:
		return false, nil
	}

	seq, err := nextSeqTx(ctx, tx)
	if err != nil {
		return false, fmt.Errorf("save animation set: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO animation_sets (avatar_id, payload, encoding, digest, updated_seq)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(avatar_id) DO UPDATE SET
			payload = excluded.payload,
			encoding = excluded.encoding,
			digest = excluded.digest,
			updated_seq = excluded.updated_seq
	`, avatarID.String(), payload, encoding, digest, seq)
	if err != nil {
		return false, fmt.Errorf("save animation set: upsert: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO animation_set_history (seq, avatar_id, payload, encoding, digest, deleted)
		VALUES (?, ?, ?, ?, ?, 0)
	`, seq, avatarID.String(), payload, encoding, digest)
	if err != nil {
		return false, fmt.Errorf("save animation set: history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("save animation set: commit: %w", err)
	}
	return true, nil
}

// LoadArray returns the stored serialized set for avatarID.
// Returns ErrNotFound if none is stored.
func (s *Store) LoadArray(ctx context.Context, avatarID uuid.UUID) (llsd.Array, error) {
	var payload []byte
	var encoding string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload, encoding FROM animation_sets WHERE avatar_id = ?`,
		avatarID.String(),
	).Scan(&payload, &encoding)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("load %s: %w", avatarID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", avatarID, err)
	}

	arr, err := decodePayload(payload, encoding)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", avatarID, err)
	}
	return arr, nil
}

// Load rebuilds the stored set for avatarID, resolving names through dir
// (nil selects animation.DefaultDirectory).
func (s *Store) Load(ctx context.Context, avatarID uuid.UUID, dir *animation.Directory) (*animset.Set, error) {
	arr, err := s.LoadArray(ctx, avatarID)
	if err != nil {
		return nil, err
	}
	set, err := animset.NewFromSerializableArray(arr, dir)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", avatarID, err)
	}
	return set, nil
}

// Delete removes the stored set for avatarID and records a tombstone in
// history. Returns ErrNotFound if none is stored.
func (s *Store) Delete(ctx context.Context, avatarID uuid.UUID) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("delete animation set: begin tx: %w", err)
	}
	defer tx.Rollback()

	var digest string
	err = tx.QueryRowContext(ctx,
		`SELECT digest FROM animation_sets WHERE avatar_id = ?`,
		avatarID.String(),
	).Scan(&digest)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("delete %s: %w", avatarID, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("delete animation set: select: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM animation_sets WHERE avatar_id = ?`, avatarID.String()); err != nil {
		return fmt.Errorf("delete animation set: %w", err)
	}

	seq, err := nextSeqTx(ctx, tx)
	if err != nil {
		return fmt.Errorf("delete animation set: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO animation_set_history (seq, avatar_id, payload, encoding, digest, deleted)
		VALUES (?, ?, NULL, NULL, ?, 1)
	`, seq, avatarID.String(), digest)
	if err != nil {
		return fmt.Errorf("delete animation set: history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("delete animation set: commit: %w", err)
	}
	return nil
}

// List returns the ids of all avatars with a stored set, ordered by id.
// Returns an empty slice (not nil) when the store is empty.
func (s *Store) List(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT avatar_id FROM animation_sets
		ORDER BY avatar_id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query animation sets: %w", err)
	}
	defer rows.Close()

	ids := []uuid.UUID{}
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan avatar id: %w", err)
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("parse avatar id %q: %w", raw, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate animation sets: %w", err)
	}
	return ids, nil
}
