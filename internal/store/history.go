package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/roach88/animset/internal/llsd"
)

// HistoryEntry is one change to an avatar's stored set.
type HistoryEntry struct {
	Seq     int64
	Digest  string
	Deleted bool
	Set     llsd.Array // nil for deletions
}

// History returns every recorded change for avatarID in seq order.
// Returns an empty slice (not nil) if the avatar has no history.
func (s *Store) History(ctx context.Context, avatarID uuid.UUID) ([]HistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, payload, encoding, digest, deleted
		FROM animation_set_history
		WHERE avatar_id = ?
		ORDER BY seq ASC
	`, avatarID.String())
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	entries := []HistoryEntry{}
	for rows.Next() {
		var (
			e        HistoryEntry
			payload  []byte
			encoding *string
		)
		if err := rows.Scan(&e.Seq, &payload, &encoding, &e.Digest, &e.Deleted); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		if !e.Deleted && encoding != nil {
			if e.Set, err = decodePayload(payload, *encoding); err != nil {
				return nil, fmt.Errorf("history seq %d: %w", e.Seq, err)
			}
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return entries, nil
}
