package cli

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/roach88/animset/internal/animation"
	"github.com/roach88/animset/internal/animset"
	"github.com/roach88/animset/internal/store"
)

// RecordView is the JSON form of one animation record.
type RecordView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name,omitempty"`
	SequenceNum int32     `json:"seq_num"`
	ObjectID    uuid.UUID `json:"object_id"`
}

func newRecordView(dir *animation.Directory, r animation.Record) RecordView {
	name, _ := dir.Name(r.ID)
	return RecordView{ID: r.ID, Name: name, SequenceNum: r.SequenceNum, ObjectID: r.ObjectID}
}

// SetView is the JSON form of an animation set.
type SetView struct {
	AvatarID        uuid.UUID    `json:"avatar_id"`
	Default         RecordView   `json:"default"`
	ImplicitDefault RecordView   `json:"implicit_default"`
	Animations      []RecordView `json:"animations"`
	Display         string       `json:"display"`
}

func newSetView(avatar uuid.UUID, set *animset.Set) SetView {
	dir := set.Directory()
	anims := set.ToArray()
	v := SetView{
		AvatarID:        avatar,
		Default:         newRecordView(dir, set.DefaultAnimation()),
		ImplicitDefault: newRecordView(dir, set.ImplicitDefaultAnimation()),
		Animations:      make([]RecordView, 0, len(anims)),
		Display:         set.String(),
	}
	for _, r := range anims {
		v.Animations = append(v.Animations, newRecordView(dir, r))
	}
	return v
}

// String renders the view for text output.
func (v SetView) String() string {
	return v.Display
}

// MutationResult reports the outcome of a command that edits a set.
type MutationResult struct {
	AvatarID uuid.UUID `json:"avatar_id"`
	Applied  bool      `json:"applied"` // the set accepted the change
	Saved    bool      `json:"saved"`   // the stored set changed
	Set      SetView   `json:"set"`
}

func (m MutationResult) String() string {
	status := "unchanged"
	if m.Saved {
		status = "saved"
	}
	return fmt.Sprintf("%s %s: %s", m.AvatarID, status, m.Set.Display)
}

// CatalogEntry is one named animation.
type CatalogEntry struct {
	Name string    `json:"name"`
	ID   uuid.UUID `json:"id"`
}

// CatalogView lists a directory in name order.
type CatalogView []CatalogEntry

func newCatalogView(dir *animation.Directory) CatalogView {
	names := dir.Names()
	out := make(CatalogView, 0, len(names))
	for _, name := range names {
		id, _ := dir.Lookup(name)
		out = append(out, CatalogEntry{Name: name, ID: id})
	}
	return out
}

func (c CatalogView) String() string {
	var b strings.Builder
	for i, e := range c {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%-28s %s", e.Name, e.ID)
	}
	return b.String()
}

// HistoryItem is one change in an avatar's history.
type HistoryItem struct {
	Seq     int64  `json:"seq"`
	Digest  string `json:"digest"`
	Deleted bool   `json:"deleted"`
	Display string `json:"display,omitempty"`
}

// HistoryView lists changes in seq order.
type HistoryView []HistoryItem

func newHistoryView(entries []store.HistoryEntry, dir *animation.Directory) (HistoryView, error) {
	out := make(HistoryView, 0, len(entries))
	for _, e := range entries {
		item := HistoryItem{Seq: e.Seq, Digest: e.Digest, Deleted: e.Deleted}
		if !e.Deleted {
			set, err := animset.NewFromSerializableArray(e.Set, dir)
			if err != nil {
				return nil, fmt.Errorf("history seq %d: %w", e.Seq, err)
			}
			item.Display = set.String()
		}
		out = append(out, item)
	}
	return out, nil
}

func (h HistoryView) String() string {
	if len(h) == 0 {
		return "no history"
	}
	var b strings.Builder
	for i, e := range h {
		if i > 0 {
			b.WriteByte('\n')
		}
		if e.Deleted {
			fmt.Fprintf(&b, "%6d  deleted", e.Seq)
			continue
		}
		fmt.Fprintf(&b, "%6d  %s", e.Seq, e.Display)
	}
	return b.String()
}

// AvatarList is the output of the list command.
type AvatarList []uuid.UUID

func (l AvatarList) String() string {
	if len(l) == 0 {
		return "no avatars"
	}
	parts := make([]string, len(l))
	for i, id := range l {
		parts[i] = id.String()
	}
	return strings.Join(parts, "\n")
}
