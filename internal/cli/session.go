package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/roach88/animset/internal/animation"
	"github.com/roach88/animset/internal/animset"
	"github.com/roach88/animset/internal/store"
)

// errNotPlaying is returned when removing an animation the set does not hold.
var errNotPlaying = errors.New("animation not playing")

// argumentError reports a command-line argument that could not be parsed.
type argumentError struct {
	Arg string
	Err error
}

func (e *argumentError) Error() string {
	return fmt.Sprintf("invalid argument %q: %v", e.Arg, e.Err)
}

func (e *argumentError) Unwrap() error {
	return e.Err
}

// loadDirectory returns the built-in directory, overlaid with --catalog
// when given.
func loadDirectory(path string) (*animation.Directory, error) {
	base := animation.DefaultDirectory()
	if path == "" {
		return base, nil
	}

	var extra *animation.Directory
	var err error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".cue":
		extra, err = animation.LoadDirectoryCUE(path)
	case ".yaml", ".yml":
		var f *os.File
		if f, err = os.Open(path); err != nil {
			return nil, fmt.Errorf("open catalog: %w", err)
		}
		defer f.Close()
		extra, err = animation.LoadDirectoryYAML(f)
	default:
		return nil, &argumentError{Arg: path, Err: fmt.Errorf("unsupported catalog extension %q", ext)}
	}
	if err != nil {
		return nil, err
	}
	return base.Merge(extra), nil
}

// parseAvatar parses an avatar UUID argument.
func parseAvatar(arg string) (uuid.UUID, error) {
	id, err := uuid.Parse(arg)
	if err != nil {
		return uuid.Nil, &argumentError{Arg: arg, Err: err}
	}
	return id, nil
}

// resolveAnimation maps a catalog name (case-insensitive) or a UUID to an
// animation id.
func resolveAnimation(dir *animation.Directory, arg string) (uuid.UUID, error) {
	if id, ok := dir.Lookup(arg); ok {
		return id, nil
	}
	if id, ok := dir.Lookup(strings.ToUpper(arg)); ok {
		return id, nil
	}
	id, err := uuid.Parse(arg)
	if err != nil {
		return uuid.Nil, &argumentError{Arg: arg, Err: errors.New("not a catalog name or UUID")}
	}
	return id, nil
}

// parseObject parses an optional --object flag.
func parseObject(arg string) (uuid.UUID, error) {
	if arg == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(arg)
	if err != nil {
		return uuid.Nil, &argumentError{Arg: arg, Err: err}
	}
	return id, nil
}

// session bundles what most commands need: the directory and an open store.
type session struct {
	opts  *RootOptions
	out   *OutputFormatter
	dir   *animation.Directory
	store *store.Store
}

// openSession loads the directory and opens the store.
// The caller must Close the session.
func openSession(opts *RootOptions, out *OutputFormatter) (*session, error) {
	dir, err := loadDirectory(opts.Catalog)
	if err != nil {
		return nil, out.Fail(ExitCommandError, "failed to load catalog", err)
	}

	st, err := store.Open(opts.Database, store.WithCompression(opts.Compress))
	if err != nil {
		return nil, out.Fail(ExitCommandError, "failed to open database", err)
	}
	return &session{opts: opts, out: out, dir: dir, store: st}, nil
}

func (s *session) Close() error {
	return s.store.Close()
}

// loadSet returns the stored set for avatar, or a fresh STAND set when
// none is stored and create is true.
func (s *session) loadSet(ctx context.Context, avatar uuid.UUID, create bool) (*animset.Set, error) {
	set, err := s.store.Load(ctx, avatar, s.dir)
	if errors.Is(err, store.ErrNotFound) && create {
		return animset.NewWithDirectory(s.dir), nil
	}
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, s.out.Fail(ExitFailure, "no animation set stored", err)
		}
		return nil, s.out.Fail(ExitFailure, "failed to load animation set", err)
	}
	return set, nil
}
