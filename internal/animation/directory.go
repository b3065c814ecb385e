package animation

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"slices"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// StandName is the directory name of the built-in default pose.
const StandName = "STAND"

//go:embed catalog.yaml
var builtinCatalog []byte

//go:embed catalog.cue
var catalogSchema string

// Directory is an immutable name→id lookup of well-known animations.
// Safe for concurrent use; it is never mutated after construction.
type Directory struct {
	byName map[string]uuid.UUID
	byID   map[uuid.UUID]string
}

// NewDirectory builds a Directory from a name→id map.
// The map is copied.
func NewDirectory(entries map[string]uuid.UUID) *Directory {
	d := &Directory{
		byName: make(map[string]uuid.UUID, len(entries)),
		byID:   make(map[uuid.UUID]string, len(entries)),
	}
	for name, id := range entries {
		d.byName[name] = id
		d.byID[id] = name
	}
	return d
}

// Lookup resolves a name to its animation id.
func (d *Directory) Lookup(name string) (uuid.UUID, bool) {
	id, ok := d.byName[name]
	return id, ok
}

// Name returns the directory name for an id.
func (d *Directory) Name(id uuid.UUID) (string, bool) {
	name, ok := d.byID[id]
	return name, ok
}

// Names returns all names in sorted order.
func (d *Directory) Names() []string {
	names := make([]string, 0, len(d.byName))
	for name := range d.byName {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Len returns the number of entries.
func (d *Directory) Len() int {
	return len(d.byName)
}

// Merge returns a new Directory holding d's entries overlaid with other's.
// Entries in other win on name conflicts.
func (d *Directory) Merge(other *Directory) *Directory {
	entries := make(map[string]uuid.UUID, len(d.byName)+len(other.byName))
	for name, id := range d.byName {
		entries[name] = id
	}
	for name, id := range other.byName {
		entries[name] = id
	}
	return NewDirectory(entries)
}

var (
	defaultOnce sync.Once
	defaultDir  *Directory
)

// DefaultDirectory returns the process-wide directory built from the
// embedded catalog. Panics if the embedded catalog is invalid.
func DefaultDirectory() *Directory {
	defaultOnce.Do(func() {
		d, err := LoadDirectoryYAML(bytes.NewReader(builtinCatalog))
		if err != nil {
			panic(fmt.Sprintf("animation: embedded catalog: %v", err))
		}
		if _, ok := d.Lookup(StandName); !ok {
			panic("animation: embedded catalog has no " + StandName)
		}
		defaultDir = d
	})
	return defaultDir
}

// catalogFile is the YAML shape of a catalog.
type catalogFile struct {
	Animations []catalogEntry `yaml:"animations"`
}

type catalogEntry struct {
	Name string `yaml:"name"`
	ID   string `yaml:"id"`
}

// LoadDirectoryYAML reads a YAML catalog.
// Names must be non-empty and unique; ids must be valid, non-nil UUIDs.
func LoadDirectoryYAML(r io.Reader) (*Directory, error) {
	var cf catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cf); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	entries := make(map[string]uuid.UUID, len(cf.Animations))
	for i, e := range cf.Animations {
		if e.Name == "" {
			return nil, fmt.Errorf("catalog entry %d: name is required", i)
		}
		if _, dup := entries[e.Name]; dup {
			return nil, fmt.Errorf("catalog entry %d: duplicate name %q", i, e.Name)
		}
		id, err := parseCatalogID(e.ID)
		if err != nil {
			return nil, fmt.Errorf("catalog entry %d (%s): %w", i, e.Name, err)
		}
		entries[e.Name] = id
	}
	return NewDirectory(entries), nil
}

// LoadDirectoryCUE reads a CUE catalog of the form
//
//	animations: {
//		STAND: "2408fe9e-df1d-1d7d-f4ff-1384fa7b350f"
//	}
//
// The file is unified with the embedded #Catalog schema before reading.
func LoadDirectoryCUE(path string) (*Directory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return compileCUECatalog(data, path)
}

func compileCUECatalog(data []byte, filename string) (*Directory, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(catalogSchema, cue.Filename("catalog.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile catalog schema: %w", err)
	}

	v := ctx.CompileBytes(data, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("compile catalog: %w", err)
	}

	v = schema.LookupPath(cue.ParsePath("#Catalog")).Unify(v)
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("validate catalog: %w", err)
	}

	iter, err := v.LookupPath(cue.ParsePath("animations")).Fields()
	if err != nil {
		return nil, fmt.Errorf("read animations: %w", err)
	}

	entries := make(map[string]uuid.UUID)
	for iter.Next() {
		name := iter.Label()
		s, err := iter.Value().String()
		if err != nil {
			return nil, fmt.Errorf("animation %s: %w", name, err)
		}
		id, err := parseCatalogID(s)
		if err != nil {
			return nil, fmt.Errorf("animation %s: %w", name, err)
		}
		entries[name] = id
	}
	return NewDirectory(entries), nil
}

func parseCatalogID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid id %q: %w", s, err)
	}
	if id == uuid.Nil {
		return uuid.Nil, fmt.Errorf("nil id is reserved")
	}
	return id, nil
}
