package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/animset/internal/animation"
	"github.com/roach88/animset/internal/codec"
	"github.com/roach88/animset/internal/testutil"
)

// runCLI executes the root command with args and returns stdout. When
// dbPath is non-empty it is passed as --db.
func runCLI(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()
	if dbPath != "" {
		args = append([]string{"--db", dbPath}, args...)
	}
	out := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// runJSON executes a command with --format json and decodes the envelope
// data into v.
func runJSON(t *testing.T, dbPath string, v any, args ...string) {
	t.Helper()
	out, err := runCLI(t, dbPath, append([]string{"--format", "json"}, args...)...)
	require.NoError(t, err, out)

	var resp struct {
		Status string          `json:"status"`
		Data   json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Equal(t, "ok", resp.Status)
	if v != nil {
		require.NoError(t, json.Unmarshal(resp.Data, v))
	}
}

func testDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "cli.db")
}

func standID(t *testing.T) string {
	t.Helper()
	id, ok := animation.DefaultDirectory().Lookup(animation.StandName)
	require.True(t, ok)
	return id.String()
}

func TestCatalog(t *testing.T) {
	out, err := runCLI(t, "", "catalog")
	require.NoError(t, err)
	assert.Contains(t, out, "STAND")
	assert.Contains(t, out, standID(t))

	var entries []CatalogEntry
	runJSON(t, "", &entries, "catalog")
	assert.Len(t, entries, animation.DefaultDirectory().Len())
}

func TestCatalog_Override(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extra.yaml")
	extra := "animations:\n  - name: WAVE_HELLO\n    id: " + testutil.ID(500).String() + "\n"
	require.NoError(t, os.WriteFile(path, []byte(extra), 0o600))

	var entries []CatalogEntry
	runJSON(t, "", &entries, "--catalog", path, "catalog")
	assert.Len(t, entries, animation.DefaultDirectory().Len()+1)

	_, err := runCLI(t, "", "--catalog", filepath.Join(t.TempDir(), "x.toml"), "catalog")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestShow_NotFound(t *testing.T) {
	db := testDB(t)
	_, err := runCLI(t, db, "show", testutil.ID(1).String())
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestShow_BadAvatar(t *testing.T) {
	_, err := runCLI(t, testDB(t), "show", "not-a-uuid")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestEditLifecycle(t *testing.T) {
	db := testDB(t)
	avatar := testutil.ID(1).String()
	overlay := testutil.ID(10).String()
	object := testutil.ID(50).String()

	var res MutationResult
	runJSON(t, db, &res, "add", avatar, overlay, "--seq", "4", "--object", object)
	assert.True(t, res.Applied)
	assert.True(t, res.Saved)
	assert.Equal(t, standID(t), res.Set.Default.ID.String())
	assert.Equal(t, "STAND", res.Set.Default.Name)
	require.Len(t, res.Set.Animations, 1)
	assert.Equal(t, int32(4), res.Set.Animations[0].SequenceNum)
	assert.Equal(t, object, res.Set.Animations[0].ObjectID.String())

	// Already playing.
	runJSON(t, db, &res, "add", avatar, overlay)
	assert.False(t, res.Applied)
	assert.False(t, res.Saved)

	runJSON(t, db, &res, "default", avatar, "fly", "--seq", "7")
	assert.True(t, res.Saved)
	assert.Equal(t, "FLY", res.Set.Default.Name)
	assert.Equal(t, res.Set.Default, res.Set.ImplicitDefault)

	var view SetView
	runJSON(t, db, &view, "show", avatar)
	assert.Equal(t, "FLY", view.Default.Name)
	assert.Len(t, view.Animations, 1)

	runJSON(t, db, &res, "remove", avatar, "FLY")
	assert.Equal(t, "STAND", res.Set.Default.Name)

	runJSON(t, db, &res, "remove", avatar, overlay)
	assert.Empty(t, res.Set.Animations)

	_, err := runCLI(t, db, "remove", avatar, overlay)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	runJSON(t, db, &res, "remove", avatar, "STAND", "--allow-no-default")
	assert.Equal(t, "00000000-0000-0000-0000-000000000000", res.Set.Default.ID.String())

	runJSON(t, db, &res, "clear", avatar)
	assert.Equal(t, "STAND", res.Set.Default.Name)

	var history HistoryView
	runJSON(t, db, &history, "history", avatar)
	// add, default, remove FLY, remove overlay, remove STAND, clear.
	require.Len(t, history, 6)
	for i := 1; i < len(history); i++ {
		assert.Greater(t, history[i].Seq, history[i-1].Seq)
	}
}

func TestShow_Text(t *testing.T) {
	db := testDB(t)
	avatar := testutil.ID(2).String()

	_, err := runCLI(t, db, "add", avatar, testutil.ID(10).String())
	require.NoError(t, err)

	out, err := runCLI(t, db, "show", avatar)
	require.NoError(t, err)
	assert.Equal(t,
		"dflt=AnimID="+standID(t)+"/seq=1/objID=00000000-0000-0000-0000-000000000000,iDflt=same,"+
			"anims=<AnimID="+testutil.ID(10).String()+"/seq=1/objID=00000000-0000-0000-0000-000000000000>\n",
		out)
}

func TestAdd_BadAnimation(t *testing.T) {
	_, err := runCLI(t, testDB(t), "add", testutil.ID(1).String(), "NOT_AN_ANIMATION")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "not a catalog name or UUID")
}

func TestDeleteAndList(t *testing.T) {
	db := testDB(t)
	for _, n := range []int{2, 1} {
		_, err := runCLI(t, db, "clear", testutil.ID(n).String())
		require.NoError(t, err)
	}

	var ids AvatarList
	runJSON(t, db, &ids, "list")
	assert.Equal(t, AvatarList(testutil.IDs(2)), ids)

	_, err := runCLI(t, db, "delete", testutil.ID(1).String())
	require.NoError(t, err)

	runJSON(t, db, &ids, "list")
	assert.Equal(t, AvatarList{testutil.ID(2)}, ids)

	_, err = runCLI(t, db, "delete", testutil.ID(1).String())
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var history HistoryView
	runJSON(t, db, &history, "history", testutil.ID(1).String())
	require.Len(t, history, 2)
	assert.True(t, history[1].Deleted)
}

func TestExportImport(t *testing.T) {
	for _, compress := range []bool{false, true} {
		name := "plain"
		if compress {
			name = "compressed"
		}
		t.Run(name, func(t *testing.T) {
			src := testDB(t)
			dst := testDB(t)
			avatar := testutil.ID(1).String()
			file := filepath.Join(t.TempDir(), "set.export")

			_, err := runCLI(t, src, "add", avatar, "TYPE", "--seq", "3")
			require.NoError(t, err)

			args := []string{"export", avatar, "--out", file}
			if compress {
				args = append(args, "--compress")
			}
			var res ExportResult
			runJSON(t, src, &res, args...)
			assert.Equal(t, file, res.Path)
			assert.Equal(t, 3, res.Header.Count)

			data, err := os.ReadFile(file)
			require.NoError(t, err)
			assert.Equal(t, compress, codec.IsCompressed(data))

			var imported MutationResult
			runJSON(t, dst, &imported, "import", avatar, file)
			assert.True(t, imported.Saved)

			var original, copied SetView
			runJSON(t, src, &original, "show", avatar)
			runJSON(t, dst, &copied, "show", avatar)
			assert.Equal(t, original, copied)
		})
	}
}

func TestExport_Stdout(t *testing.T) {
	db := testDB(t)
	avatar := testutil.ID(1).String()
	_, err := runCLI(t, db, "clear", avatar)
	require.NoError(t, err)

	out, err := runCLI(t, db, "export", avatar)
	require.NoError(t, err)

	e, err := codec.ReadExport(strings.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, avatar, e.Header.AvatarID.String())
	assert.Len(t, e.Set, 2)
}

func TestImport_RejectsTamperedExport(t *testing.T) {
	db := testDB(t)
	avatar := testutil.ID(1).String()
	file := filepath.Join(t.TempDir(), "set.export")

	_, err := runCLI(t, db, "clear", avatar)
	require.NoError(t, err)
	_, err = runCLI(t, db, "export", avatar, "--out", file)
	require.NoError(t, err)

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	tampered := strings.Replace(string(data), `"seq_num":1`, `"seq_num":2`, 1)
	require.NoError(t, os.WriteFile(file, []byte(tampered), 0o600))

	out, err := runCLI(t, testDB(t), "--format", "json", "import", avatar, file)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "DECODE_DIGEST")
}
