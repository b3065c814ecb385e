package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/animset/internal/animset"
	"github.com/roach88/animset/internal/codec"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	Out      string
	Compress bool
}

// ExportResult summarizes a written export.
type ExportResult struct {
	Path   string       `json:"path"`
	Header codec.Header `json:"header"`
}

func (r ExportResult) String() string {
	return fmt.Sprintf("exported %d records for %s to %s (%s)", r.Header.Count, r.Header.AvatarID, r.Path, r.Header.Digest)
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export <avatar>",
		Short: "Write an avatar's set to a file",
		Long: `Write an avatar's stored set as a header line followed by the
canonical serialized array. With --compress the file is one zstd frame.

Without --out the export is written to stdout.`,
		Example: `  animset export 3f9c2a52-0b61-4c0e-9f0e-6a7c1b0e1d22 --out set.json
  animset export 3f9c2a52-0b61-4c0e-9f0e-6a7c1b0e1d22 --out set.zst --compress`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, opts, args[0])
		},
	}
	cmd.Flags().StringVarP(&opts.Out, "out", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&opts.Compress, "compress", false, "zstd-compress the export")
	return cmd
}

func runExport(cmd *cobra.Command, opts *ExportOptions, avatarArg string) (err error) {
	out := opts.formatter(cmd)
	avatar, err := parseAvatar(avatarArg)
	if err != nil {
		return out.Fail(ExitCommandError, "bad avatar id", err)
	}

	sess, err := openSession(opts.RootOptions, out)
	if err != nil {
		return err
	}
	defer sess.Close()

	arr, err := sess.store.LoadArray(cmd.Context(), avatar)
	if err != nil {
		return out.Fail(ExitFailure, "failed to load animation set", err)
	}
	e, err := codec.NewExport(avatar, arr)
	if err != nil {
		return out.Fail(ExitFailure, "failed to build export", err)
	}

	if opts.Out == "" || opts.Out == "-" {
		if err := codec.WriteExport(cmd.OutOrStdout(), e, opts.Compress); err != nil {
			return out.Fail(ExitFailure, "failed to write export", err)
		}
		return nil
	}

	f, err := os.Create(opts.Out)
	if err != nil {
		return out.Fail(ExitCommandError, "failed to create export file", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = out.Fail(ExitFailure, "failed to close export file", cerr)
		}
	}()
	if err := codec.WriteExport(f, e, opts.Compress); err != nil {
		return out.Fail(ExitFailure, "failed to write export", err)
	}

	slog.Debug("export written", "avatar", avatar, "path", opts.Out, "compressed", opts.Compress)
	return out.Success(ExportResult{Path: opts.Out, Header: e.Header})
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <avatar> <file>",
		Short: "Replace an avatar's set from an export",
		Long: `Replace an avatar's stored set with the contents of an export file
written by "animset export". Compressed and plain exports are both
accepted; "-" reads stdin.

The export is checked against its digest and every record is validated
before anything is stored.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, rootOpts, args[0], args[1])
		},
	}
}

func runImport(cmd *cobra.Command, opts *RootOptions, avatarArg, path string) error {
	out := opts.formatter(cmd)
	avatar, err := parseAvatar(avatarArg)
	if err != nil {
		return out.Fail(ExitCommandError, "bad avatar id", err)
	}

	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return out.Fail(ExitCommandError, "failed to open export", err)
		}
		defer f.Close()
		r = f
	}

	e, err := codec.ReadExport(r)
	if err != nil {
		return out.Fail(ExitFailure, "invalid export", err)
	}
	if e.Header.AvatarID != avatar {
		slog.Warn("export belongs to another avatar", "export", e.Header.AvatarID, "target", avatar)
	}

	sess, err := openSession(opts, out)
	if err != nil {
		return err
	}
	defer sess.Close()

	set, err := animset.NewFromSerializableArray(e.Set, sess.dir)
	if err != nil {
		return out.Fail(ExitFailure, "invalid animation set", err)
	}

	saved, err := sess.store.Save(cmd.Context(), avatar, set)
	if err != nil {
		return out.Fail(ExitFailure, "failed to save animation set", err)
	}
	return out.Success(MutationResult{
		AvatarID: avatar,
		Applied:  true,
		Saved:    saved,
		Set:      newSetView(avatar, set),
	})
}
