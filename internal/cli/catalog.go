package cli

import (
	"github.com/spf13/cobra"
)

// NewCatalogCommand creates the catalog command.
func NewCatalogCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List named animations",
		Long: `List the animation names that commands accept in place of UUIDs.

The built-in catalog can be extended or overridden with --catalog,
pointing at a YAML or CUE file.

Examples:
  animset catalog
  animset catalog --catalog ./extra.cue --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := rootOpts.formatter(cmd)
			dir, err := loadDirectory(rootOpts.Catalog)
			if err != nil {
				return out.Fail(ExitCommandError, "failed to load catalog", err)
			}
			return out.Success(newCatalogView(dir))
		},
	}
}
