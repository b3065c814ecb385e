package cli

import (
	"github.com/spf13/cobra"
)

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <avatar>",
		Short: "Print an avatar's stored animation set",
		Example: `  animset show 3f9c2a52-0b61-4c0e-9f0e-6a7c1b0e1d22
  animset show 3f9c2a52-0b61-4c0e-9f0e-6a7c1b0e1d22 --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := rootOpts.formatter(cmd)
			avatar, err := parseAvatar(args[0])
			if err != nil {
				return out.Fail(ExitCommandError, "bad avatar id", err)
			}

			sess, err := openSession(rootOpts, out)
			if err != nil {
				return err
			}
			defer sess.Close()

			set, err := sess.loadSet(cmd.Context(), avatar, false)
			if err != nil {
				return err
			}
			return out.Success(newSetView(avatar, set))
		},
	}
}
