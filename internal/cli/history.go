package cli

import (
	"github.com/spf13/cobra"
)

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "history <avatar>",
		Short: "List every stored change to an avatar's set",
		Args:  cobra.ExactArgs(1),
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

			entries, err := sess.store.History(cmd.Context(), avatar)
			if err != nil {
				return out.Fail(ExitFailure, "failed to read history", err)
			}
			view, err := newHistoryView(entries, sess.dir)
			if err != nil {
				return out.Fail(ExitFailure, "failed to read history", err)
			}
			return out.Success(view)
		},
	}
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List avatars with a stored set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := rootOpts.formatter(cmd)
			sess, err := openSession(rootOpts, out)
			if err != nil {
				return err
			}
			defer sess.Close()

			ids, err := sess.store.List(cmd.Context())
			if err != nil {
				return out.Fail(ExitFailure, "failed to list avatars", err)
			}
			return out.Success(AvatarList(ids))
		},
	}
}
