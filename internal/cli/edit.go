package cli

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/roach88/animset/internal/animset"
)

// EditOptions holds flags shared by the commands that change a set.
type EditOptions struct {
	*RootOptions
	Seq    int32
	Object string
}

func (o *EditOptions) bind(cmd *cobra.Command) {
	cmd.Flags().Int32Var(&o.Seq, "seq", 1, "sequence number of the new record")
	cmd.Flags().StringVar(&o.Object, "object", "", "UUID of the object that started the animation")
}

// editFunc applies one change to set. It reports whether the set accepted
// it.
type editFunc func(sess *session, set *animset.Set) (bool, error)

// runEdit loads (or creates) the avatar's set, applies fn and saves the
// result when the set accepted the change.
func runEdit(cmd *cobra.Command, opts *RootOptions, avatarArg string, create bool, fn editFunc) error {
	out := opts.formatter(cmd)
	avatar, err := parseAvatar(avatarArg)
	if err != nil {
		return out.Fail(ExitCommandError, "bad avatar id", err)
	}

	sess, err := openSession(opts, out)
	if err != nil {
		return err
	}
	defer sess.Close()

	ctx := cmd.Context()
	set, err := sess.loadSet(ctx, avatar, create)
	if err != nil {
		return err
	}

	applied, err := fn(sess, set)
	if err != nil {
		return err
	}

	saved := false
	if applied {
		if saved, err = sess.store.Save(ctx, avatar, set); err != nil {
			return out.Fail(ExitFailure, "failed to save animation set", err)
		}
	}
	slog.Debug("animation set edited", "command", cmd.Name(), "avatar", avatar, "applied", applied, "saved", saved)

	return out.Success(MutationResult{
		AvatarID: avatar,
		Applied:  applied,
		Saved:    saved,
		Set:      newSetView(avatar, set),
	})
}

// resolveEdit parses the animation argument and --object flag.
func resolveEdit(sess *session, opts *EditOptions, animArg string) (id, object uuid.UUID, err error) {
	if id, err = resolveAnimation(sess.dir, animArg); err != nil {
		return uuid.Nil, uuid.Nil, sess.out.Fail(ExitCommandError, "bad animation", err)
	}
	if object, err = parseObject(opts.Object); err != nil {
		return uuid.Nil, uuid.Nil, sess.out.Fail(ExitCommandError, "bad object id", err)
	}
	return id, object, nil
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EditOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add <avatar> <animation>",
		Short: "Start an overlay animation",
		Long: `Start an overlay animation on an avatar.

Adding an animation that is already playing leaves the set unchanged.
An avatar without a stored set starts from STAND.`,
		Example: `  animset add 3f9c2a52-0b61-4c0e-9f0e-6a7c1b0e1d22 TYPE --seq 4
  animset add 3f9c2a52-0b61-4c0e-9f0e-6a7c1b0e1d22 6ed24bd8-91aa-4b12-ccc7-c97c857ab4e0`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, rootOpts, args[0], true, func(sess *session, set *animset.Set) (bool, error) {
				id, object, err := resolveEdit(sess, opts, args[1])
				if err != nil {
					return false, err
				}
				return set.Add(id, opts.Seq, object), nil
			})
		},
	}
	opts.bind(cmd)
	return cmd
}

// RemoveOptions holds flags for the remove command.
type RemoveOptions struct {
	*RootOptions
	AllowNoDefault bool
}

// NewRemoveCommand creates the remove command.
func NewRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RemoveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "remove <avatar> <animation>",
		Short: "Stop an animation",
		Long: `Stop an overlay or default animation.

Stopping the default falls back to STAND unless --allow-no-default is set,
in which case the avatar is left with no default animation.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, rootOpts, args[0], false, func(sess *session, set *animset.Set) (bool, error) {
				id, err := resolveAnimation(sess.dir, args[1])
				if err != nil {
					return false, sess.out.Fail(ExitCommandError, "bad animation", err)
				}
				if !set.Remove(id, opts.AllowNoDefault) {
					return false, sess.out.Fail(ExitFailure, fmt.Sprintf("%s is not playing", args[1]), errNotPlaying)
				}
				return true, nil
			})
		},
	}
	cmd.Flags().BoolVar(&opts.AllowNoDefault, "allow-no-default", false, "leave no default when removing the default animation")
	return cmd
}

// NewDefaultCommand creates the default command.
func NewDefaultCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EditOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "default <avatar> <animation>",
		Short: "Set the default animation",
		Long: `Set the mutually exclusive default animation of an avatar.

Setting the animation that is already the default leaves the set
unchanged, including its sequence number.`,
		Example: `  animset default 3f9c2a52-0b61-4c0e-9f0e-6a7c1b0e1d22 FLY --seq 7`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, rootOpts, args[0], true, func(sess *session, set *animset.Set) (bool, error) {
				id, object, err := resolveEdit(sess, opts, args[1])
				if err != nil {
					return false, err
				}
				return set.SetDefaultAnimation(id, opts.Seq, object), nil
			})
		},
	}
	opts.bind(cmd)
	return cmd
}

// NewClearCommand creates the clear command.
func NewClearCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear <avatar>",
		Short: "Reset to STAND and stop every overlay",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, rootOpts, args[0], true, func(_ *session, set *animset.Set) (bool, error) {
				set.Clear()
				return true, nil
			})
		},
	}
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <avatar>",
		Short: "Delete an avatar's stored set",
		Long: `Delete the stored animation set of an avatar.

The deletion is recorded in history.`,
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

			if err := sess.store.Delete(cmd.Context(), avatar); err != nil {
				return out.Fail(ExitFailure, "failed to delete animation set", err)
			}
			return out.Success(fmt.Sprintf("%s deleted", avatar))
		},
	}
}
