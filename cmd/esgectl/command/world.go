package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pixil98/go-esge/internal/storage"
	"github.com/pixil98/go-esge/internal/world"
)

func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <world-file>",
		Short: "Check that a world file loads and has a player in a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := storage.LoadFile(args[0])
			if err != nil {
				return err
			}
			if _, err := world.InitPackages(s, world.BasePackage()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: world %s with %d records is valid\n", args[0], s.Id(), s.Len())
			return nil
		},
	}
}

func NewNewCommand() *cobra.Command {
	var player, name string
	var genesis bool

	cmd := &cobra.Command{
		Use:   "new <world-file>",
		Short: "Write a new world",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := world.EmptyWorld(player, name)
			if genesis {
				s = world.InitialGenesis(player)
			}
			if err := storage.SaveFile(args[0], s); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote world %s to %s\n", s.Id(), args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&player, "player", "Player", "name of the player actor")
	cmd.Flags().StringVar(&name, "name", "", "world id (random when empty)")
	cmd.Flags().BoolVar(&genesis, "genesis", false, "write the genesis world instead of an empty one")
	return cmd
}

func NewConvertCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <in> <out>",
		Short: "Rewrite a world file, compressing when out ends in " + storage.CompressedExt,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := storage.LoadFile(args[0])
			if err != nil {
				return err
			}
			if err := storage.SaveFile(args[1], s); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "converted %s to %s\n", args[0], args[1])
			return nil
		},
	}
}
