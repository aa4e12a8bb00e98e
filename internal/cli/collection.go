package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/example/gachabot/internal/wire"
)

// CollectionCmd returns the collection command
func CollectionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collection",
		Short: "Inspect and repair player collections",
		Long:  `Operator tools for player collections, bypassing the in-chat game flow.`,
	}

	cmd.AddCommand(collectionListCmd())
	cmd.AddCommand(collectionGrantCmd())
	cmd.AddCommand(collectionSwapCmd())
	cmd.AddCommand(collectionRevokeCmd())

	return cmd
}

func collectionListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [user-id] [chat-id]",
		Short: "List a user's collection in a chat",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := parseID(args[0])
			if err != nil {
				return err
			}
			chatID, err := parseID(args[1])
			if err != nil {
				return err
			}
			_, err = wire.CollectionAdapter().List(context.Background(), userID, chatID)
			return err
		},
	}
}

func collectionGrantCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "grant [user-id] [chat-id] [character-id]",
		Short: "Force-add a character to a collection",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			return wire.CollectionAdapter().Grant(context.Background(), ids[0], ids[1], ids[2])
		},
	}
}

func collectionSwapCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "swap [user-id] [chat-id] [character-id]",
		Short: "Trade the user's oldest character for a new one",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			return wire.CollectionAdapter().Swap(context.Background(), ids[0], ids[1], ids[2])
		},
	}
}

func collectionRevokeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "revoke [user-id] [chat-id] [character-id]",
		Short: "Remove a character from a collection",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			return wire.CollectionAdapter().Revoke(context.Background(), ids[0], ids[1], ids[2])
		},
	}
}

func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := parseID(arg)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
