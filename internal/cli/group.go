package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/gachabot/internal/i18n"
	"github.com/example/gachabot/internal/wire"
)

// GroupCmd returns the group command
func GroupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Inspect registered group chats",
		Long:  `Operator tools for the group chats the bot has seen.`,
	}

	cmd.AddCommand(groupShowCmd())
	cmd.AddCommand(groupLanguageCmd())

	return cmd
}

func groupShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [chat-id]",
		Short: "Show a registered group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chatID, err := parseID(args[0])
			if err != nil {
				return err
			}
			group, err := wire.GroupService().GetGroup(context.Background(), chatID)
			if err != nil {
				return err
			}
			fmt.Printf("ID:       %d\n", group.ID)
			fmt.Printf("Title:    %s\n", group.Title)
			if group.Username != "" {
				fmt.Printf("Username: @%s\n", group.Username)
			}
			fmt.Printf("Language: %s\n", group.LanguageCode)
			return nil
		},
	}
}

func groupLanguageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "language [chat-id] [code]",
		Short: "Set the language the bot speaks in a group",
		Long:  fmt.Sprintf(`Supported codes: %v.`, i18n.Languages()),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			chatID, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := wire.GroupService().SetGroupLanguage(context.Background(), chatID, args[1]); err != nil {
				return err
			}
			fmt.Printf("✓ Group %d now speaks %s\n", chatID, args[1])
			return nil
		},
	}
}
