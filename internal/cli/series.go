package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/example/gachabot/internal/wire"
)

// SeriesCmd returns the series command
func SeriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "series",
		Short: "Manage series",
		Long:  `Create and manage the series characters are grouped under.`,
	}

	cmd.AddCommand(seriesCreateCmd())
	cmd.AddCommand(seriesListCmd())
	cmd.AddCommand(seriesShowCmd())
	cmd.AddCommand(seriesRenameCmd())
	cmd.AddCommand(seriesDeleteCmd())
	cmd.AddCommand(seriesPageCmd())

	return cmd
}

func seriesCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create [title]",
		Short: "Create a new series",
		Long: `Create a new series.

Examples:
  gachabot series create "Moonlit Academy"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := wire.SeriesAdapter().Create(context.Background(), args[0])
			return err
		},
	}
}

func seriesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all series",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := wire.SeriesAdapter().List(context.Background())
			return err
		},
	}
}

func seriesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show series details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			_, err = wire.SeriesAdapter().Show(context.Background(), id)
			return err
		},
	}
}

func seriesRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename [id] [title]",
		Short: "Rename a series",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return wire.SeriesAdapter().Rename(context.Background(), id, args[1])
		},
	}
}

func seriesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a series",
		Long:  `Delete a series. Its characters keep existing without a series reference.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return wire.SeriesAdapter().Delete(context.Background(), id)
		},
	}
}

func seriesPageCmd() *cobra.Command {
	var page int
	var perPage int

	cmd := &cobra.Command{
		Use:   "page [id]",
		Short: "List one page of a series roster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			_, err = wire.SeriesAdapter().Page(context.Background(), id, page, perPage)
			return err
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number, 1-based")
	cmd.Flags().IntVar(&perPage, "per-page", 10, "Characters per page")
	return cmd
}
