package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/example/gachabot/internal/adapters/telegram"
	"github.com/example/gachabot/internal/db"
	"github.com/example/gachabot/internal/ports/secondary"
	"github.com/example/gachabot/internal/wire"
)

// RunCmd returns the run command starting the bot.
func RunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the bot until interrupted",
		Long: `Connect to Telegram and process chat updates until SIGINT or SIGTERM.

The bot counts messages per group, spawns characters, resolves claims and
runs the admin dialogs. Configuration comes from ~/.gachabot/config.json.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := wire.Config()
			if cfg.BotToken == "" {
				return fmt.Errorf("bot_token is empty, set it in ~/.gachabot/config.json")
			}

			logger := wire.Logger()
			defer logger.Sync()
			defer db.Close()

			messenger, err := telegram.NewMessenger(cfg.BotToken, logger)
			if err != nil {
				return err
			}

			bot := wire.NewBot(messenger)

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			logger.Info("bot started",
				zap.Int("spawn_min", cfg.SpawnMinMessages),
				zap.Int("spawn_max", cfg.SpawnMaxMessages),
				zap.Int("collection_cap", cfg.CollectionCap))

			g, ctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return messenger.Run(ctx, func(update secondary.Update) {
					bot.Game.HandleUpdate(ctx, update)
				})
			})

			err = g.Wait()
			if err == context.Canceled {
				logger.Info("bot stopped")
				return nil
			}
			return err
		},
	}
}
