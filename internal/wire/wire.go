// Package wire provides dependency injection for the gachabot application.
// It creates singleton services with lazy initialization.
package wire

import (
	"io"
	"log"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/example/gachabot/internal/adapters/anilist"
	cliadapter "github.com/example/gachabot/internal/adapters/cli"
	"github.com/example/gachabot/internal/adapters/sqlite"
	"github.com/example/gachabot/internal/app"
	"github.com/example/gachabot/internal/config"
	"github.com/example/gachabot/internal/core/conversation"
	"github.com/example/gachabot/internal/core/spawn"
	"github.com/example/gachabot/internal/db"
	"github.com/example/gachabot/internal/ports/primary"
	"github.com/example/gachabot/internal/ports/secondary"
)

var (
	cfg               *config.Config
	logger            *zap.Logger
	characterService  primary.CharacterService
	seriesService     primary.SeriesService
	collectionService primary.CollectionService
	groupService      primary.GroupService

	characterRepo  secondary.CharacterRepository
	seriesRepo     secondary.SeriesRepository
	collectionRepo secondary.CollectionRepository
	userRepo       secondary.UserRepository
	groupRepo      secondary.GroupRepository
	stateRepo      secondary.SpawnStateRepository
	eventLog       secondary.EventLogWriter

	once sync.Once
)

// Config returns the loaded configuration. When no config file exists yet,
// defaults are used so read-only commands keep working before `gachabot
// init`.
func Config() *config.Config {
	once.Do(initServices)
	return cfg
}

// Logger returns the singleton process logger.
func Logger() *zap.Logger {
	once.Do(initServices)
	return logger
}

// CharacterService returns the singleton CharacterService instance.
func CharacterService() primary.CharacterService {
	once.Do(initServices)
	return characterService
}

// SeriesService returns the singleton SeriesService instance.
func SeriesService() primary.SeriesService {
	once.Do(initServices)
	return seriesService
}

// CollectionService returns the singleton CollectionService instance.
func CollectionService() primary.CollectionService {
	once.Do(initServices)
	return collectionService
}

// GroupService returns the singleton GroupService instance.
func GroupService() primary.GroupService {
	once.Do(initServices)
	return groupService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	loaded, err := config.LoadConfig()
	if err != nil {
		loaded = config.Default()
	}
	cfg = loaded

	logger, err = zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}

	database, err := db.GetDB()
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Repository adapters (secondary ports) with injected DB
	characterRepo = sqlite.NewCharacterRepository(database)
	seriesRepo = sqlite.NewSeriesRepository(database)
	collectionRepo = sqlite.NewCollectionRepository(database)
	userRepo = sqlite.NewUserRepository(database)
	groupRepo = sqlite.NewGroupRepository(database)
	stateRepo = sqlite.NewSpawnStateRepository(database)
	eventLog = sqlite.NewEventLogWriter(database)

	metadata := anilist.NewClient()

	// Services (primary ports implementation)
	characterService = app.NewCharacterService(characterRepo, metadata, cfg.MetadataCacheSize)
	seriesService = app.NewSeriesService(seriesRepo, characterRepo)
	collectionService = app.NewCollectionService(collectionRepo, characterRepo, cfg.CollectionCap)
	groupService = app.NewGroupService(groupRepo)
}

// Bot bundles the fully wired bot-side services for the run command.
type Bot struct {
	Game  *app.GameService
	Waits *conversation.Engine
}

// NewBot wires the game orchestration on top of the shared services, using
// the given transport. Called once by the run command after the transport
// is connected.
func NewBot(messenger secondary.Messenger) *Bot {
	once.Do(initServices)

	waits := conversation.NewEngine(messenger)
	game := app.NewGameService(
		spawn.Config{
			MinMessages:   cfg.SpawnMinMessages,
			MaxMessages:   cfg.SpawnMaxMessages,
			EscapeAfter:   cfg.EscapeAfterMessages,
			CollectionCap: cfg.CollectionCap,
		},
		messenger, userRepo, groupRepo, stateRepo, characterRepo, collectionRepo,
		eventLog, waits, logger,
	)

	admin := app.NewAdminService(cfg, messenger, waits,
		characterService, seriesService, groupRepo, logger)
	game.SetCommandHandler(app.NewBotCommands(cfg, messenger,
		collectionService, seriesService, groupService, characterRepo, groupRepo, waits, admin, logger))

	return &Bot{Game: game, Waits: waits}
}

// CharacterAdapter returns a new CharacterAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func CharacterAdapter() *cliadapter.CharacterAdapter {
	return CharacterAdapterWithOutput(os.Stdout)
}

// CharacterAdapterWithOutput returns a new CharacterAdapter writing to the
// given output. This variant allows testing or alternate output
// destinations.
func CharacterAdapterWithOutput(out io.Writer) *cliadapter.CharacterAdapter {
	once.Do(initServices)
	return cliadapter.NewCharacterAdapter(characterService, out)
}

// SeriesAdapter returns a new SeriesAdapter writing to stdout.
func SeriesAdapter() *cliadapter.SeriesAdapter {
	return SeriesAdapterWithOutput(os.Stdout)
}

// SeriesAdapterWithOutput returns a new SeriesAdapter writing to the given
// output.
func SeriesAdapterWithOutput(out io.Writer) *cliadapter.SeriesAdapter {
	once.Do(initServices)
	return cliadapter.NewSeriesAdapter(seriesService, out)
}

// CollectionAdapter returns a new CollectionAdapter writing to stdout.
func CollectionAdapter() *cliadapter.CollectionAdapter {
	return CollectionAdapterWithOutput(os.Stdout)
}

// CollectionAdapterWithOutput returns a new CollectionAdapter writing to the
// given output.
func CollectionAdapterWithOutput(out io.Writer) *cliadapter.CollectionAdapter {
	once.Do(initServices)
	return cliadapter.NewCollectionAdapter(collectionService, out)
}
