package app

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/example/gachabot/internal/core/conversation"
	"github.com/example/gachabot/internal/core/spawn"
	"github.com/example/gachabot/internal/i18n"
	"github.com/example/gachabot/internal/ports/secondary"
)

// Swap negotiation callback payloads.
const (
	swapYesPayload = "swap_yes"
	swapNoPayload  = "swap_no"
)

// swapDecisionTimeout bounds the yes/no negotiation when a collection is
// full. After it, the character walks.
const swapDecisionTimeout = 30 * time.Second

// GameService drives the game from the inbound update stream: it records
// users and groups, feeds qualifying messages to the spawn engine, offers
// updates to outstanding conversational waits, and sends the resulting
// notices.
type GameService struct {
	messenger secondary.Messenger
	users     secondary.UserRepository
	groups    secondary.GroupRepository
	events    secondary.EventLogWriter
	engine    *spawn.Engine
	waits     *conversation.Engine
	commands  CommandHandler
	log       *zap.Logger
}

// CommandHandler processes slash commands pulled out of the update stream.
type CommandHandler interface {
	HandleCommand(ctx context.Context, update secondary.Update)
}

// NewGameService creates the game orchestrator. The spawn engine is created
// here so its notifier can send localized messages through this service.
func NewGameService(
	config spawn.Config,
	messenger secondary.Messenger,
	users secondary.UserRepository,
	groups secondary.GroupRepository,
	states secondary.SpawnStateRepository,
	characters secondary.CharacterRepository,
	collections secondary.CollectionRepository,
	events secondary.EventLogWriter,
	waits *conversation.Engine,
	log *zap.Logger,
) *GameService {
	s := &GameService{
		messenger: messenger,
		users:     users,
		groups:    groups,
		events:    events,
		waits:     waits,
		log:       log,
	}
	s.engine = spawn.NewEngine(config, states, characters, collections, s)
	return s
}

// Engine exposes the spawn engine, for handlers that inspect game state.
func (s *GameService) Engine() *spawn.Engine {
	return s.engine
}

// SetCommandHandler installs the slash command router. Set once during
// wiring, before updates flow.
func (s *GameService) SetCommandHandler(commands CommandHandler) {
	s.commands = commands
}

// HandleUpdate processes one inbound update. Storage failures abort only
// this update: they are logged and the update is dropped.
func (s *GameService) HandleUpdate(ctx context.Context, update secondary.Update) {
	s.recordSender(ctx, update)

	// Outstanding waits get first claim on the update
	if s.waits.Dispatch(update) {
		return
	}

	if update.Kind == secondary.UpdateCallback {
		// Unclaimed button press; ack it so the client stops spinning
		if err := s.messenger.AnswerCallback(ctx, update.CallbackID); err != nil {
			s.log.Warn("failed to answer callback", zap.Error(err))
		}
		return
	}

	if !update.IsGroup || update.Kind != secondary.UpdateText {
		return
	}
	if strings.HasPrefix(update.Text, "/") {
		if s.commands != nil {
			s.commands.HandleCommand(ctx, update)
		}
		return
	}

	result, err := s.engine.HandleMessage(ctx, update)
	if err != nil {
		s.log.Error("game update dropped",
			zap.Int64("chat_id", update.ChatID),
			zap.Error(err))
		return
	}

	s.announceResult(ctx, update, result)
}

// announceResult sends the notice for an engine outcome and records the
// audit event. Notice failures are logged and swallowed; the game state is
// already committed.
func (s *GameService) announceResult(ctx context.Context, update secondary.Update, result *spawn.Result) {
	catalog := s.catalogFor(ctx, update.ChatID)

	var content secondary.Content
	var kind secondary.EventKind

	switch result.Kind {
	case spawn.ResultNothing:
		return
	case spawn.ResultSpawned:
		// The announcement was already sent by AnnounceSpawn
		s.logEvent(ctx, update.ChatID, 0, result.Character.ID, secondary.EventSpawn)
		return
	case spawn.ResultEscaped:
		content = i18n.EscapeNotice(catalog, result.Character, result.MessageID)
		kind = secondary.EventEscape
	case spawn.ResultWrongGuess:
		content = i18n.WrongGuessNotice(catalog, update.MessageID)
	case spawn.ResultCheated:
		content = i18n.CheatNotice(catalog, result.Character)
		kind = secondary.EventCheat
	case spawn.ResultClaimed:
		content = i18n.ClaimNotice(catalog, result.Character, senderDisplayName(update))
		kind = secondary.EventClaim
	case spawn.ResultSwapped:
		content = i18n.SwapDone(catalog, result.Evicted, result.Character)
		kind = secondary.EventSwap
	case spawn.ResultSwapDeclined:
		content = i18n.SwapDeclined(catalog, result.Character)
	case spawn.ResultAlreadyCollected:
		content = i18n.OwnedNotice(catalog, result.Character, update.MessageID)
	}

	if kind != "" {
		s.logEvent(ctx, update.ChatID, update.SenderID, result.Character.ID, kind)
	}

	if _, err := s.messenger.Send(ctx, update.ChatID, content); err != nil {
		s.log.Warn("failed to send game notice",
			zap.Int64("chat_id", update.ChatID),
			zap.Error(err))
	}
}

// AnnounceSpawn presents a character in a chat. Part of the spawn engine's
// notifier contract; the returned message ID anchors the claim window.
func (s *GameService) AnnounceSpawn(ctx context.Context, chatID int64, character *secondary.CharacterRecord) (int, error) {
	catalog := s.catalogFor(ctx, chatID)
	handle, err := s.messenger.Send(ctx, chatID, i18n.SpawnAnnouncement(catalog, character))
	if err != nil {
		return 0, err
	}
	return handle.MessageID, nil
}

// NegotiateSwap asks the guesser whether to trade their oldest character for
// the incoming one. Timeout counts as a decline.
func (s *GameService) NegotiateSwap(ctx context.Context, update secondary.Update, incoming, oldest *secondary.CharacterRecord) (bool, error) {
	catalog := s.catalogFor(ctx, update.ChatID)
	prompt := i18n.SwapPrompt(catalog, s.engine.Config().CollectionCap, incoming, oldest, swapYesPayload, swapNoPayload)

	handle, answer, err := s.waits.Ask(ctx, update.ChatID, update.SenderID, prompt,
		conversation.Callback(swapYesPayload, swapNoPayload), swapDecisionTimeout)
	if err != nil {
		return false, err
	}

	// The prompt served its purpose either way
	if err := s.messenger.Delete(ctx, handle); err != nil {
		s.log.Debug("failed to delete swap prompt", zap.Error(err))
	}

	if answer == nil {
		return false, nil
	}
	if err := s.messenger.AnswerCallback(ctx, answer.CallbackID); err != nil {
		s.log.Debug("failed to answer swap callback", zap.Error(err))
	}
	return answer.CallbackData == swapYesPayload, nil
}

// recordSender upserts the sender and, for group traffic, the group. Bots
// are not recorded as players.
func (s *GameService) recordSender(ctx context.Context, update secondary.Update) {
	if update.SenderID != 0 && !update.SenderIsBot {
		err := s.users.Upsert(ctx, &secondary.UserRecord{
			ID:       update.SenderID,
			Username: update.SenderUsername,
			FullName: update.SenderName,
		})
		if err != nil {
			s.log.Warn("failed to record user", zap.Int64("user_id", update.SenderID), zap.Error(err))
		}
	}

	if update.IsGroup {
		err := s.groups.Upsert(ctx, &secondary.GroupRecord{
			ID:    update.ChatID,
			Title: update.ChatTitle,
		})
		if err != nil {
			s.log.Warn("failed to record group", zap.Int64("chat_id", update.ChatID), zap.Error(err))
		}
	}
}

// catalogFor resolves the message catalog for a chat's configured language.
func (s *GameService) catalogFor(ctx context.Context, chatID int64) *i18n.Catalog {
	group, err := s.groups.GetByID(ctx, chatID)
	if err != nil || group == nil {
		return i18n.For("en")
	}
	return i18n.For(group.LanguageCode)
}

func (s *GameService) logEvent(ctx context.Context, chatID, userID, characterID int64, kind secondary.EventKind) {
	if err := s.events.LogEvent(ctx, chatID, userID, characterID, kind); err != nil {
		s.log.Warn("failed to log game event",
			zap.Int64("chat_id", chatID),
			zap.String("kind", string(kind)),
			zap.Error(err))
	}
}

func senderDisplayName(update secondary.Update) string {
	if update.SenderName != "" {
		return update.SenderName
	}
	if update.SenderUsername != "" {
		return "@" + update.SenderUsername
	}
	return "someone"
}

// Ensure GameService satisfies the spawn engine's notifier contract.
var _ spawn.Notifier = (*GameService)(nil)
