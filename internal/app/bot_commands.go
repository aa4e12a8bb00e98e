package app

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/example/gachabot/internal/config"
	"github.com/example/gachabot/internal/core/conversation"
	"github.com/example/gachabot/internal/i18n"
	"github.com/example/gachabot/internal/ports/primary"
	"github.com/example/gachabot/internal/ports/secondary"
)

// languagePayloadPrefix marks language-selection callback data, as in lang_pt.
const languagePayloadPrefix = "lang_"

const languagePickTimeout = 30 * time.Second

// BotCommands routes slash commands from group chats to the services behind
// them. Admin dialog commands block until the dialog concludes; the transport
// delivers updates on separate goroutines, so that never stalls the stream.
type BotCommands struct {
	cfg         *config.Config
	messenger   secondary.Messenger
	collections primary.CollectionService
	series      primary.SeriesService
	groupSvc    primary.GroupService
	characters  secondary.CharacterRepository
	groups      secondary.GroupRepository
	waits       *conversation.Engine
	admin       *AdminService
	log         *zap.Logger
}

// NewBotCommands creates the slash command router.
func NewBotCommands(
	cfg *config.Config,
	messenger secondary.Messenger,
	collections primary.CollectionService,
	series primary.SeriesService,
	groupSvc primary.GroupService,
	characters secondary.CharacterRepository,
	groups secondary.GroupRepository,
	waits *conversation.Engine,
	admin *AdminService,
	log *zap.Logger,
) *BotCommands {
	return &BotCommands{
		cfg:         cfg,
		messenger:   messenger,
		collections: collections,
		series:      series,
		groupSvc:    groupSvc,
		characters:  characters,
		groups:      groups,
		waits:       waits,
		admin:       admin,
		log:         log,
	}
}

// HandleCommand parses and executes one slash command. Unknown commands are
// ignored so the bot stays quiet when other bots share the chat.
func (b *BotCommands) HandleCommand(ctx context.Context, update secondary.Update) {
	fields := strings.Fields(update.Text)
	if len(fields) == 0 {
		return
	}

	command := fields[0]
	// Telegram appends the bot handle in groups, as in /collection@gachabot
	if at := strings.IndexByte(command, '@'); at > 0 {
		command = command[:at]
	}
	args := fields[1:]

	var err error
	switch command {
	case "/start":
		err = b.sendCatalogText(ctx, update.ChatID, "start.welcome")
	case "/help":
		err = b.sendCatalogText(ctx, update.ChatID, "help.text")
	case "/collection":
		err = b.showCollection(ctx, update)
	case "/series":
		err = b.showSeries(ctx, update, args)
	case "/character", "/char":
		err = b.showCharacter(ctx, update, args)
	case "/language":
		err = b.setLanguage(ctx, update, args)
	case "/addseries":
		err = b.admin.AddSeries(ctx, update)
	case "/rename":
		err = b.adminCharacterCommand(ctx, update, args, b.admin.RenameCharacter)
	case "/setphoto":
		err = b.adminCharacterCommand(ctx, update, args, b.admin.SetCharacterPhoto)
	case "/setgender":
		err = b.adminCharacterCommand(ctx, update, args, b.admin.SetCharacterGender)
	default:
		return
	}

	if err != nil {
		b.log.Warn("command failed",
			zap.String("command", command),
			zap.Int64("chat_id", update.ChatID),
			zap.Error(err))
	}
}

// showCollection lists the sender's collection in this chat.
func (b *BotCommands) showCollection(ctx context.Context, update secondary.Update) error {
	characters, err := b.collections.ListCollection(ctx, update.SenderID, update.ChatID)
	if err != nil {
		return err
	}

	catalog := b.catalogFor(ctx, update.ChatID)
	records := make([]*secondary.CharacterRecord, 0, len(characters))
	for _, character := range characters {
		records = append(records, &secondary.CharacterRecord{
			ID:    character.ID,
			Name:  character.Name,
			Stars: character.Stars,
		})
	}

	content := i18n.CollectionList(catalog, senderDisplayName(update), b.cfg.CollectionCap, records)
	return b.send(ctx, update.ChatID, content)
}

// showSeries renders one page of a series roster, or the series index when
// no ID is given.
func (b *BotCommands) showSeries(ctx context.Context, update secondary.Update, args []string) error {
	catalog := b.catalogFor(ctx, update.ChatID)

	if len(args) == 0 {
		return b.showSeriesIndex(ctx, update.ChatID, catalog)
	}

	seriesID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return b.showSeriesIndex(ctx, update.ChatID, catalog)
	}

	page := 1
	if len(args) > 1 {
		if parsed, err := strconv.Atoi(args[1]); err == nil && parsed > 0 {
			page = parsed
		}
	}

	series, err := b.series.GetSeries(ctx, seriesID)
	if err != nil {
		return err
	}
	characters, err := b.series.SeriesPage(ctx, seriesID, page, 10)
	if err != nil {
		return err
	}

	records := make([]*secondary.CharacterRecord, 0, len(characters))
	for _, character := range characters {
		records = append(records, &secondary.CharacterRecord{
			ID:    character.ID,
			Name:  character.Name,
			Stars: character.Stars,
		})
	}
	return b.send(ctx, update.ChatID, i18n.SeriesPage(catalog, series.Title, page, records))
}

// showCharacter renders the detail card for one character.
func (b *BotCommands) showCharacter(ctx context.Context, update secondary.Update, args []string) error {
	catalog := b.catalogFor(ctx, update.ChatID)

	if len(args) == 0 {
		return b.send(ctx, update.ChatID, i18n.Text(catalog, "character.usage"))
	}
	characterID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return b.send(ctx, update.ChatID, i18n.Text(catalog, "character.usage"))
	}

	character, err := b.characters.GetByID(ctx, characterID)
	if err != nil || character == nil {
		return b.send(ctx, update.ChatID, i18n.Text(catalog, "character.not_found"))
	}

	var seriesTitle string
	if character.SeriesID != 0 {
		if series, err := b.series.GetSeries(ctx, character.SeriesID); err == nil {
			seriesTitle = series.Title
		}
	}

	return b.send(ctx, update.ChatID, i18n.CharacterCard(catalog, character, seriesTitle))
}

// sendCatalogText replies with a plain catalog message in the chat's language.
func (b *BotCommands) sendCatalogText(ctx context.Context, chatID int64, key string) error {
	return b.send(ctx, chatID, i18n.Text(b.catalogFor(ctx, chatID), key))
}

func (b *BotCommands) showSeriesIndex(ctx context.Context, chatID int64, catalog *i18n.Catalog) error {
	all, err := b.series.ListSeries(ctx)
	if err != nil {
		return err
	}
	if len(all) == 0 {
		return b.send(ctx, chatID, i18n.Text(catalog, "series.empty"))
	}

	var sb strings.Builder
	for i, series := range all {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(strconv.FormatInt(series.ID, 10))
		sb.WriteString(". ")
		sb.WriteString(series.Title)
	}
	return b.send(ctx, chatID, secondary.Content{HTML: sb.String()})
}

// setLanguage switches the bot's language in this chat. Admin only. With no
// argument it offers a keyboard instead of failing.
func (b *BotCommands) setLanguage(ctx context.Context, update secondary.Update, args []string) error {
	catalog := b.catalogFor(ctx, update.ChatID)

	if !b.cfg.IsAdmin(update.SenderID) {
		return b.send(ctx, update.ChatID, i18n.Text(catalog, "admin.denied"))
	}

	var code string
	if len(args) > 0 {
		code = args[0]
	} else {
		picked, err := b.pickLanguage(ctx, update, catalog)
		if err != nil || picked == "" {
			return err
		}
		code = picked
	}

	if err := b.groupSvc.SetGroupLanguage(ctx, update.ChatID, code); err != nil {
		return b.send(ctx, update.ChatID,
			i18n.Text(catalog, "language.unknown", strings.Join(i18n.Languages(), ", ")))
	}

	// Confirm in the newly selected language
	return b.send(ctx, update.ChatID, i18n.Text(i18n.For(code), "language.changed"))
}

// pickLanguage asks with an inline keyboard and returns the chosen code, or
// empty when the admin never answers.
func (b *BotCommands) pickLanguage(ctx context.Context, update secondary.Update, catalog *i18n.Catalog) (string, error) {
	codes := i18n.Languages()
	payloads := make(map[string]string, len(codes))
	accepted := make([]string, 0, len(codes))
	for _, code := range codes {
		payload := languagePayloadPrefix + code
		payloads[code] = payload
		accepted = append(accepted, payload)
	}

	handle, answer, err := b.waits.Ask(ctx, update.ChatID, update.SenderID,
		i18n.LanguageKeyboard(catalog, payloads),
		conversation.Callback(accepted...), languagePickTimeout)
	if err != nil {
		return "", err
	}

	if err := b.messenger.Delete(ctx, handle); err != nil {
		b.log.Debug("failed to delete language prompt", zap.Error(err))
	}
	if answer == nil {
		return "", nil
	}
	if err := b.messenger.AnswerCallback(ctx, answer.CallbackID); err != nil {
		b.log.Debug("failed to answer language callback", zap.Error(err))
	}

	return strings.TrimPrefix(answer.CallbackData, languagePayloadPrefix), nil
}

// adminCharacterCommand parses the character ID argument shared by the admin
// dialogs and starts the flow.
func (b *BotCommands) adminCharacterCommand(ctx context.Context, update secondary.Update, args []string, flow func(context.Context, secondary.Update, int64) error) error {
	if len(args) == 0 {
		return nil
	}
	characterID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return nil
	}
	return flow(ctx, update, characterID)
}

func (b *BotCommands) send(ctx context.Context, chatID int64, content secondary.Content) error {
	_, err := b.messenger.Send(ctx, chatID, content)
	return err
}

func (b *BotCommands) catalogFor(ctx context.Context, chatID int64) *i18n.Catalog {
	group, err := b.groups.GetByID(ctx, chatID)
	if err != nil || group == nil {
		return i18n.For(b.cfg.LanguageCode)
	}
	return i18n.For(group.LanguageCode)
}

// Ensure BotCommands satisfies the game service's command seam.
var _ CommandHandler = (*BotCommands)(nil)
