package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/example/gachabot/internal/config"
	"github.com/example/gachabot/internal/core/conversation"
	"github.com/example/gachabot/internal/i18n"
	"github.com/example/gachabot/internal/ports/primary"
	"github.com/example/gachabot/internal/ports/secondary"
)

// Gender keyboard callback payloads.
const (
	genderFemalePayload = "gender_female"
	genderMalePayload   = "gender_male"
	genderOtherPayload  = "gender_other"
)

// dialogTimeout bounds every admin dialog step. An unanswered step rolls the
// whole flow back.
const dialogTimeout = 60 * time.Second

// AdminService runs the multi-step edit dialogs reserved for the operators
// listed in the configuration. Each flow is a sequence of Ask steps; a
// timeout at any step abandons the flow and reports it, leaving earlier
// steps' side effects documented per flow.
type AdminService struct {
	cfg        *config.Config
	messenger  secondary.Messenger
	waits      *conversation.Engine
	characters primary.CharacterService
	series     primary.SeriesService
	groups     secondary.GroupRepository
	log        *zap.Logger
}

// NewAdminService creates the admin dialog runner.
func NewAdminService(
	cfg *config.Config,
	messenger secondary.Messenger,
	waits *conversation.Engine,
	characters primary.CharacterService,
	series primary.SeriesService,
	groups secondary.GroupRepository,
	log *zap.Logger,
) *AdminService {
	return &AdminService{
		cfg:        cfg,
		messenger:  messenger,
		waits:      waits,
		characters: characters,
		series:     series,
		groups:     groups,
		log:        log,
	}
}

// AddSeries runs the series creation dialog: ask for a title, create the
// series, then ask for a banner photo. A timeout at either step leaves no
// series behind; the insert is rolled back when the banner never arrives.
func (s *AdminService) AddSeries(ctx context.Context, update secondary.Update) error {
	catalog, err := s.requireAdmin(ctx, update)
	if err != nil {
		return err
	}

	_, answer, err := s.waits.Ask(ctx, update.ChatID, update.SenderID,
		i18n.Text(catalog, "admin.ask_title"), conversation.AnyText(), dialogTimeout)
	if err != nil {
		return err
	}
	if answer == nil {
		return s.sendTimeout(ctx, update.ChatID, catalog)
	}

	series, err := s.series.CreateSeries(ctx, answer.Text)
	if err != nil {
		return err
	}

	_, banner, err := s.waits.Ask(ctx, update.ChatID, update.SenderID,
		i18n.Text(catalog, "admin.ask_banner", series.Title), conversation.Photo(), dialogTimeout)
	if err != nil {
		return err
	}
	if banner == nil {
		// The flow did not finish, so the insert goes too
		if err := s.series.DeleteSeries(ctx, series.ID); err != nil {
			return err
		}
		return s.sendTimeout(ctx, update.ChatID, catalog)
	}

	if err := s.series.SetSeriesBanner(ctx, series.ID, banner.PhotoBytes); err != nil {
		return err
	}

	s.send(ctx, update.ChatID, i18n.Text(catalog, "admin.series_added", series.Title))
	return nil
}

// RenameCharacter runs the rename dialog for one character.
func (s *AdminService) RenameCharacter(ctx context.Context, update secondary.Update, characterID int64) error {
	catalog, err := s.requireAdmin(ctx, update)
	if err != nil {
		return err
	}

	if _, err := s.characters.GetCharacter(ctx, characterID); err != nil {
		return err
	}

	_, answer, err := s.waits.Ask(ctx, update.ChatID, update.SenderID,
		i18n.Text(catalog, "admin.ask_name"), conversation.AnyText(), dialogTimeout)
	if err != nil {
		return err
	}
	if answer == nil {
		return s.sendTimeout(ctx, update.ChatID, catalog)
	}

	if err := s.characters.RenameCharacter(ctx, characterID, answer.Text); err != nil {
		return err
	}

	s.send(ctx, update.ChatID, i18n.Text(catalog, "admin.renamed", answer.Text))
	return nil
}

// SetCharacterPhoto runs the photo replacement dialog for one character.
func (s *AdminService) SetCharacterPhoto(ctx context.Context, update secondary.Update, characterID int64) error {
	catalog, err := s.requireAdmin(ctx, update)
	if err != nil {
		return err
	}

	character, err := s.characters.GetCharacter(ctx, characterID)
	if err != nil {
		return err
	}

	_, answer, err := s.waits.Ask(ctx, update.ChatID, update.SenderID,
		i18n.Text(catalog, "admin.ask_photo"), conversation.Photo(), dialogTimeout)
	if err != nil {
		return err
	}
	if answer == nil {
		return s.sendTimeout(ctx, update.ChatID, catalog)
	}

	if err := s.characters.SetCharacterImage(ctx, characterID, answer.PhotoBytes); err != nil {
		return err
	}

	s.send(ctx, update.ChatID, i18n.Text(catalog, "admin.photo_set", character.Name))
	return nil
}

// SetCharacterGender runs the gender selection dialog for one character,
// presented as an inline keyboard.
func (s *AdminService) SetCharacterGender(ctx context.Context, update secondary.Update, characterID int64) error {
	catalog, err := s.requireAdmin(ctx, update)
	if err != nil {
		return err
	}

	character, err := s.characters.GetCharacter(ctx, characterID)
	if err != nil {
		return err
	}

	prompt := i18n.GenderKeyboard(catalog, character.Name, map[string]string{
		"female": genderFemalePayload,
		"male":   genderMalePayload,
		"other":  genderOtherPayload,
	})

	handle, answer, err := s.waits.Ask(ctx, update.ChatID, update.SenderID, prompt,
		conversation.Callback(genderFemalePayload, genderMalePayload, genderOtherPayload), dialogTimeout)
	if err != nil {
		return err
	}

	if err := s.messenger.Delete(ctx, handle); err != nil {
		s.log.Debug("failed to delete gender prompt", zap.Error(err))
	}

	if answer == nil {
		return s.sendTimeout(ctx, update.ChatID, catalog)
	}

	if err := s.messenger.AnswerCallback(ctx, answer.CallbackID); err != nil {
		s.log.Debug("failed to answer gender callback", zap.Error(err))
	}

	gender := map[string]string{
		genderFemalePayload: "female",
		genderMalePayload:   "male",
		genderOtherPayload:  "other",
	}[answer.CallbackData]

	if err := s.characters.SetCharacterGender(ctx, characterID, gender); err != nil {
		return err
	}

	s.send(ctx, update.ChatID, i18n.Text(catalog, "admin.gender_set", character.Name))
	return nil
}

// requireAdmin checks the sender against the configured admin list, telling
// them off when they are not on it.
func (s *AdminService) requireAdmin(ctx context.Context, update secondary.Update) (*i18n.Catalog, error) {
	catalog := s.catalogFor(ctx, update.ChatID)
	if !s.cfg.IsAdmin(update.SenderID) {
		s.send(ctx, update.ChatID, i18n.Text(catalog, "admin.denied"))
		return nil, ErrNotAdmin
	}
	return catalog, nil
}

func (s *AdminService) sendTimeout(ctx context.Context, chatID int64, catalog *i18n.Catalog) error {
	s.send(ctx, chatID, i18n.Text(catalog, "admin.timeout"))
	return nil
}

// send delivers a notice, logging and swallowing transport failures.
func (s *AdminService) send(ctx context.Context, chatID int64, content secondary.Content) {
	if _, err := s.messenger.Send(ctx, chatID, content); err != nil {
		s.log.Warn("failed to send admin notice", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (s *AdminService) catalogFor(ctx context.Context, chatID int64) *i18n.Catalog {
	group, err := s.groups.GetByID(ctx, chatID)
	if err != nil || group == nil {
		return i18n.For(s.cfg.LanguageCode)
	}
	return i18n.For(group.LanguageCode)
}
