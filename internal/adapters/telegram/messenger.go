// Package telegram implements the chat transport secondary port on top of
// the Telegram Bot API.
package telegram

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"github.com/example/gachabot/internal/ports/secondary"
)

// Messenger adapts a telebot bot to the secondary transport port.
type Messenger struct {
	bot *tele.Bot
	log *zap.Logger
}

// NewMessenger creates a long-polling Telegram transport.
func NewMessenger(token string, log *zap.Logger) (*Messenger, error) {
	bot, err := tele.NewBot(tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to telegram: %w", err)
	}
	return &Messenger{bot: bot, log: log}, nil
}

// Send delivers a message to a chat and returns its handle.
func (m *Messenger) Send(ctx context.Context, chatID int64, content secondary.Content) (secondary.Handle, error) {
	options := m.sendOptions(chatID, content)

	var payload interface{} = content.HTML
	if len(content.Photo) > 0 {
		payload = &tele.Photo{
			File:    tele.FromReader(bytes.NewReader(content.Photo)),
			Caption: content.HTML,
		}
	}

	message, err := m.bot.Send(tele.ChatID(chatID), payload, options)
	if err != nil {
		return secondary.Handle{}, fmt.Errorf("failed to send message: %w", err)
	}
	return secondary.Handle{ChatID: chatID, MessageID: message.ID}, nil
}

// Edit replaces the text and keyboard of a previously sent message.
func (m *Messenger) Edit(ctx context.Context, handle secondary.Handle, content secondary.Content) error {
	stored := tele.StoredMessage{
		MessageID: strconv.Itoa(handle.MessageID),
		ChatID:    handle.ChatID,
	}
	_, err := m.bot.Edit(stored, content.HTML, m.sendOptions(handle.ChatID, content))
	if err != nil {
		return fmt.Errorf("failed to edit message: %w", err)
	}
	return nil
}

// Delete removes a previously sent message.
func (m *Messenger) Delete(ctx context.Context, handle secondary.Handle) error {
	stored := tele.StoredMessage{
		MessageID: strconv.Itoa(handle.MessageID),
		ChatID:    handle.ChatID,
	}
	if err := m.bot.Delete(stored); err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}
	return nil
}

// AnswerCallback acks a callback query.
func (m *Messenger) AnswerCallback(ctx context.Context, callbackID string) error {
	if err := m.bot.Respond(&tele.Callback{ID: callbackID}, &tele.CallbackResponse{}); err != nil {
		return fmt.Errorf("failed to answer callback: %w", err)
	}
	return nil
}

// Run blocks polling Telegram, translating every inbound update and passing
// it to handle, until ctx is cancelled. telebot dispatches handlers on their
// own goroutines, so a handler blocked in a dialog never stalls the poller.
func (m *Messenger) Run(ctx context.Context, handle func(secondary.Update)) error {
	m.bot.Handle(tele.OnText, func(c tele.Context) error {
		handle(m.fromMessage(c.Message(), secondary.UpdateText))
		return nil
	})
	m.bot.Handle(tele.OnPhoto, func(c tele.Context) error {
		update := m.fromMessage(c.Message(), secondary.UpdatePhoto)
		update.PhotoBytes = m.downloadPhoto(c.Message())
		handle(update)
		return nil
	})
	m.bot.Handle(tele.OnCallback, func(c tele.Context) error {
		handle(m.fromCallback(c.Callback()))
		return nil
	})

	go func() {
		<-ctx.Done()
		m.bot.Stop()
	}()

	m.bot.Start()
	return ctx.Err()
}

// fromMessage translates a telebot message into the port update shape.
func (m *Messenger) fromMessage(message *tele.Message, kind secondary.UpdateKind) secondary.Update {
	update := secondary.Update{
		Kind:      kind,
		ChatID:    message.Chat.ID,
		ChatTitle: message.Chat.Title,
		IsGroup:   message.Chat.Type == tele.ChatGroup || message.Chat.Type == tele.ChatSuperGroup,
		MessageID: message.ID,
		Text:      message.Text,
	}
	if update.Text == "" {
		update.Text = message.Caption
	}
	if message.Sender != nil {
		update.SenderID = message.Sender.ID
		update.SenderUsername = message.Sender.Username
		update.SenderName = strings.TrimSpace(message.Sender.FirstName + " " + message.Sender.LastName)
		update.SenderIsBot = message.Sender.IsBot
	}
	if message.ReplyTo != nil {
		update.ReplyToID = message.ReplyTo.ID
	}
	return update
}

// fromCallback translates a button press into the port update shape.
func (m *Messenger) fromCallback(callback *tele.Callback) secondary.Update {
	update := secondary.Update{
		Kind:         secondary.UpdateCallback,
		CallbackID:   callback.ID,
		CallbackData: strings.TrimPrefix(callback.Data, "\f"),
	}
	if callback.Sender != nil {
		update.SenderID = callback.Sender.ID
		update.SenderUsername = callback.Sender.Username
		update.SenderName = strings.TrimSpace(callback.Sender.FirstName + " " + callback.Sender.LastName)
		update.SenderIsBot = callback.Sender.IsBot
	}
	if callback.Message != nil {
		update.ChatID = callback.Message.Chat.ID
		update.ChatTitle = callback.Message.Chat.Title
		update.IsGroup = callback.Message.Chat.Type == tele.ChatGroup ||
			callback.Message.Chat.Type == tele.ChatSuperGroup
		update.MessageID = callback.Message.ID
	}
	return update
}

// downloadPhoto fetches the largest size of a message photo. Best effort; a
// failed download degrades to a photo-less update.
func (m *Messenger) downloadPhoto(message *tele.Message) []byte {
	if message.Photo == nil {
		return nil
	}
	reader, err := m.bot.File(&message.Photo.File)
	if err != nil {
		m.log.Warn("failed to download photo", zap.Error(err))
		return nil
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		m.log.Warn("failed to read photo", zap.Error(err))
		return nil
	}
	return data
}

// sendOptions builds the telebot options for one outbound message.
func (m *Messenger) sendOptions(chatID int64, content secondary.Content) *tele.SendOptions {
	options := &tele.SendOptions{ParseMode: tele.ModeHTML}

	if content.ReplyToID != 0 {
		options.ReplyTo = &tele.Message{ID: content.ReplyToID, Chat: &tele.Chat{ID: chatID}}
	}

	if len(content.Keyboard) > 0 {
		rows := make([][]tele.InlineButton, 0, len(content.Keyboard))
		for _, row := range content.Keyboard {
			buttons := make([]tele.InlineButton, 0, len(row))
			for _, button := range row {
				buttons = append(buttons, tele.InlineButton{Text: button.Label, Data: button.Data})
			}
			rows = append(rows, buttons)
		}
		options.ReplyMarkup = &tele.ReplyMarkup{InlineKeyboard: rows}
	}

	return options
}

// Ensure Messenger implements the transport port.
var _ secondary.Messenger = (*Messenger)(nil)
