package secondary

import "context"

// UpdateKind discriminates the inbound update shapes the core cares about.
type UpdateKind int

const (
	// UpdateText is an ordinary text message.
	UpdateText UpdateKind = iota
	// UpdateCallback is an inline keyboard button press.
	UpdateCallback
	// UpdatePhoto is a message carrying a photo.
	UpdatePhoto
)

// Update is one normalized inbound chat update.
type Update struct {
	Kind UpdateKind

	ChatID    int64
	ChatTitle string
	IsGroup   bool

	SenderID       int64
	SenderUsername string
	SenderName     string
	SenderIsBot    bool

	MessageID int
	Text      string
	ReplyToID int // 0 means not a reply

	CallbackID   string // Callback query ID, for acking
	CallbackData string // Button payload, UpdateCallback only

	PhotoBytes []byte // UpdatePhoto only
}

// Handle identifies a message the bot sent, for later edits or deletion.
type Handle struct {
	ChatID    int64
	MessageID int
}

// Button is one inline keyboard button.
type Button struct {
	Label string
	Data  string
}

// Content is a rendered outbound message: HTML text plus optional photo and
// inline keyboard. Rendering happens in i18n/templating; the transport treats
// it as opaque.
type Content struct {
	HTML      string
	Photo     []byte
	ReplyToID int // 0 means not a reply
	Keyboard  [][]Button
}

// Messenger defines the secondary port for the chat transport.
type Messenger interface {
	// Send delivers a message to a chat and returns its handle.
	Send(ctx context.Context, chatID int64, content Content) (Handle, error)

	// Edit replaces the text/keyboard of a previously sent message.
	Edit(ctx context.Context, handle Handle, content Content) error

	// Delete removes a previously sent message.
	Delete(ctx context.Context, handle Handle) error

	// AnswerCallback acks a callback query so the client stops its spinner.
	AnswerCallback(ctx context.Context, callbackID string) error

	// Run blocks delivering inbound updates to handle, in arrival order,
	// until ctx is cancelled.
	Run(ctx context.Context, handle func(Update)) error
}
