package conversation

import "github.com/example/gachabot/internal/ports/secondary"

// TextReplyTo matches a text message replying to a specific message ID.
func TextReplyTo(messageID int) Predicate {
	return func(update secondary.Update) bool {
		return update.Kind == secondary.UpdateText &&
			update.Text != "" &&
			update.ReplyToID == messageID
	}
}

// AnyText matches any non-empty text message.
func AnyText() Predicate {
	return func(update secondary.Update) bool {
		return update.Kind == secondary.UpdateText && update.Text != ""
	}
}

// Photo matches any message carrying a photo.
func Photo() Predicate {
	return func(update secondary.Update) bool {
		return update.Kind == secondary.UpdatePhoto && len(update.PhotoBytes) > 0
	}
}

// Callback matches a button press whose payload is one of the given values.
func Callback(payloads ...string) Predicate {
	return func(update secondary.Update) bool {
		if update.Kind != secondary.UpdateCallback {
			return false
		}
		for _, payload := range payloads {
			if update.CallbackData == payload {
				return true
			}
		}
		return false
	}
}
