package i18n

import (
	"fmt"
	"html"
	"strings"

	"github.com/example/gachabot/internal/ports/secondary"
)

// Stars renders a rarity as a row of star glyphs.
func Stars(n int) string {
	if n < 1 {
		n = 1
	}
	return strings.Repeat("⭐", n)
}

// SpawnAnnouncement renders the presentation message opening a claim window.
func SpawnAnnouncement(c *Catalog, character *secondary.CharacterRecord) secondary.Content {
	return secondary.Content{
		HTML:  c.T("spawn.announce", html.EscapeString(character.Name), Stars(character.Stars)),
		Photo: character.Image,
	}
}

// EscapeNotice renders the forced-expiry message, threaded under the
// stranded spawn announcement.
func EscapeNotice(c *Catalog, character *secondary.CharacterRecord, replyToID int) secondary.Content {
	return secondary.Content{
		HTML:      c.T("spawn.escaped", html.EscapeString(character.Name)),
		ReplyToID: replyToID,
	}
}

// WrongGuessNotice renders the miss reply, threaded under the guess.
func WrongGuessNotice(c *Catalog, replyToID int) secondary.Content {
	return secondary.Content{HTML: c.T("guess.wrong"), ReplyToID: replyToID}
}

// CheatNotice renders the voided-claim message for a bot guesser.
func CheatNotice(c *Catalog, character *secondary.CharacterRecord) secondary.Content {
	return secondary.Content{HTML: c.T("guess.cheated", html.EscapeString(character.Name))}
}

// ClaimNotice renders the successful-claim message.
func ClaimNotice(c *Catalog, character *secondary.CharacterRecord, claimerName string) secondary.Content {
	return secondary.Content{
		HTML: c.T("guess.claimed", html.EscapeString(character.Name), html.EscapeString(claimerName)),
	}
}

// OwnedNotice tells a guesser they already collected the character.
func OwnedNotice(c *Catalog, character *secondary.CharacterRecord, replyToID int) secondary.Content {
	return secondary.Content{
		HTML:      c.T("guess.owned", html.EscapeString(character.Name)),
		ReplyToID: replyToID,
	}
}

// SwapPrompt renders the capacity negotiation with a yes/no keyboard.
func SwapPrompt(c *Catalog, cap int, incoming, oldest *secondary.CharacterRecord, yesData, noData string) secondary.Content {
	return secondary.Content{
		HTML: c.T("swap.prompt", cap, cap,
			html.EscapeString(oldest.Name), html.EscapeString(incoming.Name)),
		Keyboard: [][]secondary.Button{{
			{Label: c.T("swap.yes"), Data: yesData},
			{Label: c.T("swap.no"), Data: noData},
		}},
	}
}

// SwapDone renders the accepted-swap message.
func SwapDone(c *Catalog, evicted, incoming *secondary.CharacterRecord) secondary.Content {
	return secondary.Content{
		HTML: c.T("swap.done", html.EscapeString(evicted.Name), html.EscapeString(incoming.Name)),
	}
}

// SwapDeclined renders the declined-swap message.
func SwapDeclined(c *Catalog, incoming *secondary.CharacterRecord) secondary.Content {
	return secondary.Content{HTML: c.T("swap.declined", html.EscapeString(incoming.Name))}
}

// CollectionList renders a user's collection for one chat.
func CollectionList(c *Catalog, ownerName string, cap int, characters []*secondary.CharacterRecord) secondary.Content {
	if len(characters) == 0 {
		return secondary.Content{HTML: c.T("collection.empty")}
	}

	var b strings.Builder
	b.WriteString(c.T("collection.header", html.EscapeString(ownerName), len(characters), cap))
	for _, character := range characters {
		b.WriteString(fmt.Sprintf("\n%s <b>%s</b>", Stars(character.Stars), html.EscapeString(character.Name)))
	}
	return secondary.Content{HTML: b.String()}
}

// SeriesPage renders one page of a series' roster.
func SeriesPage(c *Catalog, title string, page int, characters []*secondary.CharacterRecord) secondary.Content {
	if len(characters) == 0 {
		return secondary.Content{HTML: c.T("series.empty")}
	}

	var b strings.Builder
	b.WriteString(c.T("series.header", html.EscapeString(title), page))
	for _, character := range characters {
		b.WriteString(fmt.Sprintf("\n%d. %s <b>%s</b>",
			character.ID, Stars(character.Stars), html.EscapeString(character.Name)))
	}
	return secondary.Content{HTML: b.String()}
}

// GenderKeyboard renders the gender-selection prompt for admin flows.
func GenderKeyboard(c *Catalog, characterName string, payloads map[string]string) secondary.Content {
	return secondary.Content{
		HTML: c.T("admin.ask_gender", html.EscapeString(characterName)),
		Keyboard: [][]secondary.Button{{
			{Label: c.T("gender.female"), Data: payloads["female"]},
			{Label: c.T("gender.male"), Data: payloads["male"]},
			{Label: c.T("gender.other"), Data: payloads["other"]},
		}},
	}
}

// CharacterCard renders the detail card for one character, with the stored
// photo when there is one.
func CharacterCard(c *Catalog, character *secondary.CharacterRecord, seriesTitle string) secondary.Content {
	series := c.T("character.no_series")
	if seriesTitle != "" {
		series = html.EscapeString(seriesTitle)
	}
	return secondary.Content{
		HTML:  c.T("character.card", html.EscapeString(character.Name), Stars(character.Stars), series, character.ID),
		Photo: character.Image,
	}
}

// LanguageKeyboard renders the language-selection prompt. Payloads map
// language codes to callback data.
func LanguageKeyboard(c *Catalog, payloads map[string]string) secondary.Content {
	row := make([]secondary.Button, 0, len(payloads))
	for _, code := range Languages() {
		data, ok := payloads[code]
		if !ok {
			continue
		}
		row = append(row, secondary.Button{Label: c.T("language.name." + code), Data: data})
	}
	return secondary.Content{
		HTML:     c.T("language.pick"),
		Keyboard: [][]secondary.Button{row},
	}
}

// Text renders a plain catalog message with no media or keyboard.
func Text(c *Catalog, key string, args ...interface{}) secondary.Content {
	return secondary.Content{HTML: c.T(key, args...)}
}
