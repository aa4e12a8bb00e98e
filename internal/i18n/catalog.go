// Package i18n holds the locale catalogs and renders user-facing messages
// as HTML content for the transport.
package i18n

import "fmt"

// Catalog resolves message keys for one language.
type Catalog struct {
	lang    string
	strings map[string]string
}

// For returns the catalog for a language code, falling back to English for
// unknown codes.
func For(lang string) *Catalog {
	strings, ok := catalogs[lang]
	if !ok {
		lang = "en"
		strings = catalogs["en"]
	}
	return &Catalog{lang: lang, strings: strings}
}

// Supported reports whether a language code has a catalog.
func Supported(lang string) bool {
	_, ok := catalogs[lang]
	return ok
}

// Languages returns the supported language codes.
func Languages() []string {
	return []string{"en", "pt"}
}

// T formats the message for a key. Unknown keys fall back to English, then
// to the key itself so a missing translation never panics at runtime.
func (c *Catalog) T(key string, args ...interface{}) string {
	format, ok := c.strings[key]
	if !ok {
		format, ok = catalogs["en"][key]
	}
	if !ok {
		return key
	}
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

var catalogs = map[string]map[string]string{
	"en": {
		"spawn.announce":      "A wild character appeared!\n\n<b>%s</b> %s\nReply to this message with their name to claim them!",
		"spawn.escaped":       "<b>%s</b> slipped away unnoticed... better luck next time.",
		"guess.wrong":         "That's not their name. Look closer!",
		"guess.cheated":       "Automated accounts can't play. <b>%s</b> vanished in disgust.",
		"guess.claimed":       "<b>%s</b> joins %s's collection!",
		"guess.owned":         "You already have <b>%s</b>. Leave some for the others!",
		"swap.prompt":         "Your collection is full (%d/%d). Trade <b>%s</b> for <b>%s</b>?",
		"swap.done":           "Done! <b>%s</b> left and <b>%s</b> took their place.",
		"swap.declined":       "<b>%s</b> waved goodbye and wandered off.",
		"swap.yes":            "Swap",
		"swap.no":             "Keep mine",
		"collection.header":   "%s's collection (%d/%d):",
		"collection.empty":    "Your collection here is empty. Keep chatting!",
		"series.header":       "<b>%s</b>, page %d",
		"series.empty":        "No characters in this series yet.",
		"language.changed":    "Language updated.",
		"language.unknown":    "I don't speak that one. Supported: %s",
		"language.pick":       "Pick a language for this chat:",
		"language.name.en":    "English",
		"language.name.pt":    "Português",
		"start.welcome":       "Hello! I run a character collecting game. Add me to a group, keep chatting, and characters will show up on their own. Reply to a spawn with the character's name to claim them. Send /help for the commands.",
		"help.text":           "Commands:\n/collection - your characters in this chat\n/series - browse the series roster\n/character &lt;id&gt; - character details\n/language - change my language here (admins)\n\nWhen a character appears, reply to the spawn message with their name to claim them. Ignore them long enough and they escape.",
		"character.card":      "<b>%s</b> %s\n%s\nID: <code>%d</code>",
		"character.no_series": "(no series)",
		"character.not_found": "No character with that ID.",
		"character.usage":     "Usage: /character &lt;id&gt;",
		"admin.denied":        "You are not allowed to do that.",
		"admin.ask_title":     "Send the series title:",
		"admin.ask_banner":    "Now send a banner photo for <b>%s</b>:",
		"admin.ask_name":      "Send the character's new name:",
		"admin.ask_photo":     "Send the new photo:",
		"admin.ask_gender":    "Pick a gender for <b>%s</b>:",
		"admin.timeout":       "Timed out. Nothing was changed.",
		"admin.series_added":  "Series <b>%s</b> created.",
		"admin.renamed":       "Renamed to <b>%s</b>.",
		"admin.photo_set":     "Photo updated for <b>%s</b>.",
		"admin.gender_set":    "Gender updated for <b>%s</b>.",
		"gender.female":       "Female",
		"gender.male":         "Male",
		"gender.other":        "Other",
	},
	"pt": {
		"spawn.announce":      "Um personagem selvagem apareceu!\n\n<b>%s</b> %s\nResponda a esta mensagem com o nome para capturá-lo!",
		"spawn.escaped":       "<b>%s</b> escapou sem ser notado... mais sorte na próxima vez.",
		"guess.wrong":         "Esse não é o nome. Olhe com atenção!",
		"guess.cheated":       "Contas automatizadas não podem jogar. <b>%s</b> sumiu indignado.",
		"guess.claimed":       "<b>%s</b> entrou para a coleção de %s!",
		"guess.owned":         "Você já tem <b>%s</b>. Deixe para os outros!",
		"swap.prompt":         "Sua coleção está cheia (%d/%d). Trocar <b>%s</b> por <b>%s</b>?",
		"swap.done":           "Feito! <b>%s</b> saiu e <b>%s</b> ficou no lugar.",
		"swap.declined":       "<b>%s</b> acenou e foi embora.",
		"swap.yes":            "Trocar",
		"swap.no":             "Manter",
		"collection.header":   "Coleção de %s (%d/%d):",
		"collection.empty":    "Sua coleção aqui está vazia. Continue conversando!",
		"series.header":       "<b>%s</b>, página %d",
		"series.empty":        "Ainda não há personagens nesta série.",
		"language.changed":    "Idioma atualizado.",
		"language.unknown":    "Não falo esse. Suportados: %s",
		"language.pick":       "Escolha um idioma para este chat:",
		"language.name.en":    "English",
		"language.name.pt":    "Português",
		"start.welcome":       "Olá! Eu cuido de um jogo de colecionar personagens. Me adicione a um grupo, continue conversando e os personagens aparecem sozinhos. Responda a um spawn com o nome do personagem para capturá-lo. Envie /help para ver os comandos.",
		"help.text":           "Comandos:\n/collection - seus personagens neste chat\n/series - navegue pelas séries\n/character &lt;id&gt; - detalhes do personagem\n/language - mude meu idioma aqui (admins)\n\nQuando um personagem aparecer, responda à mensagem de spawn com o nome dele para capturá-lo. Se for ignorado por muito tempo, ele foge.",
		"character.card":      "<b>%s</b> %s\n%s\nID: <code>%d</code>",
		"character.no_series": "(sem série)",
		"character.not_found": "Nenhum personagem com esse ID.",
		"character.usage":     "Uso: /character &lt;id&gt;",
		"admin.denied":        "Você não pode fazer isso.",
		"admin.ask_title":     "Envie o título da série:",
		"admin.ask_banner":    "Agora envie uma foto de capa para <b>%s</b>:",
		"admin.ask_name":      "Envie o novo nome do personagem:",
		"admin.ask_photo":     "Envie a nova foto:",
		"admin.ask_gender":    "Escolha um gênero para <b>%s</b>:",
		"admin.timeout":       "Tempo esgotado. Nada foi alterado.",
		"admin.series_added":  "Série <b>%s</b> criada.",
		"admin.renamed":       "Renomeado para <b>%s</b>.",
		"admin.photo_set":     "Foto atualizada para <b>%s</b>.",
		"admin.gender_set":    "Gênero atualizado para <b>%s</b>.",
		"gender.female":       "Feminino",
		"gender.male":         "Masculino",
		"gender.other":        "Outro",
	},
}
