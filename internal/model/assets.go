package model

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	languagePath     = "./assets/language.json"
	commandsPath     = "./assets/commands.json"
	adminLibraryPath = "./assets/admin_library.json"
)

func (b *GlobalBot) ParseLangMap() {
	b.Language = parseAssetMap(languagePath)
}

func (b *GlobalBot) ParseAdminMap() {
	b.AdminLibrary = parseAssetMap(adminLibraryPath)
}

func parseAssetMap(path string) map[string]map[string]string {
	bytes, err := os.ReadFile(path)
	if err != nil {
		log.Fatal(err)
	}

	texts := make(map[string]map[string]string)
	if err := json.Unmarshal(bytes, &texts); err != nil {
		log.Fatal(err)
	}

	return texts
}

func (b *GlobalBot) ParseCommandsList() {
	bytes, err := os.ReadFile(commandsPath)
	if err != nil {
		log.Fatal(err)
	}

	commands := make(map[string]string)
	if err := json.Unmarshal(bytes, &commands); err != nil {
		log.Fatal(err)
	}

	b.Commands = commands
}

// GetCommandFromText resolves an inbound message to a handler command,
// either from a slash command or from a reply keyboard button text.
func (b *GlobalBot) GetCommandFromText(message *tgbotapi.Message, lang string, userID int64) (string, error) {
	if message.IsCommand() {
		if command, ok := b.Commands["/"+message.Command()]; ok {
			return command, nil
		}
	}

	for key, text := range b.GetTexts(lang) {
		if text != message.Text {
			continue
		}

		if command, ok := b.Commands[key]; ok {
			return command, nil
		}
	}

	return "", ErrCommandNotConverted
}

// EncodeLink builds the referral link user A hands out: /start with A's id
// as payload.
func EncodeLink(botLang string, referralID int64) string {
	return fmt.Sprintf("%s?start=%d", GetGlobalBot(botLang).BotLink, referralID)
}
