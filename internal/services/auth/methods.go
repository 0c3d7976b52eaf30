package auth

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"

	"github.com/bots-empire/campaign-bot/internal/model"
)

// CheckingTheUser loads the user record, creating a default one on first
// contact. Records are never deleted afterwards.
func (a *Auth) CheckingTheUser(message *tgbotapi.Message) (*model.User, error) {
	user, err := a.ledger.GetUser(message.From.ID)
	switch {
	case err == nil:
		return user, nil

	case errors.Is(err, model.ErrUserNotFound):
		newUser := &model.User{
			ID:       message.From.ID,
			Language: a.startLanguage(message.From.LanguageCode),
		}
		if err := a.ledger.CreateUser(newUser); err != nil {
			return nil, errors.Wrap(err, "failed create user")
		}

		user, err := a.ledger.GetUser(message.From.ID)
		if err != nil {
			return nil, errors.Wrap(err, "failed reread created user")
		}

		if len(a.bot.LanguageInBot) > 1 {
			return user, model.ErrNotSelectedLanguage
		}
		return user, nil

	default:
		return nil, errors.Wrap(err, "failed get user")
	}
}

func (a *Auth) startLanguage(telegramCode string) string {
	for _, lang := range a.bot.LanguageInBot {
		if lang == telegramCode {
			return lang
		}
	}

	return a.bot.LanguageInBot[0]
}

func (a *Auth) GetUser(userID int64) (*model.User, error) {
	return a.ledger.GetUser(userID)
}

func (a *Auth) SetStartLanguage(callbackQuery *tgbotapi.CallbackQuery) error {
	data := strings.Split(callbackQuery.Data, "?")
	if len(data) != 2 {
		return model.ErrCommandNotConverted
	}

	return a.ledger.SetLanguage(callbackQuery.From.ID, data[1])
}
