package services

import (
	"github.com/bots-empire/campaign-bot/internal/model"
)

const topUsersByBalance = 10

func (u *Users) sendTopPlayers(s *model.Situation) error {
	users, err := u.store.TopUsersByBalance(topUsersByBalance)
	if err != nil {
		return err
	}

	var text string
	for i, user := range users {
		key := "top_players_row"
		if user.ID == s.User.ID {
			key = "top_players_row_self"
		}

		text += u.bot.LangText(s.User.Language, key,
			i+1,
			user.Balance,
			model.AdminSettings.GetCurrency(s.BotLang))
	}

	rank, err := u.store.BalanceRank(s.User.ID)
	if err != nil {
		return err
	}

	text += u.bot.LangText(s.User.Language, "your_position_text", rank)

	return u.Msgs.NewParseMessage(s.User.ID, text)
}
