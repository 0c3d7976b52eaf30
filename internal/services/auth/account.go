package auth

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"

	"github.com/bots-empire/campaign-bot/internal/db"
	"github.com/bots-empire/campaign-bot/internal/model"
)

var accountNumberRx = regexp.MustCompile(`^\d{6,20}$`)

// Payout account setup is a three step conversation driven by the redis
// level: bank, account number, account name. Each step packs what was
// already collected into the next level, so the flow survives restarts
// and never needs per-field "awaiting" flags.

func (a *Auth) StartAccountSetup(s *model.Situation) error {
	db.RdbSetUser(s.BotLang, s.User.ID, "/set_account_bank")

	return a.msgs.SendSimpleMsg(s.User.ID, a.bot.LangText(s.User.Language, "choose_bank_text"))
}

func (a *Auth) SetAccountBank(s *model.Situation) error {
	bank := strings.TrimSpace(s.Message.Text)
	if bank == "" {
		return a.msgs.SendSimpleMsg(s.User.ID, a.bot.LangText(s.User.Language, "choose_bank_text"))
	}

	db.RdbSetUser(s.BotLang, s.User.ID, "/set_account_number?"+bank)

	return a.msgs.SendSimpleMsg(s.User.ID, a.bot.LangText(s.User.Language, "enter_account_number"))
}

func (a *Auth) SetAccountNumber(s *model.Situation) error {
	number := strings.TrimSpace(s.Message.Text)
	if !accountNumberRx.MatchString(number) {
		return a.msgs.SendSimpleMsg(s.User.ID, a.bot.LangText(s.User.Language, "incorrect_account_number"))
	}

	data := strings.Split(s.Params.Level, "?")
	if len(data) != 2 {
		return model.ErrCommandNotConverted
	}

	db.RdbSetUser(s.BotLang, s.User.ID, "/set_account_name?"+data[1]+"?"+number)

	return a.msgs.SendSimpleMsg(s.User.ID, a.bot.LangText(s.User.Language, "enter_account_name"))
}

func (a *Auth) SetAccountName(s *model.Situation) error {
	name := strings.TrimSpace(s.Message.Text)
	if name == "" {
		return a.msgs.SendSimpleMsg(s.User.ID, a.bot.LangText(s.User.Language, "incorrect_account_name"))
	}

	data := strings.Split(s.Params.Level, "?")
	if len(data) != 3 {
		return model.ErrCommandNotConverted
	}

	if err := a.ledger.SetAccount(s.User.ID, data[1], data[2], name); err != nil {
		return errors.Wrap(err, "failed set account")
	}

	db.RdbSetUser(s.BotLang, s.User.ID, "main")

	return a.msgs.SendSimpleMsg(s.User.ID, a.bot.LangText(s.User.Language, "account_saved"))
}
