package services

import (
	"github.com/bots-empire/base-bot/msgs"

	"github.com/bots-empire/campaign-bot/internal/model"
	"github.com/bots-empire/campaign-bot/internal/services/administrator"
	"github.com/bots-empire/campaign-bot/internal/services/auth"
	"github.com/bots-empire/campaign-bot/internal/store"
)

type Users struct {
	bot *model.GlobalBot

	auth  *auth.Auth
	admin *administrator.Admin
	store *store.Store
	Msgs  *msgs.Service
}

func NewUsersService(bot *model.GlobalBot, auth *auth.Auth, admin *administrator.Admin, store *store.Store, msgs *msgs.Service) *Users {
	return &Users{
		bot:   bot,
		auth:  auth,
		admin: admin,
		store: store,
		Msgs:  msgs,
	}
}

func (u *Users) GelBotLang() string {
	return u.bot.BotLang
}
