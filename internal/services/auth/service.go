package auth

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/bots-empire/campaign-bot/internal/model"
)

// Ledger is the slice of the campaign store the state machine mutates.
// Every method that credits or debits is conditional and exactly-once;
// the bool result reports whether the mutation actually happened.
type Ledger interface {
	GetUser(userID int64) (*model.User, error)
	CreateUser(user *model.User) error
	SetLanguage(userID int64, lang string) error

	AdvanceState(userID int64, from, to string) (bool, error)
	CompleteTasks(userID int64, reward int) (bool, error)
	ClaimDailyBonus(userID int64, amount int, date string) (bool, error)

	AddReferral(referrerID, referredID int64) (bool, error)
	RewardReferral(referredID int64, amount int) (int64, bool, error)

	SetAccount(userID int64, bank, number, name string) error
	Withdraw(userID int64, amount int) (*model.Withdrawal, error)
	Withdrawals(userID int64) ([]*model.Withdrawal, error)
}

// Sender is the slice of the base-bot message service the handlers reply
// through.
type Sender interface {
	SendSimpleMsg(chatID int64, text string) error
	SendMsgToUser(msg tgbotapi.Chattable, userID int64) error
	NewParseMessage(chatID int64, text string) error
	SendNotificationToDeveloper(text string, needPin bool)
}

type Auth struct {
	bot    *model.GlobalBot
	ledger Ledger

	msgs Sender
}

func NewAuthService(bot *model.GlobalBot, ledger Ledger, msgs Sender) *Auth {
	return &Auth{
		bot:    bot,
		ledger: ledger,
		msgs:   msgs,
	}
}
