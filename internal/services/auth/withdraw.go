package auth

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"

	"github.com/bots-empire/campaign-bot/internal/model"
)

func todayUTC() string {
	return time.Now().UTC().Format("2006-01-02")
}

// WithdrawMoneyFromBalance validates the requested amount and records the
// withdrawal. The balance check and the debit are a single conditional
// update in the ledger, so two concurrent requests cannot overdraw.
func (a *Auth) WithdrawMoneyFromBalance(s *model.Situation, amount string) error {
	if !s.User.Verified() {
		return a.msgs.SendSimpleMsg(s.User.ID, a.bot.LangText(s.User.Language, "verify_first"))
	}

	amount = strings.Replace(amount, " ", "", -1)
	amountInt, err := strconv.Atoi(amount)
	if err != nil || amountInt <= 0 {
		msg := tgbotapi.NewMessage(s.User.ID, a.bot.LangText(s.User.Language, "incorrect_amount"))
		return a.msgs.SendMsgToUser(msg, s.User.ID)
	}

	if amountInt < model.AdminSettings.GetParams(s.BotLang).MinWithdrawalAmount {
		return a.minAmountNotReached(s)
	}

	if !s.User.HasAccount() {
		return a.accountNotSet(s)
	}

	withdrawal, err := a.ledger.Withdraw(s.User.ID, amountInt)
	switch {
	case errors.Is(err, model.ErrInsufficientBalance):
		msg := tgbotapi.NewMessage(s.User.ID, a.bot.LangText(s.User.Language, "lack_of_funds"))
		return a.msgs.SendMsgToUser(msg, s.User.ID)

	case err != nil:
		return errors.Wrap(err, "failed withdraw")
	}

	model.WithdrawalRequests.WithLabelValues(s.BotLang).Inc()

	a.notifyOperator(s, withdrawal)

	text := a.bot.LangText(s.User.Language, "withdrawal_request_sent",
		amountInt,
		model.AdminSettings.GetCurrency(s.BotLang))

	return a.msgs.NewParseMessage(s.User.ID, text)
}

func (a *Auth) minAmountNotReached(s *model.Situation) error {
	text := a.bot.LangText(s.User.Language, "minimum_amount_not_reached",
		model.AdminSettings.GetParams(s.BotLang).MinWithdrawalAmount,
		model.AdminSettings.GetCurrency(s.BotLang))

	return a.msgs.NewParseMessage(s.User.ID, text)
}

func (a *Auth) accountNotSet(s *model.Situation) error {
	text := a.bot.LangText(s.User.Language, "account_not_set")

	return a.msgs.SendSimpleMsg(s.User.ID, text)
}

// notifyOperator forwards the request to the operator chat. Payouts are
// manual, so a failed notification must not fail the user flow; the
// request is already recorded and visible through the history.
func (a *Auth) notifyOperator(s *model.Situation, withdrawal *model.Withdrawal) {
	operatorChatID := model.AdminSettings.GetOperatorChatID(s.BotLang)
	if operatorChatID == 0 {
		return
	}

	text := a.bot.LangText(s.BotLang, "operator_withdrawal_request",
		withdrawal.ID,
		s.User.ID,
		withdrawal.Amount,
		model.AdminSettings.GetCurrency(s.BotLang),
		withdrawal.Bank,
		withdrawal.AccountNumber,
		withdrawal.AccountName)

	if err := a.msgs.NewParseMessage(operatorChatID, text); err != nil {
		a.msgs.SendNotificationToDeveloper(
			fmt.Sprintf("%s // %s // error in notify operator: %s", a.bot.BotLang, a.bot.BotLink, err.Error()),
			false)
	}
}

func (a *Auth) SendWithdrawalHistory(s *model.Situation) error {
	withdrawals, err := a.ledger.Withdrawals(s.User.ID)
	if err != nil {
		return errors.Wrap(err, "failed get withdrawals")
	}

	if len(withdrawals) == 0 {
		return a.msgs.SendSimpleMsg(s.User.ID, a.bot.LangText(s.User.Language, "withdrawal_history_empty"))
	}

	text := a.bot.LangText(s.User.Language, "withdrawal_history_header")
	for _, w := range withdrawals {
		text += a.bot.LangText(s.User.Language, "withdrawal_history_row",
			w.RequestedAt,
			w.Amount,
			model.AdminSettings.GetCurrency(s.BotLang),
			a.bot.LangText(s.User.Language, "withdrawal_status_"+w.Status))
	}

	return a.msgs.NewParseMessage(s.User.ID, text)
}
