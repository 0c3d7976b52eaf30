package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/bots-empire/campaign-bot/internal/model"
)

func TestWithdrawMoneyFromBalance(t *testing.T) {
	model.AdminSettings = settingsWithPolicy(model.PolicyDeferred)

	verifiedUser := func() *model.User {
		return &model.User{
			ID:            300,
			Language:      "en",
			CampaignState: model.StateVerified,
			Bank:          "GTBank",
			AccountNumber: "0123456789",
			AccountName:   "John Doe",
		}
	}

	situation := func(u *model.User) *model.Situation {
		return &model.Situation{BotLang: "en", User: u}
	}

	t.Run("unverified user is rejected", func(t *testing.T) {
		ledger := &mockLedger{}
		sender := &mockSender{}
		sender.On("SendSimpleMsg", int64(300), mock.Anything).Return(nil)

		u := verifiedUser()
		u.CampaignState = model.StateUnverified

		err := newTestAuthWithSender(ledger, sender).WithdrawMoneyFromBalance(situation(u), "2000")

		assert.NoError(t, err)
		ledger.AssertNotCalled(t, "Withdraw", mock.Anything, mock.Anything)
	})

	t.Run("not a number is rejected", func(t *testing.T) {
		ledger := &mockLedger{}
		sender := &mockSender{}
		sender.On("SendMsgToUser", mock.Anything, int64(300)).Return(nil)

		err := newTestAuthWithSender(ledger, sender).WithdrawMoneyFromBalance(situation(verifiedUser()), "2oo0")

		assert.NoError(t, err)
		ledger.AssertNotCalled(t, "Withdraw", mock.Anything, mock.Anything)
	})

	t.Run("negative amount is rejected", func(t *testing.T) {
		ledger := &mockLedger{}
		sender := &mockSender{}
		sender.On("SendMsgToUser", mock.Anything, int64(300)).Return(nil)

		err := newTestAuthWithSender(ledger, sender).WithdrawMoneyFromBalance(situation(verifiedUser()), "-2000")

		assert.NoError(t, err)
		ledger.AssertNotCalled(t, "Withdraw", mock.Anything, mock.Anything)
	})

	t.Run("amount below the minimum is rejected", func(t *testing.T) {
		ledger := &mockLedger{}
		sender := &mockSender{}
		sender.On("NewParseMessage", int64(300), mock.Anything).Return(nil)

		err := newTestAuthWithSender(ledger, sender).WithdrawMoneyFromBalance(situation(verifiedUser()), "999")

		assert.NoError(t, err)
		ledger.AssertNotCalled(t, "Withdraw", mock.Anything, mock.Anything)
	})

	t.Run("missing payout account is rejected", func(t *testing.T) {
		ledger := &mockLedger{}
		sender := &mockSender{}
		sender.On("SendSimpleMsg", int64(300), mock.Anything).Return(nil)

		u := verifiedUser()
		u.AccountNumber = ""

		err := newTestAuthWithSender(ledger, sender).WithdrawMoneyFromBalance(situation(u), "2000")

		assert.NoError(t, err)
		ledger.AssertNotCalled(t, "Withdraw", mock.Anything, mock.Anything)
	})

	t.Run("insufficient balance is reported and nothing is recorded", func(t *testing.T) {
		ledger := &mockLedger{}
		ledger.On("Withdraw", int64(300), 2000).Return(nil, model.ErrInsufficientBalance)
		sender := &mockSender{}
		sender.On("SendMsgToUser", mock.Anything, int64(300)).Return(nil)

		err := newTestAuthWithSender(ledger, sender).WithdrawMoneyFromBalance(situation(verifiedUser()), "2000")

		assert.NoError(t, err)
		sender.AssertExpectations(t)
	})

	t.Run("valid request debits and confirms", func(t *testing.T) {
		ledger := &mockLedger{}
		ledger.On("Withdraw", int64(300), 2000).Return(&model.Withdrawal{
			ID:     1,
			UserID: 300,
			Amount: 2000,
			Status: model.WithdrawalPending,
		}, nil)
		sender := &mockSender{}
		sender.On("NewParseMessage", int64(300), mock.Anything).Return(nil)

		err := newTestAuthWithSender(ledger, sender).WithdrawMoneyFromBalance(situation(verifiedUser()), "2000")

		assert.NoError(t, err)
		ledger.AssertExpectations(t)
		sender.AssertExpectations(t)
	})

	t.Run("spaces in the amount are tolerated", func(t *testing.T) {
		ledger := &mockLedger{}
		ledger.On("Withdraw", int64(300), 2000).Return(&model.Withdrawal{
			ID:     2,
			UserID: 300,
			Amount: 2000,
			Status: model.WithdrawalPending,
		}, nil)
		sender := &mockSender{}
		sender.On("NewParseMessage", int64(300), mock.Anything).Return(nil)

		err := newTestAuthWithSender(ledger, sender).WithdrawMoneyFromBalance(situation(verifiedUser()), "2 000")

		assert.NoError(t, err)
		ledger.AssertExpectations(t)
	})
}
