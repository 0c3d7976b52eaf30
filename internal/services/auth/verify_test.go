package auth

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bots-empire/campaign-bot/internal/model"
)

// fakeTelegramClient answers getMe during construction and getChatMember
// with the configured status. With down set, the membership call fails.
type fakeTelegramClient struct {
	memberStatus string
	down         bool
}

func (c *fakeTelegramClient) Do(req *http.Request) (*http.Response, error) {
	if strings.Contains(req.URL.Path, "getChatMember") {
		if c.down {
			return nil, errors.New("connection refused")
		}

		body := fmt.Sprintf(`{"ok":true,"result":{"status":%q,"user":{"id":300,"is_bot":false,"first_name":"test"}}}`,
			c.memberStatus)
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(body)),
		}, nil
	}

	return &http.Response{
		StatusCode: http.StatusOK,
		Body: io.NopCloser(strings.NewReader(
			`{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"campaign","username":"campaign_demo_bot"}}`)),
	}, nil
}

func newTestAuthWithBot(t *testing.T, ledger Ledger, sender Sender, client tgbotapi.HTTPClient) *Auth {
	api, err := tgbotapi.NewBotAPIWithClient("123:test", tgbotapi.APIEndpoint, client)
	require.NoError(t, err)

	bot := &model.GlobalBot{
		BotLang:       "en",
		LanguageInBot: []string{"en"},
		Bot:           api,
	}

	return NewAuthService(bot, ledger, sender)
}

func TestCompleteVerification(t *testing.T) {
	model.AdminSettings = settingsWithPolicy(model.PolicyDeferred)

	situation := func(state string) *model.Situation {
		return &model.Situation{
			BotLang: "en",
			User:    &model.User{ID: 300, Language: "en", CampaignState: state},
		}
	}

	t.Run("verified user is not credited twice", func(t *testing.T) {
		ledger := &mockLedger{}
		sender := &mockSender{}
		sender.On("SendSimpleMsg", int64(300), mock.Anything).Return(nil)

		a := newTestAuthWithSender(ledger, sender)

		err := a.CompleteVerification(situation(model.StateVerified))

		assert.NoError(t, err)
		ledger.AssertNotCalled(t, "CompleteTasks", mock.Anything, mock.Anything)
	})

	t.Run("social step is required first", func(t *testing.T) {
		ledger := &mockLedger{}
		sender := &mockSender{}
		sender.On("SendSimpleMsg", int64(300), mock.Anything).Return(nil)

		a := newTestAuthWithSender(ledger, sender)

		err := a.CompleteVerification(situation(model.StateChannelOK))

		assert.NoError(t, err)
		ledger.AssertNotCalled(t, "CompleteTasks", mock.Anything, mock.Anything)
	})

	t.Run("leaving the channel blocks completion", func(t *testing.T) {
		ledger := &mockLedger{}
		sender := &mockSender{}
		sender.On("SendMsgToUser", mock.Anything, int64(300)).Return(nil)

		a := newTestAuthWithBot(t, ledger, sender, &fakeTelegramClient{memberStatus: "left"})

		err := a.CompleteVerification(situation(model.StateSocialPending))

		assert.NoError(t, err)
		ledger.AssertNotCalled(t, "CompleteTasks", mock.Anything, mock.Anything)
	})

	t.Run("api failure fails closed", func(t *testing.T) {
		ledger := &mockLedger{}
		sender := &mockSender{}
		sender.On("SendNotificationToDeveloper", mock.Anything, false).Return()
		sender.On("SendMsgToUser", mock.Anything, int64(300)).Return(nil)

		a := newTestAuthWithBot(t, ledger, sender, &fakeTelegramClient{down: true})

		err := a.CompleteVerification(situation(model.StateSocialPending))

		assert.NoError(t, err)
		ledger.AssertNotCalled(t, "CompleteTasks", mock.Anything, mock.Anything)
		sender.AssertExpectations(t)
	})

	t.Run("completion credits the reward and the deferred referrer", func(t *testing.T) {
		ledger := &mockLedger{}
		ledger.On("CompleteTasks", int64(300), 50).Return(true, nil)
		ledger.On("RewardReferral", int64(300), 70).Return(int64(0), false, nil)
		sender := &mockSender{}
		sender.On("NewParseMessage", int64(300), mock.Anything).Return(nil)

		a := newTestAuthWithBot(t, ledger, sender, &fakeTelegramClient{memberStatus: "member"})

		err := a.CompleteVerification(situation(model.StateSocialPending))

		assert.NoError(t, err)
		ledger.AssertExpectations(t)
		sender.AssertExpectations(t)
	})

	t.Run("replayed completion is not credited again", func(t *testing.T) {
		ledger := &mockLedger{}
		ledger.On("CompleteTasks", int64(300), 50).Return(false, nil)
		sender := &mockSender{}
		sender.On("SendSimpleMsg", int64(300), mock.Anything).Return(nil)

		a := newTestAuthWithBot(t, ledger, sender, &fakeTelegramClient{memberStatus: "member"})

		err := a.CompleteVerification(situation(model.StateSocialPending))

		assert.NoError(t, err)
		ledger.AssertNotCalled(t, "RewardReferral", mock.Anything, mock.Anything)
		sender.AssertExpectations(t)
	})
}
