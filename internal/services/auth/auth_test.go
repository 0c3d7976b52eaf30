package auth

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/bots-empire/campaign-bot/internal/model"
)

type mockLedger struct {
	mock.Mock
}

func (m *mockLedger) GetUser(userID int64) (*model.User, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockLedger) CreateUser(user *model.User) error {
	return m.Called(user).Error(0)
}

func (m *mockLedger) SetLanguage(userID int64, lang string) error {
	return m.Called(userID, lang).Error(0)
}

func (m *mockLedger) AdvanceState(userID int64, from, to string) (bool, error) {
	args := m.Called(userID, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *mockLedger) CompleteTasks(userID int64, reward int) (bool, error) {
	args := m.Called(userID, reward)
	return args.Bool(0), args.Error(1)
}

func (m *mockLedger) ClaimDailyBonus(userID int64, amount int, date string) (bool, error) {
	args := m.Called(userID, amount, date)
	return args.Bool(0), args.Error(1)
}

func (m *mockLedger) AddReferral(referrerID, referredID int64) (bool, error) {
	args := m.Called(referrerID, referredID)
	return args.Bool(0), args.Error(1)
}

func (m *mockLedger) RewardReferral(referredID int64, amount int) (int64, bool, error) {
	args := m.Called(referredID, amount)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

func (m *mockLedger) SetAccount(userID int64, bank, number, name string) error {
	return m.Called(userID, bank, number, name).Error(0)
}

func (m *mockLedger) Withdraw(userID int64, amount int) (*model.Withdrawal, error) {
	args := m.Called(userID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Withdrawal), args.Error(1)
}

func (m *mockLedger) Withdrawals(userID int64) ([]*model.Withdrawal, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Withdrawal), args.Error(1)
}

type mockSender struct {
	mock.Mock
}

func (m *mockSender) SendSimpleMsg(chatID int64, text string) error {
	return m.Called(chatID, text).Error(0)
}

func (m *mockSender) SendMsgToUser(msg tgbotapi.Chattable, userID int64) error {
	return m.Called(msg, userID).Error(0)
}

func (m *mockSender) NewParseMessage(chatID int64, text string) error {
	return m.Called(chatID, text).Error(0)
}

func (m *mockSender) SendNotificationToDeveloper(text string, needPin bool) {
	m.Called(text, needPin)
}

func settingsWithPolicy(policy string) *model.Admin {
	return &model.Admin{
		AdminID: map[int64]*model.AdminUser{},
		GlobalParameters: map[string]*model.GlobalParameters{
			"en": {
				Parameters: &model.Params{
					ReferralAmount:      70,
					ReferralPolicy:      policy,
					TaskReward:          50,
					DailyBonusAmount:    25,
					MinWithdrawalAmount: 1000,
					Currency:            "₦",
				},
				AdvertisingChan: &model.AdvertChannel{
					Url:       map[int]string{model.CampaignChannel: "https://t.me/campaign_channel"},
					ChannelID: map[int]int64{model.CampaignChannel: -1001234567},
				},
			},
		},
	}
}

func newTestAuth(ledger Ledger) *Auth {
	return newTestAuthWithSender(ledger, nil)
}

func newTestAuthWithSender(ledger Ledger, sender Sender) *Auth {
	bot := &model.GlobalBot{
		BotLang:       "en",
		LanguageInBot: []string{"en"},
	}

	return NewAuthService(bot, ledger, sender)
}

func TestCheckingTheUser(t *testing.T) {
	message := &tgbotapi.Message{
		From: &tgbotapi.User{ID: 100, LanguageCode: "en"},
	}

	t.Run("known user is returned as is", func(t *testing.T) {
		ledger := &mockLedger{}
		ledger.On("GetUser", int64(100)).
			Return(&model.User{ID: 100, CampaignState: model.StateVerified}, nil)

		user, err := newTestAuth(ledger).CheckingTheUser(message)

		assert.NoError(t, err)
		assert.True(t, user.Verified())
		ledger.AssertNotCalled(t, "CreateUser", mock.Anything)
	})

	t.Run("first contact creates the user", func(t *testing.T) {
		ledger := &mockLedger{}
		ledger.On("GetUser", int64(100)).
			Return(nil, model.ErrUserNotFound).Once()
		ledger.On("CreateUser", mock.MatchedBy(func(u *model.User) bool {
			return u.ID == 100 && u.Language == "en"
		})).Return(nil)
		ledger.On("GetUser", int64(100)).
			Return(&model.User{ID: 100, CampaignState: model.StateUnverified, Language: "en"}, nil)

		user, err := newTestAuth(ledger).CheckingTheUser(message)

		assert.NoError(t, err)
		assert.Equal(t, model.StateUnverified, user.CampaignState)
		ledger.AssertExpectations(t)
	})

	t.Run("multi language bot asks for a language first", func(t *testing.T) {
		ledger := &mockLedger{}
		ledger.On("GetUser", int64(100)).
			Return(nil, model.ErrUserNotFound).Once()
		ledger.On("CreateUser", mock.Anything).Return(nil)
		ledger.On("GetUser", int64(100)).
			Return(&model.User{ID: 100, Language: "en"}, nil)

		a := newTestAuth(ledger)
		a.bot.LanguageInBot = []string{"en", "de"}

		user, err := a.CheckingTheUser(message)

		assert.ErrorIs(t, err, model.ErrNotSelectedLanguage)
		assert.NotNil(t, user)
	})
}

func TestProcessReferralStart(t *testing.T) {
	model.AdminSettings = settingsWithPolicy(model.PolicyDeferred)

	situation := func() *model.Situation {
		return &model.Situation{
			BotLang: "en",
			User:    &model.User{ID: 200, Language: "en"},
		}
	}

	t.Run("garbage payload is ignored", func(t *testing.T) {
		ledger := &mockLedger{}

		err := newTestAuth(ledger).ProcessReferralStart(situation(), "not-a-number")

		assert.NoError(t, err)
		ledger.AssertNotCalled(t, "AddReferral", mock.Anything, mock.Anything)
	})

	t.Run("self referral is ignored", func(t *testing.T) {
		ledger := &mockLedger{}

		err := newTestAuth(ledger).ProcessReferralStart(situation(), "200")

		assert.NoError(t, err)
		ledger.AssertNotCalled(t, "AddReferral", mock.Anything, mock.Anything)
	})

	t.Run("unknown referrer is ignored", func(t *testing.T) {
		ledger := &mockLedger{}
		ledger.On("GetUser", int64(10)).Return(nil, model.ErrUserNotFound)

		err := newTestAuth(ledger).ProcessReferralStart(situation(), "10")

		assert.NoError(t, err)
		ledger.AssertNotCalled(t, "AddReferral", mock.Anything, mock.Anything)
	})

	t.Run("deferred policy records without paying", func(t *testing.T) {
		ledger := &mockLedger{}
		ledger.On("GetUser", int64(10)).Return(&model.User{ID: 10}, nil)
		ledger.On("AddReferral", int64(10), int64(200)).Return(true, nil)

		err := newTestAuth(ledger).ProcessReferralStart(situation(), "10")

		assert.NoError(t, err)
		ledger.AssertNotCalled(t, "RewardReferral", mock.Anything, mock.Anything)
	})

	t.Run("replayed deep link records nothing twice", func(t *testing.T) {
		ledger := &mockLedger{}
		ledger.On("GetUser", int64(10)).Return(&model.User{ID: 10}, nil)
		ledger.On("AddReferral", int64(10), int64(200)).Return(false, nil)

		err := newTestAuth(ledger).ProcessReferralStart(situation(), "10")

		assert.NoError(t, err)
		ledger.AssertNotCalled(t, "RewardReferral", mock.Anything, mock.Anything)
	})

	t.Run("deferred policy pays verified referral at record time", func(t *testing.T) {
		ledger := &mockLedger{}
		ledger.On("GetUser", int64(10)).Return(&model.User{ID: 10}, nil)
		ledger.On("AddReferral", int64(10), int64(200)).Return(true, nil)
		ledger.On("RewardReferral", int64(200), 70).Return(int64(0), false, nil)

		s := situation()
		s.User.CampaignState = model.StateVerified

		err := newTestAuth(ledger).ProcessReferralStart(s, "10")

		assert.NoError(t, err)
		ledger.AssertExpectations(t)
	})

	t.Run("immediate policy pays on start", func(t *testing.T) {
		model.AdminSettings = settingsWithPolicy(model.PolicyImmediate)
		defer func() { model.AdminSettings = settingsWithPolicy(model.PolicyDeferred) }()

		ledger := &mockLedger{}
		ledger.On("GetUser", int64(10)).Return(&model.User{ID: 10}, nil)
		ledger.On("AddReferral", int64(10), int64(200)).Return(true, nil)
		ledger.On("RewardReferral", int64(200), 70).Return(int64(0), false, nil)

		err := newTestAuth(ledger).ProcessReferralStart(situation(), "10")

		assert.NoError(t, err)
		ledger.AssertExpectations(t)
	})
}

func TestGetDailyBonus(t *testing.T) {
	model.AdminSettings = settingsWithPolicy(model.PolicyDeferred)

	situation := func(state string) *model.Situation {
		return &model.Situation{
			BotLang: "en",
			User:    &model.User{ID: 300, Language: "en", CampaignState: state},
		}
	}

	t.Run("unverified user cannot claim", func(t *testing.T) {
		ledger := &mockLedger{}
		sender := &mockSender{}
		sender.On("SendSimpleMsg", int64(300), mock.Anything).Return(nil)

		err := newTestAuthWithSender(ledger, sender).GetDailyBonus(situation(model.StateUnverified))

		assert.NoError(t, err)
		ledger.AssertNotCalled(t, "ClaimDailyBonus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("first claim of the day credits", func(t *testing.T) {
		ledger := &mockLedger{}
		ledger.On("ClaimDailyBonus", int64(300), 25, todayUTC()).Return(true, nil)
		sender := &mockSender{}
		sender.On("NewParseMessage", int64(300), mock.Anything).Return(nil)

		err := newTestAuthWithSender(ledger, sender).GetDailyBonus(situation(model.StateVerified))

		assert.NoError(t, err)
		ledger.AssertExpectations(t)
		sender.AssertExpectations(t)
	})

	t.Run("replayed claim the same day is refused", func(t *testing.T) {
		ledger := &mockLedger{}
		ledger.On("ClaimDailyBonus", int64(300), 25, todayUTC()).Return(false, nil)
		sender := &mockSender{}
		sender.On("SendSimpleMsg", int64(300), mock.Anything).Return(nil)

		err := newTestAuthWithSender(ledger, sender).GetDailyBonus(situation(model.StateVerified))

		assert.NoError(t, err)
		sender.AssertExpectations(t)
		sender.AssertNotCalled(t, "NewParseMessage", mock.Anything, mock.Anything)
	})
}

func TestCheckMemberStatus(t *testing.T) {
	tests := []struct {
		name     string
		member   tgbotapi.ChatMember
		expected bool
	}{
		{name: "member", member: tgbotapi.ChatMember{Status: "member"}, expected: true},
		{name: "administrator", member: tgbotapi.ChatMember{Status: "administrator"}, expected: true},
		{name: "creator", member: tgbotapi.ChatMember{Status: "creator"}, expected: true},
		{name: "left", member: tgbotapi.ChatMember{Status: "left"}, expected: false},
		{name: "kicked", member: tgbotapi.ChatMember{Status: "kicked"}, expected: false},
		{name: "unknown status", member: tgbotapi.ChatMember{Status: ""}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, checkMemberStatus(tt.member))
		})
	}
}

func TestAccountNumberValidation(t *testing.T) {
	assert.True(t, accountNumberRx.MatchString("01234567"))
	assert.True(t, accountNumberRx.MatchString("123456"))
	assert.True(t, accountNumberRx.MatchString("12345678901234567890"))

	assert.False(t, accountNumberRx.MatchString("12345"))
	assert.False(t, accountNumberRx.MatchString("123456789012345678901"))
	assert.False(t, accountNumberRx.MatchString("1234567a"))
	assert.False(t, accountNumberRx.MatchString(""))
	assert.False(t, accountNumberRx.MatchString("12 3456"))
}
