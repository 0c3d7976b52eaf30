package model

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
)

func testBot() *GlobalBot {
	return &GlobalBot{
		Commands: map[string]string{
			"/start":       "/start",
			"main_balance": "/main_balance",
		},
		Language: map[string]map[string]string{
			"en": {
				"main_balance": "💰 Balance",
			},
		},
	}
}

func TestGetCommandFromText(t *testing.T) {
	bot := testBot()

	tests := []struct {
		name     string
		message  *tgbotapi.Message
		expected string
		wantErr  error
	}{
		{
			name: "slash command",
			message: &tgbotapi.Message{
				Text:     "/start",
				Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: 6}},
			},
			expected: "/start",
		},
		{
			name:     "menu button text",
			message:  &tgbotapi.Message{Text: "💰 Balance"},
			expected: "/main_balance",
		},
		{
			name:    "free text does not convert",
			message: &tgbotapi.Message{Text: "hello there"},
			wantErr: ErrCommandNotConverted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			command, err := bot.GetCommandFromText(tt.message, "en", 1)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, command)
		})
	}
}

func TestEncodeLink(t *testing.T) {
	Bots = map[string]*GlobalBot{
		"en": {BotLink: "https://t.me/campaign_demo_bot"},
	}

	assert.Equal(t,
		"https://t.me/campaign_demo_bot?start=42",
		EncodeLink("en", 42))
}
