package telegram

import (
	"ESBot/internal/core/ports"
	"context"
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockBotAPI is a mock for the tgbotapi subset used by the client
type MockBotAPI struct {
	mock.Mock
}

func (m *MockBotAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	args := m.Called(c)
	return tgbotapi.Message{}, args.Error(0)
}

func (m *MockBotAPI) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	args := m.Called(c)
	return &tgbotapi.APIResponse{Ok: args.Error(0) == nil}, args.Error(0)
}

func (m *MockBotAPI) GetFileDirectURL(fileID string) (string, error) {
	args := m.Called(fileID)
	return args.String(0), args.Error(1)
}

func newTestClient() (*tgClient, *MockBotAPI) {
	nopLogger := zerolog.Nop()
	api := new(MockBotAPI)
	return newClient(api, &nopLogger), api
}

func TestClient_SendMessage_InlineKeyboard(t *testing.T) {
	client, api := newTestClient()

	api.On("Send", mock.MatchedBy(func(c tgbotapi.Chattable) bool {
		msg, ok := c.(tgbotapi.MessageConfig)
		if !ok {
			return false
		}
		markup, ok := msg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
		return ok &&
			msg.ChatID == 42 &&
			msg.Text == "menu" &&
			len(markup.InlineKeyboard) == 2 &&
			*markup.InlineKeyboard[1][0].CallbackData == "mm_whoIsTheBoss_button"
	})).Return(nil).Once()

	err := client.SendMessage(context.Background(), ports.SendMessageParams{
		ChatID: 42,
		Text:   "menu",
		ReplyMarkup: &ports.ReplyMarkup{
			IsInline: true,
			Buttons: [][]ports.Button{
				{{Text: "Say hello", Data: "mm_greeting_button"}},
				{{Text: "Who is the boss?", Data: "mm_whoIsTheBoss_button"}},
			},
		},
	})

	require.NoError(t, err)
	api.AssertExpectations(t)
}

func TestClient_SendMessage_ReplyKeyboard(t *testing.T) {
	client, api := newTestClient()

	api.On("Send", mock.MatchedBy(func(c tgbotapi.Chattable) bool {
		msg, ok := c.(tgbotapi.MessageConfig)
		if !ok {
			return false
		}
		markup, ok := msg.ReplyMarkup.(tgbotapi.ReplyKeyboardMarkup)
		return ok &&
			msg.ParseMode == tgbotapi.ModeMarkdownV2 &&
			markup.ResizeKeyboard &&
			len(markup.Keyboard) == 1 &&
			len(markup.Keyboard[0]) == 2
	})).Return(nil).Once()

	err := client.SendMessage(context.Background(), ports.SendMessageParams{
		ChatID:      42,
		Text:        "Hi",
		ParseMode:   tgbotapi.ModeMarkdownV2,
		ReplyMarkup: &ports.ReplyMarkup{Buttons: [][]ports.Button{{{Text: "Menu"}, {Text: "Cat"}}}},
	})

	require.NoError(t, err)
	api.AssertExpectations(t)
}

func TestClient_SendPhoto(t *testing.T) {
	client, api := newTestClient()

	api.On("Send", mock.MatchedBy(func(c tgbotapi.Chattable) bool {
		photo, ok := c.(tgbotapi.PhotoConfig)
		if !ok {
			return false
		}
		file, ok := photo.File.(tgbotapi.FileBytes)
		return ok && file.Name == "randomCat.jpg" && string(file.Bytes) == "jpeg" && photo.Caption == "cat"
	})).Return(errors.New("Bad Request: IMAGE_PROCESS_FAILED")).Once()

	err := client.SendPhoto(context.Background(), ports.SendPhotoParams{
		ChatID:   42,
		FileName: "randomCat.jpg",
		File:     []byte("jpeg"),
		Caption:  "cat",
	})

	assert.EqualError(t, err, "Bad Request: IMAGE_PROCESS_FAILED")
	api.AssertExpectations(t)
}

func TestClient_SetMenuCommands_StripsSlash(t *testing.T) {
	client, api := newTestClient()

	api.On("Request", mock.MatchedBy(func(c tgbotapi.Chattable) bool {
		cfg, ok := c.(tgbotapi.SetMyCommandsConfig)
		return ok && len(cfg.Commands) == 2 && cfg.Commands[0].Command == "start" && cfg.Commands[1].Command == "menu"
	})).Return(nil).Once()

	err := client.SetMenuCommands(context.Background(), []ports.BotCommand{
		{Command: "/start", Description: "Show the keyboard"},
		{Command: "menu", Description: "Open the main menu"},
	})

	require.NoError(t, err)
	api.AssertExpectations(t)
}

func TestClient_AnswerCallbackQuery(t *testing.T) {
	client, api := newTestClient()

	api.On("Request", mock.MatchedBy(func(c tgbotapi.Chattable) bool {
		cfg, ok := c.(tgbotapi.CallbackConfig)
		return ok && cfg.CallbackQueryID == "cb-1"
	})).Return(nil).Once()

	require.NoError(t, client.AnswerCallbackQuery(context.Background(), ports.AnswerCallbackParams{CallbackQueryID: "cb-1"}))
	api.AssertExpectations(t)
}

func TestClient_GetFileURL(t *testing.T) {
	client, api := newTestClient()
	api.On("GetFileDirectURL", "file-1").Return("https://api.telegram.org/file/botTOKEN/photos/1.jpg", nil).Once()
	api.On("GetFileDirectURL", "missing").Return("", errors.New("Bad Request: invalid file_id")).Once()

	url, err := client.GetFileURL(context.Background(), "file-1")
	require.NoError(t, err)
	assert.Equal(t, "https://api.telegram.org/file/botTOKEN/photos/1.jpg", url)

	_, err = client.GetFileURL(context.Background(), "missing")
	assert.Error(t, err)
	api.AssertExpectations(t)
}
