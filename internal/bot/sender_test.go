package bot

import (
	"ESBot/internal/bot/messages"
	"ESBot/internal/core/domain"
	"ESBot/internal/core/ports"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReplySender_Text(t *testing.T) {
	ctx := context.Background()
	nopLogger := zerolog.Nop()
	mockBotClient := new(MockBotClient)
	sender := NewReplySender(mockBotClient, &nopLogger)

	mockBotClient.On("SendMessage", mock.Anything, ports.SendMessageParams{ChatID: 1, Text: "hi"}).Return(nil).Once()

	require.NoError(t, sender.Send(ctx, 1, domain.TextReply("hi")))
	mockBotClient.AssertExpectations(t)
}

func TestReplySender_Keyboards(t *testing.T) {
	ctx := context.Background()
	nopLogger := zerolog.Nop()
	mockBotClient := new(MockBotClient)
	sender := NewReplySender(mockBotClient, &nopLogger)

	inline := messages.NewBuilder().
		WithText("menu").
		WithInlineButtons([][]domain.Button{{{Text: "Say hello", Data: CallbackGreeting}}}).
		Build()
	replyKB := messages.NewBuilder().
		WithText("hi").
		WithMarkdownV2().
		WithReplyButtons([]string{"a", "b"}, 2).
		Build()

	mockBotClient.On("SendMessage", mock.Anything, ports.SendMessageParams{
		ChatID: 2,
		Text:   "menu",
		ReplyMarkup: &ports.ReplyMarkup{
			Buttons:  [][]ports.Button{{{Text: "Say hello", Data: CallbackGreeting}}},
			IsInline: true,
		},
	}).Return(nil).Once()
	mockBotClient.On("SendMessage", mock.Anything, ports.SendMessageParams{
		ChatID:    2,
		Text:      "hi",
		ParseMode: "MarkdownV2",
		ReplyMarkup: &ports.ReplyMarkup{
			Buttons: [][]ports.Button{{{Text: "a"}, {Text: "b"}}},
		},
	}).Return(nil).Once()

	require.NoError(t, sender.Send(ctx, 2, inline))
	require.NoError(t, sender.Send(ctx, 2, replyKB))
	mockBotClient.AssertExpectations(t)
}

func TestReplySender_Photo(t *testing.T) {
	ctx := context.Background()
	nopLogger := zerolog.Nop()
	mockBotClient := new(MockBotClient)
	sender := NewReplySender(mockBotClient, &nopLogger)

	mockBotClient.On("SendPhoto", mock.Anything, ports.SendPhotoParams{
		ChatID:   3,
		FileName: "randomCat.jpg",
		File:     []byte("jpeg"),
		Caption:  "Here is your cat!",
	}).Return(nil).Once()

	require.NoError(t, sender.Send(ctx, 3, domain.PhotoReply("randomCat.jpg", []byte("jpeg"), "Here is your cat!")))
	mockBotClient.AssertExpectations(t)
	mockBotClient.AssertNotCalled(t, "SendMessage", mock.Anything, mock.Anything)
}

func TestReplySender_FailureIsTransportError(t *testing.T) {
	ctx := context.Background()
	nopLogger := zerolog.Nop()
	mockBotClient := new(MockBotClient)
	sender := NewReplySender(mockBotClient, &nopLogger)

	cause := errors.New("Forbidden: bot was blocked by the user")
	mockBotClient.On("SendMessage", mock.Anything, mock.Anything).Return(cause).Once()

	err := sender.Send(ctx, 4, domain.TextReply("hi"))

	var transportErr *domain.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, int64(4), transportErr.ChatID)
	assert.Equal(t, "send_message", transportErr.Op)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "transport", domain.ErrorKind(err))
	mockBotClient.AssertNumberOfCalls(t, "SendMessage", 1)
}
