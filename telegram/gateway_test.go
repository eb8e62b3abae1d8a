package telegram_test

import (
	"context"
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/hanksha/pitch-booking-bot/conversation"
	"github.com/hanksha/pitch-booking-bot/telegram"
	tg_mocks "github.com/hanksha/pitch-booking-bot/telegram/mocks"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type testDeps struct {
	bot     *tg_mocks.MockBotAPI
	gateway *telegram.Gateway
	ctx     context.Context
}

func newTestDeps(t *testing.T) (*gomock.Controller, testDeps) {
	t.Helper()
	ctrl := gomock.NewController(t)
	bot := tg_mocks.NewMockBotAPI(ctrl)

	return ctrl, testDeps{bot: bot, gateway: telegram.NewGateway(bot), ctx: context.Background()}
}

var menu = []conversation.Option{
	{Label: "18:00", Token: "slot:18:00"},
	{Label: "19:00", Token: "slot:19:00"},
	{Label: "20:00", Token: "slot:20:00"},
	{Label: "Cancel", Token: conversation.TokenCancel},
}

func labels(markup tgbotapi.InlineKeyboardMarkup) [][]string {
	var rows [][]string

	for _, row := range markup.InlineKeyboard {
		var labels []string

		for _, button := range row {
			labels = append(labels, button.Text+"="+*button.CallbackData)
		}

		rows = append(rows, labels)
	}

	return rows
}

func TestKeyboard(t *testing.T) {
	got := labels(telegram.Keyboard(menu))

	require.Equal(t, [][]string{
		{"18:00=slot:18:00", "19:00=slot:19:00"},
		{"20:00=slot:20:00"},
		{"Cancel=cancel"},
	}, got)

	even := labels(telegram.Keyboard(menu[:2]))
	require.Equal(t, [][]string{{"18:00=slot:18:00", "19:00=slot:19:00"}}, even)
}

func TestSendMenu(t *testing.T) {

	t.Run("success", func(t *testing.T) {
		ctrl, deps := newTestDeps(t)
		defer ctrl.Finish()

		deps.bot.EXPECT().Send(gomock.Any()).DoAndReturn(func(c tgbotapi.Chattable) (tgbotapi.Message, error) {
			msg, ok := c.(tgbotapi.MessageConfig)
			require.True(t, ok)
			require.EqualValues(t, 42, msg.ChatID)
			require.Equal(t, "Pick a slot", msg.Text)

			markup, ok := msg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
			require.True(t, ok)
			require.Len(t, markup.InlineKeyboard, 3)

			return tgbotapi.Message{MessageID: 7}, nil
		}).Times(1)

		require.NoError(t, deps.gateway.SendMenu(deps.ctx, "42", "Pick a slot", menu))
	})

	t.Run("invalid chat id", func(t *testing.T) {
		ctrl, deps := newTestDeps(t)
		defer ctrl.Finish()

		deps.bot.EXPECT().Send(gomock.Any()).Times(0)

		require.Error(t, deps.gateway.SendMenu(deps.ctx, "not-a-chat", "Pick a slot", menu))
	})

	t.Run("api error", func(t *testing.T) {
		ctrl, deps := newTestDeps(t)
		defer ctrl.Finish()

		errForbidden := errors.New("Forbidden: bot was blocked by the user")
		deps.bot.EXPECT().Send(gomock.Any()).Return(tgbotapi.Message{}, errForbidden).Times(1)

		err := deps.gateway.SendMenu(deps.ctx, "42", "Pick a slot", menu)

		require.ErrorIs(t, err, errForbidden)
	})
}

func TestEditLastMenu(t *testing.T) {

	t.Run("edits the last menu", func(t *testing.T) {
		ctrl, deps := newTestDeps(t)
		defer ctrl.Finish()

		gomock.InOrder(
			deps.bot.EXPECT().Send(gomock.AssignableToTypeOf(tgbotapi.MessageConfig{})).Return(tgbotapi.Message{MessageID: 7}, nil),
			deps.bot.EXPECT().Send(gomock.Any()).DoAndReturn(func(c tgbotapi.Chattable) (tgbotapi.Message, error) {
				edit, ok := c.(tgbotapi.EditMessageTextConfig)
				require.True(t, ok)
				require.EqualValues(t, 42, edit.ChatID)
				require.Equal(t, 7, edit.MessageID)
				require.Equal(t, "Confirm?", edit.Text)
				require.NotNil(t, edit.ReplyMarkup)
				return tgbotapi.Message{MessageID: 7}, nil
			}),
		)

		require.NoError(t, deps.gateway.SendMenu(deps.ctx, "42", "Pick a slot", menu))
		require.NoError(t, deps.gateway.EditLastMenu(deps.ctx, "42", "Confirm?", menu[3:]))
	})

	t.Run("edit without options drops the buttons", func(t *testing.T) {
		ctrl, deps := newTestDeps(t)
		defer ctrl.Finish()

		deps.gateway.RememberMenu(42, 9)

		gomock.InOrder(
			deps.bot.EXPECT().Send(gomock.Any()).DoAndReturn(func(c tgbotapi.Chattable) (tgbotapi.Message, error) {
				edit, ok := c.(tgbotapi.EditMessageTextConfig)
				require.True(t, ok)
				require.Nil(t, edit.ReplyMarkup)
				return tgbotapi.Message{MessageID: 9}, nil
			}),
			// the menu is gone, so the next edit becomes a new message
			deps.bot.EXPECT().Send(gomock.AssignableToTypeOf(tgbotapi.MessageConfig{})).Return(tgbotapi.Message{MessageID: 10}, nil),
		)

		require.NoError(t, deps.gateway.EditLastMenu(deps.ctx, "42", "Booking cancelled.", nil))
		require.NoError(t, deps.gateway.EditLastMenu(deps.ctx, "42", "Pick a slot", menu))
	})

	t.Run("no menu yet", func(t *testing.T) {
		ctrl, deps := newTestDeps(t)
		defer ctrl.Finish()

		deps.bot.EXPECT().Send(gomock.AssignableToTypeOf(tgbotapi.MessageConfig{})).Return(tgbotapi.Message{MessageID: 3}, nil).Times(1)

		require.NoError(t, deps.gateway.EditLastMenu(deps.ctx, "42", "Pick a slot", menu))
	})

	t.Run("refused edit falls back to a new message", func(t *testing.T) {
		ctrl, deps := newTestDeps(t)
		defer ctrl.Finish()

		deps.gateway.RememberMenu(42, 9)

		gomock.InOrder(
			deps.bot.EXPECT().Send(gomock.AssignableToTypeOf(tgbotapi.EditMessageTextConfig{})).Return(tgbotapi.Message{}, errors.New("message can't be edited")),
			deps.bot.EXPECT().Send(gomock.AssignableToTypeOf(tgbotapi.MessageConfig{})).Return(tgbotapi.Message{MessageID: 11}, nil),
		)

		require.NoError(t, deps.gateway.EditLastMenu(deps.ctx, "42", "Pick a slot", menu))
	})
}

func TestAnswerCallback(t *testing.T) {
	ctrl, deps := newTestDeps(t)
	defer ctrl.Finish()

	deps.bot.EXPECT().Request(gomock.Any()).DoAndReturn(func(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
		callback, ok := c.(tgbotapi.CallbackConfig)
		require.True(t, ok)
		require.Equal(t, "cb-1", callback.CallbackQueryID)
		return &tgbotapi.APIResponse{Ok: true}, nil
	}).Times(1)

	require.NoError(t, deps.gateway.AnswerCallback("cb-1"))
}
