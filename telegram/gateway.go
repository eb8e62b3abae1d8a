// Package telegram connects the booking dialogue to a Telegram bot: it turns
// updates into conversation events and renders menus as inline keyboards.
package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/hanksha/pitch-booking-bot/conversation"
)

//go:generate mockgen -source=gateway.go -destination=mocks/gateway_mocks.go -package=mocks

// BotAPI is the part of *tgbotapi.BotAPI the gateway uses.
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

const buttonsPerRow = 2

// Gateway renders conversation output in Telegram chats. It remembers the
// last menu message of every chat so later steps can edit it in place.
type Gateway struct {
	bot    BotAPI
	logger *slog.Logger

	mu       sync.Mutex
	lastMenu map[int64]int
}

func NewGateway(bot BotAPI) *Gateway {
	return &Gateway{
		bot:      bot,
		logger:   slog.Default().With("component", "telegram-gateway"),
		lastMenu: map[int64]int{},
	}
}

func (g *Gateway) SendMenu(_ context.Context, conversationID, text string, options []conversation.Option) error {
	chatID, err := parseChatID(conversationID)

	if err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(chatID, text)

	if len(options) != 0 {
		msg.ReplyMarkup = Keyboard(options)
	}

	sent, err := g.bot.Send(msg)

	if err != nil {
		return fmt.Errorf("failed to send menu to %v: %w", chatID, err)
	}

	if len(options) != 0 {
		g.RememberMenu(chatID, sent.MessageID)
	}

	return nil
}

func (g *Gateway) SendText(_ context.Context, conversationID, text string) error {
	chatID, err := parseChatID(conversationID)

	if err != nil {
		return err
	}

	if _, err := g.bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		return fmt.Errorf("failed to send message to %v: %w", chatID, err)
	}

	return nil
}

// EditLastMenu rewrites the chat's last menu. Without a known menu, or when
// Telegram refuses the edit, a new message is sent instead.
func (g *Gateway) EditLastMenu(ctx context.Context, conversationID, text string, options []conversation.Option) error {
	chatID, err := parseChatID(conversationID)

	if err != nil {
		return err
	}

	messageID, ok := g.menuOf(chatID)

	if !ok {
		return g.SendMenu(ctx, conversationID, text, options)
	}

	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)

	if len(options) != 0 {
		keyboard := Keyboard(options)
		edit.ReplyMarkup = &keyboard
	}

	if _, err := g.bot.Send(edit); err != nil {
		g.logger.Warn("failed to edit menu, sending a new one", "chat", chatID, "message", messageID, "err", err)
		g.forgetMenu(chatID)

		return g.SendMenu(ctx, conversationID, text, options)
	}

	if len(options) == 0 {
		g.forgetMenu(chatID)
	}

	return nil
}

// RememberMenu marks messageID as the menu later edits apply to, e.g. the
// message whose button was just tapped.
func (g *Gateway) RememberMenu(chatID int64, messageID int) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.lastMenu[chatID] = messageID
}

// AnswerCallback stops the loading indicator on a tapped button.
func (g *Gateway) AnswerCallback(callbackID string) error {
	if _, err := g.bot.Request(tgbotapi.NewCallback(callbackID, "")); err != nil {
		return fmt.Errorf("failed to answer callback %v: %w", callbackID, err)
	}

	return nil
}

func (g *Gateway) menuOf(chatID int64) (int, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	messageID, ok := g.lastMenu[chatID]

	return messageID, ok
}

func (g *Gateway) forgetMenu(chatID int64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.lastMenu, chatID)
}

// Keyboard lays options out two per row. The cancel option always gets a row
// of its own at the bottom.
func Keyboard(options []conversation.Option) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	var cancel []tgbotapi.InlineKeyboardButton

	for _, option := range options {
		button := tgbotapi.NewInlineKeyboardButtonData(option.Label, option.Token)

		if option.Token == conversation.TokenCancel {
			cancel = append(cancel, button)
			continue
		}

		row = append(row, button)

		if len(row) == buttonsPerRow {
			rows = append(rows, row)
			row = nil
		}
	}

	if len(row) != 0 {
		rows = append(rows, row)
	}

	if len(cancel) != 0 {
		rows = append(rows, cancel)
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func parseChatID(conversationID string) (int64, error) {
	chatID, err := strconv.ParseInt(conversationID, 10, 64)

	if err != nil {
		return 0, fmt.Errorf("invalid chat id %q: %w", conversationID, err)
	}

	return chatID, nil
}

var _ conversation.Gateway = (*Gateway)(nil)
