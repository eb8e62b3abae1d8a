package telegram

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/hanksha/pitch-booking-bot/conversation"
)

type Handler interface {
	Handle(ctx context.Context, event conversation.Event) error
}

// UpdateSource is the long polling side of *tgbotapi.BotAPI.
type UpdateSource interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Router feeds Telegram updates to the handler. Updates of one chat are
// handled in arrival order, one at a time; different chats run in parallel.
type Router struct {
	handler Handler
	gateway *Gateway
	locks   *chatLocks
	wg      sync.WaitGroup
	logger  *slog.Logger
}

func NewRouter(handler Handler, gateway *Gateway) *Router {
	return &Router{
		handler: handler,
		gateway: gateway,
		locks:   newChatLocks(),
		logger:  slog.Default().With("component", "telegram-router"),
	}
}

// Dispatch handles update in the background. In-flight updates survive the
// cancellation of ctx; use Wait to drain them.
func (r *Router) Dispatch(ctx context.Context, update tgbotapi.Update) {
	event, ok := Translate(update)

	if !ok {
		return
	}

	// taken before the goroutine starts so a chat's updates keep their order
	turn := r.locks.enqueue(event.ConversationID)

	r.wg.Add(1)

	go func() {
		defer r.wg.Done()

		turn.wait()
		defer turn.release()

		r.handle(context.WithoutCancel(ctx), update, event)
	}()
}

// HandleUpdate handles update synchronously.
func (r *Router) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	event, ok := Translate(update)

	if !ok {
		return
	}

	turn := r.locks.enqueue(event.ConversationID)
	turn.wait()
	defer turn.release()

	r.handle(ctx, update, event)
}

func (r *Router) Wait() {
	r.wg.Wait()
}

// Poll long-polls source until ctx is done, then waits for in-flight updates.
func (r *Router) Poll(ctx context.Context, source UpdateSource) {
	config := tgbotapi.NewUpdate(0)
	config.Timeout = 30

	updates := source.GetUpdatesChan(config)

	r.logger.Info("polling for updates")

	defer r.Wait()

	for {
		select {
		case <-ctx.Done():
			source.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}

			r.Dispatch(ctx, update)
		}
	}
}

func (r *Router) handle(ctx context.Context, update tgbotapi.Update, event conversation.Event) {
	if query := update.CallbackQuery; query != nil {
		if query.Message != nil && query.Message.Chat != nil {
			r.gateway.RememberMenu(query.Message.Chat.ID, query.Message.MessageID)
		}

		if err := r.gateway.AnswerCallback(query.ID); err != nil {
			r.logger.Warn("failed to answer callback", "chat", event.ConversationID, "err", err)
		}
	}

	err := r.handler.Handle(ctx, event)

	switch {
	case err == nil:
	case errors.Is(err, conversation.ErrValidation):
		r.logger.Info("booking attempt ended by a conflict", "chat", event.ConversationID, "err", err)
	default:
		r.logger.Error("failed to handle update",
			"update", update.UpdateID,
			"chat", event.ConversationID,
			"err", err)
	}
}

// Translate maps a Telegram update onto a conversation event. Updates the
// dialogue has no use for report false.
func Translate(update tgbotapi.Update) (conversation.Event, bool) {
	if query := update.CallbackQuery; query != nil {
		if query.From == nil {
			return conversation.Event{}, false
		}

		chatID := query.From.ID

		if query.Message != nil && query.Message.Chat != nil {
			chatID = query.Message.Chat.ID
		}

		return conversation.Event{
			Kind:           conversation.ButtonTapped,
			ConversationID: strconv.FormatInt(chatID, 10),
			UserID:         strconv.FormatInt(query.From.ID, 10),
			UserName:       displayName(query.From),
			Token:          query.Data,
		}, true
	}

	message := update.Message

	if message == nil || message.Chat == nil || message.From == nil {
		return conversation.Event{}, false
	}

	event := conversation.Event{
		ConversationID: strconv.FormatInt(message.Chat.ID, 10),
		UserID:         strconv.FormatInt(message.From.ID, 10),
		UserName:       displayName(message.From),
	}

	switch {
	case message.IsCommand():
		event.Kind = conversation.CommandReceived
		event.Command = strings.ToLower(message.Command())
		event.Args = strings.Fields(message.CommandArguments())
	case len(message.Text) != 0:
		event.Kind = conversation.TextReceived
		event.Text = message.Text
	default:
		return conversation.Event{}, false
	}

	return event, true
}

func displayName(user *tgbotapi.User) string {
	if len(user.FirstName) != 0 {
		return user.FirstName
	}

	return user.UserName
}

// chatLocks hands out one FIFO lock per chat and drops it when unused.
type chatLocks struct {
	mu    sync.Mutex
	chats map[string]*chatQueue
}

type chatQueue struct {
	tail    chan struct{}
	waiting int
}

type ticket struct {
	locks *chatLocks
	chat  string
	ready <-chan struct{}
	done  chan struct{}
}

func newChatLocks() *chatLocks {
	return &chatLocks{chats: map[string]*chatQueue{}}
}

// enqueue reserves the next turn for chat. The turn starts once every earlier
// ticket of that chat is released.
func (l *chatLocks) enqueue(chat string) *ticket {
	l.mu.Lock()
	defer l.mu.Unlock()

	queue, ok := l.chats[chat]

	if !ok {
		closed := make(chan struct{})
		close(closed)
		queue = &chatQueue{tail: closed}
		l.chats[chat] = queue
	}

	t := &ticket{locks: l, chat: chat, ready: queue.tail, done: make(chan struct{})}
	queue.tail = t.done
	queue.waiting++

	return t
}

func (t *ticket) wait() {
	<-t.ready
}

func (t *ticket) release() {
	t.locks.mu.Lock()
	defer t.locks.mu.Unlock()

	close(t.done)

	queue := t.locks.chats[t.chat]
	queue.waiting--

	if queue.waiting == 0 {
		delete(t.locks.chats, t.chat)
	}
}
