package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/hanksha/pitch-booking-bot/api"
	bk "github.com/hanksha/pitch-booking-bot/booking"
	"github.com/hanksha/pitch-booking-bot/config"
	"github.com/hanksha/pitch-booking-bot/conversation"
	"github.com/hanksha/pitch-booking-bot/discord"
	"github.com/hanksha/pitch-booking-bot/notify"
	"github.com/hanksha/pitch-booking-bot/telegram"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 15 * time.Second

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the bot and its HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := readConfig()

			if err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	logger := slog.Default().With("component", "main")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	logger.Info("opening booking store", "backend", cfg.Store.Backend)
	store, err := openStore(ctx, cfg.Store)

	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}

	defer store.Close()

	bot, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)

	if err != nil {
		return fmt.Errorf("failed to connect to telegram: %w", err)
	}

	logger.Info("authorized on telegram", "bot", bot.Self.UserName)

	gateway := telegram.NewGateway(bot)

	dispatcher := notify.NewDispatcher()
	dispatcher.Register(notify.NewUserNotifier(gateway))

	if len(cfg.AdminChatIDs) != 0 {
		dispatcher.Register(notify.NewAdminNotifier(gateway, cfg.AdminChatIDs))
	}

	var discordClient *discord.Client

	if len(cfg.Discord.BotToken) != 0 {
		discordClient = discord.NewClient(
			cfg.Discord.BotToken,
			cfg.Discord.ClientID,
			cfg.Discord.ClientSecret,
			cfg.Discord.RedirectURI,
			cfg.Discord.ServerID,
		)
	}

	if cfg.Discord.Enabled() {
		dispatcher.Register(notify.NewDiscordNotifier(discordClient, cfg.Discord.ChannelID))
	}

	if len(cfg.NATS.URL) != 0 {
		conn, err := notify.ConnectNATS(cfg.NATS.URL)

		if err != nil {
			return err
		}

		defer func() {
			if err := conn.Drain(); err != nil {
				logger.Warn("failed to drain nats connection", "err", err)
			}
		}()

		dispatcher.Register(notify.NewEventPublisher(conn, cfg.NATS.Subject))
	}

	logger.Info("notification recipients", "recipients", dispatcher.Recipients())

	sessions := conversation.NewSessionStore(cfg.SessionTTL)
	machine := conversation.NewMachine(store, gateway, dispatcher, sessions)
	router := telegram.NewRouter(machine, gateway)

	r := gin.Default()

	api.NewHealthHandler(store).Register(r)

	if cfg.Telegram.Mode == config.ModeWebhook {
		api.NewTelegramHandler(router, cfg.Telegram.WebhookSecret).Register(r)
	}

	if discordClient != nil && cfg.Discord.AuthEnabled() {
		// DISCORD API

		discordRouter := r.Group("/api/discord")
		api.NewDiscordHandler(discordClient, cfg.Discord.AdminRoleID).Register(discordRouter)

		// ADMIN API

		adminRouter := r.Group("/api/v1")
		adminRouter.Use(api.DiscordAuth(discordClient, cfg.Discord.AdminRoleID), api.AdminOnly())
		api.NewBookingHandler(bk.NewService(store)).Register(adminRouter)
	}

	server := &http.Server{Addr: cfg.HTTPAddr, Handler: r}
	serverErr := make(chan error, 1)

	go func() {
		logger.Info("http server listening", "addr", cfg.HTTPAddr)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}

		close(serverErr)
	}()

	polling := make(chan struct{})

	switch cfg.Telegram.Mode {
	case config.ModeWebhook:
		close(polling)

		if err := setWebhook(bot, cfg.Telegram); err != nil {
			shutdown(server, logger)
			return err
		}

		logger.Info("webhook registered", "url", cfg.Telegram.WebhookURL)
	default:
		if _, err := bot.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
			logger.Warn("failed to delete webhook", "err", err)
		}

		go func() {
			defer close(polling)
			router.Poll(ctx, bot)
		}()
	}

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-serverErr:
		if err != nil {
			logger.Error("http server failed", "err", err)
		}
	}

	cancel()
	shutdown(server, logger)
	<-polling
	router.Wait()

	return nil
}

func shutdown(server *http.Server, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("failed to shut down http server", "err", err)
	}
}

// setWebhook registers the webhook with its secret token, which the pinned
// client's WebhookConfig does not carry.
func setWebhook(bot *tgbotapi.BotAPI, cfg config.TelegramConfig) error {
	_, err := bot.MakeRequest("setWebhook", tgbotapi.Params{
		"url":             cfg.WebhookURL,
		"secret_token":    cfg.WebhookSecret,
		"allowed_updates": `["message","callback_query"]`,
	})

	if err != nil {
		return fmt.Errorf("failed to set webhook: %w", err)
	}

	return nil
}
