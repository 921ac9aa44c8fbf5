// Package telegram wires Telegram updates to the dialog machine: routing,
// middleware and the bot lifecycle.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kayrademirkan/mebtg/internal/application/dialog"
	"github.com/kayrademirkan/mebtg/internal/infrastructure/external/telegram"
	"github.com/kayrademirkan/mebtg/internal/interface/telegram/handler"
	"github.com/kayrademirkan/mebtg/internal/interface/telegram/middleware"
	"github.com/kayrademirkan/mebtg/internal/interface/telegram/presenter"
)

// ══════════════════════════════════════════════════════════════════════════════
// BOT CONFIGURATION
// ══════════════════════════════════════════════════════════════════════════════

// BotConfig contains configuration for the Telegram bot.
type BotConfig struct {
	// Token is the Telegram Bot API token.
	Token string

	// Mode is the update receiving mode: "polling" or "webhook".
	Mode string

	// WebhookURL is the public URL for webhook mode.
	WebhookURL string

	// WebhookSecret is the secret token Telegram echoes back on webhook calls.
	WebhookSecret string

	// PollingTimeout is the long polling timeout in seconds.
	PollingTimeout int

	// Debug enables debug logging.
	Debug bool

	// Logger for structured logging.
	Logger *slog.Logger

	// MaxConcurrentUpdates limits concurrent update processing.
	MaxConcurrentUpdates int

	// UserRateLimit is the per-user message allowance per minute.
	UserRateLimit int

	// APIBaseURL overrides the Bot API endpoint. Empty uses the default.
	APIBaseURL string

	// GracefulShutdownTimeout bounds the wait for in-flight handlers on stop.
	GracefulShutdownTimeout time.Duration
}

// DefaultBotConfig returns sensible defaults.
func DefaultBotConfig(token string) BotConfig {
	return BotConfig{
		Token:                   token,
		Mode:                    "polling",
		PollingTimeout:          30,
		Logger:                  slog.Default(),
		MaxConcurrentUpdates:    100,
		GracefulShutdownTimeout: 30 * time.Second,
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// BOT
// Güncelleme hattı: rate limit → recovery → router. Her güncelleme bir
// correlation ID ile loglanır.
// ══════════════════════════════════════════════════════════════════════════════

// Bot is the main Telegram bot controller.
type Bot struct {
	config BotConfig
	client *telegram.Client
	router *Router
	logger *slog.Logger

	rateLimiter *middleware.RateLimiter
	recovery    *middleware.RecoveryMiddleware

	running   bool
	runningMu sync.RWMutex
	stopCh    chan struct{}
	updateSem chan struct{}
	wg        sync.WaitGroup

	stats *BotStats
}

// BotStats holds runtime statistics.
type BotStats struct {
	mu              sync.RWMutex
	StartedAt       time.Time
	UpdatesReceived int64
	UpdatesHandled  int64
	ErrorsCount     int64
	CommandsCount   map[string]int64
}

// NewBot creates a Telegram bot over the given dialog machine.
func NewBot(config BotConfig, machine *dialog.Machine) (*Bot, error) {
	if config.Token == "" {
		return nil, errors.New("telegram token is required")
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.MaxConcurrentUpdates <= 0 {
		config.MaxConcurrentUpdates = DefaultBotConfig(config.Token).MaxConcurrentUpdates
	}

	clientConfig := telegram.DefaultClientConfig(config.Token)
	clientConfig.Logger = config.Logger
	clientConfig.Debug = config.Debug
	if config.PollingTimeout > 0 {
		clientConfig.PollingTimeout = config.PollingTimeout
	}
	if config.APIBaseURL != "" {
		clientConfig.BaseURL = config.APIBaseURL
	}
	client := telegram.NewClient(clientConfig)

	rateLimitConfig := middleware.DefaultRateLimitConfig()
	if config.UserRateLimit > 0 {
		rateLimitConfig.MessagesPerMinute = config.UserRateLimit
	}

	logger := config.Logger
	recoveryConfig := middleware.DefaultRecoveryConfig()
	recoveryConfig.OnPanic = func(_ context.Context, info *middleware.PanicInfo) {
		logger.Error("recovered from panic in handler",
			"request_id", info.RequestID,
			"user_id", info.UserID,
			"command", info.Command,
			"error", info.Error,
			"stack", info.StackTrace,
		)
	}

	pres := presenter.NewMessagePresenter()
	router := NewRouter(
		config.Logger,
		handler.NewStartHandler(machine, pres),
		handler.NewHelpHandler(),
		handler.NewWeekHandler(machine, pres),
		handler.NewSelectionHandler(machine, pres),
	)

	return &Bot{
		config:      config,
		client:      client,
		router:      router,
		logger:      config.Logger,
		rateLimiter: middleware.NewRateLimiter(rateLimitConfig),
		recovery:    middleware.NewRecoveryMiddleware(recoveryConfig),
		stopCh:      make(chan struct{}),
		updateSem:   make(chan struct{}, config.MaxConcurrentUpdates),
		stats: &BotStats{
			CommandsCount: make(map[string]int64),
		},
	}, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// LIFECYCLE
// ══════════════════════════════════════════════════════════════════════════════

// Start starts the bot and begins receiving updates. In polling mode it
// blocks until the context is cancelled; in webhook mode it registers the
// webhook and returns, updates arrive via HandleUpdate.
func (b *Bot) Start(ctx context.Context) error {
	b.runningMu.Lock()
	if b.running {
		b.runningMu.Unlock()
		return errors.New("bot is already running")
	}
	b.running = true
	b.stats.StartedAt = time.Now()
	b.runningMu.Unlock()

	b.logger.Info("starting telegram bot", "mode", b.config.Mode)

	if err := b.verifyToken(ctx); err != nil {
		return fmt.Errorf("failed to verify bot token: %w", err)
	}

	switch b.config.Mode {
	case "polling":
		if err := b.client.DeleteWebhook(ctx, true); err != nil {
			b.logger.Warn("failed to delete webhook before polling", "error", err)
		}
		return b.client.StartPolling(ctx, func(ctx context.Context, update *telegram.Update) error {
			return b.HandleUpdate(ctx, update)
		})
	case "webhook":
		if b.config.WebhookURL == "" {
			return errors.New("webhook URL is required for webhook mode")
		}
		if err := b.client.SetWebhook(ctx, b.config.WebhookURL, b.config.WebhookSecret); err != nil {
			return fmt.Errorf("failed to set webhook: %w", err)
		}
		b.logger.Info("webhook registered", "url", b.config.WebhookURL)
		return nil
	default:
		return fmt.Errorf("unknown bot mode: %s", b.config.Mode)
	}
}

// Stop gracefully stops the bot, waiting for in-flight handlers.
func (b *Bot) Stop(ctx context.Context) error {
	b.runningMu.Lock()
	if !b.running {
		b.runningMu.Unlock()
		return nil
	}
	b.running = false
	b.runningMu.Unlock()

	b.logger.Info("stopping telegram bot")
	close(b.stopCh)
	b.rateLimiter.Close()

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		b.logger.Info("all handlers completed gracefully")
	case <-time.After(b.config.GracefulShutdownTimeout):
		b.logger.Warn("graceful shutdown timeout exceeded")
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}

// IsRunning reports whether the bot is currently running.
func (b *Bot) IsRunning() bool {
	b.runningMu.RLock()
	defer b.runningMu.RUnlock()
	return b.running
}

func (b *Bot) verifyToken(ctx context.Context) error {
	me, err := b.client.GetMe(ctx)
	if err != nil {
		return err
	}
	b.logger.Info("bot verified", "id", me.ID, "username", me.Username)
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// UPDATE HANDLING
// ══════════════════════════════════════════════════════════════════════════════

// HandleUpdate processes a single update through the middleware chain. Both
// the poller and the webhook server feed this entry point.
func (b *Bot) HandleUpdate(ctx context.Context, update *telegram.Update) error {
	select {
	case b.updateSem <- struct{}{}:
		defer func() { <-b.updateSem }()
	case <-ctx.Done():
		return ctx.Err()
	}

	b.wg.Add(1)
	defer b.wg.Done()

	b.stats.mu.Lock()
	b.stats.UpdatesReceived++
	b.stats.mu.Unlock()

	msg := update.Message
	if msg == nil {
		msg = update.EditedMessage
	}
	if msg == nil || msg.From == nil || msg.Text == "" {
		return nil
	}
	if !telegram.IsPrivateChat(msg) {
		return nil
	}

	requestID := uuid.NewString()
	userID := msg.From.ID
	command := telegram.ExtractCommand(msg)
	start := time.Now()

	if command != "" {
		b.stats.mu.Lock()
		b.stats.CommandsCount[command]++
		b.stats.mu.Unlock()
	}

	if allowed, wait := b.rateLimiter.Allow(userID); !allowed {
		b.logger.Debug("rate limited",
			"request_id", requestID,
			"user_id", userID,
			"retry_after", wait,
		)
		return b.sendRateLimitMessage(ctx, msg.Chat.ID, wait)
	}

	result, err := b.recovery.Run(ctx, requestID, userID, command, func() error {
		return b.router.Route(ctx, b.client, msg)
	})
	if result.Recovered {
		b.stats.mu.Lock()
		b.stats.ErrorsCount++
		b.stats.mu.Unlock()

		_, sendErr := b.client.SendText(ctx, msg.Chat.ID, result.UserMessage)
		return sendErr
	}

	duration := time.Since(start)
	if err != nil {
		b.stats.mu.Lock()
		b.stats.ErrorsCount++
		b.stats.mu.Unlock()

		if telegram.IsUserBlocked(err) {
			b.logger.Info("user blocked the bot", "request_id", requestID, "user_id", userID)
			return nil
		}
		b.logger.Error("failed to handle update",
			"request_id", requestID,
			"update_id", update.UpdateID,
			"user_id", userID,
			"error", err,
			"duration", duration,
		)
		return err
	}

	b.stats.mu.Lock()
	b.stats.UpdatesHandled++
	b.stats.mu.Unlock()

	b.logger.Debug("update handled",
		"request_id", requestID,
		"user_id", userID,
		"command", command,
		"duration", duration,
	)
	return nil
}

func (b *Bot) sendRateLimitMessage(ctx context.Context, chatID int64, wait time.Duration) error {
	seconds := int(wait.Seconds())
	if seconds < 1 {
		seconds = 1
	}
	text := fmt.Sprintf("⏳ Çok fazla istek!\n%d saniye sonra tekrar deneyin.", seconds)
	_, err := b.client.SendText(ctx, chatID, text)
	return err
}

// ══════════════════════════════════════════════════════════════════════════════
// STATISTICS
// ══════════════════════════════════════════════════════════════════════════════

// GetStats returns current bot statistics.
func (b *Bot) GetStats() map[string]any {
	b.stats.mu.RLock()
	defer b.stats.mu.RUnlock()

	commandsCopy := make(map[string]int64, len(b.stats.CommandsCount))
	for k, v := range b.stats.CommandsCount {
		commandsCopy[k] = v
	}

	return map[string]any{
		"started_at":       b.stats.StartedAt,
		"uptime":           time.Since(b.stats.StartedAt).String(),
		"updates_received": b.stats.UpdatesReceived,
		"updates_handled":  b.stats.UpdatesHandled,
		"errors_count":     b.stats.ErrorsCount,
		"commands_count":   commandsCopy,
		"running":          b.IsRunning(),
	}
}

// Client returns the Telegram client for direct API access.
func (b *Bot) Client() *telegram.Client {
	return b.client
}
