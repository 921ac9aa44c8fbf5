// Package telegram implements a Telegram Bot API wrapper. It covers exactly
// what the kazanım bot needs: sending messages with reply keyboards, long
// polling for updates, and webhook management.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"
)

// ══════════════════════════════════════════════════════════════════════════════
// CONFIGURATION
// ══════════════════════════════════════════════════════════════════════════════

// ClientConfig contains configuration for the Telegram client.
type ClientConfig struct {
	// Token is the Telegram Bot API token.
	Token string

	// BaseURL is the Telegram Bot API base URL (default: https://api.telegram.org).
	BaseURL string

	// Timeout is the HTTP request timeout. Must exceed the long-polling
	// timeout plus network latency.
	Timeout time.Duration

	// RetryAttempts is the number of retry attempts for failed requests.
	RetryAttempts int

	// RetryDelay is the initial delay between retries.
	RetryDelay time.Duration

	// PollingTimeout is the long-polling timeout in seconds.
	PollingTimeout int

	// Logger for structured logging.
	Logger *slog.Logger

	// Debug enables debug logging.
	Debug bool
}

// DefaultClientConfig returns sensible defaults.
func DefaultClientConfig(token string) ClientConfig {
	return ClientConfig{
		Token:          token,
		BaseURL:        "https://api.telegram.org",
		Timeout:        60 * time.Second,
		RetryAttempts:  3,
		RetryDelay:     1 * time.Second,
		PollingTimeout: 30,
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// TELEGRAM API TYPES
// ══════════════════════════════════════════════════════════════════════════════

// Update represents a Telegram update.
type Update struct {
	UpdateID      int64    `json:"update_id"`
	Message       *Message `json:"message,omitempty"`
	EditedMessage *Message `json:"edited_message,omitempty"`
}

// Message represents a Telegram message.
type Message struct {
	MessageID int64           `json:"message_id"`
	From      *User           `json:"from,omitempty"`
	Chat      *Chat           `json:"chat"`
	Date      int64           `json:"date"`
	Text      string          `json:"text,omitempty"`
	Entities  []MessageEntity `json:"entities,omitempty"`
}

// User represents a Telegram user.
type User struct {
	ID           int64  `json:"id"`
	IsBot        bool   `json:"is_bot"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name,omitempty"`
	Username     string `json:"username,omitempty"`
	LanguageCode string `json:"language_code,omitempty"`
}

// Chat represents a Telegram chat.
type Chat struct {
	ID        int64  `json:"id"`
	Type      string `json:"type"`
	Title     string `json:"title,omitempty"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"first_name,omitempty"`
}

// MessageEntity represents a message entity (command, mention, etc.).
type MessageEntity struct {
	Type   string `json:"type"`
	Offset int    `json:"offset"`
	Length int    `json:"length"`
}

// ReplyKeyboardMarkup represents a custom reply keyboard shown under the
// input field. The selection flow is driven entirely by these.
type ReplyKeyboardMarkup struct {
	Keyboard        [][]KeyboardButton `json:"keyboard"`
	ResizeKeyboard  bool               `json:"resize_keyboard,omitempty"`
	OneTimeKeyboard bool               `json:"one_time_keyboard,omitempty"`
	Selective       bool               `json:"selective,omitempty"`
}

// KeyboardButton is one button of a reply keyboard.
type KeyboardButton struct {
	Text string `json:"text"`
}

// ReplyKeyboardRemove removes the custom keyboard.
type ReplyKeyboardRemove struct {
	RemoveKeyboard bool `json:"remove_keyboard"`
	Selective      bool `json:"selective,omitempty"`
}

// NewReplyKeyboard builds a one-time resized reply keyboard from rows of
// button labels.
func NewReplyKeyboard(rows [][]string) *ReplyKeyboardMarkup {
	keyboard := make([][]KeyboardButton, len(rows))
	for i, row := range rows {
		buttons := make([]KeyboardButton, len(row))
		for j, label := range row {
			buttons[j] = KeyboardButton{Text: label}
		}
		keyboard[i] = buttons
	}
	return &ReplyKeyboardMarkup{
		Keyboard:        keyboard,
		ResizeKeyboard:  true,
		OneTimeKeyboard: true,
	}
}

// APIResponse represents a Telegram API response.
type APIResponse struct {
	OK          bool                `json:"ok"`
	Result      json.RawMessage     `json:"result,omitempty"`
	Description string              `json:"description,omitempty"`
	ErrorCode   int                 `json:"error_code,omitempty"`
	Parameters  *ResponseParameters `json:"parameters,omitempty"`
}

// ResponseParameters contains additional error parameters.
type ResponseParameters struct {
	MigrateToChatID int64 `json:"migrate_to_chat_id,omitempty"`
	RetryAfter      int   `json:"retry_after,omitempty"`
}

// ══════════════════════════════════════════════════════════════════════════════
// CLIENT
// ══════════════════════════════════════════════════════════════════════════════

// Client is the Telegram Bot API client.
type Client struct {
	config     ClientConfig
	httpClient *http.Client
	logger     *slog.Logger

	// Update handling
	updateOffset int64
	updateMu     sync.Mutex
}

// NewClient creates a new Telegram client.
func NewClient(config ClientConfig) *Client {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.BaseURL == "" {
		config.BaseURL = "https://api.telegram.org"
	}
	if config.PollingTimeout <= 0 {
		config.PollingTimeout = 30
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		logger: config.Logger,
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// SENDING MESSAGES
// ══════════════════════════════════════════════════════════════════════════════

// SendMessageParams contains parameters for sending a message.
type SendMessageParams struct {
	ChatID    int64
	Text      string
	ParseMode string // "Markdown", "MarkdownV2" or "HTML"

	// ReplyMarkup is either *ReplyKeyboardMarkup or *ReplyKeyboardRemove.
	ReplyMarkup any

	DisableNotification bool
}

// SendMessage sends a text message.
func (c *Client) SendMessage(ctx context.Context, params SendMessageParams) (*Message, error) {
	body := map[string]any{
		"chat_id": params.ChatID,
		"text":    params.Text,
	}
	if params.ParseMode != "" {
		body["parse_mode"] = params.ParseMode
	}
	if params.ReplyMarkup != nil {
		body["reply_markup"] = params.ReplyMarkup
	}
	if params.DisableNotification {
		body["disable_notification"] = true
	}

	var message Message
	if err := c.callAPI(ctx, "sendMessage", body, &message); err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}
	return &message, nil
}

// SendText is a convenience method for sending plain text.
func (c *Client) SendText(ctx context.Context, chatID int64, text string) (*Message, error) {
	return c.SendMessage(ctx, SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
}

// ══════════════════════════════════════════════════════════════════════════════
// GETTING UPDATES
// ══════════════════════════════════════════════════════════════════════════════

// GetUpdates fetches updates using long polling.
func (c *Client) GetUpdates(ctx context.Context, offset int64, limit int, timeout int) ([]Update, error) {
	body := map[string]any{
		"timeout":         timeout,
		"allowed_updates": []string{"message"},
	}
	if offset > 0 {
		body["offset"] = offset
	}
	if limit > 0 {
		body["limit"] = limit
	}

	var updates []Update
	if err := c.callAPI(ctx, "getUpdates", body, &updates); err != nil {
		return nil, fmt.Errorf("get updates: %w", err)
	}
	return updates, nil
}

// SetWebhook sets a webhook for receiving updates.
func (c *Client) SetWebhook(ctx context.Context, url, secretToken string) error {
	body := map[string]any{
		"url":             url,
		"allowed_updates": []string{"message"},
	}
	if secretToken != "" {
		body["secret_token"] = secretToken
	}

	var result bool
	if err := c.callAPI(ctx, "setWebhook", body, &result); err != nil {
		return fmt.Errorf("set webhook: %w", err)
	}
	return nil
}

// DeleteWebhook removes the webhook.
func (c *Client) DeleteWebhook(ctx context.Context, dropPendingUpdates bool) error {
	body := map[string]any{
		"drop_pending_updates": dropPendingUpdates,
	}

	var result bool
	if err := c.callAPI(ctx, "deleteWebhook", body, &result); err != nil {
		return fmt.Errorf("delete webhook: %w", err)
	}
	return nil
}

// GetMe returns information about the bot. Used to verify the token.
func (c *Client) GetMe(ctx context.Context) (*User, error) {
	var user User
	if err := c.callAPI(ctx, "getMe", nil, &user); err != nil {
		return nil, fmt.Errorf("get me: %w", err)
	}
	return &user, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// API CALL HELPERS
// ══════════════════════════════════════════════════════════════════════════════

// callAPI makes a call to the Telegram Bot API with retries.
func (c *Client) callAPI(ctx context.Context, method string, body map[string]any, result any) error {
	var lastErr error

	for attempt := 0; attempt <= c.config.RetryAttempts; attempt++ {
		if attempt > 0 {
			delay := c.config.RetryDelay * time.Duration(1<<uint(attempt-1))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		err := c.doAPICall(ctx, method, body, result)
		if err == nil {
			return nil
		}
		lastErr = err

		if !isRetryableError(err) {
			return err
		}

		// Honor rate-limit waits beyond the normal backoff.
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.RetryAfter > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(apiErr.RetryAfter) * time.Second):
			}
		}
	}

	return fmt.Errorf("api call failed after %d retries: %w", c.config.RetryAttempts, lastErr)
}

// doAPICall performs a single API call.
func (c *Client) doAPICall(ctx context.Context, method string, body map[string]any, result any) error {
	url := fmt.Sprintf("%s/bot%s/%s", c.config.BaseURL, c.config.Token, method)

	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if c.config.Debug {
		c.logger.Debug("telegram api call", "method", method)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var apiResp APIResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}

	if !apiResp.OK {
		apiErr := &APIError{
			Code:        apiResp.ErrorCode,
			Description: apiResp.Description,
		}
		if apiResp.Parameters != nil {
			apiErr.RetryAfter = apiResp.Parameters.RetryAfter
		}
		return apiErr
	}

	if result != nil && len(apiResp.Result) > 0 {
		if err := json.Unmarshal(apiResp.Result, result); err != nil {
			return fmt.Errorf("unmarshal result: %w", err)
		}
	}

	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// ERRORS
// ══════════════════════════════════════════════════════════════════════════════

// APIError represents a Telegram API error.
type APIError struct {
	Code        int
	Description string
	RetryAfter  int
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("telegram api error %d: %s", e.Code, e.Description)
}

// isRetryableError checks if an error is retryable.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == 429:
			return true
		case apiErr.Code >= 500:
			return true
		case apiErr.Code >= 400:
			return false
		}
	}

	// Network errors are retryable.
	msg := err.Error()
	for _, marker := range []string{"timeout", "connection refused", "temporary", "reset"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// IsUserBlocked checks if the error indicates the user blocked the bot.
func IsUserBlocked(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == 403 ||
			strings.Contains(apiErr.Description, "bot was blocked") ||
			strings.Contains(apiErr.Description, "user is deactivated")
	}
	return false
}

// ══════════════════════════════════════════════════════════════════════════════
// LONG POLLING RUNNER
// ══════════════════════════════════════════════════════════════════════════════

// UpdateHandler is a function that handles a Telegram update.
type UpdateHandler func(ctx context.Context, update *Update) error

// StartPolling starts long polling for updates. It blocks until the context
// is cancelled.
func (c *Client) StartPolling(ctx context.Context, handler UpdateHandler) error {
	c.logger.Info("starting telegram long polling")

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("stopping telegram long polling")
			return ctx.Err()
		default:
		}

		c.updateMu.Lock()
		offset := c.updateOffset
		c.updateMu.Unlock()

		updates, err := c.GetUpdates(ctx, offset, 100, c.config.PollingTimeout)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			c.logger.Error("failed to get updates", "error", err)
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(5 * time.Second):
			}
			continue
		}

		for _, update := range updates {
			c.updateMu.Lock()
			if update.UpdateID >= c.updateOffset {
				c.updateOffset = update.UpdateID + 1
			}
			c.updateMu.Unlock()

			if err := handler(ctx, &update); err != nil {
				c.logger.Error("failed to handle update",
					"update_id", update.UpdateID,
					"error", err,
				)
			}
		}
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// UTILITY METHODS
// ══════════════════════════════════════════════════════════════════════════════

// ExtractCommand extracts the command from a message (without the /).
func ExtractCommand(msg *Message) string {
	if msg == nil || msg.Text == "" {
		return ""
	}

	for _, entity := range msg.Entities {
		if entity.Type == "bot_command" && entity.Offset == 0 {
			if entity.Length < 1 || entity.Length > len(msg.Text) {
				continue
			}
			cmd := msg.Text[1:entity.Length] // skip the /
			// Strip bot username if present (@botname)
			if at := strings.IndexByte(cmd, '@'); at >= 0 {
				return cmd[:at]
			}
			return cmd
		}
	}
	return ""
}

// ExtractCommandArgs extracts the text after the command.
func ExtractCommandArgs(msg *Message) string {
	if msg == nil || msg.Text == "" {
		return ""
	}

	for _, entity := range msg.Entities {
		if entity.Type == "bot_command" && entity.Offset == 0 {
			if entity.Length < len(msg.Text) {
				return strings.TrimSpace(msg.Text[entity.Length:])
			}
		}
	}
	return ""
}

// IsPrivateChat checks if the message is from a private chat.
func IsPrivateChat(msg *Message) bool {
	return msg != nil && msg.Chat != nil && msg.Chat.Type == "private"
}
