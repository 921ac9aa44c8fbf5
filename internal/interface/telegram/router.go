// Package telegram wires Telegram updates to the dialog machine: routing,
// middleware and the bot lifecycle.
package telegram

import (
	"context"
	"log/slog"

	"github.com/kayrademirkan/mebtg/internal/infrastructure/external/telegram"
	"github.com/kayrademirkan/mebtg/internal/interface/telegram/handler"
	"github.com/kayrademirkan/mebtg/internal/interface/telegram/presenter"
)

// ══════════════════════════════════════════════════════════════════════════════
// ROUTER
// Komut tablosu + serbest metin: /start, /help ve /hafta komut tablosundan,
// diğer her metin seçim akışından geçer. Bilinmeyen komutlar düzeltici bir
// varsayılan yanıt alır.
// ══════════════════════════════════════════════════════════════════════════════

// CommandContext carries one inbound command through routing.
type CommandContext struct {
	// UserID is the sender's Telegram ID.
	UserID int64

	// ChatID is the chat to reply into.
	ChatID int64

	// Args is the raw text after the command.
	Args string
}

// commandFunc produces the replies for one command invocation.
type commandFunc func(ctx context.Context, cmdCtx CommandContext) ([]presenter.Reply, error)

// Router routes Telegram messages to handlers and sends their replies.
type Router struct {
	logger    *slog.Logger
	commands  map[string]commandFunc
	selection *handler.SelectionHandler
}

// NewRouter creates a router over the four handlers of the bot.
func NewRouter(
	logger *slog.Logger,
	start *handler.StartHandler,
	help *handler.HelpHandler,
	week *handler.WeekHandler,
	selection *handler.SelectionHandler,
) *Router {
	if logger == nil {
		logger = slog.Default()
	}

	r := &Router{
		logger:    logger,
		selection: selection,
	}
	r.commands = map[string]commandFunc{
		"start": func(ctx context.Context, c CommandContext) ([]presenter.Reply, error) {
			return start.Handle(ctx, c.UserID)
		},
		"help": func(ctx context.Context, c CommandContext) ([]presenter.Reply, error) {
			return help.Handle(ctx, c.UserID)
		},
		"hafta": func(ctx context.Context, c CommandContext) ([]presenter.Reply, error) {
			return week.Handle(ctx, c.UserID, c.Args)
		},
	}
	return r
}

// Route dispatches one inbound message and sends the resulting replies.
func (r *Router) Route(ctx context.Context, client *telegram.Client, msg *telegram.Message) error {
	if msg == nil || msg.From == nil || msg.Chat == nil {
		return nil
	}

	cmdCtx := CommandContext{
		UserID: msg.From.ID,
		ChatID: msg.Chat.ID,
	}

	var (
		replies []presenter.Reply
		err     error
	)

	if command := telegram.ExtractCommand(msg); command != "" {
		fn, ok := r.commands[command]
		if !ok {
			r.logger.Debug("unknown command", "command", command, "user_id", cmdCtx.UserID)
			return r.sendReplies(ctx, client, cmdCtx.ChatID, unknownCommandReplies())
		}
		cmdCtx.Args = telegram.ExtractCommandArgs(msg)
		replies, err = fn(ctx, cmdCtx)
	} else {
		replies, err = r.selection.Handle(ctx, cmdCtx.UserID, msg.Text)
	}
	if err != nil {
		return err
	}

	return r.sendReplies(ctx, client, cmdCtx.ChatID, replies)
}

// sendReplies sends rendered replies in order, converting the presenter's
// keyboard shape to Telegram markup.
func (r *Router) sendReplies(ctx context.Context, client *telegram.Client, chatID int64, replies []presenter.Reply) error {
	for _, reply := range replies {
		params := telegram.SendMessageParams{
			ChatID:    chatID,
			Text:      reply.Text,
			ParseMode: reply.ParseMode,
		}
		switch {
		case len(reply.Keyboard) > 0:
			params.ReplyMarkup = telegram.NewReplyKeyboard(reply.Keyboard)
		case reply.RemoveKeyboard:
			params.ReplyMarkup = &telegram.ReplyKeyboardRemove{RemoveKeyboard: true}
		}

		if _, err := client.SendMessage(ctx, params); err != nil {
			return err
		}
	}
	return nil
}

// unknownCommandReplies is the corrective default for unregistered commands.
func unknownCommandReplies() []presenter.Reply {
	return []presenter.Reply{{
		Text: "❓ Bilinmeyen komut.\n\n" +
			"Kullanılabilir komutlar:\n" +
			"• /start - Botu başlat\n" +
			"• /help - Yardım\n" +
			"• /hafta <numara> - Belirli bir haftayı görüntüle",
	}}
}
