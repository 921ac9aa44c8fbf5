// Package handler contains Telegram command handlers.
// Each handler follows the pattern: receive update → call the dialog
// machine → render the outcome through the presenter.
package handler

import (
	"context"

	"github.com/kayrademirkan/mebtg/internal/application/dialog"
	"github.com/kayrademirkan/mebtg/internal/interface/telegram/presenter"
)

// ══════════════════════════════════════════════════════════════════════════════
// START HANDLER
// /start komutu: oturumu sıfırlar ve sınıf seçim klavyesini gösterir.
// ══════════════════════════════════════════════════════════════════════════════

// StartHandler handles the /start command.
type StartHandler struct {
	machine   *dialog.Machine
	presenter *presenter.MessagePresenter
}

// NewStartHandler creates a new StartHandler with dependencies.
func NewStartHandler(machine *dialog.Machine, pres *presenter.MessagePresenter) *StartHandler {
	return &StartHandler{
		machine:   machine,
		presenter: pres,
	}
}

// Handle resets the user's session and returns the welcome replies.
func (h *StartHandler) Handle(ctx context.Context, userID int64) ([]presenter.Reply, error) {
	outcome, err := h.machine.Start(ctx, userID)
	if err != nil {
		return nil, err
	}
	return h.presenter.Render(outcome), nil
}
