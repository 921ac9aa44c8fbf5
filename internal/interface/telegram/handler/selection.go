package handler

import (
	"context"

	"github.com/kayrademirkan/mebtg/internal/application/dialog"
	"github.com/kayrademirkan/mebtg/internal/interface/telegram/presenter"
)

// ══════════════════════════════════════════════════════════════════════════════
// SELECTION HANDLER
// Serbest metin: sınıf/branş seçimleri, yeniden başlatma ve tanınmayan
// girdiler buradan geçer.
// ══════════════════════════════════════════════════════════════════════════════

// SelectionHandler handles free-text messages driving the selection flow.
type SelectionHandler struct {
	machine   *dialog.Machine
	presenter *presenter.MessagePresenter
}

// NewSelectionHandler creates a new SelectionHandler with dependencies.
func NewSelectionHandler(machine *dialog.Machine, pres *presenter.MessagePresenter) *SelectionHandler {
	return &SelectionHandler{
		machine:   machine,
		presenter: pres,
	}
}

// Handle advances the user's session with the given text.
func (h *SelectionHandler) Handle(ctx context.Context, userID int64, text string) ([]presenter.Reply, error) {
	outcome, err := h.machine.HandleText(ctx, userID, text)
	if err != nil {
		return nil, err
	}
	return h.presenter.Render(outcome), nil
}
