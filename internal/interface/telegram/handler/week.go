package handler

import (
	"context"

	"github.com/kayrademirkan/mebtg/internal/application/dialog"
	"github.com/kayrademirkan/mebtg/internal/interface/telegram/presenter"
)

// ══════════════════════════════════════════════════════════════════════════════
// WEEK HANDLER
// /hafta <numara>: kayıtlı seçim için belirli bir haftanın kazanımını
// getirir. Oturum durumunu değiştirmez.
// ══════════════════════════════════════════════════════════════════════════════

// WeekHandler handles the /hafta command.
type WeekHandler struct {
	machine   *dialog.Machine
	presenter *presenter.MessagePresenter
}

// NewWeekHandler creates a new WeekHandler with dependencies.
func NewWeekHandler(machine *dialog.Machine, pres *presenter.MessagePresenter) *WeekHandler {
	return &WeekHandler{
		machine:   machine,
		presenter: pres,
	}
}

// Handle answers an explicit week query. args is the raw command argument
// string; the machine applies one uniform rejection to every invalid form.
func (h *WeekHandler) Handle(ctx context.Context, userID int64, args string) ([]presenter.Reply, error) {
	outcome, err := h.machine.SpecificWeek(ctx, userID, args)
	if err != nil {
		return nil, err
	}
	return h.presenter.Render(outcome), nil
}
