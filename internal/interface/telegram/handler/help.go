package handler

import (
	"context"

	"github.com/kayrademirkan/mebtg/internal/interface/telegram/presenter"
)

// ══════════════════════════════════════════════════════════════════════════════
// HELP HANDLER
// /help: statik kullanım metni.
// ══════════════════════════════════════════════════════════════════════════════

const helpText = "🤖 **MEB Kazanım Botu Yardım**\n\n" +
	"📋 **Komutlar:**\n" +
	"• /start - Botu başlat\n" +
	"• /help - Bu yardım mesajını göster\n" +
	"• /hafta <numara> - Belirli bir haftayı görüntüle\n\n" +
	"📚 **Nasıl Kullanılır:**\n" +
	"1. /start komutu ile başlayın\n" +
	"2. Sınıfınızı seçin (9, 10, 11, 12)\n" +
	"3. Branşınızı seçin (Biyoloji, Kimya, Fizik, Matematik)\n" +
	"4. Bot otomatik olarak bu haftanın kazanımını gösterecek\n\n" +
	"📅 **Hafta Hesaplama:**\n" +
	"Bot, eğitim yılının başlangıcını (15 Eylül) baz alarak hafta numarasını hesaplar."

// HelpHandler handles the /help command.
type HelpHandler struct{}

// NewHelpHandler creates a new HelpHandler.
func NewHelpHandler() *HelpHandler {
	return &HelpHandler{}
}

// Handle returns the static usage text.
func (h *HelpHandler) Handle(_ context.Context, _ int64) ([]presenter.Reply, error) {
	return []presenter.Reply{{
		Text:      helpText,
		ParseMode: "Markdown",
	}}, nil
}
