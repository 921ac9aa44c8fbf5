package presenter

import (
	"fmt"
	"strings"

	"github.com/kayrademirkan/mebtg/internal/application/dialog"
	"github.com/kayrademirkan/mebtg/internal/domain/curriculum"
)

// ══════════════════════════════════════════════════════════════════════════════
// MESSAGE PRESENTER
// Diyalog sonuçlarını Türkçe yanıtlara çevirir. Tüm kullanıcıya görünen
// metin bu pakette toplanır; makine hiçbir zaman metin üretmez.
// ══════════════════════════════════════════════════════════════════════════════

// Reply is one outbound Telegram message in a library-agnostic shape.
type Reply struct {
	// Text is the message body.
	Text string

	// Keyboard holds reply keyboard rows, nil when no keyboard is suggested.
	Keyboard [][]string

	// RemoveKeyboard hides any previously shown reply keyboard.
	RemoveKeyboard bool

	// ParseMode is "Markdown" or empty for plain text.
	ParseMode string
}

// MessagePresenter renders dialog outcomes into replies.
type MessagePresenter struct {
	keyboards *KeyboardBuilder
}

// NewMessagePresenter creates a new MessagePresenter.
func NewMessagePresenter() *MessagePresenter {
	return &MessagePresenter{
		keyboards: NewKeyboardBuilder(),
	}
}

// Render converts an outcome into one or more replies, in send order.
func (p *MessagePresenter) Render(outcome dialog.Outcome) []Reply {
	switch outcome.Kind {
	case dialog.OutcomeAskGrade:
		return []Reply{{
			Text: "🎓 **MEB Kazanım Botu'na Hoş Geldiniz!**\n\n" +
				"Bu bot ile haftalık MEB kazanımlarınızı kolayca görebilirsiniz.\n\n" +
				"📚 Önce sınıfınızı seçin:",
			Keyboard:  p.keyboards.GradeKeyboard(),
			ParseMode: "Markdown",
		}}

	case dialog.OutcomeAskSubject:
		return []Reply{{
			Text: fmt.Sprintf("✅ %s. sınıf seçildi!\n\n📖 Şimdi branşınızı seçin:",
				outcome.Grade),
			Keyboard: p.keyboards.SubjectKeyboard(),
		}}

	case dialog.OutcomeGradeRejected:
		return []Reply{{
			Text:     fmt.Sprintf("Lütfen geçerli bir sınıf seçin (%s)", joinGrades()),
			Keyboard: p.keyboards.GradeKeyboard(),
		}}

	case dialog.OutcomeSubjectRejected:
		return []Reply{{
			Text:     fmt.Sprintf("Lütfen geçerli bir branş seçin (%s)", joinSubjects()),
			Keyboard: p.keyboards.SubjectKeyboard(),
		}}

	case dialog.OutcomeGradeRequired:
		return []Reply{{
			Text: "Önce sınıfınızı seçmelisiniz. /start komutu ile başlayın.",
		}}

	case dialog.OutcomeSelectionRequired:
		return []Reply{{
			Text: "Önce sınıf ve branşınızı seçmelisiniz. /start komutu ile başlayın.",
		}}

	case dialog.OutcomeArgumentInvalid:
		return []Reply{{
			Text: "Lütfen geçerli bir hafta numarası girin (1-40 arası).\nÖrnek: /hafta 5",
		}}

	case dialog.OutcomeAnswer:
		answer := fmt.Sprintf("🗓️ **%s**\n📘 **%s. sınıf %s dersi, %d. hafta**\n➡️ %s",
			outcome.WeekRange, outcome.Grade, outcome.Subject, outcome.Week,
			objectiveText(outcome.Lookup))
		return []Reply{
			{
				Text:           answer,
				RemoveKeyboard: true,
				ParseMode:      "Markdown",
			},
			{
				Text:     "Başka bir sınıf/branş için tekrar başlamak ister misiniz?",
				Keyboard: p.keyboards.RestartKeyboard(),
			},
		}

	case dialog.OutcomeWeekAnswer:
		return []Reply{{
			Text: fmt.Sprintf("📘 **%s. sınıf %s dersi, %d. hafta**\n➡️ %s",
				outcome.Grade, outcome.Subject, outcome.Week,
				objectiveText(outcome.Lookup)),
			ParseMode: "Markdown",
		}}

	case dialog.OutcomeUnrecognized:
		return []Reply{{
			Text: "Anlayamadım. /start komutu ile başlayın veya /help ile " +
				"kullanımı görün.",
		}}

	default:
		return []Reply{{
			Text: "Anlayamadım. /start komutu ile başlayın.",
		}}
	}
}

// objectiveText returns the objective body, or the miss wording when the
// table has no matching entry.
func objectiveText(result curriculum.LookupResult) string {
	switch result.Status {
	case curriculum.StatusFound:
		return result.Objective
	case curriculum.StatusWeekMissing:
		return fmt.Sprintf("Bu hafta için %s dersi kazanımı bulunamadı.", result.Subject)
	case curriculum.StatusSubjectGradeMissing:
		return fmt.Sprintf("%s dersi için %s. sınıf kazanımları bulunamadı.",
			result.Subject, result.Grade)
	default:
		return "Kazanım alınırken bir hata oluştu."
	}
}

func joinGrades() string {
	grades := curriculum.Grades()
	parts := make([]string, len(grades))
	for i, g := range grades {
		parts[i] = string(g)
	}
	return strings.Join(parts, ", ")
}

func joinSubjects() string {
	subjects := curriculum.Subjects()
	parts := make([]string, len(subjects))
	for i, s := range subjects {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}
