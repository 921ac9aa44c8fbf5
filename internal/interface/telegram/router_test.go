package telegram

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kayrademirkan/mebtg/internal/application/dialog"
	"github.com/kayrademirkan/mebtg/internal/domain/curriculum"
	"github.com/kayrademirkan/mebtg/internal/infrastructure/external/telegram"
	"github.com/kayrademirkan/mebtg/internal/infrastructure/persistence/memory"
	"github.com/kayrademirkan/mebtg/internal/interface/telegram/handler"
	"github.com/kayrademirkan/mebtg/internal/interface/telegram/presenter"
)

// sentMessage is the decoded body of one sendMessage call.
type sentMessage struct {
	ChatID      int64           `json:"chat_id"`
	Text        string          `json:"text"`
	ParseMode   string          `json:"parse_mode"`
	ReplyMarkup json.RawMessage `json:"reply_markup"`
}

// fakeAPI records sendMessage calls and answers like the Bot API.
type fakeAPI struct {
	mu   sync.Mutex
	sent []sentMessage
}

func (f *fakeAPI) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/sendMessage") {
			var msg sentMessage
			_ = json.NewDecoder(r.Body).Decode(&msg)
			f.mu.Lock()
			f.sent = append(f.sent, msg)
			f.mu.Unlock()
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":1}}`))
	})
}

func (f *fakeAPI) messages() []sentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentMessage(nil), f.sent...)
}

func (m sentMessage) keyboardRows(t *testing.T) [][]string {
	t.Helper()
	require.NotEmpty(t, m.ReplyMarkup)

	var markup struct {
		Keyboard [][]struct {
			Text string `json:"text"`
		} `json:"keyboard"`
	}
	require.NoError(t, json.Unmarshal(m.ReplyMarkup, &markup))

	rows := make([][]string, len(markup.Keyboard))
	for i, row := range markup.Keyboard {
		labels := make([]string, len(row))
		for j, btn := range row {
			labels[j] = btn.Text
		}
		rows[i] = labels
	}
	return rows
}

func testRouter(t *testing.T) (*Router, *telegram.Client, *fakeAPI) {
	t.Helper()

	api := &fakeAPI{}
	srv := httptest.NewServer(api.handler())
	t.Cleanup(srv.Close)

	clientConfig := telegram.DefaultClientConfig("test-token")
	clientConfig.BaseURL = srv.URL
	clientConfig.RetryAttempts = 1
	client := telegram.NewClient(clientConfig)

	table := curriculum.NewTable(map[string]map[string]map[string]string{
		"Biyoloji": {
			"9": {"1": "Canlıların ortak özelliklerini açıklar."},
		},
	})
	holder := curriculum.NewHolder(table)
	machine := dialog.NewMachine(memory.NewSessionStore(), holder,
		dialog.WithClock(func() time.Time {
			return time.Date(2024, 9, 16, 10, 0, 0, 0, time.UTC)
		}),
	)

	pres := presenter.NewMessagePresenter()
	router := NewRouter(
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		handler.NewStartHandler(machine, pres),
		handler.NewHelpHandler(),
		handler.NewWeekHandler(machine, pres),
		handler.NewSelectionHandler(machine, pres),
	)
	return router, client, api
}

func inboundCommand(userID int64, text string, cmdLen int) *telegram.Message {
	msg := inboundText(userID, text)
	msg.Entities = []telegram.MessageEntity{
		{Type: "bot_command", Offset: 0, Length: cmdLen},
	}
	return msg
}

func inboundText(userID int64, text string) *telegram.Message {
	return &telegram.Message{
		Text: text,
		From: &telegram.User{ID: userID},
		Chat: &telegram.Chat{ID: userID, Type: "private"},
	}
}

func TestRouter_StartCommand(t *testing.T) {
	router, client, api := testRouter(t)

	err := router.Route(context.Background(), client, inboundCommand(1, "/start", 6))
	require.NoError(t, err)

	sent := api.messages()
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0].Text, "Hoş Geldiniz")
	assert.Equal(t, "Markdown", sent[0].ParseMode)
	assert.Equal(t, [][]string{{"9", "10"}, {"11", "12"}}, sent[0].keyboardRows(t))
}

func TestRouter_HelpCommand(t *testing.T) {
	router, client, api := testRouter(t)

	err := router.Route(context.Background(), client, inboundCommand(1, "/help", 5))
	require.NoError(t, err)

	sent := api.messages()
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0].Text, "/hafta <numara>")
}

func TestRouter_UnknownCommand(t *testing.T) {
	router, client, api := testRouter(t)

	err := router.Route(context.Background(), client, inboundCommand(1, "/foo", 4))
	require.NoError(t, err)

	sent := api.messages()
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0].Text, "Bilinmeyen komut")
}

func TestRouter_FullSelectionFlow(t *testing.T) {
	router, client, api := testRouter(t)
	ctx := context.Background()

	require.NoError(t, router.Route(ctx, client, inboundCommand(7, "/start", 6)))
	require.NoError(t, router.Route(ctx, client, inboundText(7, "9")))
	require.NoError(t, router.Route(ctx, client, inboundText(7, "Biyoloji")))

	sent := api.messages()
	require.Len(t, sent, 4)
	assert.Contains(t, sent[1].Text, "9. sınıf seçildi")
	assert.Equal(t, [][]string{{"Biyoloji", "Kimya"}, {"Fizik", "Matematik"}}, sent[1].keyboardRows(t))
	assert.Contains(t, sent[2].Text, "16–22 Eylül")
	assert.Contains(t, sent[2].Text, "Canlıların ortak özelliklerini açıklar.")
	assert.Equal(t, [][]string{{dialog.RestartPhrase}}, sent[3].keyboardRows(t))
}

func TestRouter_WeekCommandWithoutSelection(t *testing.T) {
	router, client, api := testRouter(t)

	err := router.Route(context.Background(), client, inboundCommand(3, "/hafta 5", 6))
	require.NoError(t, err)

	sent := api.messages()
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0].Text, "Önce sınıf ve branşınızı seçmelisiniz")
}

func TestRouter_NilMessageIgnored(t *testing.T) {
	router, client, api := testRouter(t)

	require.NoError(t, router.Route(context.Background(), client, nil))
	assert.Empty(t, api.messages())
}
