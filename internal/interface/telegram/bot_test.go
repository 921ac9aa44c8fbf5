package telegram

import (
	"bytes"
	"context"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kayrademirkan/mebtg/internal/application/dialog"
	"github.com/kayrademirkan/mebtg/internal/domain/curriculum"
	"github.com/kayrademirkan/mebtg/internal/infrastructure/external/telegram"
	"github.com/kayrademirkan/mebtg/internal/infrastructure/persistence/memory"
)

// panicLookup crashes on every lookup, standing in for a broken table.
type panicLookup struct{}

func (panicLookup) Lookup(curriculum.Subject, curriculum.Grade, int) curriculum.LookupResult {
	panic("lookup exploded")
}

func testBot(t *testing.T, lookup dialog.Lookuper) (*Bot, *fakeAPI, *bytes.Buffer) {
	t.Helper()

	api := &fakeAPI{}
	srv := httptest.NewServer(api.handler())
	t.Cleanup(srv.Close)

	var logBuf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logBuf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	machine := dialog.NewMachine(memory.NewSessionStore(), lookup,
		dialog.WithClock(func() time.Time {
			return time.Date(2024, 9, 16, 10, 0, 0, 0, time.UTC)
		}),
	)

	config := DefaultBotConfig("test-token")
	config.Logger = logger
	config.APIBaseURL = srv.URL

	bot, err := NewBot(config, machine)
	require.NoError(t, err)
	return bot, api, &logBuf
}

func update(id int64, msg *telegram.Message) *telegram.Update {
	return &telegram.Update{UpdateID: id, Message: msg}
}

func TestBot_PanicIsLoggedAndAnswered(t *testing.T) {
	bot, api, logBuf := testBot(t, panicLookup{})
	ctx := context.Background()

	require.NoError(t, bot.HandleUpdate(ctx, update(1, inboundCommand(5, "/start", 6))))
	require.NoError(t, bot.HandleUpdate(ctx, update(2, inboundText(5, "9"))))
	// Subject selection reaches the lookup and panics.
	require.NoError(t, bot.HandleUpdate(ctx, update(3, inboundText(5, "Biyoloji"))))

	logged := logBuf.String()
	assert.Contains(t, logged, "recovered from panic in handler")
	assert.Contains(t, logged, "lookup exploded")
	assert.Contains(t, logged, "request_id")

	sent := api.messages()
	require.NotEmpty(t, sent)
	assert.Contains(t, sent[len(sent)-1].Text, "Bir şeyler ters gitti")

	stats := bot.GetStats()
	assert.Equal(t, int64(1), stats["errors_count"])
}

func TestBot_StatsCountHandledUpdates(t *testing.T) {
	table := curriculum.NewTable(map[string]map[string]map[string]string{
		"Biyoloji": {"9": {"1": "Canlıların ortak özelliklerini açıklar."}},
	})
	bot, _, _ := testBot(t, curriculum.NewHolder(table))
	ctx := context.Background()

	require.NoError(t, bot.HandleUpdate(ctx, update(1, inboundCommand(5, "/start", 6))))
	require.NoError(t, bot.HandleUpdate(ctx, update(2, inboundText(5, "9"))))

	stats := bot.GetStats()
	assert.Equal(t, int64(2), stats["updates_received"])
	assert.Equal(t, int64(2), stats["updates_handled"])
	assert.Equal(t, int64(0), stats["errors_count"])
	assert.Equal(t, map[string]int64{"start": 1}, stats["commands_count"])
}
