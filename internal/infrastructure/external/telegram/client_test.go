package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func commandMessage(text string, cmdLen int) *Message {
	return &Message{
		Text: text,
		Chat: &Chat{ID: 1, Type: "private"},
		Entities: []MessageEntity{
			{Type: "bot_command", Offset: 0, Length: cmdLen},
		},
	}
}

func TestExtractCommand(t *testing.T) {
	assert.Equal(t, "start", ExtractCommand(commandMessage("/start", 6)))
	assert.Equal(t, "hafta", ExtractCommand(commandMessage("/hafta 5", 6)))
	assert.Equal(t, "help", ExtractCommand(commandMessage("/help@mebkazanimbot", 19)))
}

func TestExtractCommand_MalformedEntity(t *testing.T) {
	// An entity length past the end of the text must not panic.
	assert.Equal(t, "", ExtractCommand(commandMessage("/a", 10)))
	assert.Equal(t, "", ExtractCommand(commandMessage("/start", 0)))
}

func TestExtractCommand_PlainText(t *testing.T) {
	msg := &Message{Text: "Biyoloji", Chat: &Chat{ID: 1, Type: "private"}}
	assert.Equal(t, "", ExtractCommand(msg))
	assert.Equal(t, "", ExtractCommand(nil))
}

func TestExtractCommandArgs(t *testing.T) {
	assert.Equal(t, "5", ExtractCommandArgs(commandMessage("/hafta 5", 6)))
	assert.Equal(t, "", ExtractCommandArgs(commandMessage("/hafta", 6)))
	assert.Equal(t, "12 extra", ExtractCommandArgs(commandMessage("/hafta   12 extra", 6)))
}

func TestIsPrivateChat(t *testing.T) {
	assert.True(t, IsPrivateChat(&Message{Chat: &Chat{Type: "private"}}))
	assert.False(t, IsPrivateChat(&Message{Chat: &Chat{Type: "group"}}))
	assert.False(t, IsPrivateChat(nil))
}

func TestNewReplyKeyboard(t *testing.T) {
	kb := NewReplyKeyboard([][]string{{"9", "10"}, {"11", "12"}})

	assert.True(t, kb.ResizeKeyboard)
	assert.True(t, kb.OneTimeKeyboard)
	assert.Len(t, kb.Keyboard, 2)
	assert.Equal(t, "9", kb.Keyboard[0][0].Text)
	assert.Equal(t, "12", kb.Keyboard[1][1].Text)
}

func TestAPIError(t *testing.T) {
	err := &APIError{Code: 429, Description: "Too Many Requests: retry after 7", RetryAfter: 7}
	assert.Contains(t, err.Error(), "429")
	assert.Contains(t, err.Error(), "Too Many Requests")
}

func TestIsUserBlocked(t *testing.T) {
	blocked := &APIError{Code: 403, Description: "Forbidden: bot was blocked by the user"}
	assert.True(t, IsUserBlocked(blocked))

	other := &APIError{Code: 400, Description: "Bad Request: chat not found"}
	assert.False(t, IsUserBlocked(other))
	assert.False(t, IsUserBlocked(nil))
}
