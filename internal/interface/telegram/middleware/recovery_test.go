package middleware

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecovery_PassesThroughSuccess(t *testing.T) {
	m := NewRecoveryMiddleware(DefaultRecoveryConfig())

	result, err := m.Run(context.Background(), "req-1", 42, "start", func() error {
		return nil
	})

	require.NoError(t, err)
	assert.False(t, result.Recovered)
	assert.Nil(t, result.Info)
}

func TestRecovery_PassesThroughHandlerError(t *testing.T) {
	m := NewRecoveryMiddleware(DefaultRecoveryConfig())
	boom := errors.New("downstream failure")

	result, err := m.Run(context.Background(), "req-1", 42, "hafta", func() error {
		return boom
	})

	require.ErrorIs(t, err, boom)
	assert.False(t, result.Recovered)
}

func TestRecovery_CatchesPanic(t *testing.T) {
	m := NewRecoveryMiddleware(DefaultRecoveryConfig())

	result, err := m.Run(context.Background(), "req-7", 42, "start", func() error {
		panic("handler exploded")
	})

	require.NoError(t, err)
	assert.True(t, result.Recovered)
	require.NotNil(t, result.Info)
	assert.Contains(t, result.Info.Error.Error(), "handler exploded")
	assert.Equal(t, "req-7", result.Info.RequestID)
	assert.Equal(t, int64(42), result.Info.UserID)
	assert.Equal(t, "start", result.Info.Command)
	assert.Equal(t, DefaultRecoveryConfig().UserErrorMessage, result.UserMessage)
	assert.NotEmpty(t, result.Info.StackTrace)
}

func TestRecovery_PanicWithErrorValue(t *testing.T) {
	m := NewRecoveryMiddleware(DefaultRecoveryConfig())
	boom := errors.New("typed panic")

	result, err := m.Run(context.Background(), "req-2", 1, "", func() error {
		panic(boom)
	})

	require.NoError(t, err)
	require.True(t, result.Recovered)
	assert.ErrorIs(t, result.Info.Error, boom)
}

func TestRecovery_OnPanicCallback(t *testing.T) {
	var captured *PanicInfo
	config := DefaultRecoveryConfig()
	config.OnPanic = func(_ context.Context, info *PanicInfo) {
		captured = info
	}
	m := NewRecoveryMiddleware(config)

	_, _ = m.Run(context.Background(), "req-3", 9, "help", func() error {
		panic("observed")
	})

	require.NotNil(t, captured)
	assert.Equal(t, "req-3", captured.RequestID)
}

func TestRecovery_PanicRateLimit(t *testing.T) {
	calls := 0
	config := DefaultRecoveryConfig()
	config.MaxPanicsPerMinute = 2
	config.OnPanic = func(_ context.Context, _ *PanicInfo) {
		calls++
	}
	m := NewRecoveryMiddleware(config)

	for i := 0; i < 5; i++ {
		result, err := m.Run(context.Background(), "req", 1, "start", func() error {
			panic("again")
		})
		require.NoError(t, err)
		assert.True(t, result.Recovered)
	}

	// Every panic is still recovered; only callback processing is capped.
	assert.Equal(t, 2, calls)
}

func TestRecovery_EmptyUserMessageGetsDefault(t *testing.T) {
	m := NewRecoveryMiddleware(RecoveryConfig{})

	result, _ := m.Run(context.Background(), "req", 1, "", func() error {
		panic("x")
	})

	assert.Equal(t, DefaultRecoveryConfig().UserErrorMessage, result.UserMessage)
}
