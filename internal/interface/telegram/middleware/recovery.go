// Package middleware contains Telegram bot middlewares for update processing.
package middleware

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"
)

// ══════════════════════════════════════════════════════════════════════════════
// RECOVERY MIDDLEWARE
// Catches panics in handlers and converts them to user-friendly error
// messages. The bot must stay responsive even if a handler crashes; users
// never see a stack trace.
// ══════════════════════════════════════════════════════════════════════════════

// RecoveryConfig holds configuration for the recovery middleware.
type RecoveryConfig struct {
	// EnableStackTrace enables capturing stack traces.
	EnableStackTrace bool

	// OnPanic is called when a panic is recovered. This is where alerts to
	// monitoring systems would go.
	OnPanic func(ctx context.Context, info *PanicInfo)

	// UserErrorMessage is the message sent to users when a panic occurs.
	UserErrorMessage string

	// MaxPanicsPerMinute limits how many panics are processed per minute to
	// prevent cascading failures.
	MaxPanicsPerMinute int
}

// DefaultRecoveryConfig returns sensible defaults for recovery middleware.
func DefaultRecoveryConfig() RecoveryConfig {
	return RecoveryConfig{
		EnableStackTrace: true,
		UserErrorMessage: "😔 Bir şeyler ters gitti.\n\n" +
			"Lütfen birkaç dakika sonra tekrar deneyin.",
		MaxPanicsPerMinute: 100,
	}
}

// PanicInfo contains information about a recovered panic.
type PanicInfo struct {
	// Error is the panic value converted to error.
	Error error

	// StackTrace is the formatted stack trace.
	StackTrace string

	// RequestID correlates the panic with the update's log entries.
	RequestID string

	// UserID is the Telegram user ID (if available).
	UserID int64

	// Command is the command that was being processed (if available).
	Command string

	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

// RecoveryMiddleware recovers from panics in update handlers.
type RecoveryMiddleware struct {
	config  RecoveryConfig
	mu      sync.Mutex
	window  time.Time
	inCount int
}

// NewRecoveryMiddleware creates a new recovery middleware.
func NewRecoveryMiddleware(config RecoveryConfig) *RecoveryMiddleware {
	if config.UserErrorMessage == "" {
		config.UserErrorMessage = DefaultRecoveryConfig().UserErrorMessage
	}
	return &RecoveryMiddleware{config: config}
}

// Result reports whether a panic was recovered and what to tell the user.
type Result struct {
	Recovered   bool
	Info        *PanicInfo
	UserMessage string
}

// Run executes the handler and recovers from any panic, returning the
// handler's error when no panic occurred.
func (m *RecoveryMiddleware) Run(ctx context.Context, requestID string, userID int64, command string, handler func() error) (result Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			info := &PanicInfo{
				Error:     toError(r),
				RequestID: requestID,
				UserID:    userID,
				Command:   command,
				Timestamp: time.Now(),
			}
			if m.config.EnableStackTrace {
				info.StackTrace = string(debug.Stack())
			}

			if m.allow() && m.config.OnPanic != nil {
				m.config.OnPanic(ctx, info)
			}

			result = Result{
				Recovered:   true,
				Info:        info,
				UserMessage: m.config.UserErrorMessage,
			}
			err = nil
		}
	}()

	err = handler()
	return Result{}, err
}

// allow rate-limits panic processing per minute.
func (m *RecoveryMiddleware) allow() bool {
	if m.config.MaxPanicsPerMinute <= 0 {
		return true
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	if now.Sub(m.window) >= time.Minute {
		m.window = now
		m.inCount = 0
	}
	m.inCount++
	return m.inCount <= m.config.MaxPanicsPerMinute
}

// toError converts a panic value to an error.
func toError(v any) error {
	switch e := v.(type) {
	case error:
		return e
	default:
		return fmt.Errorf("panic: %v", v)
	}
}
