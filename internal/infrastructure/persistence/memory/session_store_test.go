package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kayrademirkan/mebtg/internal/domain/curriculum"
	"github.com/kayrademirkan/mebtg/internal/domain/session"
	"github.com/kayrademirkan/mebtg/internal/domain/shared"
)

func TestGet_NotFound(t *testing.T) {
	store := NewSessionStore()

	_, err := store.Get(context.Background(), 1)
	assert.ErrorIs(t, err, shared.ErrSessionNotFound)
}

func TestUpdate_CreatesAndReads(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()
	now := time.Now()

	err := store.Update(ctx, 1, func(current *session.Session) (*session.Session, error) {
		assert.Nil(t, current)
		return session.New(1, now), nil
	})
	require.NoError(t, err)

	sess, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), sess.UserID)
	assert.Equal(t, session.StateAwaitingGrade, sess.State)
	assert.Equal(t, 1, store.Len())
}

func TestUpdate_ErrorLeavesSessionUntouched(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, store.Update(ctx, 1, func(_ *session.Session) (*session.Session, error) {
		return session.New(1, now), nil
	}))

	wantErr := errors.New("boom")
	err := store.Update(ctx, 1, func(current *session.Session) (*session.Session, error) {
		current.State = session.StateCompleted
		return current, wantErr
	})
	assert.ErrorIs(t, err, wantErr)

	sess, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, session.StateAwaitingGrade, sess.State)
}

func TestUpdate_CallerCannotAliasStoredState(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()
	now := time.Now()

	var leaked *session.Session
	require.NoError(t, store.Update(ctx, 1, func(_ *session.Session) (*session.Session, error) {
		leaked = session.New(1, now)
		return leaked, nil
	}))

	leaked.Grade = curriculum.Grade12

	sess, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, sess.Grade)
}

func TestUpdate_SerializesPerUser(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()
	now := time.Now()

	const workers = 32
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_ = store.Update(ctx, 1, func(current *session.Session) (*session.Session, error) {
				if current == nil {
					current = session.New(1, now)
				}
				// Not atomic on its own; the per-user lock makes it so.
				current.StartedAt = current.StartedAt.Add(time.Second)
				return current, nil
			})
		}()
	}
	wg.Wait()

	sess, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, now.Add(workers*time.Second), sess.StartedAt)
}

func TestUpdate_DifferentUsersIndependent(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()
	now := time.Now()

	const users = 16
	var wg sync.WaitGroup
	wg.Add(users)
	for i := 0; i < users; i++ {
		userID := int64(i + 1)
		go func() {
			defer wg.Done()
			_ = store.Update(ctx, userID, func(_ *session.Session) (*session.Session, error) {
				return session.New(userID, now), nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, users, store.Len())
	for i := 0; i < users; i++ {
		sess, err := store.Get(ctx, int64(i+1))
		require.NoError(t, err)
		assert.Equal(t, int64(i+1), sess.UserID)
	}
}

func TestUpdate_CancelledContext(t *testing.T) {
	store := NewSessionStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.Update(ctx, 1, func(current *session.Session) (*session.Session, error) {
		return current, nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}
