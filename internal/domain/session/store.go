package session

import (
	"context"
)

// UpdateFunc mutates one user's session inside the store's critical section.
// It receives nil when the user has no session yet and returns the session to
// keep (returning a different pointer replaces the record). Returning an
// error aborts the update and leaves the stored session untouched.
type UpdateFunc func(current *Session) (*Session, error)

// Store, oturumların tek sahibidir. İmplementasyonlar kullanıcı başına
// münhasır erişim garanti eder: aynı kullanıcı için eşzamanlı iki Update
// çağrısı asla iç içe geçmez. Farklı kullanıcılar birbirini bloklamaz.
type Store interface {
	// Get returns a copy of the user's session, or shared.ErrSessionNotFound.
	Get(ctx context.Context, userID int64) (Session, error)

	// Update runs fn while holding the user's exclusive slot.
	Update(ctx context.Context, userID int64, fn UpdateFunc) error
}
