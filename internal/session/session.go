package session

import (
	"log/slog"
	"sync"

	"github.com/wetube/tube/internal/domain"
	"github.com/wetube/tube/internal/store"
)

// Snapshot is a point-in-time copy of the session for readers. The invariant
// IsLoggedIn == (Token != "" && User != nil) holds for every snapshot.
type Snapshot struct {
	Token      string       `json:"token"`
	User       *domain.User `json:"user"`
	IsLoggedIn bool         `json:"isLoggedIn"`
}

// UserPatch carries profile fields to merge into the current user. Nil
// fields are left untouched.
type UserPatch struct {
	Nickname     *string        `json:"nickname,omitempty"`
	Email        *string        `json:"email,omitempty"`
	ProfileImage *string        `json:"profileImage,omitempty"`
	PhoneNumber  *string        `json:"phoneNumber,omitempty"`
	BirthDate    *string        `json:"birthDate,omitempty"`
	Gender       *domain.Gender `json:"gender,omitempty"`
	ZipCode      *string        `json:"zipCode,omitempty"`
	Address1     *string        `json:"address1,omitempty"`
	Address2     *string        `json:"address2,omitempty"`
}

// Store owns the auth session. All views read it through Snapshot; only the
// login/logout/profile flows write it through the setters below. Every
// mutation is persisted to the state store under a fixed key; persistence is
// best-effort and the in-memory state stays authoritative.
type Store struct {
	mu     sync.RWMutex
	state  Snapshot
	st     *store.StateStore
	logger *slog.Logger

	subMu sync.Mutex
	subs  []func()
}

// NewStore creates the session store, rehydrating from the state store.
// Absence or a parse failure yields the empty session.
func NewStore(st *store.StateStore, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{st: st, logger: logger}

	var persisted Snapshot
	if st != nil && st.Get(store.KeySession, &persisted) {
		// Re-derive the flag rather than trusting the stored one
		persisted.IsLoggedIn = persisted.Token != "" && persisted.User != nil
		s.state = persisted
	}
	return s
}

// Snapshot returns a copy of the current session.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyLocked()
}

// IsLoggedIn reports whether a session is active.
func (s *Store) IsLoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.IsLoggedIn
}

// Token returns the current bearer token, empty when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token
}

// Login unconditionally overwrites the session. The token is trusted as-is;
// it came from a successful auth response.
func (s *Store) Login(token string, user domain.User) {
	s.mu.Lock()
	u := user
	s.state = Snapshot{Token: token, User: &u, IsLoggedIn: true}
	s.saveLocked()
	s.mu.Unlock()
	s.notify()
}

// Logout resets to the empty session. Views redirect themselves; the store
// never navigates.
func (s *Store) Logout() {
	s.mu.Lock()
	s.state = Snapshot{}
	s.saveLocked()
	s.mu.Unlock()
	s.notify()
}

// UpdateUser shallow-merges the patch into the current user. No-op when no
// user is set.
func (s *Store) UpdateUser(patch UserPatch) {
	s.mu.Lock()
	if s.state.User == nil {
		s.mu.Unlock()
		return
	}
	u := *s.state.User
	if patch.Nickname != nil {
		u.Nickname = *patch.Nickname
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.ProfileImage != nil {
		u.ProfileImage = *patch.ProfileImage
	}
	if patch.PhoneNumber != nil {
		u.PhoneNumber = *patch.PhoneNumber
	}
	if patch.BirthDate != nil {
		u.BirthDate = *patch.BirthDate
	}
	if patch.Gender != nil {
		u.Gender = *patch.Gender
	}
	if patch.ZipCode != nil {
		u.ZipCode = *patch.ZipCode
	}
	if patch.Address1 != nil {
		u.Address1 = *patch.Address1
	}
	if patch.Address2 != nil {
		u.Address2 = *patch.Address2
	}
	s.state.User = &u
	s.saveLocked()
	s.mu.Unlock()
	s.notify()
}

// Subscribe registers a callback invoked after every mutation.
func (s *Store) Subscribe(fn func()) {
	s.subMu.Lock()
	s.subs = append(s.subs, fn)
	s.subMu.Unlock()
}

func (s *Store) notify() {
	s.subMu.Lock()
	subs := make([]func(), len(s.subs))
	copy(subs, s.subs)
	s.subMu.Unlock()
	for _, fn := range subs {
		fn()
	}
}

// saveLocked persists the full session. Failures are logged only.
func (s *Store) saveLocked() {
	if s.st == nil {
		return
	}
	if err := s.st.Set(store.KeySession, s.copyLocked()); err != nil {
		s.logger.Error("failed to persist session", "error", err)
	}
}

func (s *Store) copyLocked() Snapshot {
	out := s.state
	if s.state.User != nil {
		u := *s.state.User
		out.User = &u
	}
	return out
}
