package session

import (
	"testing"

	"github.com/wetube/tube/internal/domain"
	"github.com/wetube/tube/internal/log"
	"github.com/wetube/tube/internal/store"
)

func testUser() domain.User {
	return domain.User{
		ID:       7,
		Username: "june",
		Nickname: "junetube",
		Email:    "june@example.com",
		Role:     domain.RoleUser,
		Gender:   domain.GenderFemale,
		Address1: "12 Main St",
	}
}

func memStore(t *testing.T) *store.StateStore {
	t.Helper()
	st, err := store.Open("")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return st
}

func TestLoginLogoutYieldsEmptySession(t *testing.T) {
	s := NewStore(memStore(t), log.NullLogger())

	s.Login("tok-1", testUser())
	nick := "renamed"
	s.UpdateUser(UserPatch{Nickname: &nick})
	s.Logout()

	got := s.Snapshot()
	if got.Token != "" || got.User != nil || got.IsLoggedIn {
		t.Errorf("expected empty session after logout, got %+v", got)
	}
}

func TestLoginOverwritesUnconditionally(t *testing.T) {
	s := NewStore(memStore(t), log.NullLogger())

	s.Login("tok-1", testUser())
	other := testUser()
	other.ID = 8
	other.Username = "someone"
	s.Login("tok-2", other)

	got := s.Snapshot()
	if got.Token != "tok-2" {
		t.Errorf("token = %q, want tok-2", got.Token)
	}
	if got.User.ID != 8 {
		t.Errorf("user id = %d, want 8", got.User.ID)
	}
	if !got.IsLoggedIn {
		t.Error("expected IsLoggedIn after login")
	}
}

func TestUpdateUserTouchesOnlyNamedFields(t *testing.T) {
	s := NewStore(memStore(t), log.NullLogger())
	s.Login("tok", testUser())

	before := s.Snapshot()
	nick := "newnick"
	s.UpdateUser(UserPatch{Nickname: &nick})
	after := s.Snapshot()

	if after.User.Nickname != "newnick" {
		t.Errorf("nickname = %q, want newnick", after.User.Nickname)
	}

	// Everything else stays byte-identical
	want := *before.User
	want.Nickname = "newnick"
	if *after.User != want {
		t.Errorf("unexpected field change: got %+v, want %+v", *after.User, want)
	}
}

func TestUpdateUserWithoutUserIsNoop(t *testing.T) {
	s := NewStore(memStore(t), log.NullLogger())

	nick := "ghost"
	s.UpdateUser(UserPatch{Nickname: &nick})

	if got := s.Snapshot(); got.User != nil || got.IsLoggedIn {
		t.Errorf("expected empty session, got %+v", got)
	}
}

func TestRehydrateFromStore(t *testing.T) {
	st := memStore(t)

	first := NewStore(st, log.NullLogger())
	first.Login("tok-persist", testUser())

	// A fresh store over the same backing state picks the session up
	second := NewStore(st, log.NullLogger())
	got := second.Snapshot()
	if !got.IsLoggedIn || got.Token != "tok-persist" {
		t.Errorf("expected rehydrated session, got %+v", got)
	}
	if got.User == nil || got.User.Username != "june" {
		t.Errorf("expected rehydrated user, got %+v", got.User)
	}
}

func TestRehydrateFallsBackToEmpty(t *testing.T) {
	st := memStore(t)
	// Unparseable blob under the session key
	if err := st.Set(store.KeySession, "not-a-session"); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	s := NewStore(st, log.NullLogger())
	if got := s.Snapshot(); got.IsLoggedIn || got.User != nil || got.Token != "" {
		t.Errorf("expected empty session on parse failure, got %+v", got)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s := NewStore(memStore(t), log.NullLogger())
	s.Login("tok", testUser())

	snap := s.Snapshot()
	snap.User.Nickname = "mutated"

	if s.Snapshot().User.Nickname == "mutated" {
		t.Error("snapshot mutation leaked into the store")
	}
}

func TestSubscribeNotifiedOnMutation(t *testing.T) {
	s := NewStore(memStore(t), log.NullLogger())

	var calls int
	s.Subscribe(func() { calls++ })

	s.Login("tok", testUser())
	s.Logout()

	if calls != 2 {
		t.Errorf("subscriber calls = %d, want 2", calls)
	}
}
