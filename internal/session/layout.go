package session

import (
	"log/slog"
	"sync"

	"github.com/wetube/tube/internal/store"
)

type layoutState struct {
	IsSidebarOpen bool `json:"isSidebarOpen"`
}

// LayoutStore holds the sidebar open/closed preference, persisted under its
// own fixed key. Defaults to open.
type LayoutStore struct {
	mu     sync.RWMutex
	state  layoutState
	st     *store.StateStore
	logger *slog.Logger
}

func NewLayoutStore(st *store.StateStore, logger *slog.Logger) *LayoutStore {
	if logger == nil {
		logger = slog.Default()
	}
	l := &LayoutStore{st: st, logger: logger, state: layoutState{IsSidebarOpen: true}}

	var persisted layoutState
	if st != nil && st.Get(store.KeyLayout, &persisted) {
		l.state = persisted
	}
	return l
}

func (l *LayoutStore) IsSidebarOpen() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state.IsSidebarOpen
}

func (l *LayoutStore) ToggleSidebar() {
	l.mu.Lock()
	l.state.IsSidebarOpen = !l.state.IsSidebarOpen
	l.saveLocked()
	l.mu.Unlock()
}

func (l *LayoutStore) CloseSidebar() {
	l.mu.Lock()
	l.state.IsSidebarOpen = false
	l.saveLocked()
	l.mu.Unlock()
}

func (l *LayoutStore) saveLocked() {
	if l.st == nil {
		return
	}
	if err := l.st.Set(store.KeyLayout, l.state); err != nil {
		l.logger.Error("failed to persist layout preference", "error", err)
	}
}
