// Package session keeps one live upgrade screen per user. Screens are
// created on first access and dropped when the user dismisses the success
// alert (the screen closes).
package session

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/raceday/pro-upgrade/internal/domain/store"
	"github.com/raceday/pro-upgrade/internal/screen"
)

// Factory builds a per-user store service.
type Factory func(userID string) store.Service

// Manager is the per-user screen registry.
type Manager struct {
	factory  Factory
	recorder screen.EventRecorder
	logger   *zap.Logger

	mu      sync.Mutex
	screens map[string]*screen.Screen
}

// NewManager creates a session manager. recorder may be nil.
func NewManager(factory Factory, recorder screen.EventRecorder, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		factory:  factory,
		recorder: recorder,
		logger:   logger,
		screens:  make(map[string]*screen.Screen),
	}
}

// Get returns the user's live screen, creating and hydrating one when
// none exists or the previous one was closed.
func (m *Manager) Get(ctx context.Context, userID string) *screen.Screen {
	m.mu.Lock()
	sc, ok := m.screens[userID]
	if ok && !sc.State().Closed {
		m.mu.Unlock()
		return sc
	}

	svc := m.factory(userID)
	sc = screen.New(userID, svc, m.recorder, m.logger)
	m.screens[userID] = sc
	m.mu.Unlock()

	// Hydrate outside the registry lock; the screen renders the loading
	// or error layout until products arrive.
	if err := svc.LoadProducts(ctx); err != nil {
		m.logger.Warn("initial product load failed",
			zap.String("user_id", userID),
			zap.Error(err),
		)
	}
	return sc
}

// Close drops the user's screen.
func (m *Manager) Close(userID string) {
	m.mu.Lock()
	delete(m.screens, userID)
	m.mu.Unlock()
}

// Active returns the number of live screens.
func (m *Manager) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.screens)
}
