// Copyright (c) 2025 The Zenith Note Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package theme tracks the light/dark preference and broadcasts changes.
//
// A Manager is the one shared theme context of the application. Views read
// IsDark, flip it with Toggle and Subscribe to hear about changes made
// elsewhere, including edits to the config file picked up by Watch.
package theme

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/muesli/termenv"
	"go.uber.org/zap"

	"github.com/praburajasekaran/zenith-note/internal/config"
)

// Manager owns the current theme. It is safe for concurrent use.
type Manager struct {
	mu         sync.RWMutex
	persistMu  sync.Mutex // orders flips, their writes and reloads
	preference string
	dark       bool
	subs       map[int]func(bool)
	nextID     int

	path   string
	detect func() bool
	logger *zap.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithConfigPath persists toggles to, and watches, the config file at path.
func WithConfigPath(path string) Option {
	return func(m *Manager) { m.path = path }
}

// WithDetector replaces terminal background detection for the "auto"
// preference.
func WithDetector(detect func() bool) Option {
	return func(m *Manager) {
		if detect != nil {
			m.detect = detect
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewManager creates a manager starting from preference ("dark", "light"
// or "auto"). Unknown values behave like "auto".
func NewManager(preference string, opts ...Option) *Manager {
	m := &Manager{
		subs:   make(map[int]func(bool)),
		detect: termenv.HasDarkBackground,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.preference, m.dark = m.resolve(preference)
	return m
}

func (m *Manager) resolve(preference string) (string, bool) {
	switch preference {
	case config.ThemeDark:
		return preference, true
	case config.ThemeLight:
		return preference, false
	default:
		return config.ThemeAuto, m.detect()
	}
}

// IsDark reports whether the dark theme is active.
func (m *Manager) IsDark() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.dark
}

// Preference returns "dark", "light" or "auto".
func (m *Manager) Preference() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.preference
}

// Toggle flips the theme, persists the explicit choice and notifies
// subscribers. It returns the new IsDark value. Persistence failures are
// logged and do not undo the toggle.
func (m *Manager) Toggle() bool {
	m.persistMu.Lock()
	m.mu.Lock()
	m.dark = !m.dark
	dark := m.dark
	m.preference = name(dark)
	m.mu.Unlock()

	m.logger.Debug("theme toggled", zap.Bool("dark", dark))
	m.persist(dark)
	m.persistMu.Unlock()

	m.notify(dark)
	return dark
}

// Subscribe registers fn to be called with the new IsDark value after every
// change. The returned function removes the subscription.
func (m *Manager) Subscribe(fn func(dark bool)) (unsubscribe func()) {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.subs[id] = fn
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.subs, id)
			m.mu.Unlock()
		})
	}
}

// apply adopts preference and reports whether the effective theme changed.
func (m *Manager) apply(preference string) (changed, dark bool) {
	pref, dark := m.resolve(preference)

	m.mu.Lock()
	defer m.mu.Unlock()
	changed = dark != m.dark
	m.preference = pref
	m.dark = dark
	return changed, dark
}

func (m *Manager) notify(dark bool) {
	m.mu.RLock()
	fns := make([]func(bool), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	m.mu.RUnlock()

	for _, fn := range fns {
		fn(dark)
	}
}

func (m *Manager) persist(dark bool) {
	if m.path == "" {
		return
	}
	err := config.Update(m.path, func(c *config.Config) {
		c.UI.Theme = name(dark)
	})
	if err != nil {
		m.logger.Warn("failed to persist theme", zap.String("path", m.path), zap.Error(err))
	}
}

func name(dark bool) string {
	if dark {
		return config.ThemeDark
	}
	return config.ThemeLight
}

// =============================================================================
// CONFIG FILE WATCH
// =============================================================================

// Watch follows the config file and applies theme edits made outside the
// application until ctx is done. It returns once the watch is in place.
func (m *Manager) Watch(ctx context.Context) error {
	if m.path == "" {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	// Watch the directory: atomic saves replace the file by rename.
	if err := watcher.Add(filepath.Dir(m.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(m.path), err)
	}

	go m.watchLoop(ctx, watcher)
	return nil
}

func (m *Manager) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer watcher.Close()
	target := filepath.Clean(m.path)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			m.reload()

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			m.logger.Warn("config watch error", zap.Error(err))
		}
	}
}

func (m *Manager) reload() {
	// Reads wait for an in-progress toggle to finish writing.
	m.persistMu.Lock()
	// The file alone: an environment theme must not undo a saved toggle.
	cfg, err := config.LoadFile(m.path)
	if err != nil {
		m.persistMu.Unlock()
		// Editors write in several steps; the next event retries.
		m.logger.Debug("config reload skipped", zap.Error(err))
		return
	}
	changed, dark := m.apply(cfg.UI.Theme)
	m.persistMu.Unlock()

	if changed {
		m.logger.Info("theme changed on disk", zap.String("preference", cfg.UI.Theme))
		m.notify(dark)
	}
}
