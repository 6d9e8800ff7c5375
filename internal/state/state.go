// Package state provides persistent observable values: in-memory values paired
// with serialize-on-write storage and a change notification hook, independent
// of any UI reactivity mechanism.
package state

import (
	"context"
	"sync"

	"filedesk-backend/internal/i18n"
	"filedesk-backend/internal/kv"
	"filedesk-backend/internal/models"
)

// Value is a persistent observable value. It loads from the key-value store
// once at construction, keeps the current value in memory, saves on every Set
// and notifies registered observers after each change.
type Value[T any] struct {
	mu        sync.Mutex
	kv        kv.Store
	key       string
	current   T
	observers []func(T)
}

// NewValue loads the value stored under key, falling back to initial when the
// key is absent or corrupt.
func NewValue[T any](ctx context.Context, backend kv.Store, key string, initial T) (*Value[T], error) {
	v := &Value[T]{kv: backend, key: key, current: initial}
	var stored T
	found, err := backend.Get(ctx, key, &stored)
	if err != nil {
		return nil, err
	}
	if found {
		v.current = stored
	}
	return v, nil
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current
}

// Set updates the value, persists it and notifies observers.
func (v *Value[T]) Set(ctx context.Context, newValue T) error {
	v.mu.Lock()
	v.current = newValue
	observers := append([]func(T){}, v.observers...)
	v.mu.Unlock()

	if err := v.kv.Set(ctx, v.key, newValue); err != nil {
		return err
	}
	for _, fn := range observers {
		fn(newValue)
	}
	return nil
}

// OnChange registers an observer called after every successful Set.
func (v *Value[T]) OnChange(fn func(T)) {
	v.mu.Lock()
	v.observers = append(v.observers, fn)
	v.mu.Unlock()
}

// AppState bundles the persisted session and UI preferences under their
// original storage keys, loaded once at startup.
type AppState struct {
	Token *Value[string]
	User  *Value[*models.PublicUser]
	Lang  *Value[i18n.Lang]
	Theme *Value[string]
}

// NewAppState loads all application state values.
func NewAppState(ctx context.Context, backend kv.Store) (*AppState, error) {
	token, err := NewValue(ctx, backend, "token", "")
	if err != nil {
		return nil, err
	}
	user, err := NewValue[*models.PublicUser](ctx, backend, "user", nil)
	if err != nil {
		return nil, err
	}
	lang, err := NewValue(ctx, backend, "lang", i18n.DefaultLang)
	if err != nil {
		return nil, err
	}
	theme, err := NewValue(ctx, backend, "theme", "dark")
	if err != nil {
		return nil, err
	}
	return &AppState{Token: token, User: user, Lang: lang, Theme: theme}, nil
}

// IsAuthenticated reports whether a session token is present.
func (s *AppState) IsAuthenticated() bool {
	return s.Token.Get() != ""
}
