// Package store owns the two mock collections (users, files) layered on the
// key-value adapter. Both collections are read and written whole on every
// access; there is no partial-update primitive. Callers read the full slice,
// compute a replacement and write it back under the collection mutex.
package store

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"filedesk-backend/internal/kv"
	"filedesk-backend/internal/models"

	"github.com/google/uuid"
)

// Persisted collection keys. These names are part of the storage contract and
// must not change, or previously persisted data becomes invisible.
const (
	UsersKey = "mock_users"
	FilesKey = "mock_files"
)

// The user seeded on first access when no users collection exists yet.
var seedUser = models.User{
	ID:       "u1",
	Email:    "user@example.com",
	Name:     "Demo",
	Password: "demo",
}

// Store provides whole-collection access to users and files. The per-collection
// mutexes serialize read-modify-write cycles; without them two concurrent
// operations could interleave and drop each other's writes.
type Store struct {
	usersMu sync.Mutex
	filesMu sync.Mutex
	seed    sync.Once
	seedErr error
	kv      kv.Store
}

// New creates a Store over the given key-value backend.
func New(backend kv.Store) *Store {
	return &Store{kv: backend}
}

// WithUsers runs fn under the users collection lock. fn receives the current
// collection and returns the replacement to persist, or nil to skip the write.
func (s *Store) WithUsers(ctx context.Context, fn func([]models.User) ([]models.User, error)) error {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()

	users, err := s.loadUsers(ctx)
	if err != nil {
		return err
	}
	updated, err := fn(users)
	if err != nil {
		return err
	}
	if updated == nil {
		return nil
	}
	return s.kv.Set(ctx, UsersKey, updated)
}

// WithFiles runs fn under the files collection lock, same contract as WithUsers.
func (s *Store) WithFiles(ctx context.Context, fn func([]models.Entry) ([]models.Entry, error)) error {
	s.filesMu.Lock()
	defer s.filesMu.Unlock()

	files, err := s.loadFiles(ctx)
	if err != nil {
		return err
	}
	updated, err := fn(files)
	if err != nil {
		return err
	}
	if updated == nil {
		return nil
	}
	return s.kv.Set(ctx, FilesKey, updated)
}

// Users returns a snapshot of the users collection, seeding on first access.
func (s *Store) Users(ctx context.Context) ([]models.User, error) {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()
	return s.loadUsers(ctx)
}

// Files returns a snapshot of the files collection.
func (s *Store) Files(ctx context.Context) ([]models.Entry, error) {
	s.filesMu.Lock()
	defer s.filesMu.Unlock()
	return s.loadFiles(ctx)
}

// SaveUsers replaces the whole users collection. Prefer WithUsers when the new
// collection depends on the current one.
func (s *Store) SaveUsers(ctx context.Context, users []models.User) error {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()
	return s.kv.Set(ctx, UsersKey, users)
}

// SaveFiles replaces the whole files collection.
func (s *Store) SaveFiles(ctx context.Context, files []models.Entry) error {
	s.filesMu.Lock()
	defer s.filesMu.Unlock()
	return s.kv.Set(ctx, FilesKey, files)
}

func (s *Store) loadUsers(ctx context.Context) ([]models.User, error) {
	if err := s.ensureSeed(ctx); err != nil {
		return nil, err
	}
	var users []models.User
	if _, err := s.kv.Get(ctx, UsersKey, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Store) loadFiles(ctx context.Context) ([]models.Entry, error) {
	if err := s.ensureSeed(ctx); err != nil {
		return nil, err
	}
	var files []models.Entry
	if _, err := s.kv.Get(ctx, FilesKey, &files); err != nil {
		return nil, err
	}
	if files == nil {
		files = []models.Entry{}
	}
	return files, nil
}

// ensureSeed creates the demo user the first time the store is touched, so a
// fresh install can log in without registering. Guarded by a Once so that the
// users and files paths cannot race each other into a double seed.
func (s *Store) ensureSeed(ctx context.Context) error {
	s.seed.Do(func() {
		var users []models.User
		found, err := s.kv.Get(ctx, UsersKey, &users)
		if err != nil {
			s.seedErr = fmt.Errorf("check users collection: %w", err)
			return
		}
		if found {
			return
		}
		s.seedErr = s.kv.Set(ctx, UsersKey, []models.User{seedUser})
	})
	return s.seedErr
}

// NewID generates an opaque identifier for users and entries. The "mock-"
// prefix matches the persisted-data format of the original demo.
func NewID() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "mock-" + raw[:7]
}
