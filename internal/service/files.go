package service

import (
	"context"
	"strings"
	"time"

	"filedesk-backend/internal/auth"
	"filedesk-backend/internal/models"
	"filedesk-backend/internal/store"

	"go.uber.org/zap"
)

// FileService implements the per-user file tree operations. Every operation is
// scoped to the resolved session user; entries owned by anyone else behave as
// if they did not exist.
type FileService struct {
	store    *store.Store
	resolver *auth.Resolver
	delays   Delays
	log      *zap.Logger
}

// NewFileService creates a FileService.
func NewFileService(st *store.Store, resolver *auth.Resolver, delays Delays, log *zap.Logger) *FileService {
	return &FileService{store: st, resolver: resolver, delays: delays, log: log}
}

func (s *FileService) requireUserID(ctx context.Context) (string, error) {
	userID, ok, err := s.resolver.CurrentUserID(ctx)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", errUnauthenticated()
	}
	return userID, nil
}

// stamp returns the mutation timestamp for an entry. Millisecond clocks can
// tie under back-to-back calls, so the stamp is bumped past the previous value
// to keep Modified strictly increasing per entry.
func stamp(prev int64) int64 {
	now := time.Now().UnixMilli()
	if now <= prev {
		return prev + 1
	}
	return now
}

// List returns the entries directly under parent, in storage order. One level
// only; there is no recursion and no sorting.
func (s *FileService) List(ctx context.Context, parent string) ([]models.Entry, error) {
	sleep(ctx, s.delays.List)

	userID, err := s.requireUserID(ctx)
	if err != nil {
		return nil, err
	}
	if parent == "" {
		parent = models.RootParent
	}

	files, err := s.store.Files(ctx)
	if err != nil {
		return nil, err
	}

	result := []models.Entry{}
	for _, f := range files {
		if f.UserID == userID && f.Parent == parent {
			result = append(result, f)
		}
	}
	return result, nil
}

// Get returns the owned entry with the given id.
func (s *FileService) Get(ctx context.Context, id string) (*models.Entry, error) {
	sleep(ctx, s.delays.Get)

	userID, err := s.requireUserID(ctx)
	if err != nil {
		return nil, err
	}

	files, err := s.store.Files(ctx)
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		if f.ID == id && f.UserID == userID {
			return &f, nil
		}
	}
	return nil, errNotFound("File not found")
}

// Create builds a new entry under parent and appends it to the collection.
// Files start with empty content and size zero; directories carry neither.
// Sibling names are deliberately not checked here, only rename enforces
// uniqueness (matching the original demo).
func (s *FileService) Create(ctx context.Context, name, parent string, entryType models.EntryType) (*models.Entry, error) {
	sleep(ctx, s.delays.Create)

	userID, err := s.requireUserID(ctx)
	if err != nil {
		return nil, err
	}
	if parent == "" {
		parent = models.RootParent
	}
	if entryType == "" {
		entryType = models.TypeFile
	}
	if entryType != models.TypeFile && entryType != models.TypeDir {
		return nil, errInvalidArgument("Unknown entry type")
	}

	entry := models.Entry{
		ID:       store.NewID(),
		Name:     name,
		Type:     entryType,
		Parent:   parent,
		UserID:   userID,
		Modified: stamp(0),
	}
	if entryType == models.TypeFile {
		content := ""
		size := 0
		entry.Content = &content
		entry.Size = &size
	}

	err = s.store.WithFiles(ctx, func(files []models.Entry) ([]models.Entry, error) {
		return append(files, entry), nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("entry created",
		zap.String("id", entry.ID),
		zap.String("type", string(entryType)),
		zap.String("userId", userID))
	return &entry, nil
}

// Save replaces a file's content, recomputes its size and restamps it.
func (s *FileService) Save(ctx context.Context, id, content string) (*models.Entry, error) {
	sleep(ctx, s.delays.Save)

	userID, err := s.requireUserID(ctx)
	if err != nil {
		return nil, err
	}

	var updated *models.Entry
	err = s.store.WithFiles(ctx, func(files []models.Entry) ([]models.Entry, error) {
		for i := range files {
			if files[i].ID == id && files[i].UserID == userID {
				size := len(content)
				body := content
				files[i].Content = &body
				files[i].Size = &size
				files[i].Modified = stamp(files[i].Modified)
				updated = &files[i]
				return files, nil
			}
		}
		return nil, errNotFound("File not found")
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Rename changes an entry's name. The new name is trimmed and must be
// non-empty and unique among the entry's siblings.
func (s *FileService) Rename(ctx context.Context, id, newName string) (*models.Entry, error) {
	sleep(ctx, s.delays.Save)

	userID, err := s.requireUserID(ctx)
	if err != nil {
		return nil, err
	}

	newName = strings.TrimSpace(newName)
	if newName == "" {
		return nil, errInvalidArgument("Name cannot be empty")
	}

	var updated *models.Entry
	err = s.store.WithFiles(ctx, func(files []models.Entry) ([]models.Entry, error) {
		target := -1
		for i := range files {
			if files[i].ID == id && files[i].UserID == userID {
				target = i
				break
			}
		}
		if target < 0 {
			return nil, errNotFound("File not found")
		}

		for _, f := range files {
			if f.UserID == userID && f.Parent == files[target].Parent &&
				f.Name == newName && f.ID != id {
				return nil, errConflict("File with this name already exists")
			}
		}

		files[target].Name = newName
		files[target].Modified = stamp(files[target].Modified)
		updated = &files[target]
		return files, nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes an entry. Non-recursive: children of a deleted directory stay
// in the collection, still addressable by id but unreachable through List.
func (s *FileService) Delete(ctx context.Context, id string) error {
	sleep(ctx, s.delays.Delete)

	userID, err := s.requireUserID(ctx)
	if err != nil {
		return err
	}

	return s.store.WithFiles(ctx, func(files []models.Entry) ([]models.Entry, error) {
		kept := files[:0]
		removed := false
		for _, f := range files {
			if f.ID == id && f.UserID == userID {
				removed = true
				continue
			}
			kept = append(kept, f)
		}
		if !removed {
			return nil, errNotFound("File not found")
		}
		s.log.Info("entry deleted", zap.String("id", id), zap.String("userId", userID))
		return kept, nil
	})
}

// Move reparents an entry and restamps it. There is no cycle check; moving a
// directory into its own descendant produces an unreachable subtree, as in the
// original demo.
func (s *FileService) Move(ctx context.Context, id, newParent string) (*models.Entry, error) {
	sleep(ctx, s.delays.Move)

	userID, err := s.requireUserID(ctx)
	if err != nil {
		return nil, err
	}

	var updated *models.Entry
	err = s.store.WithFiles(ctx, func(files []models.Entry) ([]models.Entry, error) {
		for i := range files {
			if files[i].ID == id && files[i].UserID == userID {
				files[i].Parent = newParent
				files[i].Modified = stamp(files[i].Modified)
				updated = &files[i]
				return files, nil
			}
		}
		return nil, errNotFound("File not found")
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
