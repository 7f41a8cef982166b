package repofake

import (
	"context"
	"sync"

	"github.com/yash-bansod-2003/shop-autentication/internal/database/model"
	"github.com/yash-bansod-2003/shop-autentication/internal/repository"
)

// FakeSessionRepository is a mutex-guarded in-memory SessionRepository.
// Rotate holds the lock across delete and create, mirroring the transactional
// gorm implementation.
type FakeSessionRepository struct {
	mu       sync.Mutex
	nextID   uint
	sessions map[uint]model.RefreshSession

	// FailCreate and FailDelete force the corresponding operation to
	// return the error when set.
	FailCreate error
	FailDelete error
}

func NewFakeSessionRepository() *FakeSessionRepository {
	return &FakeSessionRepository{
		nextID:   1,
		sessions: make(map[uint]model.RefreshSession),
	}
}

func (f *FakeSessionRepository) Create(_ context.Context, userID uint) (*model.RefreshSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.createLocked(userID)
}

func (f *FakeSessionRepository) createLocked(userID uint) (*model.RefreshSession, error) {
	if f.FailCreate != nil {
		return nil, f.FailCreate
	}
	session := model.RefreshSession{ID: f.nextID, UserID: userID}
	f.nextID++
	f.sessions[session.ID] = session
	return &session, nil
}

func (f *FakeSessionRepository) Find(_ context.Context, id, userID uint) (*model.RefreshSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[id]
	if !ok || s.UserID != userID {
		return nil, repository.ErrNotFound
	}
	session := s
	return &session, nil
}

func (f *FakeSessionRepository) Rotate(_ context.Context, oldID, userID uint) (*model.RefreshSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailDelete != nil {
		return nil, f.FailDelete
	}
	s, ok := f.sessions[oldID]
	if !ok || s.UserID != userID {
		return nil, repository.ErrNotFound
	}
	delete(f.sessions, oldID)
	return f.createLocked(userID)
}

func (f *FakeSessionRepository) DeleteAllForUser(_ context.Context, userID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailDelete != nil {
		return f.FailDelete
	}
	for id, s := range f.sessions {
		if s.UserID == userID {
			delete(f.sessions, id)
		}
	}
	return nil
}

// CountForUser reports how many sessions a user owns. Test helper.
func (f *FakeSessionRepository) CountForUser(userID uint) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, s := range f.sessions {
		if s.UserID == userID {
			n++
		}
	}
	return n
}
