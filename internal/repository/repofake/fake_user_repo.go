// Package repofake provides in-memory repository implementations for tests.
package repofake

import (
	"context"
	"sort"
	"sync"

	"github.com/yash-bansod-2003/shop-autentication/internal/database/model"
	"github.com/yash-bansod-2003/shop-autentication/internal/repository"
)

// FakeUserRepository is a mutex-guarded in-memory UserRepository.
type FakeUserRepository struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]model.User

	// FailCreate forces Create to return this error when set.
	FailCreate error
}

func NewFakeUserRepository() *FakeUserRepository {
	return &FakeUserRepository{
		nextID: 1,
		users:  make(map[uint]model.User),
	}
}

func (f *FakeUserRepository) Create(_ context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailCreate != nil {
		return f.FailCreate
	}
	user.ID = f.nextID
	f.nextID++
	if user.Role == "" {
		user.Role = model.RoleUser
	}
	f.users[user.ID] = *user
	return nil
}

func (f *FakeUserRepository) FindByEmail(_ context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *FakeUserRepository) FindByID(_ context.Context, id uint) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	user := u
	return &user, nil
}

func (f *FakeUserRepository) FindAll(_ context.Context, offset, limit int) ([]model.User, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	all := make([]model.User, 0, len(f.users))
	for _, u := range f.users {
		all = append(all, u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	total := int64(len(all))
	if offset >= len(all) {
		return []model.User{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (f *FakeUserRepository) Update(_ context.Context, id uint, fields map[string]interface{}) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return 0, nil
	}
	for k, v := range fields {
		s, _ := v.(string)
		switch k {
		case "firstname":
			u.Firstname = s
		case "lastname":
			u.Lastname = s
		case "email":
			u.Email = s
		case "password":
			u.Password = s
		case "role":
			u.Role = s
		case "restaurant_id":
			if id, ok := v.(*uint); ok {
				u.RestaurantID = id
			}
		}
	}
	f.users[id] = u
	return 1, nil
}

func (f *FakeUserRepository) Delete(_ context.Context, id uint) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return 0, nil
	}
	delete(f.users, id)
	return 1, nil
}

// Count reports how many users are stored. Test helper.
func (f *FakeUserRepository) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.users)
}
