package user

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps users in process memory. Writers hold the exclusive lock
// for the whole check-then-write so two registrations with the same email
// cannot both succeed.
type MemoryStore struct {
	mu      sync.RWMutex
	nextID  uint64
	byID    map[uint64]*User
	byEmail map[string]uint64
	order   []uint64

	now func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextID:  1,
		byID:    map[uint64]*User{},
		byEmail: map[string]uint64{},
		now:     time.Now,
	}
}

func (s *MemoryStore) Create(_ context.Context, in NewUser) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := EmailKey(in.Email)
	if _, ok := s.byEmail[key]; ok {
		return User{}, ErrDuplicateEmail
	}

	u := &User{
		ID:           s.nextID,
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: in.PasswordHash,
		CreatedAt:    s.now(),
	}
	s.nextID++

	s.byID[u.ID] = u
	s.byEmail[key] = u.ID
	s.order = append(s.order, u.ID)
	return *u, nil
}

func (s *MemoryStore) FindByID(_ context.Context, id uint64) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byID[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return *u, nil
}

func (s *MemoryStore) FindByEmail(_ context.Context, email string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[EmailKey(email)]
	if !ok {
		return User{}, ErrNotFound
	}
	return *s.byID[id], nil
}

func (s *MemoryStore) EmailExists(_ context.Context, email string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.byEmail[EmailKey(email)]
	return ok, nil
}

func (s *MemoryStore) List(_ context.Context) ([]User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]User, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.byID[id])
	}
	return out, nil
}

func (s *MemoryStore) Update(_ context.Context, id uint64, p Patch) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byID[id]
	if !ok {
		return User{}, ErrNotFound
	}

	oldKey := EmailKey(u.Email)
	newKey := oldKey
	if p.Email != nil {
		newKey = EmailKey(*p.Email)
		if owner, taken := s.byEmail[newKey]; taken && owner != id {
			return User{}, ErrDuplicateEmail
		}
	}

	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
		if newKey != oldKey {
			delete(s.byEmail, oldKey)
			s.byEmail[newKey] = id
		}
	}
	if p.PasswordHash != nil {
		u.PasswordHash = *p.PasswordHash
	}
	return *u, nil
}

func (s *MemoryStore) Delete(_ context.Context, id uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byID[id]
	if !ok {
		return false, nil
	}

	delete(s.byEmail, EmailKey(u.Email))
	delete(s.byID, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true, nil
}

var _ Store = (*MemoryStore)(nil)
