// Package session keeps the signed-in state of a client process and
// notifies subscribers whenever it changes.
package session

import (
	"context"
	"sync"

	"userhub/internal/client/domain"
	"userhub/internal/client/usecase"

	"go.uber.org/zap"
)

// State is an immutable snapshot of the session.
type State struct {
	User    *domain.AuthUser
	Loading bool
	Error   string
}

func (s State) IsAuthenticated() bool { return s.User != nil }

func (s State) UserName() string {
	if s.User == nil || s.User.Name == "" {
		return "Guest"
	}
	return s.User.Name
}

func (s State) UserEmail() string {
	if s.User == nil {
		return ""
	}
	return s.User.Email
}

// Store runs one action at a time; a second action waits for the first to
// finish.
type Store struct {
	register   usecase.RegisterUser
	login      usecase.LoginUser
	currentUsr usecase.GetCurrentUser
	logout     usecase.LogoutUser
	log        *zap.Logger

	action sync.Mutex

	mu     sync.RWMutex
	state  State
	subs   map[int]func(State)
	nextID int
}

func New(repo domain.AuthRepository, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		register:   usecase.RegisterUser{Repo: repo},
		login:      usecase.LoginUser{Repo: repo},
		currentUsr: usecase.GetCurrentUser{Repo: repo},
		logout:     usecase.LogoutUser{Repo: repo},
		log:        log,
		subs:       make(map[int]func(State)),
	}
}

func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyState(s.state)
}

func (s *Store) IsAuthenticated() bool { return s.Snapshot().IsAuthenticated() }
func (s *Store) UserName() string      { return s.Snapshot().UserName() }
func (s *Store) UserEmail() string     { return s.Snapshot().UserEmail() }

// Subscribe registers fn to be called with every new state. fn runs
// synchronously on the goroutine that changed the state and must not call
// back into actions. The returned func unsubscribes.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) Register(ctx context.Context, in domain.RegisterInput) (domain.AuthUser, error) {
	s.action.Lock()
	defer s.action.Unlock()

	s.begin()
	u, err := s.register.Execute(ctx, in)
	if err != nil {
		s.log.Debug("register failed", zap.Error(err))
		s.finish(keepUser, domain.ErrorMessage(err))
		return domain.AuthUser{}, err
	}
	s.finish(&u, "")
	return u, nil
}

func (s *Store) Login(ctx context.Context, email, password string) (domain.AuthUser, error) {
	s.action.Lock()
	defer s.action.Unlock()

	s.begin()
	u, err := s.login.Execute(ctx, email, password)
	if err != nil {
		s.log.Debug("login failed", zap.Error(err))
		s.finish(keepUser, domain.ErrorMessage(err))
		return domain.AuthUser{}, err
	}
	s.finish(&u, "")
	return u, nil
}

// Logout never fails from the caller's point of view; an error is only
// recorded in the state.
func (s *Store) Logout(ctx context.Context) {
	s.action.Lock()
	defer s.action.Unlock()

	s.begin()
	if err := s.logout.Execute(ctx); err != nil {
		s.log.Warn("logout failed", zap.Error(err))
		s.finish(keepUser, domain.ErrorMessage(err))
		return
	}
	s.finish(nil, "")
}

// CheckAuth restores the session from the stored token. It reports whether
// a user is signed in afterwards.
func (s *Store) CheckAuth(ctx context.Context) bool {
	s.action.Lock()
	defer s.action.Unlock()

	s.begin()
	u, err := s.currentUsr.Execute(ctx)
	if err != nil {
		s.log.Debug("check auth failed", zap.Error(err))
		s.finish(nil, "")
		return false
	}
	s.finish(&u, "")
	return true
}

func (s *Store) ClearError() {
	s.update(func(st *State) { st.Error = "" })
}

// keepUser tells finish to leave the current user untouched.
var keepUser = &domain.AuthUser{}

func (s *Store) begin() {
	s.update(func(st *State) {
		st.Loading = true
		st.Error = ""
	})
}

func (s *Store) finish(u *domain.AuthUser, errMsg string) {
	s.update(func(st *State) {
		if u != keepUser {
			st.User = u
		}
		st.Loading = false
		st.Error = errMsg
	})
}

func (s *Store) update(fn func(*State)) {
	s.mu.Lock()
	fn(&s.state)
	snap := copyState(s.state)
	subs := make([]func(State), 0, len(s.subs))
	for _, f := range s.subs {
		subs = append(subs, f)
	}
	s.mu.Unlock()

	for _, f := range subs {
		f(snap)
	}
}

func copyState(st State) State {
	if st.User != nil {
		u := *st.User
		st.User = &u
	}
	return st
}
