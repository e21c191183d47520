package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/itemdesk/core/logger"
)

// Store is the single process-wide auth store. Every mutation commits in
// memory and writes the full record through to Storage before returning.
// Readers only wait for the in-memory commit, never for the write: mu guards
// the state and is released before any I/O, persistMu serializes writes.
type Store struct {
	mu    sync.RWMutex
	state Session
	gen   uint64
	seq   uint64 // bumped on every commit

	persistMu sync.Mutex
	savedSeq  uint64 // seq of the state last handed to storage
	errMu     sync.RWMutex
	lastErr   error

	storage Storage
	opts    options
}

// New builds a store and hydrates it from storage. An absent record yields
// the initial state; a corrupt one yields the initial state and a warning.
// Backend read failures are returned as ErrHydrate.
func New(ctx context.Context, storage Storage, opts ...Option) (*Store, error) {
	if storage == nil {
		return nil, ErrNoStorage
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	s := &Store{storage: storage, opts: o}
	if err := s.hydrate(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) hydrate(ctx context.Context) error {
	log := s.opts.logger

	data, err := s.storage.Load(ctx, s.opts.key)
	switch {
	case errors.Is(err, ErrNotFound):
		log.DebugContext(ctx, "no persisted session, starting signed out",
			logger.Component("session"), logger.Key("key", s.opts.key))
		return nil
	case errors.Is(err, ErrCorruptRecord):
	case err != nil:
		return errors.Join(ErrHydrate, err)
	default:
		s.state, err = Decode(data)
	}

	if err != nil {
		log.WarnContext(ctx, "discarding corrupt persisted session",
			logger.Component("session"), logger.Key("key", s.opts.key), logger.Error(err))
		s.state = Session{}
		return nil
	}

	s.opts.observer.ObserveAuthenticated(s.state.IsAuthenticated)
	log.DebugContext(ctx, "session rehydrated",
		logger.Component("session"), slog.Bool("authenticated", s.state.IsAuthenticated))
	return nil
}

// Session returns a deep copy of the committed state.
func (s *Store) Session() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Generation increases on every ClearAuth. A login captured at generation g
// is stale once Generation() != g.
func (s *Store) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gen
}

// SetAuth replaces tokens and user and marks the session authenticated.
func (s *Store) SetAuth(ctx context.Context, user *User, accessToken, refreshToken string) error {
	s.mu.Lock()
	return s.commitAndUnlock(ctx, "set_auth", authenticated(user, accessToken, refreshToken))
}

// SetAuthIfCurrent is SetAuth that only commits while the generation is
// still gen. It reports whether the login was applied.
func (s *Store) SetAuthIfCurrent(ctx context.Context, gen uint64, user *User, accessToken, refreshToken string) (bool, error) {
	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		s.opts.logger.InfoContext(ctx, "discarding login overtaken by logout",
			logger.Component("session"), logger.Event("login_discarded"))
		return false, nil
	}
	return true, s.commitAndUnlock(ctx, "set_auth", authenticated(user, accessToken, refreshToken))
}

func authenticated(user *User, accessToken, refreshToken string) Session {
	next := Session{
		AccessToken:     ptr(accessToken),
		RefreshToken:    ptr(refreshToken),
		IsAuthenticated: true,
	}
	if user != nil {
		next.User = ptr(*user)
	}
	return next
}

// ClearAuth resets to the initial state and overwrites the durable record.
func (s *Store) ClearAuth(ctx context.Context) error {
	s.mu.Lock()
	s.gen++
	return s.commitAndUnlock(ctx, "clear_auth", Session{})
}

// UpdateAccessToken replaces only the access token. IsAuthenticated is left
// as it is, even when the session is signed out.
func (s *Store) UpdateAccessToken(ctx context.Context, token string) error {
	s.mu.Lock()
	if !s.state.IsAuthenticated {
		s.opts.logger.WarnContext(ctx, "access token updated on unauthenticated session",
			logger.Component("session"), logger.Action("update_access_token"))
	}

	next := s.state.Clone()
	next.AccessToken = ptr(token)
	return s.commitAndUnlock(ctx, "update_access_token", next)
}

// SetUser replaces only the user. nil clears it.
func (s *Store) SetUser(ctx context.Context, user *User) error {
	s.mu.Lock()
	next := s.state.Clone()
	next.User = nil
	if user != nil {
		next.User = ptr(*user)
	}
	return s.commitAndUnlock(ctx, "set_user", next)
}

// commitAndUnlock installs next, releases mu and writes the committed state
// through. The caller must hold mu. The in-memory state is committed even if
// the write fails; the failure is recorded and returned.
func (s *Store) commitAndUnlock(ctx context.Context, op string, next Session) error {
	s.state = next
	s.seq++
	s.opts.observer.ObserveAuthenticated(next.IsAuthenticated)
	s.mu.Unlock()

	err := s.writeThrough(ctx)
	s.opts.observer.ObservePersist(op, err)
	if err != nil {
		s.opts.logger.ErrorContext(ctx, "session write-through failed",
			logger.Component("session"), logger.Action(op), logger.Error(err))
		return err
	}
	return nil
}

// writeThrough saves the latest committed state. When a concurrent writer
// has already saved a state at least as new, its outcome is reported and
// nothing is written, so an older record never overwrites a newer one.
func (s *Store) writeThrough(ctx context.Context) error {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	s.mu.RLock()
	seq, state := s.seq, s.state
	s.mu.RUnlock()

	if seq == s.savedSeq {
		return s.LastPersistError()
	}

	err := s.persist(ctx, state)
	s.savedSeq = seq
	s.errMu.Lock()
	s.lastErr = err
	s.errMu.Unlock()
	return err
}

func (s *Store) persist(ctx context.Context, state Session) error {
	data, err := Encode(state)
	if err != nil {
		return errors.Join(ErrPersist, err)
	}

	// The state is already committed, so the write must not be abandoned
	// when the triggering request goes away.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opts.timeout)
	defer cancel()

	if err := s.storage.Save(ctx, s.opts.key, data); err != nil {
		return errors.Join(ErrPersist, err)
	}
	return nil
}

// LastPersistError returns the outcome of the most recent write-through.
func (s *Store) LastPersistError() error {
	s.errMu.RLock()
	defer s.errMu.RUnlock()
	return s.lastErr
}

// Healthcheck fails when the last write-through failed or the backend
// reports itself unhealthy.
func (s *Store) Healthcheck(ctx context.Context) error {
	if err := s.LastPersistError(); err != nil {
		return err
	}
	if p, ok := s.storage.(Pinger); ok {
		ctx, cancel := context.WithTimeout(ctx, s.opts.timeout)
		defer cancel()
		return p.Ping(ctx)
	}
	return nil
}

// Key returns the durable record key.
func (s *Store) Key() string {
	return s.opts.key
}

// PersistTimeout returns the bound applied to each write-through.
func (s *Store) PersistTimeout() time.Duration {
	return s.opts.timeout
}
