// Package session binds browser sessions to at most one authenticated user
// and carries one-shot flash notices between requests.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lazarmura54-arch/Hotel/internal/account"
	"github.com/lazarmura54-arch/Hotel/internal/domain"
)

// ErrUnauthenticated is returned by Resolve when no live user is bound to the session
var ErrUnauthenticated = errors.New("not authenticated")

// Flash kinds
const (
	FlashError   = "error"
	FlashSuccess = "success"
)

// Flash is a one-shot notice shown on the next rendered page
type Flash struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Data is what the store keeps per session
type Data struct {
	UserID  uint    `json:"user_id,omitempty"`
	Flashes []Flash `json:"flashes,omitempty"`
}

// Session is the per-request handle on a stored session
type Session struct {
	id      string
	staleID string // Previous id to drop on the next save, set by Bind
	data    Data
	dirty   bool
}

// ID returns the current session id
func (s *Session) ID() string { return s.id }

// Dirty reports whether the session has unsaved changes
func (s *Session) Dirty() bool { return s.dirty }

// UserFinder looks users up by id; it returns account.ErrUserNotFound for unknown ids
type UserFinder interface {
	FindByID(ctx context.Context, id uint) (*domain.User, error)
}

// Binder maps sessions to users
type Binder struct {
	store Store
	users UserFinder
	ttl   time.Duration
}

// NewBinder returns a Binder keeping sessions in store for ttl
func NewBinder(store Store, users UserFinder, ttl time.Duration) *Binder {
	return &Binder{store: store, users: users, ttl: ttl}
}

// Open loads the session stored under id, or starts a new anonymous one
// when id is empty, unknown or expired.
func (b *Binder) Open(ctx context.Context, id string) (*Session, error) {
	if id != "" {
		data, found, err := b.store.Load(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("load session: %w", err)
		}
		if found {
			return &Session{id: id, data: data}, nil
		}
	}
	return &Session{id: uuid.NewString()}, nil
}

// Bind makes user the session's identity, replacing any earlier binding.
// The session id is rotated so an id issued before login cannot be reused.
func (b *Binder) Bind(s *Session, user *domain.User) {
	if s.staleID == "" {
		s.staleID = s.id
	}
	s.id = uuid.NewString()
	s.data.UserID = user.ID
	s.dirty = true
}

// Resolve returns the user bound to s.
// A binding to a user that no longer exists is cleared and treated as unauthenticated.
func (b *Binder) Resolve(ctx context.Context, s *Session) (*domain.User, error) {
	if s == nil || s.data.UserID == 0 {
		return nil, ErrUnauthenticated
	}
	user, err := b.users.FindByID(ctx, s.data.UserID)
	if errors.Is(err, account.ErrUserNotFound) {
		b.Unbind(s)
		return nil, ErrUnauthenticated
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Unbind clears the session's identity and rotates the session id
func (b *Binder) Unbind(s *Session) {
	if s.data.UserID == 0 {
		return
	}
	if s.staleID == "" {
		s.staleID = s.id
	}
	s.id = uuid.NewString()
	s.data.UserID = 0
	s.dirty = true
}

// Flash queues a notice for the next rendered page
func (b *Binder) Flash(s *Session, kind, message string) {
	s.data.Flashes = append(s.data.Flashes, Flash{Kind: kind, Message: message})
	s.dirty = true
}

// PopFlashes returns and clears the queued notices
func (b *Binder) PopFlashes(s *Session) []Flash {
	flashes := s.data.Flashes
	if len(flashes) > 0 {
		s.data.Flashes = nil
		s.dirty = true
	}
	return flashes
}

// Save persists s if it changed, dropping the id it replaced
func (b *Binder) Save(ctx context.Context, s *Session) error {
	if !s.dirty {
		return nil
	}
	if s.staleID != "" {
		if err := b.store.Delete(ctx, s.staleID); err != nil {
			return fmt.Errorf("drop rotated session: %w", err)
		}
		s.staleID = ""
	}
	if err := b.store.Save(ctx, s.id, s.data, b.ttl); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	s.dirty = false
	return nil
}
