// Package account is the credential store: user registration and password authentication.
package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library

	"github.com/lazarmura54-arch/Hotel/internal/domain" // Importing domain models
)

var (
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrMissingField       = errors.New("missing required field")
	ErrPasswordTooLong    = errors.New("password is longer than 72 bytes")
	ErrFieldTooLong       = errors.New("field too long")
	ErrUserNotFound       = errors.New("user not found")
)

// Input limits; the first two match the users table column sizes
const (
	maxUsernameLen   = 80
	maxEmailLen      = 120
	maxPasswordBytes = 72 // The most input bcrypt will hash
)

// Service registers and authenticates users
type Service struct {
	db   *gorm.DB
	cost int // Bcrypt work factor

	dummyOnce sync.Once
	dummyHash []byte // Compared against when the username is unknown
}

// NewService returns a Service hashing passwords at the given bcrypt cost
func NewService(db *gorm.DB, cost int) *Service {
	return &Service{db: db, cost: cost}
}

// Register creates a new user after checking username and email are unused.
// The username check wins when both collide.
func (s *Service) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	switch {
	case username == "":
		return nil, fmt.Errorf("%w: username", ErrMissingField)
	case email == "":
		return nil, fmt.Errorf("%w: email", ErrMissingField)
	case strings.TrimSpace(password) == "":
		return nil, fmt.Errorf("%w: password", ErrMissingField)
	case len(username) > maxUsernameLen:
		return nil, fmt.Errorf("%w: username", ErrFieldTooLong)
	case len(email) > maxEmailLen:
		return nil, fmt.Errorf("%w: email", ErrFieldTooLong)
	case len(password) > maxPasswordBytes:
		return nil, ErrPasswordTooLong
	}

	if err := s.checkAvailable(ctx, username, email); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := domain.User{Username: username, Email: email, PasswordHash: string(hash)}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		// Lost a race with a concurrent signup; the unique index caught it
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if cerr := s.checkAvailable(ctx, username, email); cerr != nil {
				return nil, cerr
			}
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// checkAvailable returns ErrDuplicateUsername or ErrDuplicateEmail if either is taken
func (s *Service) checkAvailable(ctx context.Context, username, email string) error {
	taken, err := s.exists(ctx, "username = ?", username)
	if err != nil {
		return err
	}
	if taken {
		return ErrDuplicateUsername
	}
	taken, err = s.exists(ctx, "email = ?", email)
	if err != nil {
		return err
	}
	if taken {
		return ErrDuplicateEmail
	}
	return nil
}

func (s *Service) exists(ctx context.Context, query string, arg string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&domain.User{}).Where(query, arg).Count(&count).Error; err != nil {
		return false, fmt.Errorf("lookup user: %w", err)
	}
	return count > 0, nil
}

// Authenticate returns the user whose username and password match.
// Unknown usernames and wrong passwords both yield ErrInvalidCredentials after a bcrypt comparison.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).Where("username = ?", strings.TrimSpace(username)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		_ = bcrypt.CompareHashAndPassword(s.dummy(), []byte(password))
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	// Compare provided password with stored hash
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// dummy lazily hashes a throwaway password at the service cost
func (s *Service) dummy() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), s.cost)
	})
	return s.dummyHash
}

// FindByID loads a user by primary key
func (s *Service) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user %d: %w", id, err)
	}
	return &user, nil
}
