package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/Kariqs/foodcash-api/backend"
	"github.com/Kariqs/foodcash-api/models"
	"github.com/Kariqs/foodcash-api/utils"
	"github.com/google/uuid"
)

const (
	minPasswordLength = 6

	maxReferralCodeAttempts = 5

	opLogin          = "login"
	opSignup         = "signup"
	opUpdateReferral = "update-referral"
	opUpdateUser     = "update-user"
)

// Session holds the single signed-in user. The zero state is anonymous.
type Session struct {
	mu      sync.Mutex
	backend Backend
	user    *models.User
	pending map[string]bool

	newReferralCode func() (string, error)
}

func NewSession(b Backend) *Session {
	return &Session{
		backend:         b,
		pending:         make(map[string]bool),
		newReferralCode: utils.GenerateReferralCode,
	}
}

// User returns a copy of the current user and whether one is signed in.
func (s *Session) User() (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

func (s *Session) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil
}

func (s *Session) begin(op string) error {
	if s.pending[op] {
		return fmt.Errorf("%s: %w", op, ErrOperationPending)
	}
	s.pending[op] = true
	return nil
}

func (s *Session) end(op string) {
	s.mu.Lock()
	delete(s.pending, op)
	s.mu.Unlock()
}

// Login resolves the identity behind email/password. Calling it while already
// signed in returns the current user without contacting the backend.
func (s *Session) Login(ctx context.Context, email, password string) (models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return models.User{}, invalid("email", "is required")
	}
	if password == "" {
		return models.User{}, invalid("password", "is required")
	}

	s.mu.Lock()
	if s.user != nil {
		current := *s.user
		s.mu.Unlock()
		return current, nil
	}
	if err := s.begin(opLogin); err != nil {
		s.mu.Unlock()
		return models.User{}, err
	}
	s.mu.Unlock()
	defer s.end(opLogin)

	user, err := s.backend.Authenticate(ctx, email, password)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrAuthentication, err)
	}

	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()
	return user, nil
}

// Signup registers a new account with a fresh referral code and signs it in.
func (s *Session) Signup(ctx context.Context, fullName, email, password, phone string) (models.User, error) {
	fullName, email, phone = strings.TrimSpace(fullName), strings.TrimSpace(email), strings.TrimSpace(phone)
	switch {
	case fullName == "":
		return models.User{}, invalid("fullName", "is required")
	case email == "":
		return models.User{}, invalid("email", "is required")
	case phone == "":
		return models.User{}, invalid("phone", "is required")
	case len(password) < minPasswordLength:
		return models.User{}, invalid("password", fmt.Sprintf("must be at least %d characters", minPasswordLength))
	}

	s.mu.Lock()
	if err := s.begin(opSignup); err != nil {
		s.mu.Unlock()
		return models.User{}, err
	}
	s.mu.Unlock()
	defer s.end(opSignup)

	code, err := s.freshReferralCode(ctx)
	if err != nil {
		return models.User{}, err
	}

	user, err := s.backend.Register(ctx, models.User{
		ID:           uuid.NewString(),
		FullName:     fullName,
		Email:        email,
		Phone:        phone,
		ReferralCode: code,
	}, password)
	if err != nil {
		if errors.Is(err, backend.ErrUserExists) {
			return models.User{}, invalid("email", "is already registered")
		}
		return models.User{}, fmt.Errorf("register user: %w", err)
	}

	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()
	return user, nil
}

func (s *Session) freshReferralCode(ctx context.Context) (string, error) {
	var code string
	for attempt := 0; attempt < maxReferralCodeAttempts; attempt++ {
		var err error
		code, err = s.newReferralCode()
		if err != nil {
			return "", fmt.Errorf("generate referral code: %w", err)
		}
		_, err = s.backend.FindByReferralCode(ctx, code)
		if errors.Is(err, backend.ErrUserNotFound) {
			return code, nil
		}
		if err != nil {
			log.Println("Referral code lookup failed, keeping generated code:", err)
			return code, nil
		}
	}
	log.Println("Referral code still taken after retries:", code)
	return code, nil
}

// UpdateReferralCode records who referred the current user.
func (s *Session) UpdateReferralCode(ctx context.Context, code string) (models.User, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return models.User{}, invalid("code", "is required")
	}
	return s.mutate(ctx, opUpdateReferral, func(u *models.User) error {
		if code == u.ReferralCode {
			return invalid("code", "cannot be your own referral code")
		}
		u.ReferredBy = &code
		return nil
	})
}

// UpdateUser merges a partial profile edit into the current user.
func (s *Session) UpdateUser(ctx context.Context, update models.UserUpdate) (models.User, error) {
	fields := []struct {
		name  string
		value *string
	}{{"fullName", update.FullName}, {"email", update.Email}, {"phone", update.Phone}}
	for _, f := range fields {
		if f.value != nil && strings.TrimSpace(*f.value) == "" {
			return models.User{}, invalid(f.name, "must not be blank")
		}
	}
	if update.Email != nil {
		email := strings.TrimSpace(*update.Email)
		update.Email = &email
	}
	return s.mutate(ctx, opUpdateUser, func(u *models.User) error {
		update.Apply(u)
		return nil
	})
}

func (s *Session) mutate(ctx context.Context, op string, change func(*models.User) error) (models.User, error) {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return models.User{}, ErrNotAuthenticated
	}
	if err := s.begin(op); err != nil {
		s.mu.Unlock()
		return models.User{}, err
	}
	updated := *s.user
	s.mu.Unlock()
	defer s.end(op)

	if err := change(&updated); err != nil {
		return models.User{}, err
	}
	if err := s.backend.SaveUser(ctx, updated); err != nil {
		if errors.Is(err, backend.ErrUserExists) {
			return models.User{}, invalid("email", "is already registered")
		}
		return models.User{}, fmt.Errorf("save user: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil || s.user.ID != updated.ID {
		return models.User{}, ErrNotAuthenticated
	}
	s.user = &updated
	return updated, nil
}

// Logout forgets the current user. It is safe to call when anonymous.
func (s *Session) Logout() {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
}
