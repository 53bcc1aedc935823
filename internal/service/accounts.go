package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"notodo/internal/auth"
	"notodo/internal/models"
	"notodo/internal/store"
)

type RegisterInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,max=72"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AccountService owns user identities and issues session tokens.
type AccountService struct {
	base
	issuer   *auth.Issuer
	hashCost int
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user. The email is stored trimmed and lower-cased.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (models.PublicUser, error) {
	const op = "accounts.Register"

	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	if err := check(op, in); err != nil {
		return models.PublicUser{}, err
	}

	u, err := s.create(ctx, in.Name, in.Email, in.Password)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return models.PublicUser{}, &Error{Kind: KindConflict, Op: op, Msg: "email already registered", Err: err}
		}
		return models.PublicUser{}, &Error{Kind: KindInternal, Op: op, Err: err}
	}
	s.logger.Info("user registered", "user_id", u.ID)
	return u.Public(), nil
}

func (s *AccountService) create(ctx context.Context, name, email, password string) (*models.User, error) {
	cost := s.hashCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &models.User{
		ID:           newID(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		CreatedAt:    s.now(),
	}
	if err := s.store.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Authenticate checks credentials and returns a fresh session.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *AccountService) Authenticate(ctx context.Context, in LoginInput) (auth.Session, error) {
	const op = "accounts.Authenticate"

	in.Email = normalizeEmail(in.Email)
	if err := check(op, in); err != nil {
		return auth.Session{}, err
	}

	u, err := s.store.GetUserByEmail(ctx, in.Email)
	if errors.Is(err, store.ErrNotFound) {
		return auth.Session{}, authError(op, "invalid credentials")
	}
	if err != nil {
		return auth.Session{}, &Error{Kind: KindInternal, Op: op, Err: err}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return auth.Session{}, authError(op, "invalid credentials")
	}
	return s.issue(op, *u)
}

// Guest creates a throwaway account and logs it in.
func (s *AccountService) Guest(ctx context.Context) (auth.Session, error) {
	const op = "accounts.Guest"

	var lastErr error
	for attempt := 0; attempt < 5; attempt++ {
		n := rand.IntN(10000)
		u, err := s.create(ctx, fmt.Sprintf("Guest %d", n), fmt.Sprintf("guest_%d@notodo.com", n), newID())
		if errors.Is(err, store.ErrDuplicate) {
			lastErr = err
			continue
		}
		if err != nil {
			return auth.Session{}, &Error{Kind: KindInternal, Op: op, Err: err}
		}
		s.logger.Info("guest account created", "user_id", u.ID)
		return s.issue(op, *u)
	}
	return auth.Session{}, &Error{Kind: KindConflict, Op: op, Msg: "could not allocate a guest account", Err: lastErr}
}

// Me returns the public profile of the token holder.
func (s *AccountService) Me(ctx context.Context, userID string) (models.PublicUser, error) {
	u, err := s.store.GetUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		// The token outlived its account.
		return models.PublicUser{}, authError("accounts.Me", "unknown user")
	}
	if err != nil {
		return models.PublicUser{}, &Error{Kind: KindInternal, Op: "accounts.Me", Err: err}
	}
	return u.Public(), nil
}

func (s *AccountService) issue(op string, u models.User) (auth.Session, error) {
	sess, err := s.issuer.Issue(u)
	if err != nil {
		return auth.Session{}, &Error{Kind: KindInternal, Op: op, Err: err}
	}
	return sess, nil
}
