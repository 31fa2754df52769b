package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"kovan/models"
	"kovan/store"
	"kovan/validation"
)

type AuthService struct {
	deps  Deps
	users *UserService
	cost  int
}

func NewAuthService(d Deps, users *UserService) *AuthService {
	d = d.withDefaults()
	return &AuthService{deps: d, users: users, cost: bcrypt.DefaultCost}
}

// Register validates every step of the sign-up form and creates the user.
// Email and username must be unused.
func (s *AuthService) Register(ctx context.Context, r validation.Registration) (*models.User, error) {
	r.Phone = validation.DigitsOnly(r.Phone)
	if err := r.Validate(); err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(r.Email))
	username := strings.TrimSpace(r.Username)

	hash, err := bcrypt.GenerateFromPassword([]byte(r.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	first, last := strings.TrimSpace(r.FirstName), strings.TrimSpace(r.LastName)
	user := models.User{
		Name:         first + " " + last,
		FirstName:    first,
		LastName:     last,
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Phone:        r.Phone,
		BirthDate:    r.BirthDate,
		City:         strings.TrimSpace(r.City),
		Location:     strings.TrimSpace(r.City),
		Headline:     "Gönüllü",
		Interests:    r.Interests,
		Skills:       []string{},
		Gamification: models.Gamification{Level: 1, Badges: []string{}},
		IsActive:     true,
	}

	err = s.deps.Store.RunInTransaction(ctx, func(ctx context.Context, tx store.Store) error {
		users := s.users.users.In(tx)
		if taken, err := users.Find(ctx, store.Query{Where: []store.Filter{store.Where("email", store.OpEqual, email)}, Limit: 1}); err != nil {
			return err
		} else if len(taken) > 0 {
			return fmt.Errorf("%w: email already in use", ErrConflict)
		}
		if taken, err := users.Find(ctx, store.Query{Where: []store.Filter{store.Where("username", store.OpEqual, username)}, Limit: 1}); err != nil {
			return err
		} else if len(taken) > 0 {
			return fmt.Errorf("%w: username already taken", ErrConflict)
		}
		doc, err := users.Create(ctx, user)
		if errors.Is(err, store.ErrDuplicate) {
			return fmt.Errorf("%w: email or username already in use", ErrConflict)
		}
		if err != nil {
			return err
		}
		return store.Decode(doc, &user)
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Login accepts an email address or a username. A username is resolved to
// its account's email first.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*models.User, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, validation.Errors{"login": "Lütfen tüm alanları doldurun"}
	}

	field, value := "email", strings.ToLower(identifier)
	if !strings.Contains(identifier, "@") {
		field, value = "username", identifier
	}
	docs, err := s.users.users.Find(ctx, store.Query{
		Where: []store.Filter{store.Where(field, store.OpEqual, value)},
		Limit: 1,
	})
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, ErrInvalidCredentials
	}
	var user models.User
	if err := store.Decode(docs[0], &user); err != nil {
		return nil, err
	}
	// accounts seeded without a password have no hash and cannot log in
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}
