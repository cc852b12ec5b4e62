package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"job-funnel-service/internal/entity"
	"job-funnel-service/internal/logging"
)

// Порт репозитория (реализация: postgresql.UserRepository)
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) (*entity.User, error)
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	UpdateIdentity(ctx context.Context, u *entity.User) error
}

type UserService struct {
	repo UserRepository
	tx   Transactor
	log  logging.Logger
}

func NewUserService(repo UserRepository, tx Transactor, log logging.Logger) *UserService {
	return &UserService{repo: repo, tx: tx, log: log}
}

type CreateUserRequest struct {
	Email       string
	Name        *string
	Provider    *string
	ProviderSub *string
}

// CreateUser registers a user. A taken email is entity.ErrConflict.
func (s *UserService) CreateUser(ctx context.Context, req CreateUserRequest) (*entity.User, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}

	u, err := s.repo.Create(ctx, &entity.User{
		Email:       email,
		Name:        req.Name,
		Provider:    req.Provider,
		ProviderSub: req.ProviderSub,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "user created", "user_id", u.ID)
	return u, nil
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*entity.User, error) {
	return s.repo.GetByID(ctx, id)
}

// LoginWithProfile finds the account by email or creates it, and links it to the external
// identity. An existing name is never replaced. A concurrent first login for the same email
// surfaces as a conflict on create; the login is then repeated and links the stored row.
func (s *UserService) LoginWithProfile(ctx context.Context, p entity.Profile) (*entity.User, error) {
	email, err := normalizeEmail(p.Email)
	if err != nil {
		return nil, err
	}

	user, err := s.login(ctx, email, p)
	if errors.Is(err, entity.ErrConflict) {
		s.log.Info(ctx, "user registered concurrently, retrying login", "provider", p.Provider)
		user, err = s.login(ctx, email, p)
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) login(ctx context.Context, email string, p entity.Profile) (*entity.User, error) {
	var user *entity.User
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		u, err := s.repo.GetByEmail(ctx, email)
		switch {
		case errors.Is(err, entity.ErrNotFound):
			user, err = s.repo.Create(ctx, &entity.User{
				Email:       email,
				Name:        nonEmpty(p.Name),
				Provider:    nonEmpty(p.Provider),
				ProviderSub: nonEmpty(p.Subject),
			})
			if err == nil {
				s.log.Info(ctx, "user registered", "user_id", user.ID, "provider", p.Provider)
			}
			return err
		case err != nil:
			return err
		}

		if !sameValue(u.Provider, p.Provider) || !sameValue(u.ProviderSub, p.Subject) {
			u.Provider = nonEmpty(p.Provider)
			u.ProviderSub = nonEmpty(p.Subject)
			if (u.Name == nil || *u.Name == "") && p.Name != "" {
				u.Name = nonEmpty(p.Name)
			}
			if err := s.repo.UpdateIdentity(ctx, u); err != nil {
				return err
			}
			s.log.Info(ctx, "user identity linked", "user_id", u.ID, "provider", p.Provider)
		}
		user = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func normalizeEmail(raw string) (string, error) {
	email := strings.TrimSpace(raw)
	if email == "" {
		return "", fmt.Errorf("%w: email is required", entity.ErrValidation)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", fmt.Errorf("%w: invalid email", entity.ErrValidation)
	}
	return email, nil
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func sameValue(p *string, v string) bool {
	if p == nil {
		return v == ""
	}
	return *p == v
}
