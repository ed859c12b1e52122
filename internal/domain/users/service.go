package users

import (
	"context"
	"errors"
	"strings"

	"pawclinic/internal/ports/auth"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

type Service struct {
	repo  Repository
	owner Account
}

func NewService(repo Repository, owner Account) *Service {
	if strings.TrimSpace(owner.Username) == "" {
		owner = DefaultOwner
	}
	owner.Role = RoleOwner
	return &Service{
		repo:  repo,
		owner: owner,
	}
}

type RegisterInput struct {
	FullName string
	Username string
	Password string
}

// Register crea una cuenta con rol "user". El rol owner nunca se registra:
// existe una sola cuenta privilegiada, definida fuera de la lista de usuarios.
func (s *Service) Register(ctx context.Context, in RegisterInput) (Account, error) {
	fullName := strings.TrimSpace(in.FullName)
	username := strings.TrimSpace(in.Username)

	if fullName == "" || username == "" || in.Password == "" {
		return Account{}, ErrInvalidInput
	}

	if _, err := s.repo.FindByUsername(ctx, username); err == nil {
		return Account{}, ErrUsernameTaken
	}

	a := Account{
		FullName: fullName,
		Username: username,
		Password: in.Password,
		Role:     RoleUser,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return Account{}, err
	}
	return a, nil
}

// Login compara credenciales en texto plano: primero la cuenta owner,
// después la lista de usuarios registrados.
func (s *Service) Login(ctx context.Context, username, password string) (Account, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return Account{}, ErrInvalidCredentials
	}

	if username == s.owner.Username && password == s.owner.Password {
		return s.owner, nil
	}

	a, err := s.repo.FindByUsername(ctx, username)
	if err != nil || a.Password != password {
		return Account{}, ErrInvalidCredentials
	}
	return a, nil
}

// Resolve implementa auth.UserResolver para el middleware de sesión.
func (s *Service) Resolve(ctx context.Context, username string) (auth.Claims, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return auth.Claims{}, ErrNotFound
	}

	if username == s.owner.Username {
		return auth.Claims{
			Username: s.owner.Username,
			FullName: s.owner.FullName,
			Role:     RoleOwner,
		}, nil
	}

	a, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return auth.Claims{}, err
	}
	return auth.Claims{
		Username: a.Username,
		FullName: a.FullName,
		Role:     a.Role,
	}, nil
}
