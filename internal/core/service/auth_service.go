package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/zonaazul/enforcement-system/internal/core/domain"
	"github.com/zonaazul/enforcement-system/internal/core/ports"
)

// AuthService implements inspector registration and login.
type AuthService struct {
	repo      ports.InspectorRepository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(repo ports.InspectorRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.Inspector, error) {
	if in.CPF == "" || in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	role := in.Role
	if role == "" {
		role = domain.RoleInspector
	}
	if role != domain.RoleAdmin && role != domain.RoleInspector {
		return nil, domain.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	inspector := &domain.Inspector{
		CPF:          in.CPF,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         role,
		State:        in.State,
		City:         in.City,
		CreatedAt:    time.Now(),
	}

	created, err := s.repo.Create(ctx, inspector)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.Inspector, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	inspector, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(inspector.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(inspector)
	if err != nil {
		return "", nil, err
	}

	return token, inspector, nil
}

func (s *AuthService) generateToken(inspector *domain.Inspector) (string, error) {
	claims := jwt.MapClaims{
		"cpf":  inspector.CPF,
		"role": inspector.Role,
		"exp":  time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
