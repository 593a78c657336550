package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pactumlogic/pactum-server/internal/config"
	"github.com/pactumlogic/pactum-server/internal/dto"
	"github.com/pactumlogic/pactum-server/internal/model"
	"github.com/pactumlogic/pactum-server/internal/repository"
	"github.com/pactumlogic/pactum-server/pkg/apperror"
)

type AuthService interface {
	Register(ctx context.Context, input dto.RegisterInput) (*dto.AuthResponse, error)
	Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error)
}

type authService struct {
	repo        repository.UserRepository
	redisClient *redis.Client
	secret      string
	tokenTTL    time.Duration
	lockoutTTL  time.Duration
	defaultRole string
}

func NewAuthService(repo repository.UserRepository, redisClient *redis.Client, cfg *config.Config) AuthService {
	return &authService{
		repo:        repo,
		redisClient: redisClient,
		secret:      cfg.JWTSecret,
		tokenTTL:    cfg.JWTTTL,
		lockoutTTL:  cfg.LoginLockout,
		defaultRole: "user",
	}
}

func (s *authService) Register(ctx context.Context, input dto.RegisterInput) (*dto.AuthResponse, error) {
	if _, err := s.repo.FindByEmail(ctx, input.Email); err == nil {
		return nil, fmt.Errorf("%w: email already registered", apperror.ErrBadRequest)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	role, err := s.repo.FindRoleByName(ctx, s.defaultRole)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("role %s not found", s.defaultRole)
		}
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	roleID := role.ID
	user := &model.User{
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		RoleID:       &roleID,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	created, err := s.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}

	return s.buildAuthResponse(created)
}

func (s *authService) Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error) {
	locked, err := IsLoginLocked(ctx, s.redisClient, input.Email)
	if err != nil {
		return nil, err
	}
	if locked {
		return nil, fmt.Errorf("%w: too many failed login attempts", apperror.ErrRateLimitExceeded)
	}

	user, err := s.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, s.failLogin(ctx, input.Email)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, s.failLogin(ctx, input.Email)
	}

	ClearLoginLock(ctx, s.redisClient, input.Email)

	return s.buildAuthResponse(user)
}

// failLogin records the failed attempt and hands back the uniform
// credential error so callers cannot probe which accounts exist.
func (s *authService) failLogin(ctx context.Context, email string) error {
	RecordFailedLogin(ctx, s.redisClient, email, s.lockoutTTL)
	return fmt.Errorf("%w: invalid email or password", apperror.ErrUnauthorized)
}

func (s *authService) buildAuthResponse(user *model.User) (*dto.AuthResponse, error) {
	token, expiresAt, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	roles := []string{}
	if user.Role.Name != "" {
		roles = append(roles, user.Role.Name)
	}

	return &dto.AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresAt,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Roles:       roles,
	}, nil
}

func (s *authService) generateToken(user *model.User) (string, int64, error) {
	expiresAt := time.Now().Add(s.tokenTTL)

	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", 0, err
	}

	return signed, expiresAt.Unix(), nil
}
