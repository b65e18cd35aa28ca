package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ourhour/weddinghub/internal/model"
	"ourhour/weddinghub/internal/repository"
	"ourhour/weddinghub/pkg/crypto"
	jwtpkg "ourhour/weddinghub/pkg/jwt"
)

// TokenSet represents a set of tokens returned after authentication.
type TokenSet struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType"`
	ExpiresIn    int64  `json:"expiresIn"`
}

// AuthResult is a user together with a freshly issued token pair.
type AuthResult struct {
	User   *model.User
	Tokens *TokenSet
}

type SignupInput struct {
	Email           string
	Password        string
	PasswordConfirm string
	Name            string
	Phone           string
}

type AuthService interface {
	Signup(ctx context.Context, input SignupInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Me(ctx context.Context, userID uuid.UUID) (*model.User, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenSet, error)
	Logout(ctx context.Context, userID uuid.UUID, refreshToken string) error
}

type authService struct {
	userRepo   repository.UserRepository
	tokens     repository.RefreshTokenStore
	jwtManager *jwtpkg.Manager
	now        func() time.Time
}

func NewAuthService(
	userRepo repository.UserRepository,
	tokens repository.RefreshTokenStore,
	jwtManager *jwtpkg.Manager,
) AuthService {
	return &authService{
		userRepo:   userRepo,
		tokens:     tokens,
		jwtManager: jwtManager,
		now:        time.Now,
	}
}

func (s *authService) Signup(ctx context.Context, input SignupInput) (*AuthResult, error) {
	if input.Password != input.PasswordConfirm {
		return nil, ErrPasswordMismatch
	}
	email := strings.TrimSpace(input.Email)

	// Pre-check for a friendlier error; the unique index still decides.
	_, err := s.userRepo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, ErrEmailTaken
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Email:        email,
		Name:         strings.TrimSpace(input.Name),
		Phone:        input.Phone,
		PasswordHash: hash,
		Provider:     model.AuthProviderLocal,
		Role:         model.UserRoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Tokens: tokens}, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	// Social accounts have no local password.
	if user.PasswordHash == "" || !crypto.CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	now := s.now().UTC()
	if err := s.userRepo.TouchLastLogin(ctx, user.ID, now); err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}
	user.LastLogin = &now

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Tokens: tokens}, nil
}

func (s *authService) Me(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*TokenSet, error) {
	claims, err := s.refreshClaims(refreshToken)
	if err != nil {
		return nil, err
	}

	// Rotation: taking the JTI consumes it, so each refresh token works once.
	owner, ok, err := s.tokens.Take(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to consume refresh token: %w", err)
	}
	if !ok || owner.String() != claims.Subject {
		return nil, ErrRefreshTokenInvalid
	}

	user, err := s.userRepo.GetByID(ctx, owner)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRefreshTokenInvalid
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return s.issueTokens(ctx, user)
}

func (s *authService) Logout(ctx context.Context, userID uuid.UUID, refreshToken string) error {
	claims, err := s.refreshClaims(refreshToken)
	if err != nil {
		return err
	}
	if claims.Subject != userID.String() {
		return ErrRefreshTokenInvalid
	}
	_, ok, err := s.tokens.Take(ctx, claims.ID)
	if err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	if !ok {
		return ErrRefreshTokenInvalid
	}
	return nil
}

// refreshClaims checks signature, expiry and token type only; whether the
// JTI is still live is decided by Take.
func (s *authService) refreshClaims(refreshToken string) (*jwtpkg.Claims, error) {
	claims, err := s.jwtManager.Validate(refreshToken)
	if err != nil || claims.TokenType != jwtpkg.TokenTypeRefresh || claims.ID == "" {
		return nil, ErrRefreshTokenInvalid
	}
	return claims, nil
}

func (s *authService) issueTokens(ctx context.Context, user *model.User) (*TokenSet, error) {
	access, err := s.jwtManager.GenerateAccessToken(user.ID, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}
	refresh, claims, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}
	if err := s.tokens.Save(ctx, claims.ID, user.ID, s.jwtManager.RefreshTokenTTL()); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}
	return &TokenSet{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.jwtManager.AccessTokenTTL().Seconds()),
	}, nil
}

var _ AuthService = (*authService)(nil)
