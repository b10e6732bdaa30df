package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/demir/classhub/internal/app/models"
	"github.com/demir/classhub/internal/app/models/dto"
	"github.com/demir/classhub/internal/app/repositories"
	"github.com/demir/classhub/internal/pkg/apperrors"
	"github.com/demir/classhub/internal/pkg/auth"
	"github.com/demir/classhub/internal/pkg/validation"
)

// AuthService handles registration, login and token rotation.
type AuthService struct {
	userRepo   *repositories.UserRepository
	tokenRepo  *repositories.TokenRepository
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	userRepo *repositories.UserRepository,
	tokenRepo *repositories.TokenRepository,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Register creates a new teacher or student account and signs the user in.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if !validation.IsValidEmail(req.Email) {
		return nil, apperrors.ErrInvalidEmail
	}
	if !validation.IsValidPassword(req.Password) {
		return nil, apperrors.ErrInvalidPassword
	}
	if !req.RoleType.IsValid() {
		return nil, apperrors.ErrValidationFailed
	}

	exists, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("error checking if email exists: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Email:     req.Email,
		Password:  hashedPassword,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		RoleType:  req.RoleType,
		IsActive:  true,
	}

	userID, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = userID

	s.logger.Info().Int64("userId", userID).Str("role", string(user.RoleType)).Msg("User registered")

	return s.generateAuthResponse(ctx, user)
}

// Login authenticates a user by email and password.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error getting user: %w", err)
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn().Err(err).Int64("userId", user.ID).Msg("Could not record last login time")
	}

	return s.generateAuthResponse(ctx, user)
}

// RefreshToken exchanges a valid refresh token for a fresh token pair. The
// old token is consumed so it cannot be replayed.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	if refreshToken == "" {
		return nil, apperrors.ErrTokenInvalid
	}

	stored, err := s.tokenRepo.GetByToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	if stored.IsExpired() {
		// Expired rows are dead weight, drop them on sight
		if err := s.tokenRepo.Delete(ctx, refreshToken); err != nil {
			s.logger.Warn().Err(err).Msg("Could not delete expired refresh token")
		}
		return nil, apperrors.ErrTokenExpired
	}

	user, err := s.userRepo.GetByID(ctx, stored.UserID)
	if err != nil {
		return nil, fmt.Errorf("error getting user for token refresh: %w", err)
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.tokenRepo.Delete(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("error consuming refresh token: %w", err)
	}

	authResponse, err := s.generateAuthResponse(ctx, user)
	if err != nil {
		return nil, err
	}
	return &authResponse.Token, nil
}

// Logout invalidates a refresh token, ending that session.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return apperrors.ErrTokenInvalid
	}

	if err := s.tokenRepo.Delete(ctx, refreshToken); err != nil {
		if errors.Is(err, apperrors.ErrTokenNotFound) {
			// Already gone, logout is idempotent
			return nil
		}
		return fmt.Errorf("error deleting refresh token: %w", err)
	}

	return nil
}

// generateAuthResponse creates a token pair, persists the refresh token and
// assembles the response.
func (s *AuthService) generateAuthResponse(ctx context.Context, user *models.User) (*dto.AuthResponse, error) {
	tokenPair, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("token generation error: %w", err)
	}

	refreshToken := &models.RefreshToken{
		UserID:    user.ID,
		Token:     tokenPair.RefreshToken,
		ExpiresAt: s.jwtService.GetRefreshTokenExpiry(),
	}
	if err := s.tokenRepo.Create(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("token saving error: %w", err)
	}

	return &dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken:           tokenPair.AccessToken,
			TokenType:             "Bearer",
			ExpiresIn:             tokenPair.ExpiresIn,
			RefreshToken:          tokenPair.RefreshToken,
			RefreshTokenExpiresIn: tokenPair.RefreshExpiresIn,
		},
		User: dto.FromUser(user),
	}, nil
}
