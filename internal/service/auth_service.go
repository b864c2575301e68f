package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lshigami/placement-portal/internal/auth"
	"github.com/lshigami/placement-portal/internal/cache"
	"github.com/lshigami/placement-portal/internal/dto"
	"github.com/lshigami/placement-portal/internal/model"
	"github.com/lshigami/placement-portal/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type AuthService interface {
	// Register creates a student account that stays pending until an admin approves it.
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserDTO, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenResponse, error)
	// Authenticate resolves a bearer token to the current user.
	Authenticate(ctx context.Context, token string) (*model.User, error)
	// EnsureAdmin creates an approved administrator unless the email is already registered.
	EnsureAdmin(ctx context.Context, name, email, password string) error
	UpdateProfile(ctx context.Context, user *model.User, req dto.UpdateProfileRequest) (*dto.UserDTO, error)
}

type authService struct {
	userRepo     repository.UserRepository
	tokens       *auth.TokenManager
	contextCache cache.ContextCache
}

func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenManager, contextCache cache.ContextCache) AuthService {
	if contextCache == nil {
		contextCache = cache.NoopContextCache{}
	}
	return &authService{userRepo: userRepo, tokens: tokens, contextCache: contextCache}
}

func normalizeEmail(email string) string {
	return strings.ToLower(dto.Sanitize(email))
}

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserDTO, error) {
	email := normalizeEmail(req.Email)
	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("email %s: %w", email, ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("error checking email: %w", err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Name:         dto.Sanitize(req.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleStudent,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		log.Error().Err(err).Str("email", email).Msg("Failed to create user")
		return nil, fmt.Errorf("database error creating user: %w", err)
	}
	log.Info().Uint("userID", user.ID).Msg("Student registered, pending approval")
	out := toUserDTO(user)
	return &out, nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error looking up user: %w", err)
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		log.Warn().Uint("userID", user.ID).Msg("Login failed: wrong password")
		return nil, ErrInvalidCredentials
	}
	token, expiresAt, err := s.tokens.Generate(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		User:        toUserDTO(user),
	}, nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, auth.ErrInvalidToken
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}
	return user, nil
}

func (s *authService) EnsureAdmin(ctx context.Context, name, email, password string) error {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil
	}
	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("error checking admin email: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	admin := &model.User{
		Name:         dto.Sanitize(name),
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
		IsApproved:   true,
	}
	if err := s.userRepo.Create(ctx, admin); err != nil {
		return fmt.Errorf("database error creating admin: %w", err)
	}
	log.Info().Uint("userID", admin.ID).Str("email", email).Msg("Bootstrap administrator created")
	return nil
}

// UpdateProfile renames the user and/or sets a new password. The password only
// changes when the current one matches. A rename drops the cached chatbot
// context, which carries the student's name.
func (s *authService) UpdateProfile(ctx context.Context, user *model.User, req dto.UpdateProfileRequest) (*dto.UserDTO, error) {
	name := dto.Sanitize(req.Name)
	rename := name != "" && name != user.Name
	if !rename && req.NewPassword == "" {
		return nil, validationError("nothing to update")
	}

	var hash string
	if req.NewPassword != "" {
		if !auth.CheckPassword(user.PasswordHash, req.CurrentPassword) {
			log.Warn().Uint("userID", user.ID).Msg("Password change refused: wrong current password")
			return nil, validationError("current password is incorrect")
		}
		var err error
		if hash, err = auth.HashPassword(req.NewPassword); err != nil {
			return nil, err
		}
	}

	if rename {
		if err := s.userRepo.UpdateName(ctx, user.ID, name); err != nil {
			return nil, notFoundOr(err, "user %d", user.ID)
		}
		if err := s.contextCache.Invalidate(ctx, user.ID); err != nil {
			log.Warn().Err(err).Uint("userID", user.ID).Msg("Failed to invalidate chatbot context")
		}
	}
	if hash != "" {
		if err := s.userRepo.UpdatePassword(ctx, user.ID, hash); err != nil {
			return nil, notFoundOr(err, "user %d", user.ID)
		}
		log.Info().Uint("userID", user.ID).Msg("Password changed")
	}

	updated, err := s.userRepo.FindByID(ctx, user.ID)
	if err != nil {
		return nil, notFoundOr(err, "user %d", user.ID)
	}
	out := toUserDTO(updated)
	return &out, nil
}

func toUserDTO(u *model.User) dto.UserDTO {
	return dto.UserDTO{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		IsApproved: u.IsApproved,
		CreatedAt:  u.CreatedAt,
	}
}
