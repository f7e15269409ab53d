package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/golang-jwt/jwt/v4"
	"github.com/gridironlabs/gridiron-system/models"
	"github.com/gridironlabs/gridiron-system/repositories"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	Login(ctx context.Context, input LoginInput) (*models.User, *models.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error)

	GetProfile(ctx context.Context, userID int) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int, input UpdateProfileInput) (*models.User, error)
	DeleteAccount(ctx context.Context, userID int) error

	// Admin operations.
	ListUsers(ctx context.Context, limit, offset int) ([]models.User, error)
	GetUser(ctx context.Context, userID int) (*models.User, error)
	SetUserActive(ctx context.Context, userID int, active bool) (*models.User, error)
}

type RegisterInput struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginInput struct {
	// Identity accepts either the email address or the username.
	Identity string `json:"identity"`
	Password string `json:"password"`
}

type UpdateProfileInput struct {
	Email           *string `json:"email"`
	Username        *string `json:"username"`
	Password        *string `json:"password"`
	CurrentPassword string  `json:"current_password"`
	Preferences     []byte  `json:"preferences"`
}

type authService struct {
	userRepo repositories.UserRepository

	jwtSecret  []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, accessTTL, refreshTTL time.Duration) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtSecret:  []byte(jwtSecret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func validatePassword(password string) error {
	if len(password) < 8 {
		return ErrPasswordTooWeak
	}
	var hasUpper, hasLower, hasDigit bool
	for _, c := range password {
		switch {
		case unicode.IsUpper(c):
			hasUpper = true
		case unicode.IsLower(c):
			hasLower = true
		case unicode.IsDigit(c):
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return ErrPasswordTooWeak
	}
	return nil
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	username := strings.TrimSpace(input.Username)

	if email == "" {
		return nil, ErrEmailRequired
	}
	if !emailPattern.MatchString(email) {
		return nil, ErrEmailInvalid
	}
	if len(username) < 3 {
		return nil, ErrUsernameTooShort
	}
	if err := validatePassword(input.Password); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        email,
		Username:     username,
		PasswordHash: string(hashedPassword),
		IsActive:     true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, repositories.ErrUserEmailConflict):
			return nil, ErrUserEmailConflict
		case errors.Is(err, repositories.ErrUserUsernameConflict):
			return nil, ErrUserUsernameConflict
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, input LoginInput) (*models.User, *models.TokenPair, error) {
	identity := strings.TrimSpace(input.Identity)

	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(identity))
	if errors.Is(err, repositories.ErrUserNotFound) {
		user, err = s.userRepo.GetByUsername(ctx, identity)
	}
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("failed to compare password hash: %w", err)
	}

	if !user.IsActive {
		return nil, nil, ErrInactiveUser
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}

	// Best effort; login should not fail because the timestamp write did.
	_ = s.userRepo.UpdateLastLogin(ctx, user.ID, time.Now().UTC())

	return user, tokens, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	claims, err := s.parseToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	isRefresh, _ := claims["refresh"].(bool)
	if !isRefresh {
		return nil, ErrNotRefreshToken
	}

	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, int(userIDFloat))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user for refresh: %w", err)
	}
	if !user.IsActive {
		return nil, ErrInactiveUser
	}
	if sub, _ := claims["sub"].(string); sub != user.Username {
		return nil, ErrInvalidToken
	}

	return s.issueTokens(user)
}

func (s *authService) issueTokens(user *models.User) (*models.TokenPair, error) {
	now := time.Now()

	accessClaims := jwt.MapClaims{
		"sub":          user.Username,
		"user_id":      user.ID,
		"email":        user.Email,
		"is_superuser": user.IsSuperuser,
		"iat":          now.Unix(),
		"exp":          now.Add(s.accessTTL).Unix(),
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshClaims := jwt.MapClaims{
		"sub":     user.Username,
		"user_id": user.ID,
		"refresh": true,
		"iat":     now.Unix(),
		"exp":     now.Add(s.refreshTTL).Unix(),
	}
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return &models.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    int(s.accessTTL.Seconds()),
	}, nil
}

func (s *authService) parseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *authService) GetProfile(ctx context.Context, userID int) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) UpdateProfile(ctx context.Context, userID int, input UpdateProfileInput) (*models.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	changesCredentials := input.Email != nil || input.Username != nil || input.Password != nil
	if changesCredentials {
		if input.CurrentPassword == "" {
			return nil, ErrCurrentPasswordMiss
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.CurrentPassword)); err != nil {
			return nil, ErrInvalidCredentials
		}
	}

	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if !emailPattern.MatchString(email) {
			return nil, ErrEmailInvalid
		}
		user.Email = email
	}
	if input.Username != nil {
		username := strings.TrimSpace(*input.Username)
		if len(username) < 3 {
			return nil, ErrUsernameTooShort
		}
		user.Username = username
	}
	if input.Password != nil {
		if err := validatePassword(*input.Password); err != nil {
			return nil, err
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = string(hashed)
	}
	if len(input.Preferences) > 0 {
		user.Preferences = input.Preferences
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, repositories.ErrUserEmailConflict):
			return nil, ErrUserEmailConflict
		case errors.Is(err, repositories.ErrUserUsernameConflict):
			return nil, ErrUserUsernameConflict
		case errors.Is(err, repositories.ErrUserNotFound):
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (s *authService) DeleteAccount(ctx context.Context, userID int) error {
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

func (s *authService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.userRepo.List(ctx, limit, offset)
}

func (s *authService) GetUser(ctx context.Context, userID int) (*models.User, error) {
	return s.GetProfile(ctx, userID)
}

func (s *authService) SetUserActive(ctx context.Context, userID int, active bool) (*models.User, error) {
	if err := s.userRepo.SetActive(ctx, userID, active); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to set user active status: %w", err)
	}
	return s.GetProfile(ctx, userID)
}
