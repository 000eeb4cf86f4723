package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"muni-hostelhub/internal/adapters/persistence/models"
	"muni-hostelhub/internal/adapters/persistence/repositories"
	"muni-hostelhub/internal/config"
	"muni-hostelhub/internal/core/domain"
	"muni-hostelhub/internal/pkg/jwt"
	"muni-hostelhub/internal/pkg/password"

	"github.com/google/uuid"
)

// Token errors
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
	ErrTokenRevoked = errors.New("token revoked")
)

// AuthService handles authentication business logic
type AuthService struct {
	userRepo         repositories.UserRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	securityLog      *SecurityLogService
	cfg              *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repositories.UserRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
	securityLog *SecurityLogService,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		securityLog:      securityLog,
		cfg:              cfg,
	}
}

// SignupInput represents self-registration input
type SignupInput struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required"`
	Password  string `json:"password" validate:"required,min=6"`
	Role      string `json:"role" validate:"required"`
	StudentID string `json:"student_id"`
}

// LoginInput represents login input
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthResponse represents authentication response. The tokens are empty
// when the new account still awaits approval.
type AuthResponse struct {
	User         *models.UserResponse `json:"user"`
	AccessToken  string               `json:"access_token,omitempty"`
	RefreshToken string               `json:"refresh_token,omitempty"`
}

// Signup registers a new account. Students become active immediately and
// are logged in; hostel admin applications start out pending and must be
// approved by a super admin before they can log in.
func (s *AuthService) Signup(ctx context.Context, input *SignupInput) (*AuthResponse, error) {
	role := domain.Role(input.Role)
	if role != domain.RoleUser && role != domain.RoleHostelAdmin {
		return nil, domain.ErrValidation
	}
	if !password.ValidatePassword(input.Password) {
		return nil, domain.ErrValidation
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateEmail
	}

	status := domain.StatusActive
	if role == domain.RoleHostelAdmin {
		status = domain.StatusPending
	}

	user := &models.User{
		ID:          uuid.New().String(),
		FirstName:   strings.TrimSpace(input.FirstName),
		LastName:    strings.TrimSpace(input.LastName),
		Email:       strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:       strings.TrimSpace(input.Phone),
		Password:    input.Password,
		Role:        role,
		Status:      status,
		StudentID:   strings.TrimSpace(input.StudentID),
		Permissions: permissionsCSV(role),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.securityLog.Log(ctx, EventUserRegistered, user.ID, map[string]interface{}{
		"email": user.Email,
		"role":  string(user.Role),
	})

	log.Printf("✅ User registered: %s (role: %s, status: %s)", user.Email, user.Role, user.Status)

	resp := &AuthResponse{User: user.ToResponse()}
	if user.Status != domain.StatusActive {
		return resp, nil
	}

	tokens, err := s.generateTokens(user)
	if err != nil {
		return nil, err
	}
	if err := s.storeRefreshToken(ctx, user.ID, tokens.RefreshToken); err != nil {
		return nil, err
	}

	resp.AccessToken = tokens.AccessToken
	resp.RefreshToken = tokens.RefreshToken
	return resp, nil
}

// Login authenticates a user. Email matching is case-insensitive; the
// password comparison is an exact match against the stored credential.
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			s.securityLog.Log(ctx, EventLoginFailed, "", map[string]interface{}{
				"email":  strings.ToLower(input.Email),
				"reason": "unknown email",
			})
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Compare(input.Password, user.Password) {
		s.securityLog.Log(ctx, EventLoginFailed, user.ID, map[string]interface{}{
			"email":  user.Email,
			"reason": "wrong password",
		})
		return nil, domain.ErrInvalidCredentials
	}

	switch user.Status {
	case domain.StatusPending:
		return nil, domain.ErrAccountPending
	case domain.StatusInactive:
		return nil, domain.ErrAccountInactive
	}

	now := time.Now()
	user.LastLogin = &now
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	tokens, err := s.generateTokens(user)
	if err != nil {
		return nil, err
	}
	if err := s.storeRefreshToken(ctx, user.ID, tokens.RefreshToken); err != nil {
		return nil, err
	}

	s.securityLog.Log(ctx, EventLoginSuccess, user.ID, map[string]interface{}{
		"email": user.Email,
	})

	log.Printf("✅ User logged in: %s", user.Email)

	return &AuthResponse{
		User:         user.ToResponse(),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// RefreshToken rotates the refresh token and issues a new token pair
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	claims, err := jwt.ValidateRefreshToken(refreshToken, s.cfg.JWT.RefreshSecret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	tokenHash := password.HashToken(refreshToken)

	storedToken, err := s.refreshTokenRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	if storedToken.IsRevoked() {
		return nil, ErrTokenRevoked
	}
	if storedToken.IsExpired() {
		return nil, ErrTokenExpired
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	if user.Status != domain.StatusActive {
		return nil, domain.ErrAccountInactive
	}

	// Token rotation: the presented refresh token is single use
	if err := s.refreshTokenRepo.Revoke(ctx, storedToken.ID); err != nil {
		return nil, err
	}

	tokens, err := s.generateTokens(user)
	if err != nil {
		return nil, err
	}
	if err := s.storeRefreshToken(ctx, user.ID, tokens.RefreshToken); err != nil {
		return nil, err
	}

	log.Printf("✅ Token refreshed for user: %s", user.Email)

	return &AuthResponse{
		User:         user.ToResponse(),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// Logout revokes the refresh token
func (s *AuthService) Logout(ctx context.Context, userID, refreshToken string) error {
	tokenHash := password.HashToken(refreshToken)

	if err := s.refreshTokenRepo.RevokeByTokenHash(ctx, tokenHash); err != nil {
		return err
	}

	s.securityLog.Log(ctx, EventLogout, userID, nil)

	log.Printf("✅ User logged out: %s", userID)
	return nil
}

// LogoutAll revokes all refresh tokens for a user
func (s *AuthService) LogoutAll(ctx context.Context, userID string) error {
	if err := s.refreshTokenRepo.RevokeAllByUserID(ctx, userID); err != nil {
		return err
	}

	log.Printf("✅ All sessions revoked for user: %s", userID)
	return nil
}

// ValidateAccessToken validates an access token
func (s *AuthService) ValidateAccessToken(accessToken string) (*jwt.Claims, error) {
	return jwt.ValidateAccessToken(accessToken, s.cfg.JWT.Secret)
}

// GetUserByID gets a user by ID
func (s *AuthService) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// generateTokens generates access and refresh tokens
func (s *AuthService) generateTokens(user *models.User) (*TokenPair, error) {
	accessToken, err := jwt.GenerateAccessToken(
		user.ID,
		user.Email,
		user.FirstName,
		string(user.Role),
		s.cfg.JWT.Secret,
		s.cfg.JWT.AccessTokenMins,
	)
	if err != nil {
		return nil, err
	}

	tokenID := uuid.New().String()

	refreshToken, err := jwt.GenerateRefreshToken(
		user.ID,
		tokenID,
		s.cfg.JWT.RefreshSecret,
		s.cfg.JWT.RefreshTokenDays,
	)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// storeRefreshToken stores a refresh token in the database
func (s *AuthService) storeRefreshToken(ctx context.Context, userID, refreshToken string) error {
	token := &models.RefreshToken{
		UserID:    userID,
		TokenHash: password.HashToken(refreshToken),
		ExpiresAt: jwt.GetExpiryTime(s.cfg.JWT.RefreshTokenDays),
	}

	return s.refreshTokenRepo.Create(ctx, token)
}

// permissionsCSV renders a role's permission set as the comma separated
// form persisted on the user record.
func permissionsCSV(role domain.Role) string {
	perms := domain.PermissionsForRole(role)
	parts := make([]string, len(perms))
	for i, p := range perms {
		parts[i] = string(p)
	}
	return strings.Join(parts, ",")
}
