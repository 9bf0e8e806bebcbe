package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/staffhub/staffhub-backend-go/internal/domain/auth"
	"github.com/staffhub/staffhub-backend-go/internal/domain/employee"
	"github.com/staffhub/staffhub-backend-go/internal/domain/user"
	"github.com/staffhub/staffhub-backend-go/internal/pkg/jwt"
)

type AuthServiceImpl struct {
	user.UserRepository
	employee.EmployeeRepository
	jwtService jwt.Service
}

func NewAuthService(
	userRepo user.UserRepository,
	employeeRepo employee.EmployeeRepository,
	jwtService jwt.Service,
) auth.AuthService {
	return &AuthServiceImpl{
		UserRepository:     userRepo,
		EmployeeRepository: employeeRepo,
		jwtService:         jwtService,
	}
}

// Login implements auth.AuthService.
func (s *AuthServiceImpl) Login(ctx context.Context, req *auth.LoginRequest) (*auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	account, err := s.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, auth.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return nil, auth.ErrInvalidCredentials
	}

	accessToken, _, err := s.jwtService.GenerateAccessToken(
		account.ID, account.Email, account.EmployeeID, account.CompanyID, account.Role,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, _, err := s.jwtService.GenerateRefreshToken(account.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	resp := &auth.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: auth.UserResponse{
			ID:         account.ID,
			EmployeeID: account.EmployeeID,
			Email:      account.Email,
			Role:       string(account.Role),
		},
	}
	if account.EmployeeID != nil {
		if emp, err := s.EmployeeRepository.GetByID(ctx, *account.EmployeeID); err == nil {
			resp.User.Name = emp.FullName()
		}
	}
	return resp, nil
}

// Refresh implements auth.AuthService.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (*auth.RefreshResponse, error) {
	if s.jwtService.IsTokenRevoked(refreshToken) {
		return nil, auth.ErrInvalidToken
	}

	claims, err := s.jwtService.ParseClaims(refreshToken)
	if err != nil {
		return nil, auth.ErrInvalidToken
	}
	if tokenType, _ := claims["type"].(string); tokenType != "refresh" {
		return nil, auth.ErrInvalidToken
	}
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return nil, auth.ErrInvalidToken
	}

	account, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, auth.ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	accessToken, _, err := s.jwtService.GenerateAccessToken(
		account.ID, account.Email, account.EmployeeID, account.CompanyID, account.Role,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &auth.RefreshResponse{AccessToken: accessToken}, nil
}

// Logout implements auth.AuthService.
func (s *AuthServiceImpl) Logout(ctx context.Context, accessToken string) error {
	s.jwtService.RevokeToken(accessToken)
	return nil
}
