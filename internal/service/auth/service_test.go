package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/staffhub/staffhub-backend-go/internal/domain/auth"
	"github.com/staffhub/staffhub-backend-go/internal/domain/employee"
	"github.com/staffhub/staffhub-backend-go/internal/domain/user"
	"github.com/staffhub/staffhub-backend-go/internal/pkg/jwt"
)

const (
	testSecret     = "test-secret-key-for-jwt"
	testAccessExp  = "1h"
	testRefreshExp = "24h"
	testPassword   = "password123"
)

type fakeUserRepo struct {
	users map[string]*user.User
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) ListApproverEmails(ctx context.Context, companyID string, roles []user.Role) ([]string, error) {
	return nil, nil
}

type fakeEmployeeRepo struct {
	employees map[string]*employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (*employee.Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return nil, employee.ErrEmployeeNotFound
	}
	copied := *e
	return &copied, nil
}

func (f *fakeEmployeeRepo) GetByEmail(ctx context.Context, email string) (*employee.Employee, error) {
	return nil, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) ListByCompany(ctx context.Context, companyID string) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) CountByCompany(ctx context.Context, companyID string) (int64, error) {
	return 0, nil
}

func (f *fakeEmployeeRepo) ListCompanyIDs(ctx context.Context) ([]string, error) {
	return nil, nil
}

func newTestService(t *testing.T) (auth.AuthService, jwt.Service) {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	empID := "emp-1"
	users := &fakeUserRepo{users: map[string]*user.User{
		"u-1": {ID: "u-1", EmployeeID: &empID, CompanyID: "comp-1",
			Email: "ada@example.com", PasswordHash: string(hashed), Role: user.RoleEmployee},
	}}
	employees := &fakeEmployeeRepo{employees: map[string]*employee.Employee{
		"emp-1": {ID: "emp-1", CompanyID: "comp-1", FirstName: "Ada", LastName: "Osei",
			Email: "ada@example.com"},
	}}

	jwtService := jwt.NewJWTService(testSecret, testAccessExp, testRefreshExp)
	return NewAuthService(users, employees, jwtService), jwtService
}

func TestLogin(t *testing.T) {
	svc, jwtService := newTestService(t)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"valid credentials", "ada@example.com", testPassword, nil},
		{"wrong password", "ada@example.com", "nope", auth.ErrInvalidCredentials},
		{"unknown email", "ghost@example.com", testPassword, auth.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.Login(context.Background(), &auth.LoginRequest{
				Email:    tt.email,
				Password: tt.password,
			})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, resp.AccessToken)
			assert.NotEmpty(t, resp.RefreshToken)
			assert.Equal(t, "Ada Osei", resp.User.Name)
			assert.Equal(t, string(user.RoleEmployee), resp.User.Role)

			claims, err := jwtService.ParseClaims(resp.AccessToken)
			require.NoError(t, err)
			assert.Equal(t, "u-1", claims["user_id"])
			assert.Equal(t, "comp-1", claims["company_id"])
			assert.Equal(t, "access", claims["type"])
		})
	}
}

func TestRefresh(t *testing.T) {
	svc, _ := newTestService(t)

	login, err := svc.Login(context.Background(), &auth.LoginRequest{
		Email:    "ada@example.com",
		Password: testPassword,
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc, _ := newTestService(t)

	login, err := svc.Login(context.Background(), &auth.LoginRequest{
		Email:    "ada@example.com",
		Password: testPassword,
	})
	require.NoError(t, err)

	// An access token must not pass as a refresh token.
	_, err = svc.Refresh(context.Background(), login.AccessToken)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestRefreshRejectsRevokedToken(t *testing.T) {
	svc, jwtService := newTestService(t)

	login, err := svc.Login(context.Background(), &auth.LoginRequest{
		Email:    "ada@example.com",
		Password: testPassword,
	})
	require.NoError(t, err)

	jwtService.RevokeToken(login.RefreshToken)

	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestRefreshRejectsGarbage(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Refresh(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
