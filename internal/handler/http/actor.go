package http

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"

	"github.com/staffhub/staffhub-backend-go/internal/domain/user"
)

// ActorFromContext rebuilds the authenticated caller from JWT claims.
// Handlers pass the result into services explicitly; nothing below the
// handler layer reads the request context for identity.
func ActorFromContext(ctx context.Context) (user.Actor, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return user.Actor{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return user.Actor{}, fmt.Errorf("user_id claim is missing or invalid")
	}
	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return user.Actor{}, fmt.Errorf("company_id claim is missing or invalid")
	}
	roleName, ok := claims["role"].(string)
	if !ok || !user.Role(roleName).Valid() {
		return user.Actor{}, fmt.Errorf("role claim is missing or invalid")
	}

	actor := user.Actor{
		UserID:    userID,
		CompanyID: companyID,
		Role:      user.Role(roleName),
	}
	if employeeID, ok := claims["employee_id"].(string); ok {
		actor.EmployeeID = employeeID
	}
	return actor, nil
}
