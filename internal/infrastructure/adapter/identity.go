package adapter

import (
	"context"

	"github.com/agrobank/financing-service/internal/domain/port"
	"github.com/agrobank/financing-service/internal/domain/valueobject"
	"github.com/agrobank/financing-service/pkg/auth"
)

// JWTIdentity implements port.IdentityPort by reading the claims that the
// auth interceptor stored on the request context.
type JWTIdentity struct{}

// NewJWTIdentity creates the adapter.
func NewJWTIdentity() *JWTIdentity {
	return &JWTIdentity{}
}

// CurrentActor resolves the caller from JWT claims. The first known role wins;
// a token without a recognized role is rejected.
func (a *JWTIdentity) CurrentActor(ctx context.Context) (port.Actor, error) {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return port.Actor{}, valueobject.NewValidation("missing authentication claims")
	}

	for _, role := range []string{auth.RoleFarmer, auth.RoleBank, auth.RoleAdmin} {
		if claims.HasRole(role) {
			return port.Actor{ID: claims.UserID, Role: role}, nil
		}
	}
	return port.Actor{}, valueobject.NewValidation("token carries no recognized role")
}
