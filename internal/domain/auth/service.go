package auth

import (
	"context"
)

// AuthService authenticates the dashboard administrator. There is no user
// store: the single admin credential comes from configuration.
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
}
