package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oksasatya/employee-hierarchy-api/internal/domain/repository"
	"github.com/oksasatya/employee-hierarchy-api/pkg/result"
)

type LoginCommand struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// invalidCredentials is returned for unknown users and wrong passwords alike.
func invalidCredentials() *result.Error {
	return result.UnauthorizedError("Auth.InvalidCredentials", "Invalid username or password")
}

type LoginHandler struct {
	users repository.UserRepository
	auth  *AuthService
}

func NewLoginHandler(users repository.UserRepository, auth *AuthService) *LoginHandler {
	return &LoginHandler{users: users, auth: auth}
}

func (h *LoginHandler) Handle(ctx context.Context, cmd LoginCommand) (result.Result[AuthResponse], error) {
	u, err := h.users.GetByUsername(ctx, cmd.Username)
	if errors.Is(err, repository.ErrNotFound) {
		return result.Fail[AuthResponse](invalidCredentials()), nil
	}
	if err != nil {
		return result.Result[AuthResponse]{}, fmt.Errorf("lookup user: %w", err)
	}
	if !h.auth.VerifyPassword(cmd.Password, u.Password) {
		return result.Fail[AuthResponse](invalidCredentials()), nil
	}
	token, exp, err := h.auth.GenerateJwtToken(u)
	if err != nil {
		return result.Result[AuthResponse]{}, fmt.Errorf("issue token: %w", err)
	}
	return result.Ok(AuthResponse{Token: token, Username: u.Username, Email: u.Email, ExpiresAt: exp}), nil
}
