package application

import (
	"time"

	"github.com/oksasatya/employee-hierarchy-api/internal/domain/entity"
	"github.com/oksasatya/employee-hierarchy-api/pkg/helpers"
)

// AuthService hashes and verifies passwords and issues access tokens.
type AuthService struct {
	hasher *helpers.PasswordHasher
	jwt    *helpers.JWTManager
}

func NewAuthService(hasher *helpers.PasswordHasher, jwt *helpers.JWTManager) *AuthService {
	return &AuthService{hasher: hasher, jwt: jwt}
}

// HashPassword is deterministic: equal inputs produce equal hashes.
func (s *AuthService) HashPassword(plain string) (string, error) {
	return s.hasher.Hash(plain)
}

func (s *AuthService) VerifyPassword(plain, hash string) bool {
	return s.hasher.Verify(plain, hash)
}

// GenerateJwtToken fails with helpers.ErrJWTSecretMissing when no secret is configured.
func (s *AuthService) GenerateJwtToken(u *entity.User) (string, time.Time, error) {
	return s.jwt.Generate(u.ID.String(), u.Username, u.Email)
}
