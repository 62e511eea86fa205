package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrJWTSecretMissing means tokens cannot be signed; callers treat it as fatal.
var ErrJWTSecretMissing = errors.New("jwt secret is not configured")

const (
	defaultIssuer   = "EmployeeChallenge"
	defaultAudience = "EmployeeChallenge"
	defaultTTL      = 60 * time.Minute
)

// JWTManager handles generation and validation of HS256 access tokens
type JWTManager struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
	clock    Clock
}

// NewJWTManager applies defaults for an empty issuer or audience and a non-positive ttl.
func NewJWTManager(secret, issuer, audience string, ttl time.Duration, clock Clock) *JWTManager {
	if issuer == "" {
		issuer = defaultIssuer
	}
	if audience == "" {
		audience = defaultAudience
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &JWTManager{secret: []byte(secret), issuer: issuer, audience: audience, ttl: ttl, clock: clock}
}

// Claims carries the user identity: sub is the user id, unique_name the username.
type Claims struct {
	UniqueName string `json:"unique_name"`
	Email      string `json:"email"`
	jwt.RegisteredClaims
}

func (m *JWTManager) TTL() time.Duration { return m.ttl }

// Generate signs a token for the user and returns it with its expiry.
func (m *JWTManager) Generate(userID, username, email string) (string, time.Time, error) {
	if len(m.secret) == 0 {
		return "", time.Time{}, ErrJWTSecretMissing
	}
	now := m.clock.Now()
	exp := now.Add(m.ttl)
	claims := &Claims{
		UniqueName: username,
		Email:      email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ID:        uuid.NewString(),
			Issuer:    m.issuer,
			Audience:  jwt.ClaimStrings{m.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.secret)
	return s, exp, err
}

// Parse validates signature, issuer, audience and expiry.
func (m *JWTManager) Parse(tokenStr string) (*Claims, error) {
	if len(m.secret) == 0 {
		return nil, ErrJWTSecretMissing
	}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithAudience(m.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.clock.Now),
	)
	claims := &Claims{}
	tkn, err := parser.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !tkn.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
