package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrTokenExpired means the operator has to sign in again.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid covers every other reason a token is refused.
	ErrTokenInvalid = errors.New("invalid token")
)

// OperatorClaims are the claims of an operator session token.
type OperatorClaims struct {
	OperatorID uuid.UUID `json:"operator_id"`
	Name       string    `json:"name"`
	Roles      []string  `json:"roles"`
	jwt.RegisteredClaims
}

// JWTManager issues and verifies HS256 operator session tokens.
type JWTManager struct {
	secret []byte
	ttl    time.Duration
	issuer string
	parser *jwt.Parser
}

// NewJWTManager creates a JWTManager whose tokens live for ttl and name issuer.
func NewJWTManager(secret string, ttl time.Duration, issuer string) *JWTManager {
	return &JWTManager{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: issuer,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(issuer),
			jwt.WithExpirationRequired(),
			jwt.WithLeeway(5*time.Second),
		),
	}
}

// Issue signs a session token for an operator.
func (m *JWTManager) Issue(operatorID uuid.UUID, name string, roles []string) (string, error) {
	now := time.Now()
	claims := &OperatorClaims{
		OperatorID: operatorID,
		Name:       name,
		Roles:      roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   operatorID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			ID:        uuid.NewString(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Verify checks signature, issuer and lifetime and returns the claims. The
// error is ErrTokenExpired or ErrTokenInvalid.
func (m *JWTManager) Verify(token string) (*OperatorClaims, error) {
	claims := &OperatorClaims{}
	_, err := m.parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrTokenExpired
	case err != nil:
		return nil, ErrTokenInvalid
	case claims.OperatorID == uuid.Nil:
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// TTL returns how long issued tokens live.
func (m *JWTManager) TTL() time.Duration {
	return m.ttl
}
