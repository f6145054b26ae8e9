package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"webformguard/internal/domain"
)

// ErrInvalidToken is returned by Verify for malformed, expired, or wrongly signed tokens.
var ErrInvalidToken = errors.New("invalid token")

const tokenIssuer = "webformguard"

type serviceClaims struct {
	jwt.RegisteredClaims
	Forms []string `json:"forms,omitempty"`
}

type jwtService struct {
	secret []byte
}

// NewJWTIssuer returns a TokenIssuer that signs service tokens with HS256 using the given secret.
// A zero expiry passed to Issue yields a token without exp.
func NewJWTIssuer(secret string) domain.TokenIssuer {
	return &jwtService{secret: []byte(secret)}
}

// NewJWTVerifier returns a TokenVerifier for tokens signed by NewJWTIssuer with the same secret.
func NewJWTVerifier(secret string) domain.TokenVerifier {
	return &jwtService{secret: []byte(secret)}
}

func (s *jwtService) Issue(hostID string, forms []string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := serviceClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   tokenIssuer,
			Subject:  hostID,
			IssuedAt: jwt.NewNumericDate(now),
		},
		Forms: forms,
	}
	if expiry != 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(expiry))
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

func (s *jwtService) Verify(tokenString string) (string, error) {
	claims := &serviceClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return claims.Subject, nil
}
