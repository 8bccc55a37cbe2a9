package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"jewelry-store/internal/entity"
)

// Claims are the verified facts a bearer token carries. Role is resolved
// from the token on every privileged request, never from client state.
type Claims struct {
	UserID   int    `json:"uid"`
	Username string `json:"uname"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Signer issues and verifies HS256 tokens.
type Signer struct {
	Secret []byte
	TTL    time.Duration
}

func NewSigner(secret []byte, ttl time.Duration) *Signer {
	return &Signer{Secret: secret, TTL: ttl}
}

// Issue encodes the user's identity and role into a signed token.
func (s *Signer) Issue(user *entity.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Type,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.TTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.Secret)
}

// Parse verifies the signature and expiry and returns the claims. Any
// failure, including a garbage token, comes back as an error so callers
// treat the request as unauthenticated.
func (s *Signer) Parse(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return s.Secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
