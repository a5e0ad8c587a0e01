package auth

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Decode failure kinds. The middleware needs to tell expiry apart from the
// rest so the client gets a "log in again" hint instead of a generic 401.
var (
	ErrTokenMalformed   = errors.New("token malformed")
	ErrTokenExpired     = errors.New("token expired")
	ErrSignatureInvalid = errors.New("token signature invalid")
	ErrTokenDecode      = errors.New("token decode error")
	ErrAlgorithmInvalid = errors.New("token algorithm invalid")
	ErrTokenInvalid     = errors.New("token invalid")
)

// Claims embeds the registered claims; Subject carries the user id as a
// string per the JWT spec.
type Claims struct {
	Role  string `json:"role"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// UserID parses the subject back into the numeric user id.
func (c *Claims) UserID() (int64, error) {
	return strconv.ParseInt(c.Subject, 10, 64)
}

// TokenCodec signs and verifies identity tokens with a shared HS256 secret.
type TokenCodec struct {
	secret   []byte
	lifetime time.Duration
}

func NewTokenCodec(secret string, lifetimeHours int) *TokenCodec {
	if lifetimeHours <= 0 {
		lifetimeHours = 24
	}
	return &TokenCodec{
		secret:   []byte(secret),
		lifetime: time.Duration(lifetimeHours) * time.Hour,
	}
}

// Issue creates a signed token embedding the user's identity.
func (c *TokenCodec) Issue(userID int64, role, email string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Role:  role,
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.lifetime)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Decode verifies a token and returns its claims. Clients sometimes send the
// token JSON-stringified, so one layer of surrounding quotes is stripped
// before parsing.
func (c *TokenCodec) Decode(raw string) (*Claims, error) {
	token := strings.TrimSpace(raw)
	token = strings.Trim(token, `"'`)
	if token == "" || strings.Count(token, ".") != 2 {
		return nil, ErrTokenMalformed
	}

	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrAlgorithmInvalid
		}
		return c.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrAlgorithmInvalid):
			return nil, ErrAlgorithmInvalid
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrSignatureInvalid
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrTokenDecode
		default:
			return nil, ErrTokenInvalid
		}
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
