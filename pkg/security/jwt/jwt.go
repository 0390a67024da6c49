package jwt

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vkuzn/unimarket/pkg/auth"
)

// ErrInvalidToken covers every verification failure: bad signature,
// malformed token, wrong algorithm or natural expiry. Callers get no
// further detail.
var ErrInvalidToken = errors.New("invalid token")

// DefaultTTL is how long issued tokens stay valid.
const DefaultTTL = 7 * 24 * time.Hour

type Generator struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewGenerator(secret, issuer string, ttl time.Duration) *Generator {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Generator{secret: []byte(secret), issuer: issuer, ttl: ttl}
}

// Claims carries the identity payload alongside the registered claim set.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
}

func (g *Generator) Generate(ctx context.Context, user auth.User) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    g.issuer,
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.ttl)),
		},
		UserID: user.ID,
		Email:  user.Email,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(g.secret)
}

// Verify checks signature, algorithm and expiry, and returns the embedded
// identity. Verification is all-or-nothing: any failure is ErrInvalidToken.
func (g *Generator) Verify(tokenStr string) (auth.TokenPayload, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return g.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	if err != nil || !token.Valid {
		return auth.TokenPayload{}, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return auth.TokenPayload{}, ErrInvalidToken
	}
	if g.issuer != "" && claims.Issuer != g.issuer {
		return auth.TokenPayload{}, ErrInvalidToken
	}
	return auth.TokenPayload{UserID: claims.UserID, Email: claims.Email}, nil
}
