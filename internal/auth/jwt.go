package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rogerio-castellano/stock-ledger/internal/models"
)

// DefaultTokenTTL is the validity of an issued token.
const DefaultTokenTTL = 7 * 24 * time.Hour

var (
	// ErrUnauthenticated is returned for a missing, malformed, expired or
	// badly signed token.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden is returned when a verified identity lacks the required role.
	ErrForbidden = errors.New("forbidden")
)

// Identity is what a verified token says about its bearer.
type Identity struct {
	UserID string
	Role   models.Role
}

type claims struct {
	Role models.Role `json:"role"`
	jwt.RegisteredClaims
}

// Gate issues and verifies signed bearer tokens.
type Gate struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewGate(secret string, ttl time.Duration) *Gate {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Gate{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (g *Gate) Issue(userID string, role models.Role) (string, error) {
	now := g.now()
	c := claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (g *Gate) Verify(tokenStr string) (Identity, error) {
	if tokenStr == "" {
		return Identity{}, ErrUnauthenticated
	}

	var c claims
	token, err := jwt.ParseWithClaims(tokenStr, &c, func(t *jwt.Token) (any, error) {
		return g.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return Identity{}, ErrUnauthenticated
	}

	if c.Subject == "" || !c.Role.Valid() {
		return Identity{}, ErrUnauthenticated
	}

	return Identity{UserID: c.Subject, Role: c.Role}, nil
}

func RequireRole(role, required models.Role) error {
	if role != required {
		return ErrForbidden
	}
	return nil
}
