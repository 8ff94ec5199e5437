package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/deliciousbites/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidSessionToken = errors.New("invalid session token")

// sessionClaims carries a full account copy plus the standard iat/exp claims.
type sessionClaims struct {
	jwt.RegisteredClaims
	AccountID int64  `json:"uid"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
}

// TokenCodec encodes the session record as an HS256-signed token. A zero
// TTL issues tokens without an expiry.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenCodec(secret []byte, ttl time.Duration) *TokenCodec {
	return &TokenCodec{secret: secret, ttl: ttl, now: time.Now}
}

func (c *TokenCodec) Encode(a models.Account) (string, error) {
	now := c.now()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
			Subject:  a.Email,
		},
		AccountID: a.ID,
		Name:      a.Name,
		Email:     a.Email,
		Phone:     a.Phone,
		Password:  a.Password,
	}
	if c.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(c.ttl))
	}

	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return s, nil
}

func (c *TokenCodec) Decode(token string) (models.Account, error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (interface{}, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return models.Account{}, fmt.Errorf("%w: %v", ErrInvalidSessionToken, err)
	}
	if !parsed.Valid {
		return models.Account{}, ErrInvalidSessionToken
	}

	return models.Account{
		ID:       claims.AccountID,
		Name:     claims.Name,
		Email:    claims.Email,
		Phone:    claims.Phone,
		Password: claims.Password,
	}, nil
}
