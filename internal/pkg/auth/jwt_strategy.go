package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const defaultIssuer = "flowershop"

// JWTStrategy signs session tokens as HS256 JWTs. Every token carries a random
// jti so two logins never produce the same value. Tokens do not expire.
type JWTStrategy struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// NewJWTStrategy builds JWTStrategy with provided secret and options.
func NewJWTStrategy(secret string, opts Options) *JWTStrategy {
	issuer := opts.Issuer
	if issuer == "" {
		issuer = defaultIssuer
	}
	return &JWTStrategy{secret: []byte(secret), issuer: issuer, now: time.Now}
}

// IssueToken generates a fresh signed token for the user.
func (s *JWTStrategy) IssueToken(userID int64) (string, error) {
	claims := jwt.RegisteredClaims{
		ID:       uuid.NewString(),
		Issuer:   s.issuer,
		Subject:  strconv.FormatInt(userID, 10),
		IssuedAt: jwt.NewNumericDate(s.now()),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ParseToken validates signature and issuer and returns the encoded user ID.
func (s *JWTStrategy) ParseToken(token string) (int64, error) {
	if token == "" {
		return 0, ErrInvalidToken
	}

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithIssuer(s.issuer))
	if err != nil || !parsed.Valid {
		return 0, errors.Join(ErrInvalidToken, err)
	}
	if claims.ID == "" {
		return 0, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return 0, ErrInvalidToken
	}
	return userID, nil
}
