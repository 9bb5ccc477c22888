package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/biosecret/go-taskmanager/models"
)

const (
	tokenIssuer = "go-taskmanager"
	// TokenTTL is fixed; expiry is the only way a token is invalidated.
	TokenTTL = time.Hour
)

var (
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInvalidClaims    = errors.New("invalid token claims")
)

// Claims carries the identity in the token payload.
type Claims struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HS256 bearer tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    TokenTTL,
		now:    time.Now,
	}
}

// Issue signs a token for id that expires TokenTTL from now.
func (tm *TokenManager) Issue(id models.Identity) (string, error) {
	if id.UserID <= 0 {
		return "", ErrInvalidClaims
	}

	now := tm.now()
	claims := Claims{
		UserID:   id.UserID,
		Username: id.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    tokenIssuer,
			Subject:   strconv.FormatInt(id.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(tm.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify returns the identity in tokenString, or ErrExpiredToken,
// ErrInvalidSignature or ErrInvalidClaims.
func (tm *TokenManager) Verify(tokenString string) (models.Identity, error) {
	if strings.TrimSpace(tokenString) == "" {
		return models.Identity{}, ErrInvalidSignature
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return tm.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(tm.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Identity{}, ErrExpiredToken
		}
		if errors.Is(err, jwt.ErrTokenInvalidClaims) {
			return models.Identity{}, fmt.Errorf("%w: %v", ErrInvalidClaims, err)
		}
		return models.Identity{}, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	if claims.UserID <= 0 || claims.Subject != strconv.FormatInt(claims.UserID, 10) {
		return models.Identity{}, ErrInvalidClaims
	}

	return models.Identity{UserID: claims.UserID, Username: claims.Username}, nil
}
