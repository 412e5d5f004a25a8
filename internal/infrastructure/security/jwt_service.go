package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Manavv007/GlobeTrotter-sub000/internal/config"
	domainErrors "github.com/Manavv007/GlobeTrotter-sub000/internal/domain/errors"
)

// Claims are the registered claims plus the user identity the token binds.
type Claims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// TokenIssuer mints and verifies the signed bearer tokens. Issuing has no
// side effects; the session ledger entry is written by the caller.
type TokenIssuer interface {
	Issue(userID uuid.UUID) (string, error)
	Parse(tokenString string) (*Claims, error)
}

type hmacTokenIssuer struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
}

// NewTokenIssuer creates an HS256 TokenIssuer. A missing secret is a
// configuration error, not a per-call one.
func NewTokenIssuer(cfg config.JWTConfig) (TokenIssuer, error) {
	if cfg.Secret == "" {
		return nil, errors.New("jwt secret must be configured")
	}
	ttl := cfg.AccessTokenTTL
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &hmacTokenIssuer{
		secret:   []byte(cfg.Secret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		ttl:      ttl,
	}, nil
}

// Issue signs a bearer token carrying the user identity and a fixed expiry.
func (s *hmacTokenIssuer) Issue(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID.String(),
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies signature and expiry and returns the claims. Any failure
// maps to ErrInvalidToken; callers must not distinguish why verification
// failed.
func (s *hmacTokenIssuer) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, domainErrors.ErrInvalidToken
	}
	if s.issuer != "" && claims.Issuer != s.issuer {
		return nil, domainErrors.ErrInvalidToken
	}
	return claims, nil
}

var _ TokenIssuer = (*hmacTokenIssuer)(nil)
