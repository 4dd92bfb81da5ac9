package auth

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"

	"account-server/internal/domain"
)

// ErrInvalidSigningKey is returned by NewTokenCodec when the configured secret
// is not valid Base64. Startup must treat it as fatal: the process cannot
// serve traffic without a usable signing key.
var ErrInvalidSigningKey = errors.New("jwt secret is not valid base64")

const bearerPrefix = "Bearer "

// Claims carried in every issued token. Subject holds the user's email.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64    `json:"id"`
	Roles  []string `json:"roles"`
}

// TokenCodec issues and verifies compact HS256-signed tokens. The signing key
// is decoded once at construction and read-only afterwards, so a single codec
// is safe for concurrent use.
type TokenCodec struct {
	signingKey []byte
	ttl        time.Duration
	logger     *logrus.Logger
}

// NewTokenCodec decodes the Base64 shared secret and builds a codec issuing
// tokens valid for ttl.
func NewTokenCodec(base64Secret string, ttl time.Duration, logger *logrus.Logger) (*TokenCodec, error) {
	key, err := base64.StdEncoding.DecodeString(base64Secret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSigningKey, err)
	}
	if len(key) == 0 {
		return nil, fmt.Errorf("%w: decoded key is empty", ErrInvalidSigningKey)
	}
	return &TokenCodec{signingKey: key, ttl: ttl, logger: logger}, nil
}

// Issue signs a token for the given identity. Subject is the email; the user
// id and roles travel as custom claims.
func (c *TokenCodec) Issue(identity domain.Identity) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
		UserID: identity.UserID,
		Roles:  identity.Roles,
	})

	signed, err := token.SignedString(c.signingKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	c.logger.Debugf("issued token for %s", identity.Email)
	return signed, nil
}

// Verify reports whether the token has a valid signature and is not expired.
// Every failure collapses to false for the caller; the distinct categories are
// only logged.
func (c *TokenCodec) Verify(tokenString string) bool {
	if strings.TrimSpace(tokenString) == "" {
		c.logger.Debug("token verification skipped: empty token")
		return false
	}

	_, err := c.parse(tokenString)
	if err == nil {
		return true
	}

	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		c.logger.Warnf("token rejected: expired: %v", err)
	case errors.Is(err, jwt.ErrTokenMalformed):
		c.logger.Warnf("token rejected: malformed: %v", err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		c.logger.Warnf("token rejected: invalid signature: %v", err)
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		c.logger.Warnf("token rejected: unverifiable: %v", err)
	default:
		c.logger.Warnf("token rejected: %v", err)
	}
	return false
}

// ExtractSubject returns the email encoded as the token subject. It is meant
// for tokens that already passed Verify; an empty token is an illegal-input
// failure, distinct from a parse failure.
func (c *TokenCodec) ExtractSubject(tokenString string) (string, error) {
	claims, err := c.ExtractClaims(tokenString)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// ExtractClaims parses the token and returns its full claims set.
func (c *TokenCodec) ExtractClaims(tokenString string) (*Claims, error) {
	if strings.TrimSpace(tokenString) == "" {
		return nil, domain.ErrIllegalInput
	}
	claims, err := c.parse(tokenString)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTokenInvalid, err)
	}
	return claims, nil
}

func (c *TokenCodec) parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
		}
		return c.signingKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, domain.ErrTokenInvalid
	}
	return claims, nil
}

// ResolveBearer extracts the token from an Authorization header value. The
// prefix match is case-sensitive; a missing token is an expected condition,
// not an error.
func ResolveBearer(headerValue string) (string, bool) {
	if !strings.HasPrefix(headerValue, bearerPrefix) {
		return "", false
	}
	return headerValue[len(bearerPrefix):], true
}
