package utils

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vaughan-dsouza/volunteer-auth/internal/models"
)

var (
	ErrSecretNotConfigured = errors.New("secret not configured")
	ErrTokenExpired        = errors.New("token expired")
	ErrInvalidTTL          = errors.New("token ttl must be positive")
)

// CustomClaims carries the identity the login handler vouches for.
type CustomClaims struct {
	UserID int64       `json:"id"`
	Email  string      `json:"email"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

// Parses TTL such as "15m", "1h", "20s", "30" (minutes)
func ParseTTL(ttlStr string) (time.Duration, error) {
	if ttlStr == "" {
		return time.Hour, nil
	}

	var ttl time.Duration
	if strings.HasSuffix(ttlStr, "m") ||
		strings.HasSuffix(ttlStr, "h") ||
		strings.HasSuffix(ttlStr, "s") {
		d, err := time.ParseDuration(ttlStr)
		if err != nil {
			return 0, err
		}
		ttl = d
	} else {
		// fallback: minutes
		min, err := strconv.Atoi(ttlStr)
		if err != nil {
			return 0, err
		}
		ttl = time.Duration(min) * time.Minute
	}

	if ttl <= 0 {
		return 0, ErrInvalidTTL
	}
	return ttl, nil
}

// GenerateToken signs an HS256 token for u and returns it with its expiry.
func GenerateToken(u *models.User, secret []byte, ttl time.Duration) (string, time.Time, error) {
	if len(secret) == 0 {
		return "", time.Time{}, ErrSecretNotConfigured
	}

	now := time.Now()
	expTime := now.Add(ttl)

	claims := CustomClaims{
		UserID: u.ID,
		Email:  u.Email,
		Role:   u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(u.ID, 10),
			ExpiresAt: jwt.NewNumericDate(expTime),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expTime, nil
}

func VerifyToken(tokenStr string, secret []byte) (*CustomClaims, error) {
	if len(secret) == 0 {
		return nil, ErrSecretNotConfigured
	}

	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))

	var claims CustomClaims

	_, err := parser.ParseWithClaims(tokenStr, &claims, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if errors.Is(err, jwt.ErrTokenExpired) {
		return nil, ErrTokenExpired
	}
	if err != nil {
		return nil, err
	}

	if claims.ExpiresAt == nil || time.Until(claims.ExpiresAt.Time) <= 0 {
		return nil, ErrTokenExpired
	}

	return &claims, nil
}
