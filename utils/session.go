package utils

import (
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const sessionIssuer = "IntranetPortal"

// SessionClaims identifies which portal system a shared-password login
// unlocked ("cardapio", "protocolos", "dti_blog", "zeladoria").
type SessionClaims struct {
	System string `json:"system"`
	jwt.RegisteredClaims
}

var (
	ErrInvalidSession     = errors.New("invalid or expired session")
	ErrBlacklistedSession = errors.New("session was closed")
)

var (
	blacklistedTokens = make(map[string]time.Time)
	blacklistMutex    sync.RWMutex
)

func GenerateSessionToken(secret []byte, system string, ttl time.Duration, now time.Time) (string, error) {
	claims := &SessionClaims{
		System: system,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    sessionIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func ParseSessionToken(secret []byte, tokenString string) (*SessionClaims, error) {
	if IsTokenBlacklisted(tokenString) {
		return nil, ErrBlacklistedSession
	}

	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(sessionIssuer))
	if err != nil || !token.Valid {
		return nil, ErrInvalidSession
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || claims.System == "" {
		return nil, ErrInvalidSession
	}
	return claims, nil
}

// BlacklistToken rejects the token until the given instant (its expiry).
func BlacklistToken(token string, until time.Time) {
	blacklistMutex.Lock()
	defer blacklistMutex.Unlock()
	blacklistedTokens[token] = until
}

func IsTokenBlacklisted(token string) bool {
	blacklistMutex.RLock()
	defer blacklistMutex.RUnlock()

	expiry, exists := blacklistedTokens[token]
	return exists && time.Now().Before(expiry)
}

// PurgeExpiredTokens drops blacklist entries that expired before now and
// returns how many were removed.
func PurgeExpiredTokens(now time.Time) int {
	blacklistMutex.Lock()
	defer blacklistMutex.Unlock()

	removed := 0
	for token, expiry := range blacklistedTokens {
		if !now.Before(expiry) {
			delete(blacklistedTokens, token)
			removed++
		}
	}
	return removed
}

func BlacklistSize() int {
	blacklistMutex.RLock()
	defer blacklistMutex.RUnlock()
	return len(blacklistedTokens)
}

// SessionCookieName carries the signed session token.
const SessionCookieName = "portal_session"
