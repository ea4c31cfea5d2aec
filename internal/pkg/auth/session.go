package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidToken = errors.New("invalid session token")

// TokenStrategy issues and verifies session tokens carrying a user identifier.
type TokenStrategy interface {
	Issue(userID int64) (string, error)
	Parse(token string) (int64, error)
}

// Sessions signs "userID.expiry" payloads with HMAC-SHA256. Tokens are
// stateless; logout is a client-side cookie removal.
type Sessions struct {
	secret []byte
	ttl    time.Duration
}

// NewSessions builds a session codec. A non-positive ttl falls back to 30 days,
// matching the remember-me behaviour of the original cookie sessions.
func NewSessions(secret string, ttl time.Duration) *Sessions {
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &Sessions{secret: []byte(secret), ttl: ttl}
}

// Issue generates a signed token for the user.
func (s *Sessions) Issue(userID int64) (string, error) {
	payload := fmt.Sprintf("%d.%d", userID, time.Now().Add(s.ttl).Unix())
	return payload + "." + s.sign(payload), nil
}

// Parse validates a token and returns the encoded user ID.
func (s *Sessions) Parse(token string) (int64, error) {
	idx := strings.LastIndexByte(token, '.')
	if idx < 0 {
		return 0, ErrInvalidToken
	}
	payload, sig := token[:idx], token[idx+1:]

	if !hmac.Equal([]byte(s.sign(payload)), []byte(sig)) {
		return 0, ErrInvalidToken
	}

	userPart, expiryPart, ok := strings.Cut(payload, ".")
	if !ok {
		return 0, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(userPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}

	expiry, err := strconv.ParseInt(expiryPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}

	if time.Unix(expiry, 0).Before(time.Now()) {
		return 0, ErrInvalidToken
	}

	return userID, nil
}

func (s *Sessions) sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
