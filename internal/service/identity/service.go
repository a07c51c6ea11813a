package identity

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// TestPhone is the placeholder identity used for console/test sessions.
const TestPhone = "12125551212"

const defaultCountryCode = "1"

var (
	ErrInvalidPhone   = errors.New("invalid phone number")
	ErrSecretRequired = errors.New("token hash secret is required")
)

// TokenStore persists phone-hash to token mappings.
type TokenStore interface {
	HasToken(ctx context.Context, phoneHash string) (bool, error)
	GetOrCreateToken(ctx context.Context, phoneHash, candidate string) (string, error)
}

// Service maps phone identities to stable opaque user tokens. Raw phone
// numbers are never persisted; the store is keyed by an HMAC of the
// normalized number.
type Service struct {
	store  TokenStore
	secret []byte
}

// NewService builds an identity service over the given store.
func NewService(store TokenStore, secret string) (*Service, error) {
	if secret == "" {
		return nil, ErrSecretRequired
	}
	return &Service{store: store, secret: []byte(secret)}, nil
}

// TokenExists reports whether a token was already issued for the phone.
func (s *Service) TokenExists(ctx context.Context, phone string) (bool, error) {
	key, err := s.phoneKey(phone)
	if err != nil {
		return false, err
	}
	return s.store.HasToken(ctx, key)
}

// TokenFor returns the phone's token, creating one on first sight.
func (s *Service) TokenFor(ctx context.Context, phone string) (string, error) {
	key, err := s.phoneKey(phone)
	if err != nil {
		return "", err
	}
	return s.store.GetOrCreateToken(ctx, key, uuid.NewString())
}

func (s *Service) phoneKey(phone string) (string, error) {
	normalized, err := NormalizePhone(phone)
	if err != nil {
		return "", err
	}
	mac := hmac.New(sha256.New, s.secret)
	_, _ = mac.Write([]byte(normalized))
	return hex.EncodeToString(mac.Sum(nil)), nil
}

// NormalizePhone reduces a phone-like string to its E.164 digits without the
// leading plus. Ten-digit numbers are assumed to be US numbers.
func NormalizePhone(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	switch {
	case len(digits) == 10:
		return defaultCountryCode + digits, nil
	case len(digits) >= 11 && len(digits) <= 15:
		return digits, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPhone, raw)
	}
}

// ApplyTestOverride replaces synthetic console session ids with TestPhone.
// An id qualifies when it is at least 32 characters and starts with a letter.
func ApplyTestOverride(userID string) (string, bool) {
	if len(userID) < 32 {
		return userID, false
	}
	c := userID[0]
	if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
		return TestPhone, true
	}
	return userID, false
}
