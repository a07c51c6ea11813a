package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// HasToken reports whether a token has been recorded for the phone hash.
func (s *Store) HasToken(ctx context.Context, phoneHash string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		"SELECT 1 FROM user_tokens WHERE phone_hash = ?", phoneHash,
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lookup token: %w", err)
	}
	return true, nil
}

// GetOrCreateToken returns the token stored for phoneHash, inserting
// candidate first when none exists. Concurrent callers observe the same token.
func (s *Store) GetOrCreateToken(ctx context.Context, phoneHash, candidate string) (string, error) {
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO user_tokens (phone_hash, token, created_at) VALUES (?, ?, ?)
		 ON CONFLICT(phone_hash) DO NOTHING`,
		phoneHash, candidate, unixMilli(s.now()),
	); err != nil {
		return "", fmt.Errorf("insert token: %w", err)
	}

	var token string
	if err := s.db.QueryRowContext(ctx,
		"SELECT token FROM user_tokens WHERE phone_hash = ?", phoneHash,
	).Scan(&token); err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return token, nil
}
