package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// AuthorizedRequest is a persisted arid record.
type AuthorizedRequest struct {
	ARID        string
	UserToken   string
	Application string
	Action      string
	CreatedAt   time.Time
	ExpiresAt   time.Time
	RedeemedAt  *time.Time
}

// InsertAuthorizedRequest stores a freshly issued request.
func (s *Store) InsertAuthorizedRequest(ctx context.Context, req AuthorizedRequest) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO authorized_requests (arid, user_token, application, action, created_at, expires_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		req.ARID, req.UserToken, req.Application, req.Action,
		unixMilli(req.CreatedAt), unixMilli(req.ExpiresAt),
	)
	if err != nil {
		return fmt.Errorf("insert authorized request: %w", err)
	}
	return nil
}

// GetAuthorizedRequest loads a request by arid. Returns ErrNotFound when absent.
func (s *Store) GetAuthorizedRequest(ctx context.Context, arid string) (AuthorizedRequest, error) {
	var (
		req                  AuthorizedRequest
		createdAt, expiresAt int64
		redeemedAt           sql.NullInt64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT arid, user_token, application, action, created_at, expires_at, redeemed_at
		 FROM authorized_requests WHERE arid = ?`, arid,
	).Scan(&req.ARID, &req.UserToken, &req.Application, &req.Action, &createdAt, &expiresAt, &redeemedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return AuthorizedRequest{}, ErrNotFound
	}
	if err != nil {
		return AuthorizedRequest{}, fmt.Errorf("get authorized request: %w", err)
	}

	req.CreatedAt = fromUnixMilli(createdAt)
	req.ExpiresAt = fromUnixMilli(expiresAt)
	if redeemedAt.Valid {
		t := fromUnixMilli(redeemedAt.Int64)
		req.RedeemedAt = &t
	}
	return req, nil
}

// MarkRedeemed sets redeemed_at if the request has not been redeemed yet.
// It reports whether this call performed the transition.
func (s *Store) MarkRedeemed(ctx context.Context, arid string, at time.Time) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		"UPDATE authorized_requests SET redeemed_at = ? WHERE arid = ? AND redeemed_at IS NULL",
		unixMilli(at), arid,
	)
	if err != nil {
		return false, fmt.Errorf("mark redeemed: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("mark redeemed: %w", err)
	}
	return n == 1, nil
}

// DeleteExpiredRequests removes requests that expired before the cutoff.
func (s *Store) DeleteExpiredRequests(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM authorized_requests WHERE expires_at < ?", unixMilli(cutoff),
	)
	if err != nil {
		return 0, fmt.Errorf("delete expired requests: %w", err)
	}
	return res.RowsAffected()
}
