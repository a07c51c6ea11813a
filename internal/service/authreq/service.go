package authreq

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rosabot/rosa/backend/internal/model/application"
	"github.com/rosabot/rosa/backend/internal/store"
)

// Action scopes what the redeeming web flow may do with a request.
type Action string

const (
	ActionSet Action = "set"
	ActionGet Action = "get"
)

// Valid reports whether a is one of the known actions.
func (a Action) Valid() bool {
	return a == ActionSet || a == ActionGet
}

var (
	ErrNotFound         = errors.New("authorized request not found")
	ErrExpired          = errors.New("authorized request expired")
	ErrAlreadyRedeemed  = errors.New("authorized request already redeemed")
	ErrActionMismatch   = errors.New("authorized request action mismatch")
	ErrInvalidAction    = errors.New("invalid authorized request action")
	ErrApplicationEmpty = errors.New("application name is required")
)

// TokenResolver maps a phone identity to its user token.
type TokenResolver interface {
	TokenFor(ctx context.Context, phone string) (string, error)
}

// Repository persists authorized requests.
type Repository interface {
	InsertAuthorizedRequest(ctx context.Context, req store.AuthorizedRequest) error
	GetAuthorizedRequest(ctx context.Context, arid string) (store.AuthorizedRequest, error)
	MarkRedeemed(ctx context.Context, arid string, at time.Time) (bool, error)
	DeleteExpiredRequests(ctx context.Context, cutoff time.Time) (int64, error)
}

// Request is a redeemed authorized request handed to the web flow.
type Request struct {
	ARID        string    `json:"arid"`
	UserToken   string    `json:"token"`
	Application string    `json:"application"`
	Action      Action    `json:"action"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// Service issues and redeems single-use, action-scoped request ids.
type Service struct {
	repo   Repository
	tokens TokenResolver
	ttl    time.Duration
	now    func() time.Time
}

// NewService creates an authorized request service.
func NewService(repo Repository, tokens TokenResolver, ttl time.Duration) *Service {
	return &Service{repo: repo, tokens: tokens, ttl: ttl, now: time.Now}
}

// Issue creates an arid for the phone's user and the application. The name is
// normalized here, so callers may pass either a raw or a normalized name.
func (s *Service) Issue(ctx context.Context, phone, app string, action Action) (string, error) {
	if !action.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidAction, action)
	}
	normalized := application.Normalize(app)
	if normalized == "" {
		return "", ErrApplicationEmpty
	}

	token, err := s.tokens.TokenFor(ctx, phone)
	if err != nil {
		return "", fmt.Errorf("resolve user token: %w", err)
	}

	now := s.now().UTC()
	arid := strings.ReplaceAll(uuid.NewString(), "-", "")
	err = s.repo.InsertAuthorizedRequest(ctx, store.AuthorizedRequest{
		ARID:        arid,
		UserToken:   token,
		Application: normalized,
		Action:      string(action),
		CreatedAt:   now,
		ExpiresAt:   now.Add(s.ttl),
	})
	if err != nil {
		return "", err
	}
	return arid, nil
}

// Redeem consumes the arid for the given action. A request can be redeemed once.
func (s *Service) Redeem(ctx context.Context, arid string, action Action) (Request, error) {
	rec, err := s.repo.GetAuthorizedRequest(ctx, arid)
	if errors.Is(err, store.ErrNotFound) {
		return Request{}, ErrNotFound
	}
	if err != nil {
		return Request{}, err
	}

	if Action(rec.Action) != action {
		return Request{}, ErrActionMismatch
	}
	if rec.RedeemedAt != nil {
		return Request{}, ErrAlreadyRedeemed
	}
	now := s.now().UTC()
	if !now.Before(rec.ExpiresAt) {
		return Request{}, ErrExpired
	}

	ok, err := s.repo.MarkRedeemed(ctx, arid, now)
	if err != nil {
		return Request{}, err
	}
	if !ok {
		return Request{}, ErrAlreadyRedeemed
	}

	return Request{
		ARID:        rec.ARID,
		UserToken:   rec.UserToken,
		Application: rec.Application,
		Action:      action,
		ExpiresAt:   rec.ExpiresAt,
	}, nil
}

// PurgeExpired deletes requests that expired before now.
func (s *Service) PurgeExpired(ctx context.Context) (int64, error) {
	return s.repo.DeleteExpiredRequests(ctx, s.now().UTC())
}

// RunJanitor purges expired requests every interval until ctx is done.
func (s *Service) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.PurgeExpired(ctx)
			if err != nil {
				log.Printf("[authreq] purge expired requests failed: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("[authreq] purged %d expired requests", n)
			}
		}
	}
}
