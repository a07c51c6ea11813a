package application

import (
	"context"
	"errors"
	"log"

	model "github.com/rosabot/rosa/backend/internal/model/application"
	"github.com/rosabot/rosa/backend/internal/store"
)

// ErrNameRequired is returned when registering an application with no usable name.
var ErrNameRequired = errors.New("application name is required")

// Inventory stores the applications each user has saved.
type Inventory interface {
	UpsertApplication(ctx context.Context, userToken string, app store.Application) error
	ListApplications(ctx context.Context, userToken string) ([]store.Application, error)
}

// Resolver picks the candidate a free-text name most likely refers to.
// ok is false when none of the candidates fit.
type Resolver interface {
	Resolve(ctx context.Context, raw string, candidates []string) (name string, ok bool, err error)
}

// Service classifies application names against a user's inventory.
type Service struct {
	inventory Inventory
	resolver  Resolver
}

// NewService creates a matcher. resolver may be nil.
func NewService(inventory Inventory, resolver Resolver) *Service {
	return &Service{inventory: inventory, resolver: resolver}
}

// Register adds rawName to the user's inventory and returns its normalized form.
func (s *Service) Register(ctx context.Context, userToken, rawName string) (string, error) {
	normalized := model.Normalize(rawName)
	if normalized == "" {
		return "", ErrNameRequired
	}
	err := s.inventory.UpsertApplication(ctx, userToken, store.Application{
		NormalizedName: normalized,
		DisplayName:    rawName,
	})
	if err != nil {
		return "", err
	}
	return normalized, nil
}

// Match classifies rawName against the user's stored applications.
func (s *Service) Match(ctx context.Context, rawName, userToken string) (model.MatchResult, error) {
	query := model.Normalize(rawName)
	if query == "" {
		return model.NotFound{}, nil
	}

	apps, err := s.inventory.ListApplications(ctx, userToken)
	if err != nil {
		return nil, err
	}
	if len(apps) == 0 {
		return model.NotFound{}, nil
	}

	names := make([]string, 0, len(apps))
	for _, app := range apps {
		if app.NormalizedName == query {
			return model.ExactFound{Name: app.NormalizedName}, nil
		}
		names = append(names, app.NormalizedName)
	}

	if name, ok := closest(query, names); ok {
		return model.SimilarFound{Name: name}, nil
	}

	if s.resolver != nil {
		name, ok, err := s.resolver.Resolve(ctx, rawName, names)
		if err != nil {
			log.Printf("[application] resolver failed, treating as not found: %v", err)
			return model.NotFound{}, nil
		}
		if ok {
			normalized := model.Normalize(name)
			for _, candidate := range names {
				if candidate == normalized {
					return model.SimilarFound{Name: candidate}, nil
				}
			}
		}
	}

	return model.NotFound{}, nil
}
