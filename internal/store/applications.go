package store

import (
	"context"
	"fmt"
)

// Application is one entry in a user's stored inventory.
type Application struct {
	NormalizedName string
	DisplayName    string
}

// UpsertApplication records an application for the user. Re-registering an
// existing name refreshes its display name.
func (s *Store) UpsertApplication(ctx context.Context, userToken string, app Application) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO applications (user_token, normalized_name, display_name, created_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(user_token, normalized_name) DO UPDATE SET display_name = excluded.display_name`,
		userToken, app.NormalizedName, app.DisplayName, unixMilli(s.now()),
	)
	if err != nil {
		return fmt.Errorf("upsert application: %w", err)
	}
	return nil
}

// ListApplications returns the user's inventory ordered by normalized name.
func (s *Store) ListApplications(ctx context.Context, userToken string) ([]Application, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT normalized_name, display_name FROM applications
		 WHERE user_token = ? ORDER BY normalized_name`, userToken,
	)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	var apps []Application
	for rows.Next() {
		var app Application
		if err := rows.Scan(&app.NormalizedName, &app.DisplayName); err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}
