package sqlite

import (
	"context"

	"github.com/fwojciec/bearreader"
)

// Compile-time interface verification.
var _ bearreader.SettingsService = (*SettingsService)(nil)

// Settings keys.
const (
	keyServiceURL  = "service_url"
	keyUserAgent   = "user_agent"
	keyPostsList   = "posts_list_selector"
	keyPostTitle   = "post_title_selector"
	keyPostAge     = "post_age_selector"
	keyPostRating  = "post_rating_selector"
	keyMainContent = "main_content_selector"
)

// SettingsService implements bearreader.SettingsService as a key/value
// overlay on bearreader.DefaultSettings. Only values the user changed are
// stored.
type SettingsService struct {
	db *DB
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(db *DB) *SettingsService {
	return &SettingsService{db: db}
}

// fields maps storage keys to the settings fields they hold.
func fields(s *bearreader.Settings) map[string]*string {
	return map[string]*string{
		keyServiceURL:  &s.ServiceURL,
		keyUserAgent:   &s.UserAgent,
		keyPostsList:   &s.Selectors.PostsList,
		keyPostTitle:   &s.Selectors.PostTitle,
		keyPostAge:     &s.Selectors.PostAge,
		keyPostRating:  &s.Selectors.PostRating,
		keyMainContent: &s.Selectors.MainContent,
	}
}

// Settings returns the stored settings, with defaults for unset keys.
func (s *SettingsService) Settings(ctx context.Context) (*bearreader.Settings, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT key, value FROM settings")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	settings := bearreader.DefaultSettings()
	dst := fields(settings)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		// Unknown keys are left over from other versions.
		if p, ok := dst[key]; ok {
			*p = value
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return settings, nil
}

// UpdateSettings applies the update and stores the result.
func (s *SettingsService) UpdateSettings(ctx context.Context, upd bearreader.SettingsUpdate) (*bearreader.Settings, error) {
	settings, err := s.Settings(ctx)
	if err != nil {
		return nil, err
	}

	upd.Apply(settings)
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	defaults := fields(bearreader.DefaultSettings())
	for key, p := range fields(settings) {
		if *p == *defaults[key] {
			if _, err := tx.ExecContext(ctx, "DELETE FROM settings WHERE key = ?", key); err != nil {
				return nil, err
			}
			continue
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO settings (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value
		`, key, *p); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return settings, nil
}

// ResetSettings restores all defaults.
func (s *SettingsService) ResetSettings(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM settings")
	return err
}
