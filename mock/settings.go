package mock

import (
	"context"

	"github.com/fwojciec/bearreader"
)

var _ bearreader.SettingsService = (*SettingsService)(nil)

// SettingsService is a mock implementation of bearreader.SettingsService.
type SettingsService struct {
	SettingsFn       func(ctx context.Context) (*bearreader.Settings, error)
	UpdateSettingsFn func(ctx context.Context, upd bearreader.SettingsUpdate) (*bearreader.Settings, error)
	ResetSettingsFn  func(ctx context.Context) error
}

func (s *SettingsService) Settings(ctx context.Context) (*bearreader.Settings, error) {
	return s.SettingsFn(ctx)
}

func (s *SettingsService) UpdateSettings(ctx context.Context, upd bearreader.SettingsUpdate) (*bearreader.Settings, error) {
	return s.UpdateSettingsFn(ctx, upd)
}

func (s *SettingsService) ResetSettings(ctx context.Context) error {
	return s.ResetSettingsFn(ctx)
}
