package settings

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/tayothecoder/cornerfield-sub004/internal/store"
	"github.com/tayothecoder/cornerfield-sub004/model"
	"gorm.io/gorm"
)

const cacheTTL = 30 * time.Second

// Service reads and writes site settings, caching reads in the shared cache
// storage so the maintenance gate does not hit the database on every request.
type Service struct {
	db    *gorm.DB
	cache store.Storage
}

func NewService(db *gorm.DB, cache store.Storage) *Service {
	return &Service{db: db, cache: cache}
}

func (s *Service) Get(ctx context.Context, key string) (string, error) {
	if s.cache != nil {
		var cached string
		if err := s.cache.GetAttr(ctx, key, "value", &cached); err == nil {
			return cached, nil
		}
	}

	var setting model.Setting
	err := s.db.WithContext(ctx).First(&setting, "`key` = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, map[string]any{"value": setting.Value}, cacheTTL); err != nil {
			slog.Debug("Could not cache setting", "key", key, "error", err)
		}
	}
	return setting.Value, nil
}

func (s *Service) Set(ctx context.Context, key, value string) error {
	setting := model.Setting{Key: key, Value: value}
	err := s.db.WithContext(ctx).Save(&setting).Error
	if err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.Delete(ctx, key); err != nil && err != store.ErrNotFound {
			slog.Debug("Could not invalidate setting cache", "key", key, "error", err)
		}
	}
	return nil
}

func (s *Service) MaintenanceMode(ctx context.Context) bool {
	val, err := s.Get(ctx, model.SettingMaintenanceMode)
	if err != nil {
		slog.Error("Could not read maintenance setting", "error", err)
		return false
	}
	on, _ := strconv.ParseBool(val)
	return on
}

func (s *Service) SetMaintenanceMode(ctx context.Context, on bool) error {
	return s.Set(ctx, model.SettingMaintenanceMode, strconv.FormatBool(on))
}
