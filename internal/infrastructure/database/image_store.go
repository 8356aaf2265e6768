package database

import (
	"fmt"

	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/adapters/persistence"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/imagecache"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/infrastructure/config"
)

// OpenImageStore opens the image cache store selected by cfg.Driver
func OpenImageStore(cfg *config.CacheConfig) (imagecache.Store, error) {
	switch cfg.Driver {
	case "bolt", "":
		return persistence.OpenBoltImageStore(cfg.Path)

	case "sqlite", "postgres":
		db, err := NewConnection(&cfg.Database)
		if err != nil {
			return nil, err
		}
		if err := AutoMigrate(db); err != nil {
			_ = Close(db)
			return nil, fmt.Errorf("failed to migrate image store: %w", err)
		}
		return persistence.NewGormImageURLRepository(db), nil

	case "redis":
		return persistence.NewRedisImageStore(cfg.Redis.URL, cfg.Redis.KeyPrefix)

	default:
		return nil, fmt.Errorf("unsupported cache driver: %s", cfg.Driver)
	}
}
