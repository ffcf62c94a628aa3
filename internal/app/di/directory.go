// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"message_backend/internal/config"
	authadapters "message_backend/internal/feature/auth/adapters"
	"message_backend/internal/feature/auth/usecase"
	platformdb "message_backend/internal/platform/db"
	platformmongo "message_backend/internal/platform/mongo"
)

// UserDirectory is a user lookup backend that can also report its health.
type UserDirectory interface {
	usecase.UserDirectory
	Ping(ctx context.Context) error
}

// NewUserDirectory opens the backend selected by cfg.DirectoryBackend.
// The returned closer releases the underlying connection.
func NewUserDirectory(ctx context.Context, cfg config.Config) (UserDirectory, func() error, error) {
	switch cfg.DirectoryBackend {
	case config.BackendPostgres:
		db, err := platformdb.OpenPostgres(cfg.DB)
		if err != nil {
			return nil, nil, err
		}
		return gormDirectory(db, cfg.DB.RunMigrations)
	case config.BackendSQLite:
		db, err := platformdb.OpenSQLite(cfg.DB.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return gormDirectory(db, cfg.DB.RunMigrations)
	case config.BackendMongo:
		client, err := platformmongo.NewClient(ctx, cfg.Mongo.URI, cfg.DirectoryTimeout)
		if err != nil {
			return nil, nil, err
		}
		closer := func() error { return client.Disconnect(context.Background()) }
		return authadapters.NewUserMongo(client.Database(cfg.Mongo.Database)), closer, nil
	default:
		return nil, nil, fmt.Errorf("unknown directory backend %q", cfg.DirectoryBackend)
	}
}

func gormDirectory(db *gorm.DB, migrate bool) (UserDirectory, func() error, error) {
	if migrate {
		if err := authadapters.Migrate(db); err != nil {
			_ = platformdb.Close(db)
			return nil, nil, fmt.Errorf("migrate users: %w", err)
		}
		slog.Info("users table migrated")
	}
	return authadapters.NewUserGorm(db), func() error { return platformdb.Close(db) }, nil
}
