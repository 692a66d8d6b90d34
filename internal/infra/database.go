package infra

import (
	"fmt"

	"github.com/juanfinocchiaro/hoppiness-hub-platform-sub010/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies the idempotent SQL patches GORM
// cannot express (partial indexes).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations creates/updates the schema. Shared with integration tests.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.Sucursal{},
		&model.TurnoSucursal{},
		&model.CierreTurno{},
		&model.NotificacionAlerta{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot express.
// Each statement uses IF NOT EXISTS semantics so re-running is safe.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// partial index for the notification retry cron query
		`DO $$ BEGIN
		  IF EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'notificaciones_alerta')
		    AND NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_notificaciones_pending_retry') THEN
		    CREATE INDEX idx_notificaciones_pending_retry
		        ON notificaciones_alerta (next_retry_at)
		        WHERE estado = 'pendiente' AND next_retry_at IS NOT NULL;
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
