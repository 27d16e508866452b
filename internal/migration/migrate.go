// Package migration applies the database schema. Postgres runs the
// embedded SQL files in name order with a schema_migrations ledger;
// sqlite (used by tests and local development) auto-migrates the gorm
// models instead, since the SQL files use postgres-only syntax.
package migration

import (
	"database/sql"
	"fmt"
	"io/fs"
	"sort"

	animaldomain "github.com/MegaDev007/farmheart-backend-sub000/internal/animal/domain"
	auditdomain "github.com/MegaDev007/farmheart-backend-sub000/internal/audit/domain"
	notificationdomain "github.com/MegaDev007/farmheart-backend-sub000/internal/notification/domain"
	ownerdomain "github.com/MegaDev007/farmheart-backend-sub000/internal/owner/domain"
	"gorm.io/gorm"
)

// Run applies the schema for the given gorm connection, choosing the
// strategy from the dialect.
func Run(db *gorm.DB) error {
	if db.Dialector.Name() == "postgres" {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return runSQL(sqlDB)
	}
	return autoMigrate(db)
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&ownerdomain.Owner{},
		&animaldomain.Animal{},
		&animaldomain.StatSnapshot{},
		&notificationdomain.NotificationRecord{},
		&notificationdomain.ChannelPreference{},
		&auditdomain.AuditLog{},
	)
}

func runSQL(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		name TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	names, err := migrationNames()
	if err != nil {
		return err
	}

	for _, name := range names {
		var applied bool
		if err := db.QueryRow(
			`SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE name = $1)`, name,
		).Scan(&applied); err != nil {
			return fmt.Errorf("check %s: %w", name, err)
		}
		if applied {
			continue
		}

		body, err := embeddedMigrations.ReadFile(migrationsDir + "/" + name)
		if err != nil {
			return err
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(string(body)); err != nil {
			tx.Rollback()
			return fmt.Errorf("apply %s: %w", name, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_migrations (name) VALUES ($1)`, name); err != nil {
			tx.Rollback()
			return fmt.Errorf("record %s: %w", name, err)
		}
		if err := tx.Commit(); err != nil {
			return err
		}
	}
	return nil
}

func migrationNames() ([]string, error) {
	entries, err := fs.ReadDir(embeddedMigrations, migrationsDir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
