package database

import (
	"context"
	"strings"

	"ledger-admin/internal/domain"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const sqliteScheme = "sqlite://"

// Open opens a GORM DB from DSN. "sqlite://<path>" selects the embedded SQLite
// driver (local runs, tests); anything else is handed to Postgres.
// PreferSimpleProtocol disables prepared statement caching to avoid 42P05
// ("prepared statement already exists") behind connection poolers such as PgBouncer.
func Open(dsn string) (*gorm.DB, error) {
	if path, ok := strings.CutPrefix(dsn, sqliteScheme); ok {
		db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
		if err != nil {
			return nil, err
		}
		// Every connection to ":memory:" is a separate database.
		if path == ":memory:" {
			sqlDB, err := db.DB()
			if err != nil {
				return nil, err
			}
			sqlDB.SetMaxOpenConns(1)
		}
		return db, nil
	}
	return gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
}

// Models lists every table owned by this service, in dependency order.
func Models() []interface{} {
	return []interface{}{
		&domain.SourceSystem{},
		&domain.AccountType{},
		&domain.FoboAccount{},
		&domain.Contact{},
		&domain.SubledgerType{},
		&domain.FinancialStatementType{},
		&domain.BalanceType{},
		&domain.Ownership{},
		&domain.OwnershipEvent{},
	}
}

// AutoMigrate creates or alters the tables for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

// Pinger reports database reachability for health checks.
type Pinger struct {
	DB *gorm.DB
}

func (p Pinger) Ping(ctx context.Context) error {
	if p.DB == nil {
		return nil
	}
	sqlDB, err := p.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
