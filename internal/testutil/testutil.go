// Package testutil holds database fixtures shared by package tests.
package testutil

import (
	"testing"
	"time"

	"ledger-admin/internal/domain"
	"ledger-admin/internal/infrastructure/database"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewDB returns a migrated in-memory SQLite database closed at test end.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := database.Open("sqlite://:memory:")
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func SourceSystem(t testing.TB, db *gorm.DB, name string) domain.SourceSystem {
	t.Helper()
	s := domain.SourceSystem{Name: name}
	require.NoError(t, db.Create(&s).Error)
	return s
}

func FoboAccount(t testing.TB, db *gorm.DB, number string, system domain.SourceSystem) domain.FoboAccount {
	t.Helper()
	a := domain.FoboAccount{Number: number, SourceSystemID: system.ID}
	require.NoError(t, db.Create(&a).Error)
	return a
}

func Contact(t testing.TB, db *gorm.DB, name string) domain.Contact {
	t.Helper()
	c := domain.Contact{Name: name}
	require.NoError(t, db.Create(&c).Error)
	return c
}

// Ownership inserts an assignment directly, bypassing service validation.
func Ownership(t testing.TB, db *gorm.DB, o domain.Ownership) domain.Ownership {
	t.Helper()
	require.NoError(t, db.Create(&o).Error)
	return o
}

// AccountOwnerships mirrors the usual setup: one account with a PRIMARY
// assignment that ended yesterday and an open-ended BACKUP assignment.
type AccountOwnerships struct {
	Account domain.FoboAccount
	Primary domain.Ownership
	Backup  domain.Ownership
}

func NewAccountOwnerships(t testing.TB, db *gorm.DB, now time.Time) AccountOwnerships {
	t.Helper()
	system := SourceSystem(t, db, "test_system")
	account := FoboAccount(t, db, "ACC-1", system)
	holder := Contact(t, db, "holder")
	end := now.Add(-24 * time.Hour)
	return AccountOwnerships{
		Account: account,
		Primary: Ownership(t, db, domain.Ownership{
			AccountID: account.ID, ContactID: holder.ID, Role: domain.RolePrimary,
			StartDate: now.Add(-30 * 24 * time.Hour), EndDate: &end,
		}),
		Backup: Ownership(t, db, domain.Ownership{
			AccountID: account.ID, ContactID: holder.ID, Role: domain.RoleBackup,
			StartDate: now.Add(-30 * 24 * time.Hour),
		}),
	}
}

func Ptr[T any](v T) *T { return &v }
