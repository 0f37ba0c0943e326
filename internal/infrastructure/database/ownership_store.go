package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"ledger-admin/internal/domain"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OwnershipStore is the GORM implementation of domain.OwnershipStore. Each
// write and its audit event commit in one transaction.
type OwnershipStore struct {
	DB *gorm.DB
}

var _ domain.OwnershipStore = (*OwnershipStore)(nil)

func (s *OwnershipStore) Insert(ctx context.Context, o *domain.Ownership, guard domain.OwnershipGuard) (uuid.UUID, error) {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := runGuard(tx, *o, guard); err != nil {
			return err
		}
		if err := tx.Create(o).Error; err != nil {
			return fmt.Errorf("insert ownership: %w", err)
		}
		return writeEvent(tx, o.ID, domain.OwnershipEventCreated, map[string]interface{}{
			"fobo_account":      o.AccountID,
			"contact":           o.ContactID,
			"role":              o.Role,
			"start_date":        o.StartDate,
			"end_date":          o.EndDate,
			"ownership_comment": o.Comment,
		})
	})
	if err != nil {
		return uuid.Nil, err
	}
	return o.ID, nil
}

func (s *OwnershipStore) Update(ctx context.Context, id uuid.UUID, patch domain.OwnershipPatch, guard domain.OwnershipGuard) (*domain.Ownership, error) {
	var updated domain.Ownership
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current domain.Ownership
		if err := tx.Where("id = ?", id).First(&current).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound("ownership %s not found", id)
			}
			return err
		}
		if err := runGuard(tx, patch.Apply(current), guard); err != nil {
			return err
		}
		cols := patch.Columns()
		if len(cols) > 0 {
			if err := tx.Model(&domain.Ownership{}).Where("id = ?", id).Updates(cols).Error; err != nil {
				return fmt.Errorf("update ownership: %w", err)
			}
		}
		if err := writeEvent(tx, id, domain.OwnershipEventUpdated, cols); err != nil {
			return err
		}
		return tx.Where("id = ?", id).First(&updated).Error
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *OwnershipStore) Get(ctx context.Context, id uuid.UUID) (*domain.Ownership, error) {
	var o domain.Ownership
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&o).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound("ownership %s not found", id)
		}
		return nil, err
	}
	return &o, nil
}

func (s *OwnershipStore) ListByAccount(ctx context.Context, accountID int64) ([]domain.Ownership, error) {
	var out []domain.Ownership
	if err := s.DB.WithContext(ctx).
		Where("fobo_account_id = ?", accountID).
		Order("start_date ASC, id ASC").
		Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list ownerships: %w", err)
	}
	return out, nil
}

// Events returns the audit trail of one ownership, oldest first.
func (s *OwnershipStore) Events(ctx context.Context, ownershipID uuid.UUID) ([]domain.OwnershipEvent, error) {
	var out []domain.OwnershipEvent
	if err := s.DB.WithContext(ctx).
		Where("ownership_id = ?", ownershipID).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// runGuard locks the candidate's account row and hands the guard every
// assignment of that account as seen by tx. SQLite has no row locks; its
// single writer serializes the transaction instead.
func runGuard(tx *gorm.DB, candidate domain.Ownership, guard domain.OwnershipGuard) error {
	if guard == nil {
		return nil
	}
	var account domain.FoboAccount
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", candidate.AccountID).
		Limit(1).
		Find(&account).Error; err != nil {
		return fmt.Errorf("lock fobo account: %w", err)
	}
	var existing []domain.Ownership
	if err := tx.Where("fobo_account_id = ?", candidate.AccountID).
		Order("start_date ASC, id ASC").
		Find(&existing).Error; err != nil {
		return fmt.Errorf("list ownerships: %w", err)
	}
	return guard(candidate, existing)
}

func writeEvent(tx *gorm.DB, ownershipID uuid.UUID, eventType string, data map[string]interface{}) error {
	b, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode ownership event: %w", err)
	}
	if err := tx.Create(&domain.OwnershipEvent{
		OwnershipID: ownershipID,
		EventType:   eventType,
		EventData:   datatypes.JSON(b),
	}).Error; err != nil {
		return fmt.Errorf("insert ownership event: %w", err)
	}
	return nil
}
