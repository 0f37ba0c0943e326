package database

import (
	"context"
	"errors"

	"ledger-admin/internal/domain"

	"gorm.io/gorm"
)

// AccountLookup resolves FOBO accounts by id.
type AccountLookup struct {
	DB *gorm.DB
}

func (l *AccountLookup) GetAccount(ctx context.Context, id int64) (*domain.FoboAccount, error) {
	var a domain.FoboAccount
	if err := l.DB.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound("fobo account %d not found", id)
		}
		return nil, err
	}
	return &a, nil
}

// ContactLookup resolves contacts by id.
type ContactLookup struct {
	DB *gorm.DB
}

func (l *ContactLookup) GetContact(ctx context.Context, id int64) (*domain.Contact, error) {
	var c domain.Contact
	if err := l.DB.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound("contact %d not found", id)
		}
		return nil, err
	}
	return &c, nil
}
