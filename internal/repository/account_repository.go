package repository

import (
	"context"

	"gorm.io/gorm"

	"staffdesk/internal/model"
)

// AccountRepository defines account persistence operations.
type AccountRepository interface {
	Create(ctx context.Context, account *model.Account) error
	FindByID(ctx context.Context, id uint) (*model.Account, error)
	FindByUserName(ctx context.Context, userName string) (*model.Account, error)
}

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository builds a GORM-backed repository.
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

// Create inserts a new account. The sequential ID is taken from the
// current maximum inside the same transaction; the FOR UPDATE scan
// serializes concurrent inserts, and the primary key is the backstop.
func (r *accountRepository) Create(ctx context.Context, account *model.Account) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxID int64
		if err := tx.Raw("SELECT COALESCE(MAX(id), 0) FROM accounts FOR UPDATE").Scan(&maxID).Error; err != nil {
			return err
		}
		account.ID = uint(maxID) + 1
		return tx.Create(account).Error
	})
}

func (r *accountRepository) FindByID(ctx context.Context, id uint) (*model.Account, error) {
	var account model.Account
	if err := r.db.WithContext(ctx).First(&account, id).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) FindByUserName(ctx context.Context, userName string) (*model.Account, error) {
	var account model.Account
	if err := r.db.WithContext(ctx).Where("user_name = ?", userName).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}
