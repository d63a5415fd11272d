// Package accountrepo keeps account balances. Escrow accounts are ordinary
// rows named by the domain, so stakes and request deposits are plain transfers.
package accountrepo

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"marketplace/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AccountDTO struct {
	Account string          `gorm:"primaryKey"`
	Balance decimal.Decimal `gorm:"type:numeric(78,0);not null;check:balance >= 0"`
}

func (AccountDTO) TableName() string {
	return "accounts"
}

type GormAccountRepository struct {
	db *gorm.DB
}

func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

// Balance reports zero for accounts that never held funds.
func (r *GormAccountRepository) Balance(ctx context.Context, account kernel.AccountID) (kernel.Balance, error) {
	var dto AccountDTO
	err := r.db.WithContext(ctx).First(&dto, "account = ?", account.String()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return kernel.ZeroBalance(), nil
	}
	if err != nil {
		return kernel.ZeroBalance(), err
	}
	return kernel.BalanceFromDecimal(dto.Balance)
}

func (r *GormAccountRepository) Deposit(ctx context.Context, account kernel.AccountID, amount kernel.Balance) error {
	if err := account.Validate(); err != nil {
		return err
	}

	dto := AccountDTO{Account: account.String(), Balance: amount.Decimal()}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "account"}},
			DoUpdates: clause.Assignments(map[string]any{
				"balance": gorm.Expr("accounts.balance + excluded.balance"),
			}),
		}).
		Create(&dto).Error
}

// Transfer locks both rows in key order before moving funds, so opposing
// transfers cannot deadlock.
func (r *GormAccountRepository) Transfer(ctx context.Context, from, to kernel.AccountID, amount kernel.Balance) error {
	if err := to.Validate(); err != nil {
		return err
	}
	db := r.db.WithContext(ctx)

	keys := []string{from.String(), to.String()}
	slices.Sort(keys)
	keys = slices.Compact(keys)

	seed := make([]AccountDTO, 0, len(keys))
	for _, k := range keys {
		seed = append(seed, AccountDTO{Account: k, Balance: decimal.Zero})
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
		return err
	}

	var rows []AccountDTO
	err := db.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Where("account IN ?", keys).
		Order("account").
		Find(&rows).Error
	if err != nil {
		return err
	}

	balances := make(map[string]kernel.Balance, len(rows))
	for _, row := range rows {
		b, convErr := kernel.BalanceFromDecimal(row.Balance)
		if convErr != nil {
			return convErr
		}
		balances[row.Account] = b
	}

	rest, err := balances[from.String()].Sub(amount)
	if err != nil {
		return fmt.Errorf("transfer from %s: %w", from, err)
	}
	if from.IsEqual(to) {
		return nil
	}

	if err := r.set(db, from, rest); err != nil {
		return err
	}
	return r.set(db, to, balances[to.String()].Add(amount))
}

func (r *GormAccountRepository) set(db *gorm.DB, account kernel.AccountID, balance kernel.Balance) error {
	return db.Model(&AccountDTO{}).
		Where("account = ?", account.String()).
		Update("balance", balance.Decimal()).Error
}
