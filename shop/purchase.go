package shop

import (
	"context"
	"errors"
	"fmt"

	"gamecenter/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Receipt describes a completed purchase.
type Receipt struct {
	Ownership   models.Ownership `json:"ownership"`
	Price       decimal.Decimal  `json:"price"`
	Balance     decimal.Decimal  `json:"balance"`
	DeveloperID uint             `json:"developerId"`
}

type purchasable struct {
	Price       decimal.Decimal
	DeveloperID uint
	GameID      uint
}

// Purchase buys a game or a DLC for the session's account. The ledger row,
// the debit, the developer credit and the wishlist cleanup commit together or
// not at all. The debit only applies while the balance covers the price, so
// concurrent purchases cannot overdraw the account.
func (s *Service) Purchase(ctx context.Context, sess Session, kind models.ItemKind, itemID uint) (*Receipt, error) {
	if kind != models.ItemGame && kind != models.ItemDLC {
		return nil, wrap(ErrInvalidInput, fmt.Sprintf("unknown item kind %q", kind))
	}

	var receipt Receipt
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := resolveItem(tx, kind, itemID)
		if err != nil {
			return err
		}

		ownership := models.Ownership{
			AccountID: sess.AccountID,
			ItemKind:  kind,
			ItemID:    itemID,
			GameID:    item.GameID,
			Price:     item.Price,
		}
		if kind == models.ItemDLC {
			dlcID := itemID
			ownership.DLCID = &dlcID
		}

		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&ownership)
		if res.Error != nil {
			return fmt.Errorf("record ownership: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyOwned
		}

		res = tx.Model(&models.Account{}).
			Where("id = ? AND balance >= ?", sess.AccountID, item.Price).
			Update("balance", gorm.Expr("balance - ?", item.Price))
		if res.Error != nil {
			return fmt.Errorf("debit account: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientFunds
		}

		res = tx.Model(&models.Developer{}).
			Where("id = ?", item.DeveloperID).
			Update("balance", gorm.Expr("balance + ?", item.Price))
		if res.Error != nil {
			return fmt.Errorf("credit developer: %w", res.Error)
		}

		if kind == models.ItemGame {
			err := tx.Where("account_id = ? AND game_id = ?", sess.AccountID, item.GameID).
				Delete(&models.WishlistEntry{}).Error
			if err != nil {
				return fmt.Errorf("clear wishlist: %w", err)
			}
		}

		var account models.Account
		if err := tx.Select("id", "balance").First(&account, sess.AccountID).Error; err != nil {
			return err
		}

		receipt = Receipt{
			Ownership:   ownership,
			Price:       item.Price,
			Balance:     account.Balance,
			DeveloperID: item.DeveloperID,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}

// resolveItem finds the price, the selling developer and the root game of an
// item. DLCs are joined through their parent game.
func resolveItem(tx *gorm.DB, kind models.ItemKind, itemID uint) (purchasable, error) {
	var item purchasable
	var err error
	switch kind {
	case models.ItemGame:
		err = tx.Model(&models.Game{}).
			Select("games.price AS price, games.developer_id AS developer_id, games.id AS game_id").
			Where("games.id = ?", itemID).
			Take(&item).Error
	case models.ItemDLC:
		err = tx.Model(&models.DLC{}).
			Select("dlcs.price AS price, games.developer_id AS developer_id, dlcs.game_id AS game_id").
			Joins("JOIN games ON games.id = dlcs.game_id").
			Where("dlcs.id = ?", itemID).
			Take(&item).Error
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return item, wrap(ErrNotFound, fmt.Sprintf("%s %d not found", kind, itemID))
	}
	return item, err
}
