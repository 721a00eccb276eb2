package shop

import (
	"context"
	"fmt"

	"gamecenter/models"

	"gorm.io/gorm/clause"
)

// AddWishlist puts a game on the account's wishlist. Owned games are refused;
// a game already on the list reports created == false.
func (s *Service) AddWishlist(ctx context.Context, sess Session, gameID uint) (bool, error) {
	db := s.db.WithContext(ctx)
	if err := gameExists(db, gameID); err != nil {
		return false, err
	}

	flags, err := s.Flags(ctx, sess, gameID)
	if err != nil {
		return false, err
	}
	if flags.Owned {
		return false, ErrAlreadyOwned
	}

	entry := models.WishlistEntry{AccountID: sess.AccountID, GameID: gameID}
	res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&entry)
	if res.Error != nil {
		return false, fmt.Errorf("add wishlist: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *Service) RemoveWishlist(ctx context.Context, sess Session, gameID uint) error {
	res := s.db.WithContext(ctx).
		Where("account_id = ? AND game_id = ?", sess.AccountID, gameID).
		Delete(&models.WishlistEntry{})
	if res.Error != nil {
		return fmt.Errorf("remove wishlist: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return wrap(ErrNotFound, "game is not on the wishlist")
	}
	return nil
}
