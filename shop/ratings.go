package shop

import (
	"context"
	"fmt"

	"gamecenter/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RateGame stores the account's score for a game, replacing an earlier one.
func (s *Service) RateGame(ctx context.Context, sess Session, gameID uint, score int) (*models.Rating, error) {
	if score < models.MinScore || score > models.MaxScore {
		return nil, wrap(ErrInvalidInput, fmt.Sprintf("score must be between %d and %d", models.MinScore, models.MaxScore))
	}

	var rating models.Rating
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := gameExists(tx, gameID); err != nil {
			return err
		}

		upsert := models.Rating{AccountID: sess.AccountID, GameID: gameID, Score: score}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "account_id"}, {Name: "game_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"score", "updated_at"}),
		}).Create(&upsert).Error
		if err != nil {
			return err
		}

		return tx.Where("account_id = ? AND game_id = ?", sess.AccountID, gameID).First(&rating).Error
	})
	if err != nil {
		return nil, err
	}
	return &rating, nil
}
