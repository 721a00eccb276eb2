package shop

import (
	"context"
	"fmt"

	"gamecenter/models"

	"gorm.io/gorm/clause"
)

// AddFriend links the session's account with the account registered under
// email. Adding an existing link, from either side, is a no-op and reports
// created == false.
func (s *Service) AddFriend(ctx context.Context, sess Session, email string) (link *models.FriendLink, created bool, err error) {
	var target models.Account
	err = s.db.WithContext(ctx).Select("id").Where("email = ?", normalizeEmail(email)).First(&target).Error
	if err != nil {
		return nil, false, notFound(err, "account")
	}

	l, ok := models.NewFriendLink(sess.AccountID, target.ID)
	if !ok {
		return nil, false, ErrSelfLink
	}

	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&l)
	if res.Error != nil {
		return nil, false, fmt.Errorf("add friend: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		return &l, true, nil
	}

	var existing models.FriendLink
	err = s.db.WithContext(ctx).Where("low_id = ? AND high_id = ?", l.LowID, l.HighID).First(&existing).Error
	if err != nil {
		return nil, false, fmt.Errorf("load friend link: %w", err)
	}
	return &existing, false, nil
}

// RemoveFriend deletes the link only when the session's account is one of
// its two sides. Links belonging to others are reported as not found.
func (s *Service) RemoveFriend(ctx context.Context, sess Session, linkID uint) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND (low_id = ? OR high_id = ?)", linkID, sess.AccountID, sess.AccountID).
		Delete(&models.FriendLink{})
	if res.Error != nil {
		return fmt.Errorf("remove friend: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return wrap(ErrNotFound, "friend link not found")
	}
	return nil
}
