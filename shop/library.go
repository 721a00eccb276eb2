package shop

import (
	"context"
	"fmt"

	"gamecenter/models"

	"github.com/shopspring/decimal"
)

// Friend is the other side of a FriendLink.
type Friend struct {
	LinkID    uint   `json:"linkId"`
	AccountID uint   `json:"accountId"`
	Nickname  string `json:"nickname"`
	Email     string `json:"email"`
}

type Library struct {
	Balance  decimal.Decimal `json:"balance"`
	Games    []models.Game   `json:"games"`
	DLCs     []models.DLC    `json:"dlcs"`
	Wishlist []models.Game   `json:"wishlist"`
	Friends  []Friend        `json:"friends"`
}

// Library collects what the session's account owns, wants and who it is
// friends with.
func (s *Service) Library(ctx context.Context, sess Session) (*Library, error) {
	db := s.db.WithContext(ctx)
	account, err := s.Account(ctx, sess)
	if err != nil {
		return nil, err
	}

	lib := &Library{
		Balance:  account.Balance,
		Games:    []models.Game{},
		DLCs:     []models.DLC{},
		Wishlist: []models.Game{},
		Friends:  []Friend{},
	}

	err = db.Joins("JOIN ownerships ON ownerships.item_id = games.id AND ownerships.item_kind = ?", models.ItemGame).
		Where("ownerships.account_id = ?", sess.AccountID).
		Order("ownerships.id").
		Find(&lib.Games).Error
	if err != nil {
		return nil, fmt.Errorf("owned games: %w", err)
	}

	err = db.Joins("JOIN ownerships ON ownerships.item_id = dlcs.id AND ownerships.item_kind = ?", models.ItemDLC).
		Where("ownerships.account_id = ?", sess.AccountID).
		Order("ownerships.id").
		Find(&lib.DLCs).Error
	if err != nil {
		return nil, fmt.Errorf("owned dlcs: %w", err)
	}

	err = db.Joins("JOIN wishlist_entries ON wishlist_entries.game_id = games.id").
		Where("wishlist_entries.account_id = ?", sess.AccountID).
		Order("wishlist_entries.id").
		Find(&lib.Wishlist).Error
	if err != nil {
		return nil, fmt.Errorf("wishlist: %w", err)
	}

	friends, err := s.friends(ctx, sess)
	if err != nil {
		return nil, err
	}
	lib.Friends = friends
	return lib, nil
}

func (s *Service) friends(ctx context.Context, sess Session) ([]Friend, error) {
	db := s.db.WithContext(ctx)

	var links []models.FriendLink
	err := db.Where("low_id = ? OR high_id = ?", sess.AccountID, sess.AccountID).Order("id").Find(&links).Error
	if err != nil {
		return nil, fmt.Errorf("friend links: %w", err)
	}
	if len(links) == 0 {
		return []Friend{}, nil
	}

	ids := make([]uint, 0, len(links))
	for _, l := range links {
		ids = append(ids, l.Other(sess.AccountID))
	}
	var accounts []models.Account
	if err := db.Select("id", "nickname", "email").Where("id IN ?", ids).Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("friend accounts: %w", err)
	}
	byID := make(map[uint]models.Account, len(accounts))
	for _, a := range accounts {
		byID[a.ID] = a
	}

	friends := make([]Friend, 0, len(links))
	for _, l := range links {
		other, ok := byID[l.Other(sess.AccountID)]
		if !ok {
			continue
		}
		friends = append(friends, Friend{
			LinkID:    l.ID,
			AccountID: other.ID,
			Nickname:  other.Nickname,
			Email:     other.Email,
		})
	}
	return friends, nil
}
