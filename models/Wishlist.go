package models

import "time"

type WishlistEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AccountID uint      `gorm:"not null;uniqueIndex:idx_wishlist_item,priority:1" json:"accountId"`
	GameID    uint      `gorm:"not null;uniqueIndex:idx_wishlist_item,priority:2" json:"gameId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (WishlistEntry) TableName() string {
	return "wishlist_entries"
}
