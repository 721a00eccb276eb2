package models

import "time"

// FriendLink is a symmetric relation stored once per pair with LowID < HighID.
type FriendLink struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	LowID     uint      `gorm:"not null;uniqueIndex:idx_friend_pair,priority:1" json:"lowId"`
	HighID    uint      `gorm:"not null;uniqueIndex:idx_friend_pair,priority:2;index" json:"highId"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewFriendLink orders the pair canonically. It reports false for a == b.
func NewFriendLink(a, b uint) (FriendLink, bool) {
	if a == b {
		return FriendLink{}, false
	}
	if a > b {
		a, b = b, a
	}
	return FriendLink{LowID: a, HighID: b}, true
}

// Other returns the member of the link that is not accountID.
func (l FriendLink) Other(accountID uint) uint {
	if l.LowID == accountID {
		return l.HighID
	}
	return l.LowID
}

// Has reports whether accountID is one side of the link.
func (l FriendLink) Has(accountID uint) bool {
	return l.LowID == accountID || l.HighID == accountID
}

type FriendInput struct {
	Email string `json:"email" validate:"required,email"`
}
