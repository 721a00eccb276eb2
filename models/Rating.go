package models

import "time"

const (
	MinScore = 1
	MaxScore = 5
)

// Rating holds one score per (account, game); rating again replaces it.
type Rating struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AccountID uint      `gorm:"not null;uniqueIndex:idx_rating_account_game,priority:1" json:"accountId"`
	GameID    uint      `gorm:"not null;uniqueIndex:idx_rating_account_game,priority:2;index" json:"gameId"`
	Score     int       `gorm:"not null" json:"score"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type RatingInput struct {
	Score int `json:"score" validate:"required,gte=1,lte=5"`
}
