package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Game struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Title       string          `gorm:"size:255;not null;index" json:"title"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	DeveloperID uint            `gorm:"not null;index" json:"developerId"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type DLC struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	GameID    uint            `gorm:"not null;index" json:"gameId"`
	Title     string          `gorm:"size:255;not null" json:"title"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	CreatedAt time.Time       `json:"createdAt"`
}

func (DLC) TableName() string {
	return "dlcs"
}

// PublishGameInput - for developers listing a new game
type PublishGameInput struct {
	Title       string          `json:"title" validate:"required,min=1,max=255"`
	Description string          `json:"description" validate:"max=5000"`
	Image       string          `json:"image" validate:"omitempty,max=512"`
	Price       decimal.Decimal `json:"price"`
}

// PublishDLCInput - for developers adding DLC to one of their games
type PublishDLCInput struct {
	Title string          `json:"title" validate:"required,min=1,max=255"`
	Price decimal.Decimal `json:"price"`
}
