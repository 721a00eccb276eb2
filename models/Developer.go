package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Developer receives the proceeds of every sale of its games. It is tied to
// exactly one account through AccountID.
type Developer struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	AccountID   uint            `gorm:"uniqueIndex;not null" json:"accountId"`
	DisplayName string          `gorm:"size:50;not null" json:"displayName"`
	Balance     decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"balance"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
