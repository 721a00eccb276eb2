package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type ItemKind string

const (
	ItemGame ItemKind = "game"
	ItemDLC  ItemKind = "dlc"
)

// ParseItemKind accepts the kind names case-insensitively ("Game", "dlc", ...).
func ParseItemKind(s string) (ItemKind, bool) {
	switch ItemKind(strings.ToLower(strings.TrimSpace(s))) {
	case ItemGame:
		return ItemGame, true
	case ItemDLC:
		return ItemDLC, true
	}
	return "", false
}

// Ownership is the ledger row proving an account bought a game or a DLC.
// ItemID is the game id for games and the dlc id for DLCs; GameID always
// points at the root game.
type Ownership struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	AccountID uint            `gorm:"not null;uniqueIndex:idx_ownership_item,priority:1" json:"accountId"`
	ItemKind  ItemKind        `gorm:"size:10;not null;uniqueIndex:idx_ownership_item,priority:2" json:"itemKind"`
	ItemID    uint            `gorm:"not null;uniqueIndex:idx_ownership_item,priority:3" json:"itemId"`
	GameID    uint            `gorm:"not null;index" json:"gameId"`
	DLCID     *uint           `gorm:"column:dlc_id" json:"dlcId,omitempty"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	CreatedAt time.Time       `json:"createdAt"`
}

// PurchaseInput - for buy item
type PurchaseInput struct {
	ItemKind string `json:"item_kind" validate:"required,oneof=game dlc Game DLC"`
	ItemID   uint   `json:"item_id" validate:"required,gte=1"`
}
