// Package events publishes storefront events to NATS as JSON.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/shopspring/decimal"
)

const (
	SubjectAccountRegistered = "store.account.registered"
	SubjectPurchaseCompleted = "store.purchase.completed"
)

type AccountRegistered struct {
	AccountID uint      `json:"account_id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	At        time.Time `json:"at"`
}

type PurchaseCompleted struct {
	AccountID   uint            `json:"account_id"`
	ItemKind    string          `json:"item_kind"`
	ItemID      uint            `json:"item_id"`
	GameID      uint            `json:"game_id"`
	DeveloperID uint            `json:"developer_id"`
	Price       decimal.Decimal `json:"price"`
	At          time.Time       `json:"at"`
}

type Publisher interface {
	Publish(ctx context.Context, subject string, event interface{}) error
}

// Discard drops every event. It is used when no broker is configured.
type Discard struct{}

func (Discard) Publish(context.Context, string, interface{}) error { return nil }

// conn is the subset of *nats.Conn the publisher needs.
type conn interface {
	Publish(subject string, data []byte) error
	Drain() error
}

type NATS struct {
	conn conn
}

// Connect dials the broker at url.
func Connect(url, name string) (*NATS, error) {
	opts := []nats.Option{
		nats.Name(name),
		nats.Timeout(10 * time.Second),
		nats.ReconnectWait(2 * time.Second),
		nats.MaxReconnects(5),
	}
	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return &NATS{conn: nc}, nil
}

func (n *NATS) Publish(ctx context.Context, subject string, event interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", subject, err)
	}
	if err := n.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}
	return nil
}

// Close drains pending messages before closing the connection.
func (n *NATS) Close() error {
	return n.conn.Drain()
}
