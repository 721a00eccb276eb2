package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	subjects []string
	payloads [][]byte
	err      error
	drained  bool
}

func (f *fakeConn) Publish(subject string, data []byte) error {
	if f.err != nil {
		return f.err
	}
	f.subjects = append(f.subjects, subject)
	f.payloads = append(f.payloads, data)
	return nil
}

func (f *fakeConn) Drain() error {
	f.drained = true
	return nil
}

func TestPublishEncodesJSON(t *testing.T) {
	fc := &fakeConn{}
	pub := &NATS{conn: fc}
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	err := pub.Publish(context.Background(), SubjectPurchaseCompleted, PurchaseCompleted{
		AccountID:   4,
		ItemKind:    "game",
		ItemID:      9,
		GameID:      9,
		DeveloperID: 2,
		Price:       decimal.RequireFromString("59.99"),
		At:          at,
	})
	require.NoError(t, err)

	require.Equal(t, []string{SubjectPurchaseCompleted}, fc.subjects)
	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(fc.payloads[0], &got))
	assert.Equal(t, "59.99", got["price"])
	assert.Equal(t, "game", got["item_kind"])
	assert.Equal(t, float64(4), got["account_id"])

	require.NoError(t, pub.Close())
	assert.True(t, fc.drained)
}

func TestPublishWrapsConnErrors(t *testing.T) {
	boom := errors.New("connection closed")
	pub := &NATS{conn: &fakeConn{err: boom}}

	err := pub.Publish(context.Background(), SubjectAccountRegistered, AccountRegistered{AccountID: 1})
	assert.ErrorIs(t, err, boom)
}

func TestPublishHonoursCancelledContext(t *testing.T) {
	fc := &fakeConn{}
	pub := &NATS{conn: fc}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := pub.Publish(ctx, SubjectAccountRegistered, AccountRegistered{AccountID: 1})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, fc.subjects)
}

func TestDiscard(t *testing.T) {
	var p Publisher = Discard{}
	assert.NoError(t, p.Publish(context.Background(), SubjectAccountRegistered, nil))
}
