package shop

import (
	"testing"

	"gamecenter/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeveloperDashboardRequiresDeveloper(t *testing.T) {
	f := newFixture(t)
	acc := f.register(models.RoleUser)

	_, err := f.svc.DeveloperDashboard(f.ctx, Session{AccountID: acc.ID})
	assert.ErrorIs(t, err, ErrNotDeveloper)

	_, err = f.svc.PublishGame(f.ctx, Session{AccountID: acc.ID}, models.PublishGameInput{Title: "x"})
	assert.ErrorIs(t, err, ErrNotDeveloper)
}

func TestDeveloperDashboardSales(t *testing.T) {
	f := newFixture(t)
	devAcc, dev := f.developer()
	sess := Session{AccountID: devAcc.ID}

	hit, err := f.svc.PublishGame(f.ctx, sess, models.PublishGameInput{Title: "Hit", Price: decimal.NewFromInt(20)})
	require.NoError(t, err)
	flop, err := f.svc.PublishGame(f.ctx, sess, models.PublishGameInput{Title: "Flop", Price: decimal.NewFromInt(5)})
	require.NoError(t, err)
	expansion, err := f.svc.PublishDLC(f.ctx, sess, hit.ID, models.PublishDLCInput{Title: "Expansion", Price: decimal.NewFromInt(4)})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		buyer := f.register(models.RoleUser)
		f.setBalance(buyer.ID, "100")
		bs := Session{AccountID: buyer.ID}
		_, err := f.svc.Purchase(f.ctx, bs, models.ItemGame, hit.ID)
		require.NoError(t, err)
		_, err = f.svc.Purchase(f.ctx, bs, models.ItemDLC, expansion.ID)
		require.NoError(t, err)
	}

	dash, err := f.svc.DeveloperDashboard(f.ctx, sess)
	require.NoError(t, err)

	assert.Equal(t, dev.ID, dash.Developer.ID)
	assertMoney(t, "48", dash.Developer.Balance)
	require.Len(t, dash.Games, 2)

	assert.Equal(t, hit.ID, dash.Games[0].ID)
	assert.Equal(t, int64(4), dash.Games[0].Sales)
	assertMoney(t, "48", dash.Games[0].Revenue)

	assert.Equal(t, flop.ID, dash.Games[1].ID)
	assert.Equal(t, int64(0), dash.Games[1].Sales)
	assertMoney(t, "0", dash.Games[1].Revenue)
}

func TestPublishValidation(t *testing.T) {
	f := newFixture(t)
	devAcc, _ := f.developer()
	sess := Session{AccountID: devAcc.ID}

	_, err := f.svc.PublishGame(f.ctx, sess, models.PublishGameInput{Title: "  "})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.PublishGame(f.ctx, sess, models.PublishGameInput{Title: "Cheap", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.PublishDLC(f.ctx, sess, 999, models.PublishDLCInput{Title: "Nope"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPublishDLCOnlyForOwnGames(t *testing.T) {
	f := newFixture(t)
	ownerAcc, _ := f.developer()
	otherAcc, _ := f.developer()

	game, err := f.svc.PublishGame(f.ctx, Session{AccountID: ownerAcc.ID}, models.PublishGameInput{Title: "Mine", Price: decimal.NewFromInt(10)})
	require.NoError(t, err)

	_, err = f.svc.PublishDLC(f.ctx, Session{AccountID: otherAcc.ID}, game.ID, models.PublishDLCInput{Title: "Theirs", Price: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, int64(0), f.count(&models.DLC{}, "game_id = ?", game.ID))
}
