package shop

import (
	"testing"

	"gamecenter/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameDetailWithoutRatings(t *testing.T) {
	f := newFixture(t)
	_, dev := f.developer()
	game := f.game(dev.ID, "20")
	f.dlc(game.ID, "3")

	detail, err := f.svc.GameDetail(f.ctx, game.ID, nil)
	require.NoError(t, err)

	assert.Equal(t, game.ID, detail.Game.ID)
	assert.Len(t, detail.DLCs, 1)
	assert.Nil(t, detail.Rating.Average)
	assert.Equal(t, NoRatingLabel, detail.Rating.Label)
	assert.Nil(t, detail.Viewer)
}

func TestGameDetailAverageIsRounded(t *testing.T) {
	f := newFixture(t)
	_, dev := f.developer()
	game := f.game(dev.ID, "20")

	for _, score := range []int{3, 4, 4} {
		acc := f.register(models.RoleUser)
		_, err := f.svc.RateGame(f.ctx, Session{AccountID: acc.ID}, game.ID, score)
		require.NoError(t, err)
	}

	detail, err := f.svc.GameDetail(f.ctx, game.ID, nil)
	require.NoError(t, err)

	require.NotNil(t, detail.Rating.Average)
	assert.InDelta(t, 3.7, *detail.Rating.Average, 1e-9)
	assert.Equal(t, int64(3), detail.Rating.Count)
	assert.Equal(t, "3.7", detail.Rating.Label)
}

func TestGameDetailViewerFlags(t *testing.T) {
	f := newFixture(t)
	_, dev := f.developer()
	owned := f.game(dev.ID, "10")
	wanted := f.game(dev.ID, "10")
	buyer := f.register(models.RoleUser)
	f.setBalance(buyer.ID, "10")
	sess := Session{AccountID: buyer.ID}

	_, err := f.svc.Purchase(f.ctx, sess, models.ItemGame, owned.ID)
	require.NoError(t, err)
	_, err = f.svc.AddWishlist(f.ctx, sess, wanted.ID)
	require.NoError(t, err)

	detail, err := f.svc.GameDetail(f.ctx, owned.ID, &sess)
	require.NoError(t, err)
	require.NotNil(t, detail.Viewer)
	assert.Equal(t, Flags{Owned: true}, *detail.Viewer)

	detail, err = f.svc.GameDetail(f.ctx, wanted.ID, &sess)
	require.NoError(t, err)
	require.NotNil(t, detail.Viewer)
	assert.Equal(t, Flags{Wishlisted: true}, *detail.Viewer)
}

func TestGameDetailNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.GameDetail(f.ctx, 42, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListGamesOrderedByID(t *testing.T) {
	f := newFixture(t)
	_, dev := f.developer()

	games, err := f.svc.ListGames(f.ctx)
	require.NoError(t, err)
	assert.Empty(t, games)

	a := f.game(dev.ID, "1")
	b := f.game(dev.ID, "2")

	games, err = f.svc.ListGames(f.ctx)
	require.NoError(t, err)
	require.Len(t, games, 2)
	assert.Equal(t, []uint{a.ID, b.ID}, []uint{games[0].ID, games[1].ID})
}

func TestSearchGames(t *testing.T) {
	f := newFixture(t)
	_, dev := f.developer()
	require.NoError(t, f.db.Create(&models.Game{Title: "Space Miner", Description: "dig asteroids", DeveloperID: dev.ID}).Error)
	require.NoError(t, f.db.Create(&models.Game{Title: "Farm Life", Description: "grow crops in SPACE", DeveloperID: dev.ID}).Error)
	require.NoError(t, f.db.Create(&models.Game{Title: "100% Racer", DeveloperID: dev.ID}).Error)

	games, err := f.svc.SearchGames(f.ctx, "space")
	require.NoError(t, err)
	assert.Len(t, games, 2)

	games, err = f.svc.SearchGames(f.ctx, "100%")
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, "100% Racer", games[0].Title)

	games, err = f.svc.SearchGames(f.ctx, "% RAC")
	require.NoError(t, err)
	assert.Len(t, games, 1)

	_, err = f.svc.SearchGames(f.ctx, "   ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\%\_off\\`, escapeLike(`50%_off\`))
}
