package shop

import (
	"context"
	"fmt"
	"testing"

	"gamecenter/models"
	"gamecenter/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fixture struct {
	t   *testing.T
	db  *gorm.DB
	svc *Service
	ctx context.Context
	seq int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gdb := testutil.NewDB(t)
	return &fixture{
		t:   t,
		db:  gdb,
		svc: New(gdb, WithHashCost(bcrypt.MinCost)),
		ctx: context.Background(),
	}
}

func (f *fixture) register(role models.Role) *models.Account {
	f.t.Helper()
	f.seq++
	acc, err := f.svc.Register(f.ctx, RegisterParams{
		Nickname: fmt.Sprintf("player%d", f.seq),
		Email:    fmt.Sprintf("player%d@example.com", f.seq),
		Password: "secret123",
		Role:     string(role),
	})
	require.NoError(f.t, err)
	return acc
}

func (f *fixture) developer() (*models.Account, *models.Developer) {
	f.t.Helper()
	acc := f.register(models.RoleDeveloper)
	dev, err := f.svc.DeveloperFor(f.ctx, Session{AccountID: acc.ID})
	require.NoError(f.t, err)
	return acc, dev
}

func (f *fixture) setBalance(accountID uint, amount string) {
	f.t.Helper()
	err := f.db.Model(&models.Account{}).Where("id = ?", accountID).
		Update("balance", decimal.RequireFromString(amount)).Error
	require.NoError(f.t, err)
}

func (f *fixture) game(devID uint, price string) *models.Game {
	f.t.Helper()
	f.seq++
	g := &models.Game{
		Title:       fmt.Sprintf("Game %d", f.seq),
		Price:       decimal.RequireFromString(price),
		DeveloperID: devID,
	}
	require.NoError(f.t, f.db.Create(g).Error)
	return g
}

func (f *fixture) dlc(gameID uint, price string) *models.DLC {
	f.t.Helper()
	f.seq++
	d := &models.DLC{
		GameID: gameID,
		Title:  fmt.Sprintf("DLC %d", f.seq),
		Price:  decimal.RequireFromString(price),
	}
	require.NoError(f.t, f.db.Create(d).Error)
	return d
}

func (f *fixture) balance(accountID uint) decimal.Decimal {
	f.t.Helper()
	var acc models.Account
	require.NoError(f.t, f.db.First(&acc, accountID).Error)
	return acc.Balance
}

func (f *fixture) devBalance(devID uint) decimal.Decimal {
	f.t.Helper()
	var dev models.Developer
	require.NoError(f.t, f.db.First(&dev, devID).Error)
	return dev.Balance
}

func (f *fixture) count(model interface{}, query string, args ...interface{}) int64 {
	f.t.Helper()
	var n int64
	require.NoError(f.t, f.db.Model(model).Where(query, args...).Count(&n).Error)
	return n
}

func assertMoney(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}
