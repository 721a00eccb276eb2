package shop

import (
	"testing"

	"gamecenter/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterUser(t *testing.T) {
	f := newFixture(t)

	acc, err := f.svc.Register(f.ctx, RegisterParams{
		Nickname: " alice ",
		Email:    "Alice@Example.com ",
		Password: "secret123",
	})
	require.NoError(t, err)

	assert.NotZero(t, acc.ID)
	assert.Equal(t, "alice", acc.Nickname)
	assert.Equal(t, "alice@example.com", acc.Email)
	assert.Equal(t, models.RoleUser, acc.Role)
	assert.NotEqual(t, "secret123", acc.PasswordHash)
	assertMoney(t, "0", f.balance(acc.ID))
	assert.Equal(t, int64(0), f.count(&models.Developer{}, "account_id = ?", acc.ID))
}

func TestRegisterDeveloperCreatesDeveloperRecord(t *testing.T) {
	f := newFixture(t)

	acc, dev := f.developer()

	assert.Equal(t, models.RoleDeveloper, acc.Role)
	assert.Equal(t, acc.ID, dev.AccountID)
	assert.Equal(t, acc.Nickname, dev.DisplayName)
	assertMoney(t, "0", dev.Balance)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	params := RegisterParams{Nickname: "bob", Email: "bob@example.com", Password: "secret123"}

	_, err := f.svc.Register(f.ctx, params)
	require.NoError(t, err)

	params.Email = "BOB@example.com"
	_, err = f.svc.Register(f.ctx, params)
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.Equal(t, int64(1), f.count(&models.Account{}, "email = ?", "bob@example.com"))
}

func TestRegisterRejectsBadInput(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Register(f.ctx, RegisterParams{Nickname: "x", Email: "x@example.com", Password: "secret123", Role: "admin"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.Register(f.ctx, RegisterParams{Nickname: "x", Email: "", Password: "secret123"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAuthenticate(t *testing.T) {
	f := newFixture(t)
	acc := f.register(models.RoleUser)

	got, err := f.svc.Authenticate(f.ctx, acc.Email, "secret123")
	require.NoError(t, err)
	assert.Equal(t, acc.ID, got.ID)

	_, err = f.svc.Authenticate(f.ctx, acc.Email, "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.svc.Authenticate(f.ctx, "nobody@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestTopUpAddsFixedAmount(t *testing.T) {
	f := newFixture(t)
	acc := f.register(models.RoleUser)
	f.setBalance(acc.ID, "12.50")
	sess := Session{AccountID: acc.ID}

	balance, err := f.svc.TopUp(f.ctx, sess)
	require.NoError(t, err)
	assertMoney(t, "512.5", balance)

	balance, err = f.svc.TopUp(f.ctx, sess)
	require.NoError(t, err)
	assertMoney(t, "1012.5", balance)
}

func TestTopUpUnknownAccount(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.TopUp(f.ctx, Session{AccountID: 404})
	assert.ErrorIs(t, err, ErrNotFound)
}
