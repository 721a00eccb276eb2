package shop

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gamecenter/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterParams struct {
	Nickname string
	Email    string
	Password string
	Role     string
}

// Register creates the account and, for the developer role, its Developer
// record in the same transaction. A second registration with the same email
// fails with ErrEmailTaken.
func (s *Service) Register(ctx context.Context, p RegisterParams) (*models.Account, error) {
	role := models.Role(strings.ToLower(strings.TrimSpace(p.Role)))
	if role == "" {
		role = models.RoleUser
	}
	if role != models.RoleUser && role != models.RoleDeveloper {
		return nil, wrap(ErrInvalidInput, "role must be user or developer")
	}
	nickname := strings.TrimSpace(p.Nickname)
	email := normalizeEmail(p.Email)
	if nickname == "" || email == "" || p.Password == "" {
		return nil, wrap(ErrInvalidInput, "nickname, email and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := models.Account{
		Nickname:     nickname,
		Email:        email,
		PasswordHash: string(hash),
		Balance:      decimal.Zero,
		Role:         role,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Account{}).Where("email = ?", email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrEmailTaken
		}

		if err := tx.Create(&account).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrEmailTaken
			}
			return err
		}

		if role == models.RoleDeveloper {
			dev := models.Developer{
				AccountID:   account.ID,
				DisplayName: nickname,
				Balance:     decimal.Zero,
			}
			if err := tx.Create(&dev).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("register account: %w", err)
	}
	return &account, nil
}

// Authenticate returns the account whose email and password both match.
// Every mismatch yields the same ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.Account, error) {
	var account models.Account
	err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("load account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &account, nil
}

func (s *Service) Account(ctx context.Context, sess Session) (*models.Account, error) {
	var account models.Account
	if err := s.db.WithContext(ctx).First(&account, sess.AccountID).Error; err != nil {
		return nil, notFound(err, "account")
	}
	return &account, nil
}

// TopUp credits TopUpAmount to the session's account and returns the new
// balance.
func (s *Service) TopUp(ctx context.Context, sess Session) (decimal.Decimal, error) {
	var account models.Account
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Account{}).
			Where("id = ?", sess.AccountID).
			Update("balance", gorm.Expr("balance + ?", TopUpAmount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return wrap(ErrNotFound, "account not found")
		}
		return tx.Select("id", "balance").First(&account, sess.AccountID).Error
	})
	if err != nil {
		return decimal.Zero, err
	}
	return account.Balance, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
