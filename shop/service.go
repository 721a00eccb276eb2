// Package shop implements the storefront operations on top of gorm. Every
// operation that acts on behalf of a user takes an explicit Session.
package shop

import (
	"errors"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TopUpAmount is credited by every TopUp call.
var TopUpAmount = decimal.NewFromInt(500)

// Session identifies the account a request acts for.
type Session struct {
	AccountID uint
}

type Service struct {
	db       *gorm.DB
	hashCost int
}

type Option func(*Service)

// WithHashCost overrides the bcrypt cost (tests use bcrypt.MinCost).
func WithHashCost(cost int) Option {
	return func(s *Service) { s.hashCost = cost }
}

func New(db *gorm.DB, opts ...Option) *Service {
	s := &Service{db: db, hashCost: bcrypt.DefaultCost}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return wrap(ErrNotFound, what+" not found")
	}
	return err
}

type wrapped struct {
	kind error
	msg  string
}

func (w *wrapped) Error() string { return w.msg }
func (w *wrapped) Unwrap() error { return w.kind }

// wrap returns an error that matches kind with errors.Is but carries a
// caller-facing message.
func wrap(kind error, msg string) error {
	return &wrapped{kind: kind, msg: msg}
}
