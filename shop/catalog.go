package shop

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gamecenter/models"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const (
	NoRatingLabel = "no rating yet"
	searchLimit   = 50
)

// RatingSummary is the mean score of a game rounded to one decimal. Average
// is nil when nobody rated the game yet.
type RatingSummary struct {
	Average *float64 `json:"average"`
	Count   int64    `json:"count"`
	Label   string   `json:"label"`
}

func newRatingSummary(avg *float64, count int64) RatingSummary {
	if avg == nil || count == 0 {
		return RatingSummary{Label: NoRatingLabel}
	}
	rounded := math.Round(*avg*10) / 10
	return RatingSummary{
		Average: &rounded,
		Count:   count,
		Label:   strconv.FormatFloat(rounded, 'f', 1, 64),
	}
}

// GameView is the session-independent part of a game page.
type GameView struct {
	Game   models.Game   `json:"game"`
	DLCs   []models.DLC  `json:"dlcs"`
	Rating RatingSummary `json:"rating"`
}

// Flags describe a game from the point of view of the session's account.
type Flags struct {
	Owned      bool `json:"owned"`
	Wishlisted bool `json:"wishlisted"`
}

type GameDetail struct {
	GameView
	Viewer *Flags `json:"viewer,omitempty"`
}

func (s *Service) ListGames(ctx context.Context) ([]models.Game, error) {
	games := []models.Game{}
	if err := s.db.WithContext(ctx).Order("id").Find(&games).Error; err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	return games, nil
}

// SearchGames matches the query against titles and descriptions,
// case-insensitively.
func (s *Service) SearchGames(ctx context.Context, query string) ([]models.Game, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, wrap(ErrInvalidInput, "search query is required")
	}
	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"

	games := []models.Game{}
	err := s.db.WithContext(ctx).
		Where(`LOWER(title) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\'`, pattern, pattern).
		Order("id").
		Limit(searchLimit).
		Find(&games).Error
	if err != nil {
		return nil, fmt.Errorf("search games: %w", err)
	}
	return games, nil
}

// GameView loads the game, its DLCs and its rating summary. DLCs and the
// rating are fetched concurrently once the game is known to exist.
func (s *Service) GameView(ctx context.Context, gameID uint) (*GameView, error) {
	var game models.Game
	if err := s.db.WithContext(ctx).First(&game, gameID).Error; err != nil {
		return nil, notFound(err, "game")
	}

	view := &GameView{Game: game, DLCs: []models.DLC{}}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.db.WithContext(gctx).Where("game_id = ?", gameID).Order("id").Find(&view.DLCs).Error
	})
	g.Go(func() error {
		summary, err := s.RatingSummary(gctx, gameID)
		if err != nil {
			return err
		}
		view.Rating = summary
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load game %d: %w", gameID, err)
	}
	return view, nil
}

// GameDetail combines GameView with the viewer flags when sess is not nil.
func (s *Service) GameDetail(ctx context.Context, gameID uint, sess *Session) (*GameDetail, error) {
	detail := &GameDetail{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		view, err := s.GameView(gctx, gameID)
		if err != nil {
			return err
		}
		detail.GameView = *view
		return nil
	})
	if sess != nil {
		g.Go(func() error {
			flags, err := s.Flags(gctx, *sess, gameID)
			if err != nil {
				return err
			}
			detail.Viewer = flags
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return detail, nil
}

func (s *Service) RatingSummary(ctx context.Context, gameID uint) (RatingSummary, error) {
	var row struct {
		Average *float64
		Total   int64
	}
	err := s.db.WithContext(ctx).Model(&models.Rating{}).
		Select("AVG(score) AS average, COUNT(*) AS total").
		Where("game_id = ?", gameID).
		Scan(&row).Error
	if err != nil {
		return RatingSummary{}, fmt.Errorf("rating summary: %w", err)
	}
	return newRatingSummary(row.Average, row.Total), nil
}

// Flags reports whether the session's account owns or wishlisted the game.
func (s *Service) Flags(ctx context.Context, sess Session, gameID uint) (*Flags, error) {
	var owned, wished int64
	err := s.db.WithContext(ctx).Model(&models.Ownership{}).
		Where("account_id = ? AND item_kind = ? AND game_id = ?", sess.AccountID, models.ItemGame, gameID).
		Count(&owned).Error
	if err != nil {
		return nil, err
	}
	err = s.db.WithContext(ctx).Model(&models.WishlistEntry{}).
		Where("account_id = ? AND game_id = ?", sess.AccountID, gameID).
		Count(&wished).Error
	if err != nil {
		return nil, err
	}
	return &Flags{Owned: owned > 0, Wishlisted: wished > 0}, nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func gameExists(tx *gorm.DB, gameID uint) error {
	var game models.Game
	err := tx.Select("id").First(&game, gameID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return wrap(ErrNotFound, "game not found")
	}
	return err
}
