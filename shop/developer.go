package shop

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gamecenter/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GameSales is a developer's game with what it has earned so far. Sales and
// revenue include the game's DLCs.
type GameSales struct {
	models.Game
	Sales   int64           `json:"sales"`
	Revenue decimal.Decimal `json:"revenue"`
}

type Dashboard struct {
	Developer models.Developer `json:"developer"`
	Games     []GameSales      `json:"games"`
}

// DeveloperFor returns the Developer linked to the session's account.
func (s *Service) DeveloperFor(ctx context.Context, sess Session) (*models.Developer, error) {
	var dev models.Developer
	err := s.db.WithContext(ctx).Where("account_id = ?", sess.AccountID).First(&dev).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotDeveloper
	}
	if err != nil {
		return nil, fmt.Errorf("load developer: %w", err)
	}
	return &dev, nil
}

func (s *Service) DeveloperDashboard(ctx context.Context, sess Session) (*Dashboard, error) {
	dev, err := s.DeveloperFor(ctx, sess)
	if err != nil {
		return nil, err
	}
	db := s.db.WithContext(ctx)

	var games []models.Game
	if err := db.Where("developer_id = ?", dev.ID).Order("id").Find(&games).Error; err != nil {
		return nil, fmt.Errorf("developer games: %w", err)
	}

	dashboard := &Dashboard{Developer: *dev, Games: make([]GameSales, 0, len(games))}
	if len(games) == 0 {
		return dashboard, nil
	}

	ids := make([]uint, len(games))
	for i, g := range games {
		ids[i] = g.ID
	}
	var rows []struct {
		GameID  uint
		Sales   int64
		Revenue decimal.Decimal
	}
	err = db.Model(&models.Ownership{}).
		Select("game_id, COUNT(*) AS sales, SUM(price) AS revenue").
		Where("game_id IN ?", ids).
		Group("game_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("developer sales: %w", err)
	}
	sales := make(map[uint]GameSales, len(rows))
	for _, r := range rows {
		sales[r.GameID] = GameSales{Sales: r.Sales, Revenue: r.Revenue}
	}

	for _, g := range games {
		gs := GameSales{Game: g, Revenue: decimal.Zero}
		if row, ok := sales[g.ID]; ok {
			gs.Sales = row.Sales
			gs.Revenue = row.Revenue
		}
		dashboard.Games = append(dashboard.Games, gs)
	}
	return dashboard, nil
}

// PublishGame lists a new game owned by the session's developer.
func (s *Service) PublishGame(ctx context.Context, sess Session, in models.PublishGameInput) (*models.Game, error) {
	dev, err := s.DeveloperFor(ctx, sess)
	if err != nil {
		return nil, err
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, wrap(ErrInvalidInput, "title is required")
	}
	if in.Price.IsNegative() {
		return nil, wrap(ErrInvalidInput, "price must not be negative")
	}

	game := models.Game{
		Title:       title,
		Description: in.Description,
		Image:       in.Image,
		Price:       in.Price,
		DeveloperID: dev.ID,
	}
	if err := s.db.WithContext(ctx).Create(&game).Error; err != nil {
		return nil, fmt.Errorf("publish game: %w", err)
	}
	return &game, nil
}

// PublishDLC adds a DLC to one of the session developer's games.
func (s *Service) PublishDLC(ctx context.Context, sess Session, gameID uint, in models.PublishDLCInput) (*models.DLC, error) {
	dev, err := s.DeveloperFor(ctx, sess)
	if err != nil {
		return nil, err
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, wrap(ErrInvalidInput, "title is required")
	}
	if in.Price.IsNegative() {
		return nil, wrap(ErrInvalidInput, "price must not be negative")
	}

	var game models.Game
	if err := s.db.WithContext(ctx).First(&game, gameID).Error; err != nil {
		return nil, notFound(err, "game")
	}
	if game.DeveloperID != dev.ID {
		return nil, wrap(ErrForbidden, "only the game's developer can add DLC")
	}

	dlc := models.DLC{GameID: game.ID, Title: title, Price: in.Price}
	if err := s.db.WithContext(ctx).Create(&dlc).Error; err != nil {
		return nil, fmt.Errorf("publish dlc: %w", err)
	}
	return &dlc, nil
}
