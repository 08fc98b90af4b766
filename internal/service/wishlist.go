package service

import (
	"IEats/internal/diary"
	"IEats/internal/metrics"
	"IEats/internal/model"
	"IEats/internal/repo"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// WishlistService ведёт вишлист пользователя. Обновления нет, только добавление и удаление.
type WishlistService struct {
	repo    repo.WishlistRepository
	metrics *metrics.Metrics
	logger  *zap.SugaredLogger
	now     func() time.Time
}

func NewWishlistService(r repo.WishlistRepository, m *metrics.Metrics, logger *zap.SugaredLogger) *WishlistService {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &WishlistService{repo: r, metrics: m, logger: logger, now: time.Now}
}

// Create добавляет элемент. Нужны id и непустое блюдо; приоритет по умолчанию medium,
// дата добавления по умолчанию сегодняшняя.
func (s *WishlistService) Create(ctx context.Context, userID int64, in diary.WishlistInput) (int64, error) {
	row, err := s.buildItem(in)
	if err != nil {
		s.metrics.StoreOp("wishlist_create", metrics.OutcomeInvalid)
		return 0, err
	}

	err = s.repo.Create(ctx, userID, row)
	switch {
	case err == nil:
		s.metrics.StoreOp("wishlist_create", metrics.OutcomeOK)
		return row.ID, nil
	case errors.Is(err, repo.ErrDuplicateID):
		s.metrics.StoreOp("wishlist_create", metrics.OutcomeConflict)
		return 0, fmt.Errorf("wishlist item %d: %w", row.ID, ErrConflict)
	default:
		s.metrics.StoreOp("wishlist_create", metrics.OutcomeError)
		s.logger.Errorw("create wishlist item failed", "user_id", userID, "item_id", row.ID, "error", err)
		return 0, storageErr("create wishlist item", err)
	}
}

// Delete удаляет элемент пользователя.
func (s *WishlistService) Delete(ctx context.Context, userID, id int64) error {
	if id <= 0 {
		s.metrics.StoreOp("wishlist_delete", metrics.OutcomeNotFound)
		return fmt.Errorf("wishlist item %d: %w", id, ErrNotFound)
	}
	err := s.repo.Delete(ctx, userID, id)
	switch {
	case err == nil:
		s.metrics.StoreOp("wishlist_delete", metrics.OutcomeOK)
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		s.metrics.StoreOp("wishlist_delete", metrics.OutcomeNotFound)
		return fmt.Errorf("wishlist item %d: %w", id, ErrNotFound)
	default:
		s.metrics.StoreOp("wishlist_delete", metrics.OutcomeError)
		s.logger.Errorw("delete wishlist item failed", "user_id", userID, "item_id", id, "error", err)
		return storageErr("delete wishlist item", err)
	}
}

// List возвращает вишлист в порядке high, medium, low, внутри приоритета новые сверху.
func (s *WishlistService) List(ctx context.Context, userID int64) ([]diary.WishlistItem, error) {
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		s.metrics.StoreOp("wishlist_list", metrics.OutcomeError)
		s.logger.Errorw("list wishlist failed", "user_id", userID, "error", err)
		return nil, storageErr("list wishlist", err)
	}
	s.metrics.StoreOp("wishlist_list", metrics.OutcomeOK)

	items := make([]diary.WishlistItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, diary.WishlistItem{
			ID:         r.ID,
			Dish:       r.Dish,
			Restaurant: r.Restaurant,
			Notes:      r.Notes,
			Priority:   diary.Priority(r.Priority),
			AddedDate:  diary.NormalizeDate(r.AddedDate),
		})
	}
	return items, nil
}

func (s *WishlistService) buildItem(in diary.WishlistInput) (*model.WishlistItem, error) {
	if !in.ID.IsInt() || in.ID.Int64() <= 0 {
		return nil, invalid("id")
	}
	dish := strings.TrimSpace(in.Dish)
	if dish == "" {
		return nil, invalid("dish")
	}
	priority, ok := diary.ParsePriority(in.Priority)
	if !ok {
		return nil, invalid("priority")
	}
	added, ok := diary.ParseDate(in.AddedDate)
	if !ok {
		added = s.now().UTC().Format(diary.DateLayout)
	}
	return &model.WishlistItem{
		ID:         in.ID.Int64(),
		Dish:       dish,
		Restaurant: strings.TrimSpace(in.Restaurant),
		Notes:      strings.TrimSpace(in.Notes),
		Priority:   string(priority),
		AddedDate:  added,
	}, nil
}
