package repo

import (
	"IEats/internal/diary"
	"IEats/internal/model"
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// priorityOrder: high, medium, low по diary.Priority.Rank; неизвестные значения в конце.
var priorityOrder = func() string {
	var b strings.Builder
	b.WriteString("CASE priority")
	for _, p := range []diary.Priority{diary.PriorityHigh, diary.PriorityMedium, diary.PriorityLow} {
		fmt.Fprintf(&b, " WHEN '%s' THEN %d", p, p.Rank())
	}
	fmt.Fprintf(&b, " ELSE %d END", diary.Priority("").Rank())
	return b.String()
}()

// WishlistRepository: хранилище вишлиста.
type WishlistRepository interface {
	// Create добавляет элемент. Если id уже занят у пользователя: ErrDuplicateID.
	Create(ctx context.Context, userID int64, item *model.WishlistItem) error
	// Delete удаляет элемент пользователя, иначе gorm.ErrRecordNotFound.
	Delete(ctx context.Context, userID, id int64) error
	// ListByUser: по приоритету, затем по дате добавления (новые сверху).
	ListByUser(ctx context.Context, userID int64) ([]model.WishlistItem, error)
}

type wishlistRepo struct {
	db *gorm.DB
}

// NewWishlistRepository создаёт реализацию репозитория вишлиста.
func NewWishlistRepository(db *gorm.DB) WishlistRepository {
	return &wishlistRepo{db: db}
}

func (r *wishlistRepo) Create(ctx context.Context, userID int64, item *model.WishlistItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&model.WishlistItem{}).Where("user_id = ? AND id = ?", userID, item.ID).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrDuplicateID
		}
		item.UserID = userID
		if err := tx.Omit(clause.Associations).Create(item).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateID
			}
			return err
		}
		return nil
	})
}

func (r *wishlistRepo) Delete(ctx context.Context, userID, id int64) error {
	res := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).Delete(&model.WishlistItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *wishlistRepo) ListByUser(ctx context.Context, userID int64) ([]model.WishlistItem, error) {
	items := []model.WishlistItem{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order(priorityOrder).
		Order("added_date DESC").
		Order("id DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
