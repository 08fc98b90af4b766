package repo

import (
	"IEats/internal/model"
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EntryRepository: хранилище записей дневника вместе с блюдами и тегами.
// Все операции ограничены владельцем: чужая запись неотличима от отсутствующей.
type EntryRepository interface {
	// Create вставляет запись и её блюда/теги одной транзакцией.
	// Если id уже занят у пользователя: ErrDuplicateID.
	Create(ctx context.Context, userID int64, e *model.Entry) error

	// Replace полностью заменяет поля записи и наборы блюд/тегов одной транзакцией.
	// Если записи нет у пользователя: gorm.ErrRecordNotFound.
	Replace(ctx context.Context, userID int64, e *model.Entry) error

	// Delete удаляет запись вместе с блюдами и тегами.
	// Если записи нет у пользователя: gorm.ErrRecordNotFound.
	Delete(ctx context.Context, userID, id int64) error

	// ListByUser возвращает записи пользователя по дате визита (новые сверху)
	// с заполненными Dishes и Tags. Дочерние строки выбираются одним запросом на таблицу.
	ListByUser(ctx context.Context, userID int64) ([]model.Entry, error)
}

type entryRepo struct {
	db *gorm.DB
}

// NewEntryRepository создаёт реализацию репозитория записей.
func NewEntryRepository(db *gorm.DB) EntryRepository {
	return &entryRepo{db: db}
}

func (r *entryRepo) Create(ctx context.Context, userID int64, e *model.Entry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := entryExists(tx, userID, e.ID)
		if err != nil {
			return err
		}
		if exists {
			return ErrDuplicateID
		}

		e.UserID = userID
		if err := tx.Omit(clause.Associations).Create(e).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateID
			}
			return err
		}
		return insertChildren(tx, userID, e)
	})
}

func (r *entryRepo) Replace(ctx context.Context, userID int64, e *model.Entry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := entryExists(tx, userID, e.ID)
		if err != nil {
			return err
		}
		if !exists {
			return gorm.ErrRecordNotFound
		}

		e.UserID = userID
		err = tx.Model(&model.Entry{}).
			Where("user_id = ? AND id = ?", userID, e.ID).
			Updates(map[string]any{
				"restaurant_name":    e.RestaurantName,
				"restaurant_address": e.RestaurantAddress,
				"visit_date":         e.VisitDate,
				"overall_rating":     e.OverallRating,
				"content":            e.Content,
				"image":              e.Image,
				"images_json":        e.ImagesJSON,
				"updated_at":         time.Now().UTC(),
			}).Error
		if err != nil {
			return err
		}

		// полная замена: старые блюда/теги удаляются, новые вставляются целиком
		if err := deleteChildren(tx, userID, e.ID); err != nil {
			return err
		}
		return insertChildren(tx, userID, e)
	})
}

func (r *entryRepo) Delete(ctx context.Context, userID, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// каскад делаем явно: внешние ключи SQLite могут быть выключены
		if err := deleteChildren(tx, userID, id); err != nil {
			return err
		}
		res := tx.Where("user_id = ? AND id = ?", userID, id).Delete(&model.Entry{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *entryRepo) ListByUser(ctx context.Context, userID int64) ([]model.Entry, error) {
	var entries []model.Entry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("visit_date DESC").
		Order("id DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return []model.Entry{}, nil
	}

	ids := make([]int64, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}

	var (
		dishes []model.EntryDish
		tags   []model.EntryTag
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.db.WithContext(gctx).
			Where("user_id = ? AND entry_id IN ?", userID, ids).
			Order("entry_id").Order("position").Order("id").
			Find(&dishes).Error
	})
	g.Go(func() error {
		return r.db.WithContext(gctx).
			Where("user_id = ? AND entry_id IN ?", userID, ids).
			Order("entry_id").Order("position").Order("id").
			Find(&tags).Error
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	dishesByEntry := make(map[int64][]model.EntryDish, len(entries))
	for _, d := range dishes {
		dishesByEntry[d.EntryID] = append(dishesByEntry[d.EntryID], d)
	}
	tagsByEntry := make(map[int64][]model.EntryTag, len(entries))
	for _, t := range tags {
		tagsByEntry[t.EntryID] = append(tagsByEntry[t.EntryID], t)
	}
	for i := range entries {
		entries[i].Dishes = dishesByEntry[entries[i].ID]
		entries[i].Tags = tagsByEntry[entries[i].ID]
	}
	return entries, nil
}

func entryExists(tx *gorm.DB, userID, id int64) (bool, error) {
	var n int64
	err := tx.Model(&model.Entry{}).Where("user_id = ? AND id = ?", userID, id).Count(&n).Error
	return n > 0, err
}

func deleteChildren(tx *gorm.DB, userID, entryID int64) error {
	if err := tx.Where("user_id = ? AND entry_id = ?", userID, entryID).Delete(&model.EntryDish{}).Error; err != nil {
		return err
	}
	return tx.Where("user_id = ? AND entry_id = ?", userID, entryID).Delete(&model.EntryTag{}).Error
}

func insertChildren(tx *gorm.DB, userID int64, e *model.Entry) error {
	for i := range e.Dishes {
		e.Dishes[i].ID = 0
		e.Dishes[i].UserID = userID
		e.Dishes[i].EntryID = e.ID
		e.Dishes[i].Position = i
	}
	for i := range e.Tags {
		e.Tags[i].ID = 0
		e.Tags[i].UserID = userID
		e.Tags[i].EntryID = e.ID
		e.Tags[i].Position = i
	}
	if len(e.Dishes) > 0 {
		if err := tx.Create(&e.Dishes).Error; err != nil {
			return err
		}
	}
	if len(e.Tags) > 0 {
		if err := tx.Create(&e.Tags).Error; err != nil {
			return err
		}
	}
	return nil
}
