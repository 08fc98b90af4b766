package repo

import (
	"IEats/internal/model"
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// хелпер для создания записи с блюдами и тегами
func mkEntry(id int64, name, date string, rating int, dishes, tags []string) *model.Entry {
	e := &model.Entry{
		ID:                id,
		RestaurantName:    name,
		RestaurantAddress: "addr",
		VisitDate:         date,
		OverallRating:     rating,
	}
	for _, d := range dishes {
		e.Dishes = append(e.Dishes, model.EntryDish{Dish: d})
	}
	for _, tg := range tags {
		e.Tags = append(e.Tags, model.EntryTag{Tag: tg})
	}
	return e
}

func dishNames(e model.Entry) []string {
	out := []string{}
	for _, d := range e.Dishes {
		out = append(out, d.Dish)
	}
	return out
}

func tagNames(e model.Entry) []string {
	out := []string{}
	for _, tg := range e.Tags {
		out = append(out, tg.Tag)
	}
	return out
}

func TestEntryRepository_CreateAndList(t *testing.T) {
	db := newTestDB(t)
	seedUsers(t, db, 1)
	r := NewEntryRepository(db)
	ctx := context.Background()

	cover := "a.png"
	e1 := mkEntry(1, "Sushi Taro", "2024-03-01", 4, []string{"salmon", "tuna", "egg"}, []string{"lunch", "fish"})
	e1.Image = &cover
	e1.ImagesJSON = datatypes.JSON(`["a.png","b.png"]`)
	require.NoError(t, r.Create(ctx, 1, e1))
	require.NoError(t, r.Create(ctx, 1, mkEntry(2, "sushi taro", "2024-03-05", 5, nil, nil)))
	require.NoError(t, r.Create(ctx, 1, mkEntry(3, "Ramen", "2024-02-20", 3, []string{"shoyu"}, nil)))

	list, err := r.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 3)

	// по дате визита, новые сверху
	assert.Equal(t, int64(2), list[0].ID)
	assert.Equal(t, int64(1), list[1].ID)
	assert.Equal(t, int64(3), list[2].ID)

	// порядок блюд и тегов сохраняется
	assert.Equal(t, []string{"salmon", "tuna", "egg"}, dishNames(list[1]))
	assert.Equal(t, []string{"lunch", "fish"}, tagNames(list[1]))
	assert.Empty(t, list[0].Dishes)
	assert.Equal(t, []string{"shoyu"}, dishNames(list[2]))
	if assert.NotNil(t, list[1].Image) {
		assert.Equal(t, "a.png", *list[1].Image)
	}
	assert.JSONEq(t, `["a.png","b.png"]`, string(list[1].ImagesJSON))
}

func TestEntryRepository_DuplicateIDPerUser(t *testing.T) {
	db := newTestDB(t)
	seedUsers(t, db, 1, 2)
	r := NewEntryRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Create(ctx, 1, mkEntry(100, "A", "2024-01-01", 3, []string{"x"}, nil)))
	// тот же id у другого пользователя — допустимо
	require.NoError(t, r.Create(ctx, 2, mkEntry(100, "B", "2024-01-01", 4, nil, nil)))

	// повтор у того же пользователя — конфликт, дочерние строки не добавляются
	err := r.Create(ctx, 1, mkEntry(100, "C", "2024-01-02", 5, []string{"y", "z"}, nil))
	assert.ErrorIs(t, err, ErrDuplicateID)

	list, err := r.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "A", list[0].RestaurantName)
	assert.Equal(t, []string{"x"}, dishNames(list[0]))

	other, err := r.ListByUser(ctx, 2)
	require.NoError(t, err)
	require.Len(t, other, 1)
	assert.Equal(t, "B", other[0].RestaurantName)
}

func TestEntryRepository_ReplaceFullyReplacesChildren(t *testing.T) {
	db := newTestDB(t)
	seedUsers(t, db, 1, 2)
	r := NewEntryRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Create(ctx, 1, mkEntry(1, "A", "2024-01-01", 3, []string{"old1", "old2"}, []string{"t1"})))

	upd := mkEntry(1, "A2", "2024-01-09", 2, []string{"new1"}, []string{"t2", "t3"})
	require.NoError(t, r.Replace(ctx, 1, upd))

	list, err := r.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "A2", list[0].RestaurantName)
	assert.Equal(t, "2024-01-09", list[0].VisitDate)
	assert.Equal(t, 2, list[0].OverallRating)
	assert.Equal(t, []string{"new1"}, dishNames(list[0]))
	assert.Equal(t, []string{"t2", "t3"}, tagNames(list[0]))

	var dishCount int64
	require.NoError(t, db.Model(&model.EntryDish{}).Count(&dishCount).Error)
	assert.Equal(t, int64(1), dishCount)

	// чужая или отсутствующая запись — not found
	assert.ErrorIs(t, r.Replace(ctx, 2, mkEntry(1, "X", "2024-01-01", 1, nil, nil)), gorm.ErrRecordNotFound)
	assert.ErrorIs(t, r.Replace(ctx, 1, mkEntry(42, "X", "2024-01-01", 1, nil, nil)), gorm.ErrRecordNotFound)

	// пустые наборы удаляют все блюда и теги
	require.NoError(t, r.Replace(ctx, 1, mkEntry(1, "A3", "2024-01-10", 5, nil, nil)))
	list, err = r.ListByUser(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, list[0].Dishes)
	assert.Empty(t, list[0].Tags)
}

func TestEntryRepository_DeleteCascadesAndAllowsReuse(t *testing.T) {
	db := newTestDB(t)
	seedUsers(t, db, 1, 2)
	r := NewEntryRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Create(ctx, 1, mkEntry(7, "A", "2024-01-01", 3, []string{"d1", "d2"}, []string{"t1"})))

	// чужой пользователь не может удалить
	assert.ErrorIs(t, r.Delete(ctx, 2, 7), gorm.ErrRecordNotFound)

	require.NoError(t, r.Delete(ctx, 1, 7))
	assert.ErrorIs(t, r.Delete(ctx, 1, 7), gorm.ErrRecordNotFound)

	var dishes, tags int64
	require.NoError(t, db.Model(&model.EntryDish{}).Where("entry_id = ?", 7).Count(&dishes).Error)
	require.NoError(t, db.Model(&model.EntryTag{}).Where("entry_id = ?", 7).Count(&tags).Error)
	assert.Zero(t, dishes)
	assert.Zero(t, tags)

	// id можно использовать повторно, старые дочерние строки не всплывают
	require.NoError(t, r.Create(ctx, 1, mkEntry(7, "B", "2024-02-01", 4, []string{"fresh"}, nil)))
	list, err := r.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, []string{"fresh"}, dishNames(list[0]))
	assert.Empty(t, list[0].Tags)
}

func TestEntryRepository_ForeignKeyCascade(t *testing.T) {
	db := newTestDB(t)
	seedUsers(t, db, 1)
	r := NewEntryRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Create(ctx, 1, mkEntry(5, "A", "2024-01-01", 3, []string{"d"}, []string{"t"})))

	// удаление строки в обход репозитория — каскад на уровне БД
	require.NoError(t, db.Exec("DELETE FROM entries WHERE user_id = ? AND id = ?", 1, 5).Error)
	var n int64
	require.NoError(t, db.Model(&model.EntryDish{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestEntryRepository_ListEmpty(t *testing.T) {
	db := newTestDB(t)
	r := NewEntryRepository(db)

	list, err := r.ListByUser(context.Background(), 99)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestEntryRepository_RollbackOnChildFailure(t *testing.T) {
	db := newTestDB(t)
	seedUsers(t, db, 1)
	r := NewEntryRepository(db)
	ctx := context.Background()

	// вставка тегов падает, пока флаг включён
	var failTags atomic.Bool
	errTags := errors.New("tags insert failed")
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register("test:fail_tags", func(tx *gorm.DB) {
		if failTags.Load() && tx.Statement.Table == "entry_tags" {
			_ = tx.AddError(errTags)
		}
	}))

	failTags.Store(true)
	err := r.Create(ctx, 1, mkEntry(1, "A", "2024-01-01", 4, []string{"x"}, []string{"t"}))
	require.ErrorIs(t, err, errTags)

	var entries, dishes int64
	require.NoError(t, db.Model(&model.Entry{}).Count(&entries).Error)
	require.NoError(t, db.Model(&model.EntryDish{}).Count(&dishes).Error)
	assert.Zero(t, entries)
	assert.Zero(t, dishes)

	failTags.Store(false)
	require.NoError(t, r.Create(ctx, 1, mkEntry(1, "A", "2024-01-01", 4, []string{"x"}, []string{"t"})))

	// неудачная замена оставляет запись и её блюда/теги как были
	failTags.Store(true)
	err = r.Replace(ctx, 1, mkEntry(1, "B", "2024-02-02", 1, []string{"y", "z"}, []string{"u"}))
	require.ErrorIs(t, err, errTags)
	failTags.Store(false)

	list, err := r.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "A", list[0].RestaurantName)
	assert.Equal(t, 4, list[0].OverallRating)
	assert.Equal(t, []string{"x"}, dishNames(list[0]))
	assert.Equal(t, []string{"t"}, tagNames(list[0]))
}

func TestEntryRepository_ListBatchesChildren(t *testing.T) {
	db := newTestDB(t)
	seedUsers(t, db, 1)
	r := NewEntryRepository(db)
	ctx := context.Background()

	for i := int64(1); i <= 5; i++ {
		require.NoError(t, r.Create(ctx, 1, mkEntry(i, "R", "2024-01-01", 3, []string{"d1", "d2"}, []string{"t"})))
	}

	// ListByUser ходит в горутинах, поэтому счётчик атомарный
	var queries atomic.Int64
	require.NoError(t, db.Callback().Query().Before("gorm:query").Register("test:count_queries", func(*gorm.DB) {
		queries.Add(1)
	}))

	list, err := r.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 5)
	for _, e := range list {
		assert.Equal(t, []string{"d1", "d2"}, dishNames(e))
		assert.Equal(t, []string{"t"}, tagNames(e))
	}
	// записи, блюда, теги: по одному запросу независимо от числа записей
	assert.Equal(t, int64(3), queries.Load())
}
