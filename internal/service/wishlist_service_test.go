package service

import (
	"IEats/internal/diary"
	"IEats/internal/model"
	"IEats/internal/repo"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type mockWishlistRepo struct{ mock.Mock }

func (m *mockWishlistRepo) Create(ctx context.Context, userID int64, item *model.WishlistItem) error {
	return m.Called(ctx, userID, item).Error(0)
}

func (m *mockWishlistRepo) Delete(ctx context.Context, userID, id int64) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *mockWishlistRepo) ListByUser(ctx context.Context, userID int64) ([]model.WishlistItem, error) {
	args := m.Called(ctx, userID)
	if v, ok := args.Get(0).([]model.WishlistItem); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.WishlistRepository = (*mockWishlistRepo)(nil)

func newWishlistService(r repo.WishlistRepository) *WishlistService {
	svc := NewWishlistService(r, nil, zap.NewNop().Sugar())
	svc.now = func() time.Time { return time.Date(2024, 5, 6, 23, 0, 0, 0, time.UTC) }
	return svc
}

func TestWishlistService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults", func(t *testing.T) {
		r := new(mockWishlistRepo)
		svc := newWishlistService(r)
		r.On("Create", mock.Anything, int64(3), mock.MatchedBy(func(it *model.WishlistItem) bool {
			return it.ID == 10 && it.Dish == "Ramen" && it.Priority == "medium" && it.AddedDate == "2024-05-06"
		})).Return(nil).Once()

		id, err := svc.Create(ctx, 3, diary.WishlistInput{ID: diary.NumberOf(10), Dish: " Ramen "})
		require.NoError(t, err)
		assert.Equal(t, int64(10), id)
		r.AssertExpectations(t)
	})

	t.Run("added date keeps day only", func(t *testing.T) {
		r := new(mockWishlistRepo)
		svc := newWishlistService(r)
		r.On("Create", mock.Anything, int64(3), mock.MatchedBy(func(it *model.WishlistItem) bool {
			return it.AddedDate == "2024-01-02" && it.Priority == "high"
		})).Return(nil).Once()

		_, err := svc.Create(ctx, 3, diary.WishlistInput{
			ID: diary.NumberOf(1), Dish: "Pho", Priority: "HIGH", AddedDate: "2024-01-02T08:00:00Z",
		})
		require.NoError(t, err)
		r.AssertExpectations(t)
	})

	t.Run("invalid fields", func(t *testing.T) {
		r := new(mockWishlistRepo)
		svc := newWishlistService(r)

		_, err := svc.Create(ctx, 3, diary.WishlistInput{Dish: "Pho"})
		assert.Equal(t, "id", InvalidFieldName(err))
		_, err = svc.Create(ctx, 3, diary.WishlistInput{ID: diary.NumberOf(1)})
		assert.Equal(t, "dish", InvalidFieldName(err))
		_, err = svc.Create(ctx, 3, diary.WishlistInput{ID: diary.NumberOf(1), Dish: "Pho", Priority: "urgent"})
		assert.Equal(t, "priority", InvalidFieldName(err))
		r.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("duplicate", func(t *testing.T) {
		r := new(mockWishlistRepo)
		svc := newWishlistService(r)
		r.On("Create", mock.Anything, int64(3), mock.Anything).Return(repo.ErrDuplicateID).Once()

		_, err := svc.Create(ctx, 3, diary.WishlistInput{ID: diary.NumberOf(1), Dish: "Pho"})
		assert.ErrorIs(t, err, ErrConflict)
	})
}

func TestWishlistService_DeleteList(t *testing.T) {
	ctx := context.Background()
	r := new(mockWishlistRepo)
	svc := newWishlistService(r)

	r.On("Delete", mock.Anything, int64(3), int64(8)).Return(gorm.ErrRecordNotFound).Once()
	assert.ErrorIs(t, svc.Delete(ctx, 3, 8), ErrNotFound)

	r.On("ListByUser", mock.Anything, int64(3)).Return([]model.WishlistItem{
		{ID: 2, Dish: "Pho", Priority: "high", AddedDate: "2024-01-02"},
		{ID: 1, Dish: "Tea", Priority: "low", AddedDate: "2024-01-01 00:00:00"},
	}, nil).Once()

	items, err := svc.List(ctx, 3)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, diary.PriorityHigh, items[0].Priority)
	assert.Equal(t, "2024-01-01", items[1].AddedDate)
}
