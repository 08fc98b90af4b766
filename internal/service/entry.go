package service

import (
	"IEats/internal/cache"
	"IEats/internal/diary"
	"IEats/internal/metrics"
	"IEats/internal/model"
	"IEats/internal/repo"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// EntryService: бизнес-логика дневника (валидация, хранение, снимки для чтения).
type EntryService struct {
	repo      repo.EntryRepository
	snapshots *cache.Snapshots
	metrics   *metrics.Metrics
	logger    *zap.SugaredLogger
}

func NewEntryService(r repo.EntryRepository, snapshots *cache.Snapshots, m *metrics.Metrics, logger *zap.SugaredLogger) *EntryService {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &EntryService{repo: r, snapshots: snapshots, metrics: m, logger: logger}
}

// Create проверяет запись и сохраняет её вместе с блюдами и тегами.
// Возвращает id записи.
func (s *EntryService) Create(ctx context.Context, userID int64, in diary.EntryInput) (int64, error) {
	var (
		row *model.Entry
		err error
	)
	if !in.ID.IsInt() || in.ID.Int64() <= 0 {
		err = invalid("id")
	} else {
		row, err = buildEntry(in)
	}
	if err != nil {
		s.metrics.StoreOp("entry_create", metrics.OutcomeInvalid)
		return 0, err
	}
	row.ID = in.ID.Int64()

	err = s.repo.Create(ctx, userID, row)
	s.snapshots.Invalidate(userID)
	switch {
	case err == nil:
		s.metrics.StoreOp("entry_create", metrics.OutcomeOK)
		return row.ID, nil
	case errors.Is(err, repo.ErrDuplicateID):
		s.metrics.StoreOp("entry_create", metrics.OutcomeConflict)
		return 0, fmt.Errorf("entry %d: %w", row.ID, ErrConflict)
	default:
		s.metrics.StoreOp("entry_create", metrics.OutcomeError)
		s.logger.Errorw("create entry failed", "user_id", userID, "entry_id", row.ID, "error", err)
		return 0, storageErr("create entry", err)
	}
}

// Update полностью заменяет запись entryID. Id в теле игнорируется.
func (s *EntryService) Update(ctx context.Context, userID, entryID int64, in diary.EntryInput) error {
	if entryID <= 0 {
		s.metrics.StoreOp("entry_update", metrics.OutcomeInvalid)
		return invalid("id")
	}
	row, err := buildEntry(in)
	if err != nil {
		s.metrics.StoreOp("entry_update", metrics.OutcomeInvalid)
		return err
	}
	row.ID = entryID

	err = s.repo.Replace(ctx, userID, row)
	s.snapshots.Invalidate(userID)
	switch {
	case err == nil:
		s.metrics.StoreOp("entry_update", metrics.OutcomeOK)
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		s.metrics.StoreOp("entry_update", metrics.OutcomeNotFound)
		return fmt.Errorf("entry %d: %w", entryID, ErrNotFound)
	default:
		s.metrics.StoreOp("entry_update", metrics.OutcomeError)
		s.logger.Errorw("update entry failed", "user_id", userID, "entry_id", entryID, "error", err)
		return storageErr("update entry", err)
	}
}

// Delete удаляет запись вместе с блюдами и тегами.
func (s *EntryService) Delete(ctx context.Context, userID, entryID int64) error {
	if entryID <= 0 {
		s.metrics.StoreOp("entry_delete", metrics.OutcomeNotFound)
		return fmt.Errorf("entry %d: %w", entryID, ErrNotFound)
	}

	err := s.repo.Delete(ctx, userID, entryID)
	s.snapshots.Invalidate(userID)
	switch {
	case err == nil:
		s.metrics.StoreOp("entry_delete", metrics.OutcomeOK)
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		s.metrics.StoreOp("entry_delete", metrics.OutcomeNotFound)
		return fmt.Errorf("entry %d: %w", entryID, ErrNotFound)
	default:
		s.metrics.StoreOp("entry_delete", metrics.OutcomeError)
		s.logger.Errorw("delete entry failed", "user_id", userID, "entry_id", entryID, "error", err)
		return storageErr("delete entry", err)
	}
}

// List возвращает нормализованные записи пользователя, новые сверху.
// Результат берётся из снимка, если он актуален.
func (s *EntryService) List(ctx context.Context, userID int64) ([]diary.Entry, error) {
	if entries, ok := s.snapshots.Get(userID); ok {
		return entries, nil
	}

	version := s.snapshots.Version(userID)
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		s.metrics.StoreOp("entry_list", metrics.OutcomeError)
		s.logger.Errorw("list entries failed", "user_id", userID, "error", err)
		return nil, storageErr("list entries", err)
	}
	s.metrics.StoreOp("entry_list", metrics.OutcomeOK)

	entries := make([]diary.Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, toEntry(row))
	}
	s.snapshots.Put(userID, version, entries)
	return entries, nil
}

// buildEntry проверяет поля записи до любой записи в хранилище.
func buildEntry(in diary.EntryInput) (*model.Entry, error) {
	name := strings.TrimSpace(in.RestaurantName)
	if name == "" {
		return nil, invalid("restaurantName")
	}
	address := strings.TrimSpace(in.RestaurantAddress)
	if address == "" {
		return nil, invalid("restaurantAddress")
	}
	date, ok := diary.ParseDate(in.Date)
	if !ok {
		return nil, invalid("date")
	}
	if !in.OverallRating.IsInt() || in.OverallRating.Value < 1 || in.OverallRating.Value > 5 {
		return nil, invalid("overallRating")
	}

	row := &model.Entry{
		RestaurantName:    name,
		RestaurantAddress: address,
		VisitDate:         date,
		OverallRating:     int(in.OverallRating.Int64()),
		Content:           in.Content,
	}

	images := diary.CleanList(in.Images)
	if len(images) > 0 {
		raw, err := json.Marshal(images)
		if err != nil {
			return nil, invalid("images")
		}
		row.ImagesJSON = datatypes.JSON(raw)
		row.Image = diary.CoverOf(images)
	} else if in.Image != nil && strings.TrimSpace(*in.Image) != "" {
		legacy := strings.TrimSpace(*in.Image)
		row.Image = &legacy
	}

	for _, d := range diary.CleanList(in.Dishes) {
		row.Dishes = append(row.Dishes, model.EntryDish{Dish: d})
	}
	for _, t := range diary.CleanList(in.Tags) {
		row.Tags = append(row.Tags, model.EntryTag{Tag: t})
	}
	return row, nil
}

// toEntry переводит строку хранилища в доменную запись и нормализует её.
func toEntry(row model.Entry) diary.Entry {
	e := diary.Entry{
		ID:                row.ID,
		RestaurantName:    row.RestaurantName,
		RestaurantAddress: row.RestaurantAddress,
		Date:              row.VisitDate,
		OverallRating:     row.OverallRating,
		Content:           row.Content,
		Image:             row.Image,
		Dishes:            make([]string, 0, len(row.Dishes)),
		Tags:              make([]string, 0, len(row.Tags)),
	}
	if len(row.ImagesJSON) > 0 {
		e.Images = diary.ParseList(string(row.ImagesJSON))
	}
	for _, d := range row.Dishes {
		e.Dishes = append(e.Dishes, d.Dish)
	}
	for _, t := range row.Tags {
		e.Tags = append(e.Tags, t.Tag)
	}
	e.Normalize()
	return e
}
