package service

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"IEats/internal/cli/api"
	"IEats/internal/diary"
)

// ErrNotLoggedIn: сервер не видит сессию.
var ErrNotLoggedIn = errors.New("not logged in: run login or register first")

// DiaryService: записи и вишлист через REST API. Сводки по ресторанам
// считаются на клиенте из свежезагруженного списка записей.
type DiaryService struct {
	client *api.Client
	now    func() time.Time
}

func NewDiaryService(client *api.Client) *DiaryService {
	return &DiaryService{client: client, now: time.Now}
}

func translate(err error) error {
	if api.IsStatus(err, http.StatusUnauthorized) {
		return ErrNotLoggedIn
	}
	return err
}

var (
	idMu   sync.Mutex
	lastID int64
)

// NewID генерирует id на клиенте: миллисекунды Unix-времени, строго возрастающие
// в пределах процесса.
func (s *DiaryService) NewID() int64 {
	idMu.Lock()
	defer idMu.Unlock()
	id := s.now().UnixMilli()
	if id <= lastID {
		id = lastID + 1
	}
	lastID = id
	return id
}

// Entries загружает записи, новые сверху.
func (s *DiaryService) Entries(ctx context.Context) ([]diary.Entry, error) {
	var out struct {
		Entries []diary.Entry `json:"entries"`
	}
	if err := s.client.GetJSON(ctx, "/api/entries", &out); err != nil {
		return nil, translate(err)
	}
	if out.Entries == nil {
		out.Entries = []diary.Entry{}
	}
	return out.Entries, nil
}

// AddEntry создаёт запись. Если id не задан, он генерируется.
func (s *DiaryService) AddEntry(ctx context.Context, in diary.EntryInput) (int64, error) {
	if !in.ID.Valid {
		in.ID = diary.NumberOf(float64(s.NewID()))
	}
	var out struct {
		ID int64 `json:"id"`
	}
	if _, err := s.client.PostJSON(ctx, "/api/entries", in, &out); err != nil {
		return 0, translate(err)
	}
	return out.ID, nil
}

// ErrEntryNotFound: записи с таким id нет у пользователя.
var ErrEntryNotFound = errors.New("entry not found")

// Entry находит запись по id в свежем списке записей.
func (s *DiaryService) Entry(ctx context.Context, id int64) (diary.Entry, error) {
	entries, err := s.Entries(ctx)
	if err != nil {
		return diary.Entry{}, err
	}
	for _, e := range entries {
		if e.ID == id {
			return e, nil
		}
	}
	return diary.Entry{}, ErrEntryNotFound
}

// UpdateEntry заменяет запись целиком: поля, блюда и теги берутся из in.
// id в теле не передаётся, сервер берёт его из пути.
func (s *DiaryService) UpdateEntry(ctx context.Context, id int64, in diary.EntryInput) error {
	in.ID = diary.Number{}
	if err := s.client.PutJSON(ctx, "/api/entries/"+strconv.FormatInt(id, 10), in); err != nil {
		if api.IsStatus(err, http.StatusNotFound) {
			return ErrEntryNotFound
		}
		return translate(err)
	}
	return nil
}

// DeleteEntry удаляет запись.
func (s *DiaryService) DeleteEntry(ctx context.Context, id int64) error {
	return translate(s.client.Delete(ctx, "/api/entries/"+strconv.FormatInt(id, 10)))
}

// Restaurants перезагружает записи и строит сводки. Непустой tag фильтрует рестораны.
func (s *DiaryService) Restaurants(ctx context.Context, tag string, order diary.SortOrder) ([]diary.Restaurant, error) {
	entries, err := s.Entries(ctx)
	if err != nil {
		return nil, err
	}
	var list []diary.Restaurant
	if tag != "" {
		list = diary.WithTag(entries, tag)
	} else {
		list = diary.Restaurants(entries)
	}
	if order != "" {
		diary.Sort(list, order)
	}
	return list, nil
}

// Stats перезагружает записи и считает статистику месяца.
// Пустой month: текущий месяц.
func (s *DiaryService) Stats(ctx context.Context, month string) (diary.MonthStats, error) {
	entries, err := s.Entries(ctx)
	if err != nil {
		return diary.MonthStats{}, err
	}
	if month == "" {
		month = s.now().Format("2006-01")
	}
	return diary.Stats(entries, month), nil
}

// Calendar возвращает дни месяца с визитами и записи за date, если он задан.
func (s *DiaryService) Calendar(ctx context.Context, month, date string) ([]string, []diary.Entry, error) {
	entries, err := s.Entries(ctx)
	if err != nil {
		return nil, nil, err
	}
	days := diary.VisitDays(entries, month)
	if date == "" {
		return days, nil, nil
	}
	return days, diary.EntriesOn(entries, date), nil
}

// Wishlist загружает вишлист в порядке сервера.
func (s *DiaryService) Wishlist(ctx context.Context) ([]diary.WishlistItem, error) {
	var out struct {
		Wishlist []diary.WishlistItem `json:"wishlist"`
	}
	if err := s.client.GetJSON(ctx, "/api/wishlist", &out); err != nil {
		return nil, translate(err)
	}
	return out.Wishlist, nil
}

// AddWish добавляет блюдо в вишлист.
func (s *DiaryService) AddWish(ctx context.Context, in diary.WishlistInput) (int64, error) {
	if !in.ID.Valid {
		in.ID = diary.NumberOf(float64(s.NewID()))
	}
	var out struct {
		ID int64 `json:"id"`
	}
	if _, err := s.client.PostJSON(ctx, "/api/wishlist", in, &out); err != nil {
		return 0, translate(err)
	}
	return out.ID, nil
}

// DeleteWish удаляет элемент вишлиста.
func (s *DiaryService) DeleteWish(ctx context.Context, id int64) error {
	return translate(s.client.Delete(ctx, "/api/wishlist/"+strconv.FormatInt(id, 10)))
}
