// Package cache хранит снимки списка записей пользователя между запросами.
// Снимок заменяется целиком: любая мутация сбрасывает его, следующее чтение
// перезагружает список из хранилища.
package cache

import (
	"IEats/internal/diary"
	"strconv"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Snapshots: кэш снимков записей по пользователям. Нулевой TTL отключает кэш.
//
// У каждого пользователя есть версия, которую увеличивает Invalidate. Загрузчик
// запоминает версию до чтения из хранилища и кладёт снимок только если версия
// не изменилась, поэтому чтение, начатое до мутации, не перезапишет сброс.
type Snapshots struct {
	c   *gocache.Cache
	ttl time.Duration

	mu       sync.Mutex
	versions map[int64]uint64
}

// NewSnapshots создаёт кэш со временем жизни снимка ttl.
func NewSnapshots(ttl time.Duration) *Snapshots {
	if ttl <= 0 {
		return &Snapshots{}
	}
	return &Snapshots{
		c:        gocache.New(ttl, 2*ttl),
		ttl:      ttl,
		versions: make(map[int64]uint64),
	}
}

func key(userID int64) string { return strconv.FormatInt(userID, 10) }

// Get возвращает копию снимка пользователя, если он есть.
func (s *Snapshots) Get(userID int64) ([]diary.Entry, bool) {
	if s == nil || s.c == nil {
		return nil, false
	}
	v, ok := s.c.Get(key(userID))
	if !ok {
		return nil, false
	}
	entries, ok := v.([]diary.Entry)
	if !ok {
		return nil, false
	}
	return clone(entries), true
}

// Version возвращает текущую версию снимка пользователя; её передают в Put.
func (s *Snapshots) Version(userID int64) uint64 {
	if s == nil || s.c == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.versions[userID]
}

// Put сохраняет снимок, если с момента Version не было Invalidate.
// Возвращает true, если снимок сохранён.
func (s *Snapshots) Put(userID int64, version uint64, entries []diary.Entry) bool {
	if s == nil || s.c == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.versions[userID] != version {
		return false
	}
	s.c.Set(key(userID), clone(entries), gocache.DefaultExpiration)
	return true
}

// Invalidate сбрасывает снимок пользователя.
func (s *Snapshots) Invalidate(userID int64) {
	if s == nil || s.c == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.versions[userID]++
	s.c.Delete(key(userID))
}

// Len: число хранимых снимков.
func (s *Snapshots) Len() int {
	if s == nil || s.c == nil {
		return 0
	}
	return s.c.ItemCount()
}

// clone копирует срезы, чтобы вызывающий код не мог изменить снимок.
func clone(in []diary.Entry) []diary.Entry {
	out := make([]diary.Entry, len(in))
	for i, e := range in {
		e.Images = append([]string{}, e.Images...)
		e.Dishes = append([]string{}, e.Dishes...)
		e.Tags = append([]string{}, e.Tags...)
		out[i] = e
	}
	return out
}
