package handlers

import (
	"IEats/internal/diary"
	"IEats/internal/middleware"
	"IEats/internal/service"
	"net/http"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
)

var monthRe = regexp.MustCompile(`^\d{4}-\d{2}$`)

// RestaurantHandler: производные представления. Всё считается заново
// из актуального списка записей на каждый запрос.
type RestaurantHandler struct {
	EntryService *service.EntryService
	Logger       *zap.SugaredLogger
	now          func() time.Time
}

func NewRestaurantHandler(entryService *service.EntryService, logger *zap.SugaredLogger) *RestaurantHandler {
	return &RestaurantHandler{EntryService: entryService, Logger: logger, now: time.Now}
}

func (h *RestaurantHandler) entries(w http.ResponseWriter, r *http.Request, op string) ([]diary.Entry, bool) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	entries, err := h.EntryService.List(r.Context(), userID)
	if err != nil {
		writeServiceError(w, h.Logger, op, err)
		return nil, false
	}
	return entries, true
}

// Restaurants: сводки по ресторанам. ?tag= фильтрует по тегу, ?sort=rating|visits|name.
// ?group=rating дополнительно раскладывает рестораны по округлённому рейтингу.
func (h *RestaurantHandler) Restaurants(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	order := diary.SortOrder(strings.ToLower(q.Get("sort")))
	switch order {
	case "", diary.SortByRating, diary.SortByVisits, diary.SortByName:
	default:
		writeInvalid(w, "sort")
		return
	}

	entries, ok := h.entries(w, r, "Restaurants")
	if !ok {
		return
	}

	var list []diary.Restaurant
	if tag := strings.TrimSpace(q.Get("tag")); tag != "" {
		list = diary.WithTag(entries, tag)
	} else {
		list = diary.Restaurants(entries)
	}
	if order != "" {
		diary.Sort(list, order)
	}

	resp := map[string]any{
		"ok":               true,
		"restaurants":      list,
		"tagsByRestaurant": diary.TagsByRestaurant(entries),
		"restaurantsByTag": diary.RestaurantsByTag(entries),
	}
	if q.Get("group") == "rating" {
		resp["groups"] = diary.GroupByRating(list)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Tags: все теги пользователя по алфавиту.
func (h *RestaurantHandler) Tags(w http.ResponseWriter, r *http.Request) {
	entries, ok := h.entries(w, r, "Tags")
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "tags": diary.AllTags(entries)})
}

// Stats: статистика за месяц. Без ?month берётся текущий месяц.
func (h *RestaurantHandler) Stats(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if month != "" && !monthRe.MatchString(month) {
		writeInvalid(w, "month")
		return
	}

	entries, ok := h.entries(w, r, "Stats")
	if !ok {
		return
	}
	months := diary.Months(entries)
	if month == "" {
		month = h.now().UTC().Format("2006-01")
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":     true,
		"stats":  diary.Stats(entries, month),
		"months": months,
	})
}

// Calendar: дни месяца с визитами и, при ?date=, записи за этот день.
func (h *RestaurantHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	month := q.Get("month")
	if month == "" {
		month = h.now().UTC().Format("2006-01")
	}
	if !monthRe.MatchString(month) {
		writeInvalid(w, "month")
		return
	}
	date := q.Get("date")
	if date != "" {
		d, ok := diary.ParseDate(date)
		if !ok {
			writeInvalid(w, "date")
			return
		}
		date = d
	}

	entries, ok := h.entries(w, r, "Calendar")
	if !ok {
		return
	}
	resp := map[string]any{
		"ok":    true,
		"month": month,
		"days":  diary.VisitDays(entries, month),
	}
	if date != "" {
		resp["date"] = date
		resp["entries"] = diary.EntriesOn(entries, date)
	}
	writeJSON(w, http.StatusOK, resp)
}
