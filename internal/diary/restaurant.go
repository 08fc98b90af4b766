package diary

import (
	"math"
	"sort"
	"strings"
)

// Restaurant: сводка по ресторану, вычисляемая из записей. Нигде не хранится.
type Restaurant struct {
	Name          string  `json:"name"`
	Address       string  `json:"address"`
	VisitCount    int     `json:"visitCount"`
	TotalRating   int     `json:"-"`
	AverageRating float64 `json:"averageRating"`
	Image         *string `json:"image"`
}

// RestaurantKey возвращает ключ группировки: имя без учёта регистра.
func RestaurantKey(name string) string {
	return strings.ToLower(name)
}

// roundRating округляет до одного знака после запятой.
func roundRating(v float64) float64 {
	return math.Round(v*10) / 10
}

// Restaurants группирует записи по ресторану за один проход в порядке записей.
// Имя берётся из первой записи группы, адрес и изображение: из первой записи,
// где они непустые. Среднее пересчитывается после каждой записи.
func Restaurants(entries []Entry) []Restaurant {
	index := make(map[string]int)
	out := make([]Restaurant, 0)

	for _, e := range entries {
		key := RestaurantKey(e.RestaurantName)
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, Restaurant{Name: e.RestaurantName})
		}
		r := &out[i]
		r.VisitCount++
		r.TotalRating += e.OverallRating
		r.AverageRating = roundRating(float64(r.TotalRating) / float64(r.VisitCount))

		if r.Address == "" && strings.TrimSpace(e.RestaurantAddress) != "" {
			r.Address = e.RestaurantAddress
		}
		if r.Image == nil {
			if cover := entryCover(e); cover != nil {
				r.Image = cover
			}
		}
	}
	return out
}

func entryCover(e Entry) *string {
	if e.CoverImage != nil && *e.CoverImage != "" {
		return e.CoverImage
	}
	return CoverOf(e.Images)
}

// TagsByRestaurant строит отображение имя ресторана -> различные теги его записей
// в порядке первого появления. Имя: как в первой записи ресторана.
func TagsByRestaurant(entries []Entry) map[string][]string {
	names := make(map[string]string)
	seen := make(map[string]map[string]struct{})
	out := make(map[string][]string)

	for _, e := range entries {
		key := RestaurantKey(e.RestaurantName)
		name, ok := names[key]
		if !ok {
			name = e.RestaurantName
			names[key] = name
			seen[key] = make(map[string]struct{})
			out[name] = []string{}
		}
		for _, t := range e.Tags {
			if t == "" {
				continue
			}
			if _, dup := seen[key][t]; dup {
				continue
			}
			seen[key][t] = struct{}{}
			out[name] = append(out[name], t)
		}
	}
	return out
}

// RestaurantsByTag строит обратное отображение: тег -> различные имена ресторанов.
func RestaurantsByTag(entries []Entry) map[string][]string {
	out := make(map[string][]string)
	for name, tags := range TagsByRestaurant(entries) {
		for _, t := range tags {
			out[t] = append(out[t], name)
		}
	}
	for t := range out {
		sort.Strings(out[t])
	}
	return out
}

// AllTags возвращает все различные теги, отсортированные по алфавиту.
func AllTags(entries []Entry) []string {
	set := make(map[string]struct{})
	for _, e := range entries {
		for _, t := range e.Tags {
			if t != "" {
				set[t] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// WithTag оставляет рестораны, у которых хотя бы одна запись отмечена тегом.
func WithTag(entries []Entry, tag string) []Restaurant {
	tagged := make(map[string]struct{})
	for _, e := range entries {
		for _, t := range e.Tags {
			if t == tag {
				tagged[RestaurantKey(e.RestaurantName)] = struct{}{}
				break
			}
		}
	}
	var out []Restaurant
	for _, r := range Restaurants(entries) {
		if _, ok := tagged[RestaurantKey(r.Name)]; ok {
			out = append(out, r)
		}
	}
	if out == nil {
		out = []Restaurant{}
	}
	return out
}

// SortOrder: порядок выдачи ресторанов.
type SortOrder string

const (
	SortByRating SortOrder = "rating"
	SortByVisits SortOrder = "visits"
	SortByName   SortOrder = "name"
)

// Sort упорядочивает рестораны на месте. Неизвестный порядок сортирует по рейтингу.
func Sort(list []Restaurant, order SortOrder) {
	byName := func(a, b Restaurant) bool {
		return RestaurantKey(a.Name) < RestaurantKey(b.Name)
	}
	switch order {
	case SortByName:
		sort.SliceStable(list, func(i, j int) bool { return byName(list[i], list[j]) })
	case SortByVisits:
		sort.SliceStable(list, func(i, j int) bool {
			if list[i].VisitCount != list[j].VisitCount {
				return list[i].VisitCount > list[j].VisitCount
			}
			return byName(list[i], list[j])
		})
	default:
		sort.SliceStable(list, func(i, j int) bool {
			if list[i].AverageRating != list[j].AverageRating {
				return list[i].AverageRating > list[j].AverageRating
			}
			return list[i].VisitCount > list[j].VisitCount
		})
	}
}

// RatingGroup: рестораны с одинаковым округлённым средним рейтингом.
type RatingGroup struct {
	Rating      int          `json:"rating"`
	Restaurants []Restaurant `json:"restaurants"`
}

// GroupByRating раскладывает рестораны по округлённому среднему (5..1).
// Пустые группы пропускаются, рестораны внутри группы отсортированы по рейтингу.
func GroupByRating(list []Restaurant) []RatingGroup {
	buckets := make(map[int][]Restaurant)
	for _, r := range list {
		rating := int(math.Round(r.AverageRating))
		if rating < 1 || rating > 5 {
			continue
		}
		buckets[rating] = append(buckets[rating], r)
	}
	out := make([]RatingGroup, 0, len(buckets))
	for rating := 5; rating >= 1; rating-- {
		group, ok := buckets[rating]
		if !ok {
			continue
		}
		Sort(group, SortByRating)
		out = append(out, RatingGroup{Rating: rating, Restaurants: group})
	}
	return out
}
