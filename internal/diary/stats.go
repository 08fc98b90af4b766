package diary

import "sort"

// MonthStats: статистика за месяц.
type MonthStats struct {
	Month         string  `json:"month"`
	Entries       int     `json:"entries"`
	Restaurants   int     `json:"restaurants"`
	AverageRating float64 `json:"averageRating"`
}

// Stats считает статистику за месяц YYYY-MM. Пустой месяц даёт нули.
func Stats(entries []Entry, month string) MonthStats {
	st := MonthStats{Month: month}
	names := make(map[string]struct{})
	total := 0
	for _, e := range entries {
		if Month(e.Date) != month {
			continue
		}
		st.Entries++
		total += e.OverallRating
		names[RestaurantKey(e.RestaurantName)] = struct{}{}
	}
	st.Restaurants = len(names)
	if st.Entries > 0 {
		st.AverageRating = roundRating(float64(total) / float64(st.Entries))
	}
	return st
}

// Months возвращает месяцы, в которых есть записи, от новых к старым.
func Months(entries []Entry) []string {
	set := make(map[string]struct{})
	for _, e := range entries {
		if m := Month(e.Date); m != "" {
			set[m] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for m := range set {
		out = append(out, m)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(out)))
	return out
}

// VisitDays: даты месяца, в которые есть записи, по возрастанию.
func VisitDays(entries []Entry, month string) []string {
	set := make(map[string]struct{})
	for _, e := range entries {
		if Month(e.Date) == month {
			set[e.Date] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for d := range set {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// EntriesOn возвращает записи за конкретную дату в исходном порядке.
func EntriesOn(entries []Entry, date string) []Entry {
	out := make([]Entry, 0)
	for _, e := range entries {
		if e.Date == date {
			out = append(out, e)
		}
	}
	return out
}
