package diary

import "strings"

// Priority: приоритет желаемого блюда.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ParsePriority разбирает приоритет; пустое значение означает medium.
func ParsePriority(s string) (Priority, bool) {
	switch p := Priority(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PriorityMedium, true
	case PriorityHigh, PriorityMedium, PriorityLow:
		return p, true
	default:
		return "", false
	}
}

// Rank возвращает позицию приоритета в выдаче: high, medium, low.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	}
	return 3
}

// WishlistItem: элемент вишлиста.
type WishlistItem struct {
	ID         int64    `json:"id"`
	Dish       string   `json:"dish"`
	Restaurant string   `json:"restaurant"`
	Notes      string   `json:"notes"`
	Priority   Priority `json:"priority"`
	AddedDate  string   `json:"addedDate"`
}
