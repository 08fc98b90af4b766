// Package diary описывает доменные типы дневника (запись, желаемое блюдо, ресторан),
// нормализацию входных и хранимых данных и производные представления,
// которые строятся заново из списка записей при каждом чтении.
package diary

import (
	"encoding/json"
	"regexp"
	"strings"
	"time"
)

// DateLayout: формат календарной даты без времени.
const DateLayout = "2006-01-02"

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Entry: запись дневника в том виде, в котором её видит клиент.
type Entry struct {
	ID                int64    `json:"id"`
	RestaurantName    string   `json:"restaurantName"`
	RestaurantAddress string   `json:"restaurantAddress"`
	Date              string   `json:"date"`
	OverallRating     int      `json:"overallRating"`
	Content           string   `json:"content"`
	Images            []string `json:"images"`
	CoverImage        *string  `json:"coverImage"`
	Image             *string  `json:"image"` // дубль CoverImage для старых клиентов
	Dishes            []string `json:"dishes"`
	Tags              []string `json:"tags"`
}

// UnmarshalJSON принимает разнородные формы записи: рейтинг строкой, дату с временем,
// списки строкой с JSON, images_json вместо images. Ошибки разбора списков не фатальны.
func (e *Entry) UnmarshalJSON(b []byte) error {
	var raw struct {
		ID                Number     `json:"id"`
		RestaurantName    string     `json:"restaurantName"`
		RestaurantAddress string     `json:"restaurantAddress"`
		Date              string     `json:"date"`
		OverallRating     Number     `json:"overallRating"`
		Content           string     `json:"content"`
		Images            StringList `json:"images"`
		ImagesJSON        *string    `json:"images_json"`
		CoverImage        *string    `json:"coverImage"`
		Image             *string    `json:"image"`
		Dishes            StringList `json:"dishes"`
		Tags              StringList `json:"tags"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	images := []string(raw.Images)
	if len(images) == 0 && raw.ImagesJSON != nil {
		images = ParseList(*raw.ImagesJSON)
	}
	legacy := raw.Image
	if legacy == nil {
		legacy = raw.CoverImage
	}

	*e = Entry{
		ID:                raw.ID.Int64(),
		RestaurantName:    raw.RestaurantName,
		RestaurantAddress: raw.RestaurantAddress,
		Date:              raw.Date,
		OverallRating:     raw.OverallRating.Rating(),
		Content:           raw.Content,
		Images:            images,
		Image:             legacy,
		Dishes:            raw.Dishes,
		Tags:              raw.Tags,
	}
	e.Normalize()
	return nil
}

// Normalize приводит запись к каноничной форме: дата без времени, непустые срезы,
// images с откатом на одиночное legacy-изображение, обложка = первое изображение.
// Никогда не возвращает ошибку.
func (e *Entry) Normalize() {
	e.Date = NormalizeDate(e.Date)
	if e.Dishes == nil {
		e.Dishes = []string{}
	}
	if e.Tags == nil {
		e.Tags = []string{}
	}
	if len(e.Images) == 0 {
		e.Images = []string{}
		if e.Image != nil && *e.Image != "" {
			e.Images = []string{*e.Image}
		}
	}
	e.CoverImage = CoverOf(e.Images)
	e.Image = e.CoverImage
}

// CoverOf возвращает первое изображение или nil.
func CoverOf(images []string) *string {
	if len(images) == 0 {
		return nil
	}
	cover := images[0]
	return &cover
}

// NormalizeDate отрезает от значения время: "2024-03-01T10:00:00Z" и
// "2024-03-01 00:00:00" превращаются в "2024-03-01". Формат не проверяется,
// используется только при чтении.
func NormalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, "T "); i >= 0 {
		s = s[:i]
	}
	return s
}

// timestampLayouts: допустимые формы даты со временем на входе.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseDate проверяет, что значение является датой YYYY-MM-DD или полной
// меткой времени, и возвращает календарную дату. Мусор после даты не допускается.
func ParseDate(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if dateRe.MatchString(s) {
		if _, err := time.Parse(DateLayout, s); err != nil {
			return "", false
		}
		return s, true
	}
	for _, layout := range timestampLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return s[:len(DateLayout)], true
		}
	}
	return "", false
}

// Month возвращает YYYY-MM из даты записи, или пустую строку.
func Month(date string) string {
	if len(date) < 7 {
		return ""
	}
	return date[:7]
}
