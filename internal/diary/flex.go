package diary

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number: числовое поле, которое клиенты присылают то числом, то строкой.
// Нечисловое значение не считается ошибкой декодирования: Valid остаётся false,
// а решение принимает валидация.
type Number struct {
	Value float64
	Valid bool
}

// NumberOf создаёт валидное число.
func NumberOf(v float64) Number { return Number{Value: v, Valid: true} }

func (n *Number) UnmarshalJSON(b []byte) error {
	*n = Number{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		*n = NumberOf(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			*n = NumberOf(f)
		}
	}
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// IsInt сообщает, что значение задано и является целым числом в пределах int64.
func (n Number) IsInt() bool {
	return n.Valid && n.Value == math.Trunc(n.Value) && math.Abs(n.Value) < math.MaxInt64
}

// Int64 возвращает целое значение или 0.
func (n Number) Int64() int64 {
	if !n.IsInt() {
		return 0
	}
	return int64(n.Value)
}

// Rating приводит значение к целому рейтингу, 0: если значение не число.
func (n Number) Rating() int {
	if !n.Valid || math.Abs(n.Value) > math.MaxInt32 {
		return 0
	}
	return int(math.Round(n.Value))
}

// StringList: список строк, пришедший массивом или сериализованным JSON-текстом.
// Всё, что разобрать не удалось, превращается в пустой список.
type StringList []string

func (l *StringList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*l = nil
	case b[0] == '[':
		*l = stringsOf(b)
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			*l = StringList{}
			return nil
		}
		*l = ParseList(s)
	default:
		*l = StringList{}
	}
	return nil
}

// ParseList разбирает сериализованный JSON-массив строк. Нестроковые элементы
// отбрасываются, при ошибке разбора возвращается пустой список.
func ParseList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{}
	}
	return stringsOf([]byte(raw))
}

func stringsOf(b []byte) []string {
	var items []any
	if err := json.Unmarshal(b, &items); err != nil {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s, ok := it.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// CleanList обрезает пробелы и выбрасывает пустые строки, сохраняя порядок.
func CleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
