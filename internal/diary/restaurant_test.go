package diary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func mkEntry(id int64, name string, rating int, tags ...string) Entry {
	e := Entry{ID: id, RestaurantName: name, RestaurantAddress: "addr", Date: "2024-03-01", OverallRating: rating, Tags: tags}
	e.Normalize()
	return e
}

func TestRestaurants_CaseInsensitiveGrouping(t *testing.T) {
	e1 := mkEntry(1, "Sushi Taro", 4, "lunch")
	e1.Dishes = []string{"salmon"}
	e2 := mkEntry(2, "sushi taro", 5)

	list := Restaurants([]Entry{e1, e2})
	require.Len(t, list, 1)
	assert.Equal(t, "Sushi Taro", list[0].Name)
	assert.Equal(t, 2, list[0].VisitCount)
	assert.Equal(t, 4.5, list[0].AverageRating)

	// обновили рейтинг первой записи — пересчёт с нуля
	e1.OverallRating = 2
	list = Restaurants([]Entry{e1, e2})
	require.Len(t, list, 1)
	assert.Equal(t, 3.5, list[0].AverageRating)
}

func TestRestaurants_AverageIndependentOfOrder(t *testing.T) {
	entries := []Entry{
		mkEntry(1, "A", 5),
		mkEntry(2, "a", 4),
		mkEntry(3, "B", 1),
		mkEntry(4, "A", 4),
	}
	reversed := []Entry{entries[3], entries[2], entries[1], entries[0]}

	byKey := func(list []Restaurant) map[string]Restaurant {
		m := map[string]Restaurant{}
		for _, r := range list {
			m[RestaurantKey(r.Name)] = r
		}
		return m
	}
	got, gotRev := byKey(Restaurants(entries)), byKey(Restaurants(reversed))
	assert.Equal(t, 3, got["a"].VisitCount)
	assert.Equal(t, 4.3, got["a"].AverageRating)
	assert.Equal(t, got["a"].AverageRating, gotRev["a"].AverageRating)
	assert.Equal(t, got["a"].VisitCount, gotRev["a"].VisitCount)
	assert.Equal(t, 1, got["b"].VisitCount)
	// отображаемое имя — из первой записи группы
	assert.Equal(t, "A", got["a"].Name)
	assert.Equal(t, "A", gotRev["a"].Name)
}

func TestRestaurants_AddressAndImageFirstNonEmpty(t *testing.T) {
	e1 := Entry{ID: 1, RestaurantName: "Cafe", RestaurantAddress: " ", OverallRating: 3}
	e1.Normalize()
	e2 := Entry{ID: 2, RestaurantName: "Cafe", RestaurantAddress: "Main st 1", OverallRating: 3, Images: []string{"img-2", "img-3"}}
	e2.Normalize()
	e3 := Entry{ID: 3, RestaurantName: "Cafe", RestaurantAddress: "Other st", OverallRating: 3, Images: []string{"img-4"}}
	e3.Normalize()

	list := Restaurants([]Entry{e1, e2, e3})
	require.Len(t, list, 1)
	assert.Equal(t, "Main st 1", list[0].Address)
	if assert.NotNil(t, list[0].Image) {
		assert.Equal(t, "img-2", *list[0].Image)
	}
}

func TestRestaurants_Empty(t *testing.T) {
	list := Restaurants(nil)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestTagLookups(t *testing.T) {
	entries := []Entry{
		mkEntry(1, "Sushi Taro", 4, "lunch", "fish"),
		mkEntry(2, "sushi taro", 5, "lunch", "date"),
		mkEntry(3, "Ramen Ya", 3, "lunch"),
		mkEntry(4, "Bistro", 2),
	}

	tags := TagsByRestaurant(entries)
	assert.Equal(t, []string{"lunch", "fish", "date"}, tags["Sushi Taro"])
	assert.Equal(t, []string{"lunch"}, tags["Ramen Ya"])
	assert.Equal(t, []string{}, tags["Bistro"])

	byTag := RestaurantsByTag(entries)
	assert.Equal(t, []string{"Ramen Ya", "Sushi Taro"}, byTag["lunch"])
	assert.Equal(t, []string{"Sushi Taro"}, byTag["date"])
	_, ok := byTag["missing"]
	assert.False(t, ok)

	assert.Equal(t, []string{"date", "fish", "lunch"}, AllTags(entries))

	withFish := WithTag(entries, "fish")
	require.Len(t, withFish, 1)
	assert.Equal(t, 2, withFish[0].VisitCount)
	assert.Empty(t, WithTag(entries, "nope"))
}

func TestSortAndGroupByRating(t *testing.T) {
	list := []Restaurant{
		{Name: "b", VisitCount: 1, AverageRating: 3.4},
		{Name: "A", VisitCount: 5, AverageRating: 4.6},
		{Name: "c", VisitCount: 2, AverageRating: 4.5},
		{Name: "z", VisitCount: 1, AverageRating: 0},
	}

	Sort(list, SortByName)
	assert.Equal(t, "A", list[0].Name)
	assert.Equal(t, "z", list[3].Name)

	Sort(list, SortByVisits)
	assert.Equal(t, "A", list[0].Name)
	assert.Equal(t, "c", list[1].Name)

	Sort(list, SortByRating)
	assert.Equal(t, []string{"A", "c", "b", "z"}, []string{list[0].Name, list[1].Name, list[2].Name, list[3].Name})

	groups := GroupByRating(list)
	require.Len(t, groups, 2)
	assert.Equal(t, 5, groups[0].Rating)
	assert.Len(t, groups[0].Restaurants, 2) // 4.6 и 4.5 округляются до 5
	assert.Equal(t, 3, groups[1].Rating)
}
