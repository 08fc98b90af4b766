package diary

// EntryInput: тело запроса на создание/замену записи. Списки принимаются
// массивом или JSON-текстом, числа: числом или строкой.
type EntryInput struct {
	ID                Number     `json:"id"`
	RestaurantName    string     `json:"restaurantName"`
	RestaurantAddress string     `json:"restaurantAddress"`
	Date              string     `json:"date"`
	OverallRating     Number     `json:"overallRating"`
	Content           string     `json:"content"`
	Images            StringList `json:"images"`
	Image             *string    `json:"image,omitempty"` // legacy: одиночное изображение
	Dishes            StringList `json:"dishes"`
	Tags              StringList `json:"tags"`
}

// WishlistInput: тело запроса на добавление в вишлист.
type WishlistInput struct {
	ID         Number `json:"id"`
	Dish       string `json:"dish"`
	Restaurant string `json:"restaurant"`
	Notes      string `json:"notes"`
	Priority   string `json:"priority"`
	AddedDate  string `json:"addedDate"`
}
