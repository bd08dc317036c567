package menu

// StorageKey is the backend key holding the menu document.
const StorageKey = "menuData"

// Data is the stored menu document.
type Data struct {
	Dishes []Dish `json:"dishes"`
}

// Dish is a single menu entry. Image is a path relative to the app's static assets.
type Dish struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
}

// Default returns the menu written on first use.
func Default() Data {
	return Data{
		Dishes: []Dish{
			{ID: 1, Name: "糖醋排骨", Price: 38, Image: "/static/dishes/tangcupaigu.jpg"},
			{ID: 2, Name: "西红柿炒鸡蛋", Price: 18, Image: "/static/dishes/xihongshichaojidan.jpg"},
		},
	}
}
