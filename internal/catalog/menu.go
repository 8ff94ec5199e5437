package catalog

import "github.com/dmitrijs2005/deliciousbites/internal/models"

var defaultItems = []models.CatalogItem{
	{
		ID:          1,
		Name:        "Margherita Pizza",
		Description: "Classic Italian pizza with fresh mozzarella, tomatoes, and basil",
		Price:       1299,
		Glyph:       "🍕",
		Category:    "pizza",
	},
	{
		ID:          2,
		Name:        "Chicken Burger",
		Description: "Juicy chicken patty with lettuce, tomato, and special sauce",
		Price:       899,
		Glyph:       "🍔",
		Category:    "burger",
	},
	{
		ID:          3,
		Name:        "Caesar Salad",
		Description: "Fresh romaine lettuce with parmesan cheese and caesar dressing",
		Price:       999,
		Glyph:       "🥗",
		Category:    "salad",
	},
	{
		ID:          4,
		Name:        "Pasta Carbonara",
		Description: "Creamy pasta with bacon, eggs, and parmesan cheese",
		Price:       1399,
		Glyph:       "🍝",
		Category:    "pasta",
	},
	{
		ID:          5,
		Name:        "Grilled Salmon",
		Description: "Fresh salmon fillet with lemon butter sauce and vegetables",
		Price:       1699,
		Glyph:       "🐟",
		Category:    "seafood",
	},
	{
		ID:          6,
		Name:        "Chocolate Cake",
		Description: "Rich chocolate cake with creamy frosting and chocolate shavings",
		Price:       699,
		Glyph:       "🍰",
		Category:    "dessert",
	},
}
