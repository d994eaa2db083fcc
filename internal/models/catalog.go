package models

import "time"

// Dish categories accepted by the API.
const (
	CategoryAppetizer = "appetizer"
	CategoryMains     = "mains"
	CategoryDessert   = "dessert"
	CategoryBeverage  = "beverage"
)

// ValidCategory reports whether c is one of the accepted dish categories.
func ValidCategory(c string) bool {
	switch c {
	case CategoryAppetizer, CategoryMains, CategoryDessert, CategoryBeverage:
		return true
	}
	return false
}

// DishComment is a review embedded in a dish document. Author holds the
// user id of the commenter.
type DishComment struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Rating    int       `bson:"rating" json:"rating"`
	Comment   string    `bson:"comment" json:"comment"`
	Author    string    `bson:"author" json:"author"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Dish is a menu item. Name is unique across dishes.
type Dish struct {
	ID          string        `bson:"_id,omitempty" json:"id"`
	Name        string        `bson:"name" json:"name"`
	Description string        `bson:"description" json:"description"`
	Image       string        `bson:"image" json:"image"`
	Category    string        `bson:"category" json:"category"`
	Label       string        `bson:"label,omitempty" json:"label"`
	Price       float64       `bson:"price" json:"price"`
	Featured    bool          `bson:"featured" json:"featured"`
	Comments    []DishComment `bson:"comments" json:"comments"`
	CreatedAt   time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// Leader is a staff profile shown on the about page.
type Leader struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Image       string    `bson:"image" json:"image"`
	Designation string    `bson:"designation" json:"designation"`
	Abbr        string    `bson:"abbr" json:"abbr"`
	Description string    `bson:"description" json:"description"`
	Featured    bool      `bson:"featured" json:"featured"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Promotion is a featured offer.
type Promotion struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Image       string    `bson:"image" json:"image"`
	Label       string    `bson:"label,omitempty" json:"label"`
	Price       float64   `bson:"price" json:"price"`
	Description string    `bson:"description" json:"description"`
	Featured    bool      `bson:"featured" json:"featured"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}
