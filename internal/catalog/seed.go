package catalog

import (
	"context"

	"github.com/tablefare/restaurant-backend/internal/models"
)

// Seed fills the given repositories with the stock catalog. Backed by the
// in-memory repositories it provides read-only content when MongoDB is
// unreachable; backed by the Mongo repositories it initializes a fresh
// database.
func Seed(ctx context.Context, dishes DishRepository, leaders LeaderRepository, promos PromotionRepository) error {
	stockDishes := []*models.Dish{
		{Name: "Uthappizza", Description: "A unique combination of Indian Uthappam and Italian pizza", Image: "images/uthappizza.png", Category: models.CategoryMains, Label: "Hot", Price: 4.99, Featured: true},
		{Name: "Zucchipakoda", Description: "Deep fried Zucchini with chickpea batter", Image: "images/zucchipakoda.png", Category: models.CategoryAppetizer, Price: 1.99},
		{Name: "Vadonut", Description: "A quintessential fusion take on the donut", Image: "images/vadonut.png", Category: models.CategoryAppetizer, Label: "New", Price: 1.99},
		{Name: "ElaiCheese Cake", Description: "New York Style Cheesecake with Indian cardamoms", Image: "images/elaicheesecake.png", Category: models.CategoryDessert, Price: 2.99},
	}
	for _, d := range stockDishes {
		if _, err := dishes.Create(ctx, d); err != nil {
			return err
		}
	}

	stockLeaders := []*models.Leader{
		{Name: "Peter Pan", Image: "images/alberto.png", Designation: "Chief Epicurious Officer", Abbr: "CEO", Description: "Our CEO, Peter, credits his hardworking East Asian immigrant parents for his success.", Featured: false},
		{Name: "Agumbe Tang", Image: "images/alberto.png", Designation: "Executive Chef", Abbr: "EC", Description: "Winner of the prestigious Culinary Chef of the Year award, Chef Agumbe heads our kitchen.", Featured: true},
	}
	for _, l := range stockLeaders {
		if _, err := leaders.Create(ctx, l); err != nil {
			return err
		}
	}

	stockPromos := []*models.Promotion{
		{Name: "Weekend Grand Buffet", Image: "images/buffet.png", Label: "New", Price: 19.99, Description: "Featuring mouthwatering combinations with a choice of five different salads", Featured: true},
	}
	for _, p := range stockPromos {
		if _, err := promos.Create(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// SeedMemory seeds freshly created in-memory repositories, which cannot fail.
func SeedMemory(dishes *MemoryDishRepository, leaders *MemoryLeaderRepository, promos *MemoryPromotionRepository) {
	_ = Seed(context.Background(), dishes, leaders, promos)
}
