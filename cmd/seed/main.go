package main

import (
	"context"
	"log"

	"github.com/recipebox/backend/config"
	"github.com/recipebox/backend/internal/database"
	"github.com/recipebox/backend/internal/service"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }

var seedRecipes = []service.CreateRecipeInput{
	{
		Title:    "Tomato Soup",
		CookTime: intPtr(20),
		PrepTime: intPtr(10),
		Tips:     "A splash of cream at the end rounds out the acidity.",
		Ingredients: []service.IngredientInput{
			{Name: "tomatoes", Quantity: floatPtr(6), Unit: strPtr("whole")},
			{Name: "vegetable stock", Quantity: floatPtr(4), Unit: strPtr("cups")},
			{Name: "olive oil", Quantity: floatPtr(2), Unit: strPtr("tbsp")},
		},
		Directions: []service.DirectionInput{
			{StepNumber: 1, Description: "Roast the tomatoes until blistered."},
			{StepNumber: 2, Description: "Simmer with stock for 15 minutes."},
			{StepNumber: 3, Description: "Blend until smooth and season."},
		},
	},
	{
		Title:    "Garlic Flatbread",
		CookTime: intPtr(8),
		PrepTime: intPtr(90),
		Ingredients: []service.IngredientInput{
			{Name: "flour", Quantity: floatPtr(2.5), Unit: strPtr("cups")},
			{Name: "yeast", Quantity: floatPtr(1), Unit: strPtr("tsp")},
			{Name: "garlic", Quantity: floatPtr(3), Unit: strPtr("cloves")},
		},
		Directions: []service.DirectionInput{
			{StepNumber: 1, Description: "Knead the dough and let it rise for an hour."},
			{StepNumber: 2, Description: "Shape, top with garlic, and bake hot."},
		},
	},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	ctx := context.Background()
	authService := service.NewAuthService(db)
	userService := service.NewUserService(db, authService)
	recipeService := service.NewRecipeService(db)

	user, err := userService.Register(ctx, "demo", "demo@example.com", "demo-password")
	if err != nil {
		log.Fatalf("failed to create demo user: %v", err)
	}
	log.Printf("created user %s (id %d)", user.Username, user.ID)

	for i := range seedRecipes {
		recipe, err := recipeService.Create(ctx, user, &seedRecipes[i])
		if err != nil {
			log.Fatalf("failed to seed recipe %q: %v", seedRecipes[i].Title, err)
		}
		log.Printf("created recipe %s (id %d)", recipe.Title, recipe.ID)
	}
}
