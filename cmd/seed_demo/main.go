package main

import (
	"context"
	"log"
	"math/rand"

	"github.com/kolo-pohody/backend/config"
	"github.com/kolo-pohody/backend/internal/database"
	"github.com/kolo-pohody/backend/internal/models"
	"github.com/kolo-pohody/backend/internal/service"
	"github.com/kolo-pohody/backend/internal/types"
)

// Seeds the demo account with two weeks of wellness scores and a few
// journal entries, for local development and demos.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.RunMigrations(db, "migrations"); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	ctx := context.Background()
	authService := service.NewAuthService(db, cfg.JWTSecret)
	user, err := authService.ResolveOrCreateUser(ctx, "demo@example.com", "Demo User", models.ProviderDemo, "demo_id", "")
	if err != nil {
		log.Fatalf("Failed to create demo user: %v", err)
	}
	log.Printf("Demo user: %s (%s)", user.Email, user.ID)

	wellnessService := service.NewWellnessService(db)
	categories, err := wellnessService.ListCategories(ctx, user.ID)
	if err != nil {
		log.Fatalf("Failed to list categories: %v", err)
	}

	for daysAgo := 14; daysAgo >= 0; daysAgo-- {
		date := types.Today().AddDays(-daysAgo)
		for _, category := range categories {
			score := 4 + rand.Intn(6)
			req := types.UpsertEntryRequest{
				CategoryID: category.ID,
				Score:      &score,
				EntryDate:  date.String(),
			}
			if _, _, err := wellnessService.UpsertEntry(ctx, user.ID, &req); err != nil {
				log.Fatalf("Failed to seed entry for %s on %s: %v", category.Name, date, err)
			}
		}
	}
	log.Printf("Seeded wellness entries for %d categories over 15 days", len(categories))

	journalService := service.NewJournalService(db)
	samples := []types.CreateJournalEntryRequest{
		{
			Title:     "Ranní procházka",
			Content:   "Dnes jsem začal den procházkou v parku. Čerstvý vzduch mi pomohl si uspořádat myšlenky.",
			EntryDate: types.Today().AddDays(-2).String(),
			Tags:      types.TagList{"ráno", "pohyb"},
		},
		{
			Title:     "Vděčnost",
			Content:   "Tři věci, za které jsem dnes vděčný: rodina, zdraví a dobrá káva.",
			EntryDate: types.Today().AddDays(-1).String(),
			Tags:      types.TagList{"vděčnost"},
		},
		{
			Title:   "Dnešní reflexe",
			Content: "Povedlo se mi dokončit rozdělanou práci a večer si odpočinout bez obrazovky.",
			Tags:    types.TagList{"práce", "odpočinek"},
		},
	}
	for _, sample := range samples {
		if _, err := journalService.Create(ctx, user.ID, &sample); err != nil {
			log.Fatalf("Failed to seed journal entry %q: %v", sample.Title, err)
		}
	}
	log.Printf("Seeded %d journal entries", len(samples))
}
