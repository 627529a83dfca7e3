// Command catalogd serves the furniture catalog over HTTP from a SQLite
// database. An empty database is seeded with the built-in catalog.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/phanxgames/roomdesigner/catalog"
	"github.com/phanxgames/roomdesigner/internal/catalogapi"
)

func main() {
	cfg := Load()
	ctx := context.Background()

	db, err := catalog.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := seedIfEmpty(ctx, db); err != nil {
		log.Fatalf("init db: %v", err)
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "Catalog Service",
		ErrorHandler: catalogapi.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(catalogapi.Logger())
	app.Use(catalogapi.CORS())

	catalogapi.NewHandler(db).Register(app)

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting Catalog Service on %s (env: %s, db: %s)", addr, cfg.Environment, cfg.DBPath)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// seedIfEmpty applies the schema and loads the built-in products into a
// database that has none.
func seedIfEmpty(ctx context.Context, db *catalog.SQLiteProvider) error {
	if err := db.Migrate(ctx); err != nil {
		return err
	}
	n, err := db.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	products, err := catalog.Default().Products(ctx)
	if err != nil {
		return err
	}
	if err := db.Seed(ctx, products); err != nil {
		return err
	}
	log.Printf("Seeded %d products", len(products))
	return nil
}
