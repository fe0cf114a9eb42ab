package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"
)

// EnsureSchema creates the catalog tables when they do not exist.  The
// service owns no catalog write path beyond this bootstrap, so plain
// CREATE TABLE IF NOT EXISTS statements are enough; there is no
// versioned migration history to maintain.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS restaurants (
			id          BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
			name        VARCHAR(255) NOT NULL,
			location    VARCHAR(255) NOT NULL DEFAULT '',
			description TEXT NOT NULL
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		`CREATE TABLE IF NOT EXISTS meals (
			id             BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
			restaurant_id  BIGINT UNSIGNED NOT NULL,
			name           VARCHAR(255) NOT NULL,
			description    TEXT NOT NULL,
			available_date DATE NOT NULL,
			serving        VARCHAR(16) NOT NULL,
			capacity       INT NOT NULL,
			KEY idx_meals_restaurant_date (restaurant_id, available_date),
			CONSTRAINT fk_meals_restaurant FOREIGN KEY (restaurant_id) REFERENCES restaurants(id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// demo menu rotated across the seeded restaurants
var demoRestaurants = []struct {
	name, location, description string
	meals                       []struct{ name, description string }
}{
	{
		name: "Tasca do Manel", location: "Aveiro, Portugal",
		description: "Traditional Portuguese tavern next to campus.",
		meals: []struct{ name, description string }{
			{"Francesinha", "Porto sandwich with meat, cheese and spicy sauce"},
			{"Bacalhau à Brás", "Codfish with fried potatoes, onions, eggs and olives"},
		},
	},
	{
		name: "Marisqueira Atlântico", location: "Costa Nova, Portugal",
		description: "Seafood by the beach.",
		meals: []struct{ name, description string }{
			{"Cataplana de Marisco", "Seafood stew with clams, prawns and fish"},
			{"Arroz de Tamboril", "Monkfish rice with prawns and peppers"},
		},
	},
	{
		name: "Pizzaria Bella Italia", location: "Aveiro, Portugal",
		description: "Wood-fired pizza and pasta.",
		meals: []struct{ name, description string }{
			{"Pizza Margherita", "Tomato sauce, mozzarella and basil"},
			{"Pizza Pepperoni", "Tomato sauce, mozzarella and pepperoni"},
		},
	},
}

// SeedDemoData inserts a small demo catalog when the restaurants table
// is empty: three restaurants, each serving lunch and dinner for the
// next seven days.  Idempotent — a populated catalog is left alone.
func SeedDemoData(ctx context.Context, db *sql.DB) error {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM restaurants`).Scan(&count); err != nil {
		return fmt.Errorf("seed: count restaurants: %w", err)
	}
	if count > 0 {
		return nil
	}
	today := time.Now().UTC().Truncate(24 * time.Hour)
	for _, r := range demoRestaurants {
		res, err := db.ExecContext(ctx,
			`INSERT INTO restaurants (name, location, description) VALUES (?, ?, ?)`,
			r.name, r.location, r.description)
		if err != nil {
			return fmt.Errorf("seed: insert restaurant: %w", err)
		}
		restID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("seed: restaurant id: %w", err)
		}
		for day := 0; day < 7; day++ {
			date := today.AddDate(0, 0, day)
			for i, serving := range []string{"lunch", "dinner"} {
				meal := r.meals[i%len(r.meals)]
				capacity := 40
				if serving == "lunch" {
					capacity = 80
				}
				if _, err := db.ExecContext(ctx,
					`INSERT INTO meals (restaurant_id, name, description, available_date, serving, capacity)
					 VALUES (?, ?, ?, ?, ?, ?)`,
					restID, meal.name, meal.description, date, serving, capacity); err != nil {
					return fmt.Errorf("seed: insert meal: %w", err)
				}
			}
		}
	}
	log.Printf("seeded demo catalog: %d restaurants, 7 days of meals", len(demoRestaurants))
	return nil
}
