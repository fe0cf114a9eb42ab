package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/mferns/meal-reservation/internal/model"
)

// MealRepo provides read access to the meals table.  Dates are stored
// as DATE columns and scanned as time.Time (the DSN sets
// parseTime=true and loc=UTC), so no string parsing is needed here.
type MealRepo struct {
	db *sql.DB
}

// NewMealRepo returns a new MealRepo bound to the given database.
func NewMealRepo(db *sql.DB) *MealRepo { return &MealRepo{db: db} }

// GetByID returns a single meal or ErrNotFound.
func (r *MealRepo) GetByID(ctx context.Context, id uint64) (*model.Meal, error) {
	const q = `SELECT id, restaurant_id, name, description, available_date, serving, capacity
	           FROM meals WHERE id = ?`
	var m model.Meal
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&m.ID, &m.RestaurantID, &m.Name, &m.Description, &m.Date, &m.Serving, &m.Capacity,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// ListUpcoming returns the meals a restaurant serves from today
// through the next `days` days, ordered by date and serving.  A days
// value below 1 is clamped to 1 so the caller always gets at least
// today's meals.
func (r *MealRepo) ListUpcoming(ctx context.Context, restaurantID uint64, days int) ([]model.Meal, error) {
	if days < 1 {
		days = 1
	}
	from := time.Now().UTC().Truncate(24 * time.Hour)
	until := from.AddDate(0, 0, days)
	const q = `SELECT id, restaurant_id, name, description, available_date, serving, capacity
	           FROM meals
	           WHERE restaurant_id = ? AND available_date >= ? AND available_date < ?
	           ORDER BY available_date, serving, id`
	rows, err := r.db.QueryContext(ctx, q, restaurantID, from, until)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Meal, 0)
	for rows.Next() {
		var m model.Meal
		if err := rows.Scan(&m.ID, &m.RestaurantID, &m.Name, &m.Description, &m.Date, &m.Serving, &m.Capacity); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
