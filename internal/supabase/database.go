package supabase

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"schoolmerch-backend/internal/models"
)

type DatabaseClient struct {
	db *sql.DB
}

func NewDatabaseClient(connectionString string) (*DatabaseClient, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DatabaseClient{db: db}, nil
}

func (d *DatabaseClient) Close() error {
	return d.db.Close()
}

func (d *DatabaseClient) GetSchool(ctx context.Context, schoolID uuid.UUID) (*models.School, error) {
	var school models.School
	err := d.db.QueryRowContext(ctx, `
		SELECT id, name, short_code, created_at
		FROM schools
		WHERE id = $1
	`, schoolID).Scan(&school.ID, &school.Name, &school.ShortCode, &school.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get school: %w", err)
	}

	return &school, nil
}

func (d *DatabaseClient) GetTextile(ctx context.Context, textileID uuid.UUID) (*models.Textile, error) {
	var textile models.Textile
	err := d.db.QueryRowContext(ctx, `
		SELECT id, name, brand, base_price, available_colors, available_sizes, created_at
		FROM textile_catalog
		WHERE id = $1
	`, textileID).Scan(
		&textile.ID, &textile.Name, &textile.Brand, &textile.BasePrice,
		&textile.AvailableColors, &textile.AvailableSizes, &textile.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get textile: %w", err)
	}

	return &textile, nil
}

func (d *DatabaseClient) GetTextilePrices(ctx context.Context, textileID uuid.UUID) ([]models.TextilePrice, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, textile_id, price, active, created_at
		FROM textile_prices
		WHERE textile_id = $1
		ORDER BY created_at DESC
	`, textileID)
	if err != nil {
		return nil, fmt.Errorf("failed to get textile prices: %w", err)
	}
	defer rows.Close()

	var prices []models.TextilePrice
	for rows.Next() {
		var p models.TextilePrice
		if err := rows.Scan(&p.ID, &p.TextileID, &p.Price, &p.Active, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan textile price: %w", err)
		}
		prices = append(prices, p)
	}

	return prices, rows.Err()
}

func (d *DatabaseClient) GetPrintMethodCostsByMethod(ctx context.Context, method string) ([]models.PrintMethodCost, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, method, cost_per_unit, cost_50_units, cost_100_units, active, created_at
		FROM print_method_costs
		WHERE method = $1 AND active = TRUE
		ORDER BY created_at DESC
	`, method)
	if err != nil {
		return nil, fmt.Errorf("failed to get print method costs: %w", err)
	}
	defer rows.Close()

	var costs []models.PrintMethodCost
	for rows.Next() {
		var c models.PrintMethodCost
		err := rows.Scan(&c.ID, &c.Method, &c.CostPerUnit, &c.Cost50Units, &c.Cost100Units, &c.Active, &c.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan print method cost: %w", err)
		}
		costs = append(costs, c)
	}

	return costs, rows.Err()
}

func (d *DatabaseClient) GetPrintMethodCost(ctx context.Context, id uuid.UUID) (*models.PrintMethodCost, error) {
	var c models.PrintMethodCost
	err := d.db.QueryRowContext(ctx, `
		SELECT id, method, cost_per_unit, cost_50_units, cost_100_units, active, created_at
		FROM print_method_costs
		WHERE id = $1
	`, id).Scan(&c.ID, &c.Method, &c.CostPerUnit, &c.Cost50Units, &c.Cost100Units, &c.Active, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get print method cost: %w", err)
	}

	return &c, nil
}

func (d *DatabaseClient) GetPrintCostsByPosition(ctx context.Context, position string) ([]models.PrintCost, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, position, print_method_cost_id, active, created_at
		FROM print_costs
		WHERE position = $1 AND active = TRUE
		ORDER BY created_at DESC
	`, position)
	if err != nil {
		return nil, fmt.Errorf("failed to get print costs: %w", err)
	}
	defer rows.Close()

	var costs []models.PrintCost
	for rows.Next() {
		var c models.PrintCost
		if err := rows.Scan(&c.ID, &c.Position, &c.PrintMethodCostID, &c.Active, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan print cost: %w", err)
		}
		costs = append(costs, c)
	}

	return costs, rows.Err()
}

func (d *DatabaseClient) GetHandlingCosts(ctx context.Context) ([]models.HandlingCost, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, cost, active, created_at
		FROM handling_costs
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get handling costs: %w", err)
	}
	defer rows.Close()

	var costs []models.HandlingCost
	for rows.Next() {
		var c models.HandlingCost
		if err := rows.Scan(&c.ID, &c.Cost, &c.Active, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan handling cost: %w", err)
		}
		costs = append(costs, c)
	}

	return costs, rows.Err()
}
