package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/orionte/placement-api/internal/entity"
)

type ServicePriceRepository struct {
	DB *sql.DB
}

func NewServicePriceRepository(db *sql.DB) *ServicePriceRepository {
	return &ServicePriceRepository{DB: db}
}

func (r *ServicePriceRepository) FindAll(ctx context.Context) ([]*entity.ServicePrice, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, name, price FROM service_prices ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list service prices: %w", err)
	}
	defer rows.Close()

	var prices []*entity.ServicePrice
	for rows.Next() {
		var sp entity.ServicePrice
		if err := rows.Scan(&sp.ID, &sp.Name, &sp.Price); err != nil {
			return nil, err
		}
		prices = append(prices, &sp)
	}
	return prices, rows.Err()
}

func (r *ServicePriceRepository) FindByName(ctx context.Context, name string) (*entity.ServicePrice, error) {
	var sp entity.ServicePrice
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, name, price FROM service_prices WHERE name = $1`, name,
	).Scan(&sp.ID, &sp.Name, &sp.Price)
	if err == sql.ErrNoRows {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find service price: %w", err)
	}
	return &sp, nil
}

func (r *ServicePriceRepository) Update(ctx context.Context, sp *entity.ServicePrice) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE service_prices SET name = $1, price = $2 WHERE id = $3`,
		sp.Name, sp.Price, sp.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update service price: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrNotFound
	}
	return nil
}
