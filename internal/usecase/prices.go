package usecase

import (
	"context"

	"github.com/orionte/placement-api/internal/entity"
)

type ServicePriceInput struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// ServicePriceUseCase reads and bulk-updates the price list. Price changes
// take effect immediately: outstanding balances are always computed against
// the live price.
type ServicePriceUseCase struct {
	Prices ServicePriceRepositoryInterface
	Audit  AuditLoggerInterface
}

func NewServicePriceUseCase(prices ServicePriceRepositoryInterface, audit AuditLoggerInterface) *ServicePriceUseCase {
	return &ServicePriceUseCase{Prices: prices, Audit: audit}
}

func (uc *ServicePriceUseCase) List(ctx context.Context) ([]*entity.ServicePrice, error) {
	prices, err := uc.Prices.FindAll(ctx)
	if err != nil {
		return nil, NewStorageError("failed to list service prices: " + err.Error())
	}
	return prices, nil
}

func (uc *ServicePriceUseCase) UpdateAll(ctx context.Context, actor entity.Actor, services []ServicePriceInput) error {
	if len(services) == 0 {
		return NewValidationError("services must be a non-empty array")
	}
	for _, s := range services {
		if s.ID <= 0 || s.Name == "" || s.Price < 0 {
			return NewValidationError("invalid service data")
		}
	}

	for _, s := range services {
		sp := &entity.ServicePrice{ID: s.ID, Name: s.Name, Price: s.Price}
		if err := uc.Prices.Update(ctx, sp); err != nil {
			return NewStorageError("failed to update service price: " + err.Error())
		}
	}

	appendAudit(ctx, uc.Audit, entity.NewAuditEntry(
		"Updated Service Prices", "/service-prices", "PUT", 200, actor.ID,
		map[string]any{"count": len(services)},
	))

	return nil
}
