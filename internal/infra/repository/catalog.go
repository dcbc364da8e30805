package repository

import (
	"context"

	"facility-booking/internal/domain/booking"
	"facility-booking/internal/domain/catalog"
	"facility-booking/internal/infra"
	"facility-booking/internal/infra/db"
	"facility-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

// CatalogRepository reads the bookable services and flat fees. The catalog is
// managed elsewhere; this side only looks prices up.
type CatalogRepository struct {
	db db.Querier
}

func NewCatalogRepository(q db.Querier) *CatalogRepository {
	return &CatalogRepository{db: q}
}

func (r *CatalogRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Service, error) {
	const query = `
		SELECT id, name, base_price_cents, stock_ceiling
		FROM services
		WHERE id = $1`

	var (
		serviceID    uuid.UUID
		name         string
		priceCents   int64
		stockCeiling *int32
	)
	err := r.db.QueryRow(ctx, query, id).Scan(&serviceID, &name, &priceCents, &stockCeiling)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("service not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find service", err)
	}

	price, err := booking.NewMoney(priceCents)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt price on service row", err)
	}
	svc, err := catalog.NewService(serviceID, name, price, stockCeiling)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt service row", err)
	}
	return svc, nil
}

// FlatFeeByTag looks up a surcharge item such as the cleaning fee.
func (r *CatalogRepository) FlatFeeByTag(ctx context.Context, tag string) (booking.Money, error) {
	const query = `
		SELECT amount_cents
		FROM fees
		WHERE tag = $1`

	var cents int64
	if err := r.db.QueryRow(ctx, query, tag).Scan(&cents); err != nil {
		if pgconv.IsNoRows(err) {
			return booking.Money{}, infra.WrapRepoErr("fee not found", err, infra.KindNotFound)
		}
		return booking.Money{}, infra.WrapRepoErr("failed to find fee", err)
	}

	fee, err := booking.NewMoney(cents)
	if err != nil {
		return booking.Money{}, infra.WrapRepoErr("corrupt fee row", err)
	}
	return fee, nil
}
