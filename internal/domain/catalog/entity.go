package catalog

import (
	"errors"

	"facility-booking/internal/domain/booking"

	"github.com/google/uuid"
)

var ErrInvalidService = errors.New("invalid service")

// FeeTagCleaning marks the flat-fee catalog item charged for large parties.
const FeeTagCleaning = "cleaning"

// Service is a bookable catalog entry. Slot-scheduled services leave
// StockCeiling nil; fixed-inventory services carry the global unit ceiling
// that replaces interval conflict checking.
type Service struct {
	id           uuid.UUID
	name         string
	basePrice    booking.Money
	stockCeiling *int32
}

func NewService(id uuid.UUID, name string, basePrice booking.Money, stockCeiling *int32) (*Service, error) {
	if id == uuid.Nil || name == "" {
		return nil, ErrInvalidService
	}
	if stockCeiling != nil && *stockCeiling <= 0 {
		return nil, ErrInvalidService
	}
	return &Service{
		id:           id,
		name:         name,
		basePrice:    basePrice,
		stockCeiling: stockCeiling,
	}, nil
}

func (s *Service) ID() uuid.UUID            { return s.id }
func (s *Service) Name() string             { return s.name }
func (s *Service) BasePrice() booking.Money { return s.basePrice }
func (s *Service) StockCeiling() *int32     { return s.stockCeiling }

// IsStockConstrained reports whether the fixed-inventory availability rule
// applies instead of slot overlap.
func (s *Service) IsStockConstrained() bool { return s.stockCeiling != nil }
