package entity

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Product is a catalogue item. UnitPrice is in AED.
type Product struct {
	ID        uuid.UUID
	SKU       string
	Name      string
	Category  string
	UnitPrice decimal.Decimal
	Stock     int64
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ProductUpdate struct {
	Name      *string
	Category  *string
	UnitPrice *decimal.Decimal
	Stock     *int64
	Active    *bool
}

type ProductFilter struct {
	SKU      *string
	Category *string
	Active   *bool
	Page     uint64
	Limit    uint64
	SortBy   ProductSortCol
	OrderBy  OrderByCol
}

type ProductSortCol string

const (
	ProductSortBySKU       ProductSortCol = "sku"
	ProductSortByName      ProductSortCol = "name"
	ProductSortByUnitPrice ProductSortCol = "unit_price"
	ProductSortByCreatedAt ProductSortCol = "created_at"
)

func (c ProductSortCol) String() string {
	return string(c)
}

func (c ProductSortCol) IsValid() bool {
	switch c {
	case ProductSortBySKU, ProductSortByName, ProductSortByUnitPrice, ProductSortByCreatedAt:
		return true
	}

	return false
}
