package entity

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// Customer is a buyer registered in the system. Mobile must be a UAE number
// (+971 followed by 9 digits) and TRN, when present, a 15-digit UAE Tax
// Registration Number beginning with 1.
type Customer struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Mobile    string
	TRN       string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CustomerUpdate struct {
	Name    *string
	Email   *string
	Mobile  *string
	TRN     *string
	Address *string
}

type CustomerFilter struct {
	Name    *string
	TRN     *string
	Page    uint64
	Limit   uint64
	SortBy  CustomerSortCol
	OrderBy OrderByCol
}

type CustomerSortCol string

const (
	CustomerSortByName      CustomerSortCol = "name"
	CustomerSortByCreatedAt CustomerSortCol = "created_at"
)

func (c CustomerSortCol) String() string {
	return string(c)
}

func (c CustomerSortCol) IsValid() bool {
	switch c {
	case CustomerSortByName, CustomerSortByCreatedAt:
		return true
	}

	return false
}
