package billing_test

import (
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/require"

	"github.com/kmansoor/sims-backend/internal/billing"
	"github.com/kmansoor/sims-backend/internal/entity"
)

func validDraft() entity.InvoiceDraft {
	return entity.InvoiceDraft{
		CustomerID: uuid.Must(uuid.NewV4()),
		Items: []entity.LineItem{
			{UnitPrice: d("100"), Quantity: 1},
		},
		TaxRatePercent: d("5"),
	}
}

func TestValidateDraft(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name  string
		draft func() entity.InvoiceDraft
		want  []string
	}{
		{
			name:  "valid draft",
			draft: validDraft,
			want:  nil,
		},
		{
			name: "empty draft reports customer then items",
			draft: func() entity.InvoiceDraft {
				return entity.InvoiceDraft{TaxRatePercent: d("5")}
			},
			want: []string{billing.MsgCustomerRequired, billing.MsgItemRequired},
		},
		{
			name: "zero quantity",
			draft: func() entity.InvoiceDraft {
				dr := validDraft()
				dr.Items[0].Quantity = 0
				return dr
			},
			want: []string{billing.MsgPositiveQuantity},
		},
		{
			name: "negative quantity",
			draft: func() entity.InvoiceDraft {
				dr := validDraft()
				dr.Items[0].Quantity = -3
				return dr
			},
			want: []string{billing.MsgPositiveQuantity},
		},
		{
			name: "discount above hundred",
			draft: func() entity.InvoiceDraft {
				dr := validDraft()
				dr.Items[0].DiscountPercent = d("150")
				return dr
			},
			want: []string{billing.MsgDiscountRange},
		},
		{
			name: "negative discount",
			draft: func() entity.InvoiceDraft {
				dr := validDraft()
				dr.Items[0].DiscountPercent = d("-1")
				return dr
			},
			want: []string{billing.MsgDiscountRange},
		},
		{
			name: "discount of exactly hundred is allowed",
			draft: func() entity.InvoiceDraft {
				dr := validDraft()
				dr.Items[0].DiscountPercent = d("100")
				return dr
			},
			want: nil,
		},
		{
			name: "negative total",
			draft: func() entity.InvoiceDraft {
				dr := validDraft()
				dr.Items = append(dr.Items, entity.LineItem{UnitPrice: d("1000"), Quantity: -2})
				return dr
			},
			// the negative line also trips the quantity rule
			want: []string{billing.MsgPositiveQuantity, billing.MsgNegativeTotal},
		},
		{
			name: "failures keep a fixed order",
			draft: func() entity.InvoiceDraft {
				return entity.InvoiceDraft{
					Items: []entity.LineItem{
						{UnitPrice: d("10"), Quantity: -1, DiscountPercent: d("200")},
					},
					TaxRatePercent: d("5"),
				}
			},
			want: []string{
				billing.MsgCustomerRequired,
				billing.MsgPositiveQuantity,
				billing.MsgDiscountRange,
			},
		},
	} {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := billing.ValidateDraft(tt.draft())
			require.Equal(t, tt.want, got)
		})
	}
}

func TestValidateDraft_OneMessagePerRule(t *testing.T) {
	t.Parallel()

	// One positive line keeps the total non-negative so only the
	// quantity rule fires, no matter how many lines break it.
	dr := validDraft()
	dr.Items = []entity.LineItem{
		{UnitPrice: d("100"), Quantity: 2},
		{UnitPrice: d("10"), Quantity: 0},
		{UnitPrice: d("10"), Quantity: -5},
		{UnitPrice: d("10"), Quantity: 0},
	}

	got := billing.ValidateDraft(dr)
	require.Equal(t, []string{billing.MsgPositiveQuantity}, got)
}
