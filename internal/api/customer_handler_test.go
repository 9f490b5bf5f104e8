package api_test

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/kmansoor/sims-backend/internal/api"
	"github.com/kmansoor/sims-backend/internal/entity"
)

func TestHandler_CreateCustomer(t *testing.T) {
	t.Parallel()

	s, server := newTestServer(t)

	id := uuid.Must(uuid.NewV4())

	s.EXPECT().CreateCustomer(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, c entity.Customer) (entity.Customer, error) {
			require.Equal(t, "Al Noor Trading", c.Name)
			require.Equal(t, "+971501234567", c.Mobile)

			c.ID = id
			c.CreatedAt = time.Now()
			c.UpdatedAt = c.CreatedAt
			return c, nil
		})

	resp, err := http.Post(server.URL+"/customers", "application/json", strings.NewReader(`{
		"name": "Al Noor Trading",
		"email": "info@alnoor.ae",
		"mobile": "+971501234567",
		"trn": "100000000000003"
	}`))
	require.NoError(t, err)

	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var got api.CustomerResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Equal(t, id.String(), got.ID)
	require.Equal(t, "100000000000003", got.TRN)
}

func TestHandler_CreateCustomer_Invalid(t *testing.T) {
	t.Parallel()

	s, server := newTestServer(t)

	s.EXPECT().CreateCustomer(gomock.Any(), gomock.Any()).
		Return(entity.Customer{}, entity.ErrInvalidArgument)

	resp, err := http.Post(server.URL+"/customers", "application/json", strings.NewReader(`{
		"name": "X",
		"mobile": "0501234567"
	}`))
	require.NoError(t, err)

	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandler_GetCustomer(t *testing.T) {
	t.Parallel()

	s, server := newTestServer(t)

	c := entity.Customer{
		ID:     uuid.Must(uuid.NewV4()),
		Name:   "Al Noor Trading",
		Mobile: "+971501234567",
	}

	s.EXPECT().Customer(gomock.Any(), c.ID).Return(c, nil)

	resp, err := http.Get(server.URL + "/customers/" + c.ID.String())
	require.NoError(t, err)

	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got api.CustomerResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Equal(t, c.Name, got.Name)
}

func TestHandler_DashboardSummary(t *testing.T) {
	t.Parallel()

	s, server := newTestServer(t)

	s.EXPECT().DashboardSummary(gomock.Any()).Return(entity.DashboardSummary{
		Customers:   12,
		Revenue:     decimal.RequireFromString("12100"),
		Outstanding: decimal.RequireFromString("303.5"),
		GeneratedAt: time.Now(),
	}, nil)

	resp, err := http.Get(server.URL + "/dashboard/summary")
	require.NoError(t, err)

	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got api.DashboardSummaryResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Equal(t, int64(12), got.Customers)
	require.Equal(t, "12100.00", got.Revenue)
	require.Equal(t, "303.50", got.Outstanding)
}
