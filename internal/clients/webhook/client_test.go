package webhook_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/kmansoor/sims-backend/internal/clients/webhook"
	"github.com/kmansoor/sims-backend/internal/entity"
)

func TestClient_NotifyInvoiceCreated(t *testing.T) {
	t.Parallel()

	var got map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	inv := entity.Invoice{
		ID:         uuid.Must(uuid.NewV4()),
		Number:     42,
		CustomerID: uuid.Must(uuid.NewV4()),
		Total:      decimal.RequireFromString("12100"),
		Status:     entity.InvoiceStatusPending,
	}

	err := webhook.NewClient(server.URL).NotifyInvoiceCreated(context.Background(), inv)
	require.NoError(t, err)

	require.Equal(t, "invoice.created", got["event"])
	require.Equal(t, "12100.00", got["total"])
	require.Equal(t, "AED", got["currency"])
	require.Equal(t, float64(42), got["number"])
}

func TestClient_NotifyInvoiceCreated_NoURL(t *testing.T) {
	t.Parallel()

	err := webhook.NewClient("").NotifyInvoiceCreated(context.Background(), entity.Invoice{})
	require.NoError(t, err)
}

func TestClient_NotifyInvoiceCreated_ServerError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	err := webhook.NewClient(server.URL).NotifyInvoiceCreated(context.Background(), entity.Invoice{})
	require.Error(t, err)
}
