package transport_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kmansoor/sims-backend/pkg/logger"
	"github.com/kmansoor/sims-backend/pkg/transport"
)

func TestRoundTripper_RoundTrip(t *testing.T) {
	t.Parallel()

	var gotRequestID string

	mux := http.NewServeMux()
	mux.HandleFunc("/test", func(w http.ResponseWriter, r *http.Request) {
		gotRequestID = r.Header.Get("X-Request-Id")
		_, _ = fmt.Fprintf(w, `{"message": "hello world"}`)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := &http.Client{
		Timeout:   time.Second * 10,
		Transport: transport.NewRequestIDRoundTripper(http.DefaultTransport),
	}

	ctx := logger.WithRequestID(context.Background(), "req-123")

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost, server.URL+"/test",
		strings.NewReader(`{"data": "hi server"}`),
	)
	require.NoError(t, err)

	resp, err := client.Do(req)
	require.NoError(t, err)

	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "req-123", gotRequestID)
}
