package paymentprovider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CleaningBookingService/internal/domain"
	"github.com/m04kA/SMC-CleaningBookingService/pkg/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "secret", time.Second, logger.NewNop())
}

func TestClient_CreatePaymentIntent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/payment-intents", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var req createIntentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(3600), req.AmountMinor)
		assert.Equal(t, "GBP", req.Currency)
		assert.Equal(t, "booking-1", req.Reference)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(createIntentResponse{SessionID: "booking-1", Link: "https://pay.example/booking-1"})
	})

	amount, err := domain.NewMoneyFromString("36.00", "GBP")
	require.NoError(t, err)

	link, err := client.CreatePaymentIntent(context.Background(), amount, "booking-1")
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example/booking-1", link)
}

func TestClient_CreatePaymentIntent_ProviderDown(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	})

	_, err := client.CreatePaymentIntent(context.Background(), domain.ZeroMoney("GBP"), "booking-1")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, err, domain.ErrExternalDependency)
}

func TestClient_VerifyPayment(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    bool
		wantErr error
	}{
		{name: "paid", status: http.StatusOK, body: `{"session_id":"s1","status":"paid","transaction_id":"tx"}`, want: true},
		{name: "pending", status: http.StatusOK, body: `{"session_id":"s1","status":"pending"}`, want: false},
		{name: "not found", status: http.StatusNotFound, body: `{}`, wantErr: ErrSessionNotFound},
		{name: "bad json", status: http.StatusOK, body: `not json`, wantErr: ErrInvalidResponse},
		{name: "bad request", status: http.StatusBadRequest, body: `{}`, wantErr: ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/v1/payment-intents/s1", r.URL.Path)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			paid, err := client.VerifyPayment(context.Background(), "s1")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, paid)
		})
	}
}

func TestClient_VerifyPayment_Unreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "", 100*time.Millisecond, logger.NewNop())

	_, err := client.VerifyPayment(context.Background(), "s1")
	assert.ErrorIs(t, err, ErrUnavailable)
}
