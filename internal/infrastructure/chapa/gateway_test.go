package chapa_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-orders-api/internal/application/payments"
	"github.com/jhoicas/stock-orders-api/internal/domain/entity"
	"github.com/jhoicas/stock-orders-api/internal/infrastructure/chapa"
)

func newServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestInitialize_EnviaMontoYDevuelveCheckout(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transaction/initialize", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "150.50", body["amount"])
		assert.Equal(t, "ETB", body["currency"])
		assert.Equal(t, "tx-1", body["tx_ref"])
		_, _ = w.Write([]byte(`{"message":"Hosted Link","status":"success","data":{"checkout_url":"https://checkout.chapa.co/tx-1"}}`))
	})
	g := chapa.NewGateway(srv.URL, "sk-test")

	url, err := g.Initialize(context.Background(), payments.CheckoutRequest{
		TxRef: "tx-1", Email: "a@b.co", FirstName: "A", LastName: "B",
		Currency: entity.CurrencyETB, Amount: decimal.RequireFromString("150.5"),
	})
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.chapa.co/tx-1", url)
}

func TestInitialize_ErrorDeLaPasarela(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":{"currency":["invalid"]},"status":"failed","data":null}`))
	})
	g := chapa.NewGateway(srv.URL, "sk-test")

	_, err := g.Initialize(context.Background(), payments.CheckoutRequest{TxRef: "tx-1"})
	assert.Error(t, err)
}

func TestVerify_Estados(t *testing.T) {
	cases := map[string]string{
		"success": entity.PaymentStatusSuccess,
		"failed":  entity.PaymentStatusFailed,
		"pending": entity.PaymentStatusPending,
		"raro":    entity.PaymentStatusPending,
	}
	for remote, want := range cases {
		t.Run(remote, func(t *testing.T) {
			srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/transaction/verify/tx-9", r.URL.Path)
				_, _ = w.Write([]byte(`{"message":"ok","status":"success","data":{"status":"` + remote + `"}}`))
			})
			got, err := chapa.NewGateway(srv.URL, "sk").Verify(context.Background(), "tx-9")
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestGateway_SinSecretKey(t *testing.T) {
	_, err := chapa.NewGateway("http://localhost", "").Verify(context.Background(), "tx")
	assert.Error(t, err)
}

func TestSimulatedGateway(t *testing.T) {
	g := chapa.NewSimulatedGateway("http://localhost:8080")
	ctx := context.Background()

	url, err := g.Initialize(ctx, payments.CheckoutRequest{TxRef: "tx-1"})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/checkout/tx-1", url)

	st, _ := g.Verify(ctx, "tx-1")
	assert.Equal(t, entity.PaymentStatusSuccess, st)

	g.SetStatus("tx-1", entity.PaymentStatusFailed)
	st, _ = g.Verify(ctx, "tx-1")
	assert.Equal(t, entity.PaymentStatusFailed, st)

	st, _ = g.Verify(ctx, "desconocido")
	assert.Equal(t, entity.PaymentStatusFailed, st)
}
