package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMollieCreatePayment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v2/payments", r.URL.Path)
		assert.Equal(t, "Bearer test_key", r.Header.Get("Authorization"))

		var body struct {
			Amount struct {
				Currency string `json:"currency"`
				Value    string `json:"value"`
			} `json:"amount"`
			Description string            `json:"description"`
			RedirectURL string            `json:"redirectUrl"`
			WebhookURL  string            `json:"webhookUrl"`
			Method      any               `json:"method"`
			Metadata    map[string]string `json:"metadata"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "EUR", body.Amount.Currency)
		assert.Equal(t, "25.00", body.Amount.Value)
		assert.Equal(t, "Donatie", body.Description)
		assert.Contains(t, fmt.Sprint(body.Method), "ideal")
		assert.Empty(t, body.WebhookURL)
		assert.Equal(t, "7", body.Metadata["donation_id"])

		w.Header().Set("Content-Type", "application/hal+json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"resource":"payment","id":"tr_abc","status":"open","_links":{"checkout":{"href":"https://pay.example/tr_abc","type":"text/html"}}}`))
	}))
	defer srv.Close()

	m, err := NewMollie("test_key", srv.URL, time.Second)
	require.NoError(t, err)

	p, err := m.CreatePayment(context.Background(), Request{
		Amount:      decimal.NewFromInt(25),
		Description: "Donatie",
		RedirectURL: "http://localhost:3000/donatie/bedankt?donation_id=7",
		Metadata:    map[string]string{"donation_id": "7"},
	})
	require.NoError(t, err)
	assert.Equal(t, Payment{ID: "tr_abc", Status: "open", CheckoutURL: "https://pay.example/tr_abc"}, p)
}

func TestMollieGetPayment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/v2/payments/tr_abc", r.URL.Path)
		w.Header().Set("Content-Type", "application/hal+json")
		_, _ = w.Write([]byte(`{"resource":"payment","id":"tr_abc","status":"paid","_links":{}}`))
	}))
	defer srv.Close()

	m, err := NewMollie("test_key", srv.URL+"/", time.Second)
	require.NoError(t, err)

	p, err := m.GetPayment(context.Background(), "tr_abc")
	require.NoError(t, err)
	assert.Equal(t, "paid", p.Status)
	assert.Empty(t, p.CheckoutURL)
}

func TestMollieErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/hal+json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"status":401,"title":"Unauthorized Request","detail":"Missing authentication"}`))
	}))
	defer srv.Close()

	m, err := NewMollie("test_bad", srv.URL, time.Second)
	require.NoError(t, err)

	_, err = m.GetPayment(context.Background(), "tr_x")
	require.Error(t, err)
	assert.ErrorContains(t, err, "mollie: get payment tr_x")
}

func TestNewMollieRequiresKey(t *testing.T) {
	_, err := NewMollie("", "", time.Second)
	assert.Error(t, err)
}
