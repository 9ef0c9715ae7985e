package transactions

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ametsa/advisor-service/internal/config"
	"github.com/ametsa/advisor-service/internal/models"
)

func newTestClient(baseURL string) *Client {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewClient(&config.Config{CoreServiceURL: baseURL}, log)
}

func TestGetTransactions(t *testing.T) {
	id := uuid.New()
	var gotAuth, gotStart, gotEnd string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/transactions" {
			t.Errorf("path = %s, want /api/transactions", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		gotStart = r.URL.Query().Get("startDate")
		gotEnd = r.URL.Query().Get("endDate")
		fmt.Fprintf(w, `{"transactions": [
			{"id": %q, "txnDate": "2025-06-10", "amount": 1500.5, "direction": "DEBIT",
			 "category": "GROCERIES", "merchant": "BigBasket"}
		]}`, id)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	txns, err := c.GetTransactions(context.Background(), "token-123", start, end)
	if err != nil {
		t.Fatalf("GetTransactions: %v", err)
	}

	if gotAuth != "Bearer token-123" {
		t.Errorf("Authorization = %q, want the forwarded bearer token", gotAuth)
	}
	if gotStart != "2025-01-01" || gotEnd != "2025-06-30" {
		t.Errorf("date range = %s..%s, want 2025-01-01..2025-06-30", gotStart, gotEnd)
	}
	if len(txns) != 1 {
		t.Fatalf("got %d transactions, want 1", len(txns))
	}
	if txns[0].ID != id {
		t.Errorf("ID = %s, want %s", txns[0].ID, id)
	}
	if txns[0].Amount != 1500.5 {
		t.Errorf("Amount = %v, want 1500.5", txns[0].Amount)
	}
	if txns[0].Category != "GROCERIES" {
		t.Errorf("Category = %s, want GROCERIES", txns[0].Category)
	}
}

func TestGetTransactionsSkipsMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"transactions": [
			{"id": "not-a-uuid", "txnDate": "2025-06-10", "amount": 100},
			{"id": %q, "txnDate": "10/06/2025", "amount": 100},
			{"id": %q, "txnDate": "2025-06-10", "amount": 100}
		]}`, uuid.New(), uuid.New())
	}))
	defer srv.Close()

	txns, err := newTestClient(srv.URL).GetTransactions(context.Background(), "t", time.Now(), time.Now())
	if err != nil {
		t.Fatalf("GetTransactions: %v", err)
	}
	if len(txns) != 1 {
		t.Fatalf("got %d transactions, want 1 (malformed records skipped)", len(txns))
	}
	// Direction defaults to DEBIT when absent.
	if txns[0].Direction != models.DirectionDebit {
		t.Errorf("Direction = %s, want DEBIT default", txns[0].Direction)
	}
}

func TestGetTransactionsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).GetTransactions(context.Background(), "t", time.Now(), time.Now())
	if err == nil {
		t.Fatal("want an error on a non-200 upstream response")
	}
}
