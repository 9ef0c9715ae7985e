// Package transactions fetches transaction history from the core
// service on behalf of the authenticated user.
package transactions

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ametsa/advisor-service/internal/config"
	"github.com/ametsa/advisor-service/internal/models"
)

// Client handles integration with the core service's transaction API.
type Client struct {
	baseURL string
	client  *http.Client
	log     *logrus.Logger
}

// NewClient initializes a new transaction client.
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		baseURL: cfg.CoreServiceURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
	}
}

// transactionDTO is the wire format of a single transaction record.
type transactionDTO struct {
	ID          string  `json:"id"`
	TxnDate     string  `json:"txnDate"`
	Amount      float64 `json:"amount"`
	Direction   string  `json:"direction"`
	Category    string  `json:"category"`
	SubCategory string  `json:"subCategory"`
	Description string  `json:"description"`
	Merchant    string  `json:"merchant"`
}

type transactionsResponse struct {
	Transactions []transactionDTO `json:"transactions"`
}

// GetTransactions fetches transactions in the given date range,
// forwarding the caller's bearer token. Malformed records are skipped
// rather than failing the whole fetch.
func (c *Client) GetTransactions(ctx context.Context, token string, start, end time.Time) ([]models.Transaction, error) {
	endpoint := fmt.Sprintf("%s/api/transactions", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	params := url.Values{}
	params.Set("startDate", start.Format("2006-01-02"))
	params.Set("endDate", end.Format("2006-01-02"))
	req.URL.RawQuery = params.Encode()

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("transaction fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code from core service: %d", resp.StatusCode)
	}

	var body transactionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode transactions: %w", err)
	}

	result := make([]models.Transaction, 0, len(body.Transactions))
	skipped := 0
	for _, dto := range body.Transactions {
		txn, err := parseTransaction(dto)
		if err != nil {
			skipped++
			continue
		}
		result = append(result, txn)
	}
	if skipped > 0 {
		c.log.Debugf("Skipped %d malformed transaction records", skipped)
	}

	return result, nil
}

func parseTransaction(dto transactionDTO) (models.Transaction, error) {
	id, err := uuid.Parse(dto.ID)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("invalid transaction id %q: %w", dto.ID, err)
	}
	date, err := time.Parse("2006-01-02", dto.TxnDate)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("invalid transaction date %q: %w", dto.TxnDate, err)
	}
	direction := dto.Direction
	if direction == "" {
		direction = models.DirectionDebit
	}
	return models.Transaction{
		ID:          id,
		Date:        date,
		Amount:      dto.Amount,
		Direction:   direction,
		Category:    dto.Category,
		SubCategory: dto.SubCategory,
		Description: dto.Description,
		Merchant:    dto.Merchant,
	}, nil
}
