// Package ynab is the HTTP client for the target budget ledger. Wire
// payloads are translated into typed domain values at this boundary.
package ynab

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/splitsync/internal/adapter/transport"
	"github.com/iho/splitsync/internal/domain"
)

// Client talks to the budget ledger's REST API, scoped to one budget.
type Client struct {
	baseURL  string
	token    string
	budgetID string
	http     *http.Client
	retrier  *transport.Retrier
	logger   zerolog.Logger
}

// NewClient creates a sink-ledger client. budgetID may be the API's
// "last-used" alias.
func NewClient(baseURL, token, budgetID string, timeout time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		token:    token,
		budgetID: budgetID,
		http:     &http.Client{Timeout: timeout},
		retrier:  transport.NewRetrier(logger),
		logger:   logger,
	}
}

type accountPayload struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Closed  bool   `json:"closed"`
	Deleted bool   `json:"deleted"`
}

type transactionPayload struct {
	ID        string  `json:"id"`
	Date      string  `json:"date"`
	Amount    int64   `json:"amount"`
	PayeeName *string `json:"payee_name"`
	ImportID  *string `json:"import_id"`
	Deleted   bool    `json:"deleted"`
}

type saveTransaction struct {
	AccountID string `json:"account_id"`
	Date      string `json:"date"`
	Amount    int64  `json:"amount"`
	PayeeName string `json:"payee_name"`
	Memo      string `json:"memo,omitempty"`
	Cleared   string `json:"cleared"`
	ImportID  string `json:"import_id"`
}

// FindAccount resolves the configured account name to an account handle.
// Closed and deleted accounts are skipped. A miss wraps
// domain.ErrAccountNotFound and names the accounts that do exist.
func (c *Client) FindAccount(ctx context.Context, name string) (domain.Account, error) {
	var out struct {
		Data struct {
			Accounts []accountPayload `json:"accounts"`
		} `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/accounts", nil, &out); err != nil {
		return domain.Account{}, err
	}

	available := make([]string, 0, len(out.Data.Accounts))
	for _, a := range out.Data.Accounts {
		if a.Deleted || a.Closed {
			continue
		}
		if a.Name == name {
			return domain.Account{ID: a.ID, Name: a.Name}, nil
		}
		available = append(available, a.Name)
	}

	return domain.Account{}, fmt.Errorf("%w: %q (available: %s)",
		domain.ErrAccountNotFound, name, strings.Join(available, ", "))
}

// AccountTransactions fetches the account's full transaction snapshot for
// duplicate comparison.
func (c *Client) AccountTransactions(ctx context.Context, accountID string) ([]domain.ImportedRecord, error) {
	var out struct {
		Data struct {
			Transactions []transactionPayload `json:"transactions"`
		} `json:"data"`
	}
	path := "/accounts/" + accountID + "/transactions"
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}

	records := make([]domain.ImportedRecord, 0, len(out.Data.Transactions))
	for _, t := range out.Data.Transactions {
		if t.Deleted {
			continue
		}
		date, err := time.Parse(time.DateOnly, t.Date)
		if err != nil {
			c.logger.Warn().Str("transaction_id", t.ID).Str("date", t.Date).
				Msg("unparseable date in sink response")
		}
		records = append(records, domain.ImportedRecord{
			ImportID:  strValue(t.ImportID),
			Amount:    t.Amount,
			PayeeName: strValue(t.PayeeName),
			Date:      date,
		})
	}
	return records, nil
}

// CreateTransactions submits one batch and translates the sink's response
// into per-item outcomes. The sink deduplicates on import id, which also
// makes transport-level retries of this call safe.
func (c *Client) CreateTransactions(ctx context.Context, accountID string, txns []domain.CandidateTransaction) ([]domain.ImportOutcome, error) {
	if len(txns) == 0 {
		return nil, nil
	}

	payload := struct {
		Transactions []saveTransaction `json:"transactions"`
	}{Transactions: make([]saveTransaction, 0, len(txns))}

	for _, txn := range txns {
		payload.Transactions = append(payload.Transactions, saveTransaction{
			AccountID: accountID,
			Date:      txn.Date.Format(time.DateOnly),
			Amount:    txn.Amount,
			PayeeName: txn.PayeeName,
			Memo:      txn.Memo,
			Cleared:   txn.Cleared,
			ImportID:  txn.ImportID,
		})
	}

	var out struct {
		Data struct {
			Transactions       []transactionPayload `json:"transactions"`
			DuplicateImportIDs []string             `json:"duplicate_import_ids"`
		} `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/transactions", payload, &out); err != nil {
		return nil, err
	}

	created := make(map[string]struct{}, len(out.Data.Transactions))
	for _, t := range out.Data.Transactions {
		if t.ImportID != nil {
			created[*t.ImportID] = struct{}{}
		}
	}
	duplicates := make(map[string]struct{}, len(out.Data.DuplicateImportIDs))
	for _, id := range out.Data.DuplicateImportIDs {
		duplicates[id] = struct{}{}
	}

	outcomes := make([]domain.ImportOutcome, 0, len(txns))
	for _, txn := range txns {
		outcome := domain.ImportOutcome{ImportID: txn.ImportID}
		if _, ok := created[txn.ImportID]; ok {
			outcome.Status = domain.OutcomeAccepted
		} else if _, ok := duplicates[txn.ImportID]; ok {
			outcome.Status = domain.OutcomeDuplicate
			outcome.Reason = "sink already holds this import id"
		} else {
			outcome.Status = domain.OutcomeRejected
			outcome.Reason = "not returned by sink"
		}
		outcomes = append(outcomes, outcome)
	}

	c.logger.Info().Int("submitted", len(txns)).Int("created", len(created)).
		Int("sink_duplicates", len(duplicates)).Msg("submitted transaction batch")
	return outcomes, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	endpoint := c.baseURL + "/budgets/" + c.budgetID + path

	var encoded []byte
	if body != nil {
		var err error
		encoded, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding %s request: %w", path, err)
		}
	}

	resp, err := c.retrier.Do(ctx, func() (*http.Response, error) {
		var reader io.Reader
		if encoded != nil {
			reader = bytes.NewReader(encoded)
		}
		req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+c.token)
		req.Header.Set("Accept", "application/json")
		if encoded != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		return c.http.Do(req)
	})
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %s %s: reading body: %v", domain.ErrTransport, method, path, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: %s %s: status %d: %s",
			domain.ErrTransport, method, path, resp.StatusCode, errorDetail(raw))
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decoding %s response: %w", path, err)
		}
	}
	return nil
}

// errorDetail extracts the API's structured error message when present.
func errorDetail(raw []byte) string {
	var payload struct {
		Error struct {
			Name   string `json:"name"`
			Detail string `json:"detail"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Error.Detail != "" {
		return payload.Error.Name + ": " + payload.Error.Detail
	}
	return strings.TrimSpace(string(raw))
}

func strValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
