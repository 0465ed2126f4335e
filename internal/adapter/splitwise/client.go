// Package splitwise is the HTTP client for the shared-expense ledger.
// Responses are parsed into typed domain values right here at the boundary,
// so upstream API irregularities never leak into the pipeline.
package splitwise

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/splitsync/internal/adapter/transport"
	"github.com/iho/splitsync/internal/domain"
)

const pageSize = 100

// Client talks to the shared-expense ledger's REST API.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	retrier *transport.Retrier
	logger  zerolog.Logger
}

// NewClient creates a source-ledger client.
func NewClient(baseURL, apiKey string, timeout time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
		retrier: transport.NewRetrier(logger),
		logger:  logger,
	}
}

type userPayload struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

type sharePayload struct {
	User      userPayload `json:"user"`
	UserID    int64       `json:"user_id"`
	PaidShare string      `json:"paid_share"`
	OwedShare string      `json:"owed_share"`
}

type expensePayload struct {
	ID           int64          `json:"id"`
	Description  string         `json:"description"`
	Cost         string         `json:"cost"`
	CurrencyCode string         `json:"currency_code"`
	Date         string         `json:"date"`
	CreatedAt    string         `json:"created_at"`
	DeletedAt    string         `json:"deleted_at"`
	Details      string         `json:"details"`
	Users        []sharePayload `json:"users"`
}

// CurrentUser returns the authenticated user, doubling as an auth preflight.
func (c *Client) CurrentUser(ctx context.Context) (domain.User, error) {
	var out struct {
		User *userPayload `json:"user"`
	}
	if err := c.get(ctx, "/get_current_user", nil, &out); err != nil {
		return domain.User{}, err
	}
	if out.User == nil {
		return domain.User{}, fmt.Errorf("%w: response missing user", domain.ErrTransport)
	}
	return domain.User{
		ID:        out.User.ID,
		FirstName: out.User.FirstName,
		LastName:  out.User.LastName,
		Email:     out.User.Email,
	}, nil
}

// ExpensesSince returns all non-deleted expenses dated on or after since,
// following offset pagination to the last short page. The API's dated_after
// filter is exclusive, so the bound is nudged back one second to keep the
// boundary date inclusive.
func (c *Client) ExpensesSince(ctx context.Context, since time.Time) ([]domain.Expense, error) {
	datedAfter := since.UTC().Add(-time.Second).Format(time.RFC3339)

	var all []domain.Expense
	for offset := 0; ; offset += pageSize {
		q := url.Values{}
		q.Set("dated_after", datedAfter)
		q.Set("limit", strconv.Itoa(pageSize))
		q.Set("offset", strconv.Itoa(offset))

		var out struct {
			Expenses []expensePayload `json:"expenses"`
		}
		if err := c.get(ctx, "/get_expenses", q, &out); err != nil {
			return nil, err
		}

		for _, p := range out.Expenses {
			if p.DeletedAt != "" {
				continue
			}
			all = append(all, c.toDomain(p))
		}

		if len(out.Expenses) < pageSize {
			break
		}
	}

	c.logger.Debug().Int("expenses", len(all)).Str("dated_after", datedAfter).
		Msg("fetched source expenses")
	return all, nil
}

// toDomain converts a wire expense into a typed domain value. Conversion is
// lenient: unparseable amounts become zero and unparseable dates stay unset,
// leaving Expense.Validate to flag the record as a per-item failure instead
// of aborting the whole fetch.
func (c *Client) toDomain(p expensePayload) domain.Expense {
	e := domain.Expense{
		ID:           p.ID,
		Description:  p.Description,
		Cost:         c.parseAmount(p.ID, p.Cost),
		CurrencyCode: p.CurrencyCode,
		Date:         c.parseDate(p.ID, p.Date, p.CreatedAt),
		Details:      p.Details,
		Users:        make([]domain.Participant, 0, len(p.Users)),
	}

	for _, s := range p.Users {
		userID := s.UserID
		if userID == 0 {
			userID = s.User.ID
		}
		e.Users = append(e.Users, domain.Participant{
			UserID:    userID,
			FirstName: s.User.FirstName,
			LastName:  s.User.LastName,
			Paid:      c.parseAmount(p.ID, s.PaidShare),
			Owed:      c.parseAmount(p.ID, s.OwedShare),
		})
	}

	return e
}

func (c *Client) parseAmount(expenseID int64, raw string) decimal.Decimal {
	if raw == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		c.logger.Warn().Int64("expense_id", expenseID).Str("amount", raw).
			Msg("unparseable amount in source response")
		return decimal.Zero
	}
	return d
}

// parseDate handles the source API's date-field irregularity: some records
// carry the occurrence date in "date", older ones only in "created_at".
func (c *Client) parseDate(expenseID int64, date, createdAt string) time.Time {
	for _, raw := range []string{date, createdAt} {
		if raw == "" {
			continue
		}
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			return t.UTC()
		}
		if t, err := time.Parse(time.DateOnly, raw); err == nil {
			return t.UTC()
		}
		c.logger.Warn().Int64("expense_id", expenseID).Str("date", raw).
			Msg("unparseable date in source response")
	}
	return time.Time{}
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	resp, err := c.retrier.Do(ctx, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("Accept", "application/json")
		return c.http.Do(req)
	})
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: GET %s: reading body: %v", domain.ErrTransport, path, err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: GET %s: status %d: %s",
			domain.ErrTransport, path, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	// The API reports some failures inside a 200 response.
	var apiErr struct {
		Errors map[string][]string `json:"errors"`
	}
	if err := json.Unmarshal(body, &apiErr); err == nil && len(apiErr.Errors) > 0 {
		return fmt.Errorf("%w: GET %s: api errors: %v", domain.ErrTransport, path, apiErr.Errors)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}
