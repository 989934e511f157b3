// Package webapp talks to the spreadsheet web-app endpoint: a single URL that
// serves the full dataset on GET and accepts upsert/delete payloads on POST.
package webapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"snackledger/internal/core"
	"snackledger/internal/remote"
)

type Client struct {
	url  string
	http *http.Client
	now  func() time.Time
}

var (
	_ remote.Fetcher = (*Client)(nil)
	_ remote.Pusher  = (*Client)(nil)
)

func New(url string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{url: url, http: httpClient, now: time.Now}
}

// FetchAll downloads and normalizes the remote dataset.
func (c *Client) FetchAll(ctx context.Context) ([]core.Record, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("build fetch request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", remote.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, 0, fmt.Errorf("%w: status %d", remote.ErrRemoteUnavailable, resp.StatusCode)
	}
	var rows []remote.Row
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, 0, fmt.Errorf("%w: decode response: %v", remote.ErrRemoteUnavailable, err)
	}
	records, dropped := remote.NormalizeRows(rows, c.now())
	return records, dropped, nil
}

// wireRecord is the upsert payload. The kind travels as its localized label
// because that is what the sheet script stores.
type wireRecord struct {
	ID       int64   `json:"id"`
	Date     string  `json:"date"`
	Type     string  `json:"type"`
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Note     string  `json:"note"`
}

// Push posts an upsert. The script endpoint answers with an opaque redirect,
// so the response body is discarded and the status is not inspected; failure
// here means the POST never left.
func (c *Client) Push(ctx context.Context, r core.Record) error {
	return c.post(ctx, wireRecord{
		ID:       r.ID,
		Date:     r.Date.String(),
		Type:     r.Kind.WireLabel(),
		Category: r.Category,
		Amount:   r.Amount.Dollars(),
		Note:     r.Note,
	})
}

// PushDelete posts a delete tombstone carrying the record's civil date, which
// the sheet script uses to narrow its scan.
func (c *Client) PushDelete(ctx context.Context, id int64, date core.CivilDate) error {
	return c.post(ctx, remote.DeletePayload{
		ID:     id,
		Action: remote.DeleteAction,
		Date:   date.String(),
	})
}

func (c *Client) post(ctx context.Context, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode push payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build push request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", remote.ErrPushFailed, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
