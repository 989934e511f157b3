// Package google is a Sheets-direct backend for deployments that skip the
// web-app script and let the service talk to the spreadsheet itself.
package google

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"snackledger/internal/core"
	"snackledger/internal/remote"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

type Config struct {
	SpreadsheetID string
	// SheetName is the tab holding the ledger rows, default "Ledger".
	SheetName string
	// Service account credentials: inline JSON wins over a file path. When
	// both are empty GOOGLE_APPLICATION_CREDENTIALS is consulted.
	CredentialsJSON string
	CredentialsFile string
}

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
	now           func() time.Time
}

var (
	_ remote.Fetcher = (*Client)(nil)
	_ remote.Pusher  = (*Client)(nil)
)

func New(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.SpreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	sheet := strings.TrimSpace(cfg.SheetName)
	if sheet == "" {
		sheet = "Ledger"
	}
	svc, err := newSheetsService(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return &Client{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		sheetName:     sheet,
		now:           time.Now,
	}, nil
}

func newSheetsService(ctx context.Context, cfg Config) (*gsheet.Service, error) {
	credentialsJSON := []byte(strings.TrimSpace(cfg.CredentialsJSON))
	if len(credentialsJSON) == 0 {
		file := strings.TrimSpace(cfg.CredentialsFile)
		if file == "" {
			file = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
		}
		if file == "" {
			return nil, errors.New("missing service account credentials")
		}
		var err error
		credentialsJSON, err = os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	}
	return gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
}

// FetchAll reads the ledger tab's A:F columns and normalizes them with the
// same rules the web-app backend applies.
func (c *Client) FetchAll(ctx context.Context) ([]core.Record, int, error) {
	if c.svc == nil {
		return nil, 0, errors.New("sheets service not initialized")
	}
	rng := fmt.Sprintf("%s!A:F", c.sheetName)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: read %s: %v", remote.ErrRemoteUnavailable, rng, err)
	}
	rows := parseValues(resp.Values)
	records, dropped := remote.NormalizeRows(rows, c.now())
	return records, dropped, nil
}

// Push appends one row. The sheet has no upsert, so an edited record appears
// as a new row and the script-side dedup (or the next manual cleanup) owns
// reconciliation.
func (c *Client) Push(ctx context.Context, r core.Record) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}
	rng := fmt.Sprintf("%s!A:F", c.sheetName)
	vr := &gsheet.ValueRange{Values: [][]any{{
		r.ID, r.Date.String(), r.Kind.WireLabel(), r.Category, r.Amount.Dollars(), r.Note,
	}}}
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%w: append to %s: %v", remote.ErrPushFailed, c.sheetName, err)
	}
	return nil
}

// PushDelete is not supported: removing a sheet row needs the row index,
// which the append-only client never learns.
func (c *Client) PushDelete(ctx context.Context, id int64, date core.CivilDate) error {
	return fmt.Errorf("%w: row %d (%s)", remote.ErrDeleteUnsupported, id, date)
}
