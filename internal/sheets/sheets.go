// Package sheets wraps the Google Sheets API as the spreadsheet-backed store
// the offers are published to.
package sheets

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

type Config struct {
	SpreadsheetID   string
	CredentialsPath string
	CredentialsJSON []byte
}

type Client struct {
	service       *sheets.Service
	spreadsheetID string
}

func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.SpreadsheetID == "" {
		return nil, fmt.Errorf("sheets: spreadsheet id is required")
	}

	var opts []option.ClientOption
	if cfg.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsPath))
	} else if len(cfg.CredentialsJSON) > 0 {
		opts = append(opts, option.WithCredentialsJSON(cfg.CredentialsJSON))
	} else {
		return nil, fmt.Errorf("sheets: credentials path or JSON is required")
	}

	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets: failed to create service: %w", err)
	}

	return &Client{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
	}, nil
}

// GetData reads the given range of a worksheet, or the whole grid when the
// range is empty. The first returned row is the header.
func (c *Client) GetData(ctx context.Context, sheetName, rng string) ([][]string, error) {
	readRange := sheetName
	if rng != "" {
		readRange = sheetName + "!" + rng
	}

	resp, err := c.service.Spreadsheets.Values.Get(c.spreadsheetID, readRange).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("sheets: read %s: %w", readRange, err)
	}

	grid := make([][]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			cells = append(cells, fmt.Sprint(cell))
		}
		grid = append(grid, cells)
	}
	return grid, nil
}

// Update replaces the whole worksheet: clear first, then bulk-append the rows
// starting at the first cell. A failure between the two steps can leave the
// sheet empty; the offer archive exists to cover that window.
func (c *Client) Update(ctx context.Context, sheetName string, rows [][]string) error {
	_, err := c.service.Spreadsheets.Values.Clear(c.spreadsheetID, sheetName, &sheets.ClearValuesRequest{}).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets: clear %s: %w", sheetName, err)
	}

	valueRange := &sheets.ValueRange{Values: toCellValues(rows)}
	_, err = c.service.Spreadsheets.Values.Append(c.spreadsheetID, sheetName+"!A1", valueRange).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets: append to %s: %w", sheetName, err)
	}
	return nil
}

// AddLog appends a two-column progress row: UTC timestamp and message.
func (c *Client) AddLog(ctx context.Context, sheetName, message string) error {
	now := time.Now().UTC().Format("2006-01-02 15:04:05")
	valueRange := &sheets.ValueRange{Values: [][]any{{now, message}}}

	_, err := c.service.Spreadsheets.Values.Append(c.spreadsheetID, sheetName, valueRange).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets: log to %s: %w", sheetName, err)
	}
	return nil
}

// toCellValues converts rows for the API. Boolean-looking cells are written
// as native booleans, which the store requires.
func toCellValues(rows [][]string) [][]any {
	out := make([][]any, 0, len(rows))
	for _, row := range rows {
		cells := make([]any, 0, len(row))
		for _, cell := range row {
			switch cell {
			case "TRUE":
				cells = append(cells, true)
			case "FALSE":
				cells = append(cells, false)
			default:
				cells = append(cells, cell)
			}
		}
		out = append(out, cells)
	}
	return out
}
