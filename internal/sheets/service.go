// Package sheets wraps the Google Sheets API for the operations gsheet-mcp
// exposes: tab listing, range reads, top-insertion of prompt rows, and
// README initialization.
package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// Service is a thin client over the Sheets API.
type Service struct {
	api *sheetsapi.Service
}

// New creates a Service. Callers pass option.WithTokenSource for real use;
// tests pass option.WithEndpoint and option.WithoutAuthentication.
func New(ctx context.Context, opts ...option.ClientOption) (*Service, error) {
	api, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating sheets client: %w", err)
	}
	return &Service{api: api}, nil
}

// ListTabTitles returns the titles of every tab in the spreadsheet.
func (s *Service) ListTabTitles(ctx context.Context, spreadsheetID string) ([]string, error) {
	resp, err := s.api.Spreadsheets.Get(spreadsheetID).
		Fields("sheets.properties.title").
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("getting spreadsheet %s: %w", spreadsheetID, err)
	}

	titles := make([]string, 0, len(resp.Sheets))
	for _, sheet := range resp.Sheets {
		if sheet.Properties != nil {
			titles = append(titles, sheet.Properties.Title)
		}
	}
	return titles, nil
}

// ReadRange returns the cell values for an A1-notation range.
func (s *Service) ReadRange(ctx context.Context, spreadsheetID, rangeName string) ([][]any, error) {
	resp, err := s.api.Spreadsheets.Values.Get(spreadsheetID, rangeName).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("reading range %s: %w", rangeName, err)
	}
	return resp.Values, nil
}

// InsertRowAtTop inserts values as a new row directly below the header row
// of the named tab: a row is inserted at index 1 and the values written at
// A2, so newest entries stay on top without disturbing the header.
func (s *Service) InsertRowAtTop(ctx context.Context, spreadsheetID, tab string, values []any) error {
	sheetID, err := s.tabID(ctx, spreadsheetID, tab)
	if err != nil {
		return err
	}

	_, err = s.api.Spreadsheets.BatchUpdate(spreadsheetID, &sheetsapi.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsapi.Request{{
			InsertDimension: &sheetsapi.InsertDimensionRequest{
				Range: &sheetsapi.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "ROWS",
					StartIndex: 1,
					EndIndex:   2,
				},
				InheritFromBefore: false,
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("inserting row in %s: %w", tab, err)
	}

	_, err = s.api.Spreadsheets.Values.Update(spreadsheetID, fmt.Sprintf("%s!A2", tab), &sheetsapi.ValueRange{
		Values: [][]any{values},
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("writing row in %s: %w", tab, err)
	}
	return nil
}

// CreateTab adds a new tab to the spreadsheet. A duplicate title surfaces
// the API error unchanged.
func (s *Service) CreateTab(ctx context.Context, spreadsheetID, title string) error {
	_, err := s.api.Spreadsheets.BatchUpdate(spreadsheetID, &sheetsapi.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsapi.Request{{
			AddSheet: &sheetsapi.AddSheetRequest{
				Properties: &sheetsapi.SheetProperties{Title: title},
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("creating tab %q: %w", title, err)
	}
	return nil
}

// ReadmeTab is the status tab created by InitReadme and read by the
// default get_sheet_status range.
const ReadmeTab = "README"

// InitReadme creates the README tab when missing and writes the standard
// status rows. Repeated calls rewrite the status block in place.
func (s *Service) InitReadme(ctx context.Context, spreadsheetID, timestamp string) error {
	titles, err := s.ListTabTitles(ctx, spreadsheetID)
	if err != nil {
		return err
	}

	exists := false
	for _, title := range titles {
		if title == ReadmeTab {
			exists = true
			break
		}
	}
	if !exists {
		if err := s.CreateTab(ctx, spreadsheetID, ReadmeTab); err != nil {
			return err
		}
	}

	rows := [][]any{
		{"gsheet-mcp"},
		{"Status", "initialized"},
		{"Initialized At", timestamp},
	}
	_, err = s.api.Spreadsheets.Values.Update(spreadsheetID, ReadmeTab+"!A1", &sheetsapi.ValueRange{
		Values: rows,
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("writing README rows: %w", err)
	}
	return nil
}

// tabID resolves a tab title to its numeric sheet ID.
func (s *Service) tabID(ctx context.Context, spreadsheetID, tab string) (int64, error) {
	resp, err := s.api.Spreadsheets.Get(spreadsheetID).
		Fields("sheets.properties.sheetId,sheets.properties.title").
		Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("getting spreadsheet %s: %w", spreadsheetID, err)
	}
	for _, sheet := range resp.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == tab {
			return sheet.Properties.SheetId, nil
		}
	}
	return 0, fmt.Errorf("tab %q not found in spreadsheet %s", tab, spreadsheetID)
}
