package commands

import (
	"context"
	"flag"
	"fmt"
	"time"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

var StatusCmd = Status{
	debug: false,
}

type Status struct {
	debug bool
}

type revision struct {
	id       string
	modified time.Time
}

func (cmd *Status) Name() string {
	return "status"
}

func (cmd *Status) Description() string {
	return "Displays the worksheets and latest revision of the Google Sheets document"
}

func (cmd *Status) Usage() string {
	return ""
}

func (cmd *Status) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] status\n", APP)
	fmt.Println()
	fmt.Println("  Lists the worksheets of the Google Sheets document named by GOOGLE_SHEET_ID")
	fmt.Println("  with their data row counts, and the latest Drive revision of the document.")
	fmt.Println()
	fmt.Println("  Environment:")
	fmt.Println()
	fmt.Println("    GOOGLE_SERVICE_ACCOUNT_EMAIL  Service account email address")
	fmt.Println("    GOOGLE_PRIVATE_KEY            Service account PEM private key")
	fmt.Println("    GOOGLE_SHEET_ID               Google Sheets document ID")
	fmt.Println()
}

func (cmd *Status) FlagSet() *flag.FlagSet {
	return flag.NewFlagSet("status", flag.ExitOnError)
}

func (cmd *Status) Execute(ctx context.Context, options *Options) error {
	cmd.debug = options.Debug

	creds, err := getCredentials()
	if err != nil {
		return err
	}

	info("Authenticating...")
	client, err := authorize(ctx, creds.email, creds.key, SHEETS, DRIVE)
	if err != nil {
		return err
	}

	google, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return fmt.Errorf("Unable to create new Sheets client (%v)", err)
	}

	gdrive, err := drive.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return fmt.Errorf("Unable to create new Drive client (%v)", err)
	}

	info("Loading doc...")
	spreadsheet, err := getSpreadsheet(google, creds.docId, ctx)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("  %s\n", spreadsheet.Properties.Title)
	fmt.Println()

	for _, sheet := range spreadsheet.Sheets {
		rows, err := cmd.countRows(google, spreadsheet, sheet.Properties.Title, ctx)
		if err != nil {
			return err
		}

		fmt.Printf("  %-10v %-40s %4v rows\n", sheet.Properties.SheetId, sheet.Properties.Title, rows)
	}

	latest, err := latestRevision(gdrive, creds.docId, ctx)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("  Latest revision: %s (%s)\n", latest.id, latest.modified.Format("2006-01-02 15:04:05"))
	fmt.Println()

	return nil
}

func (cmd *Status) countRows(google *sheets.Service, spreadsheet *sheets.Spreadsheet, title string, ctx context.Context) (int, error) {
	response, err := google.Spreadsheets.Values.Get(spreadsheet.SpreadsheetId, dataRange(title)).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("Unable to retrieve data from worksheet '%s' (%v)", title, err)
	}

	return len(response.Values), nil
}

// latestRevision walks the document's Drive revision list and returns the
// most recently modified revision.
func latestRevision(gdrive *drive.Service, fileId string, ctx context.Context) (*revision, error) {
	page := ""
	latest := revision{
		id:       "",
		modified: time.Time{},
	}

	for {
		call := drive.NewRevisionsService(gdrive).List(fileId)
		if page != "" {
			call.PageToken(page)
		}

		revisions, err := call.Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("Unable to retrieve document revisions (%v)", err)
		}

		for _, r := range revisions.Revisions {
			datetime, err := time.Parse("2006-01-02T15:04:05.999Z", r.ModifiedTime)
			if err != nil {
				return nil, err
			}

			if latest.modified.Before(datetime) {
				latest.id = r.Id
				latest.modified = datetime
			}
		}

		if page = revisions.NextPageToken; page == "" {
			break
		}
	}

	if latest.modified.IsZero() {
		return nil, fmt.Errorf("Unable to identify latest revision for document %s", fileId)
	}

	return &latest, nil
}
