package commands

import (
	"context"
	"flag"
	"fmt"
	"sort"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/joshuayoes/strong-backup/strong"
)

var PublishCmd = Publish{
	dryrun: false,
	debug:  false,
}

type Publish struct {
	dryrun bool
	debug  bool
}

func (cmd *Publish) Name() string {
	return "publish"
}

func (cmd *Publish) Description() string {
	return "Rebuilds the Google Sheets document from the workout export file"
}

func (cmd *Publish) Usage() string {
	return "[--dry-run]"
}

func (cmd *Publish) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] publish [--dry-run]\n", APP)
	fmt.Println()
	fmt.Println("  Parses the workout export named by INPUT_FILE and republishes it to the")
	fmt.Println("  Google Sheets document named by GOOGLE_SHEET_ID, one worksheet per exercise")
	fmt.Println("  with the header 'Date, Set Order, Reps, Weight, RPE, Notes'. The document")
	fmt.Println("  is rebuilt from scratch on every run - existing worksheets are deleted.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Environment:")
	fmt.Println()
	fmt.Println("    INPUT_FILE                    Workout export file. Relative paths resolve against the executable")
	fmt.Println("    GOOGLE_SERVICE_ACCOUNT_EMAIL  Service account email address")
	fmt.Println("    GOOGLE_PRIVATE_KEY            Service account PEM private key")
	fmt.Println("    GOOGLE_SHEET_ID               Google Sheets document ID")
	fmt.Println()
}

func (cmd *Publish) FlagSet() *flag.FlagSet {
	flagset := flag.NewFlagSet("publish", flag.ExitOnError)

	flagset.BoolVar(&cmd.dryrun, "dry-run", cmd.dryrun, "Parses the export file and reports the worksheet plan without updating the document")

	return flagset
}

func (cmd *Publish) Execute(ctx context.Context, options *Options) error {
	cmd.debug = options.Debug

	file, err := getInputFile()
	if err != nil {
		return err
	}

	if cmd.dryrun {
		export, err := strong.ParseFile(file)
		if err != nil {
			return err
		}

		return cmd.report(export)
	}

	creds, err := getCredentials()
	if err != nil {
		return err
	}

	if cmd.debug {
		debugf("Export file:%s  document ID:%s", file, creds.docId)
	}

	export, err := strong.ParseFile(file)
	if err != nil {
		return err
	}

	exercises := export.Exercises()

	info("Authenticating...")
	client, err := authorize(ctx, creds.email, creds.key, SHEETS)
	if err != nil {
		return err
	}

	google, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return fmt.Errorf("Unable to create new Sheets client (%v)", err)
	}

	info("Loading doc...")
	spreadsheet, err := getSpreadsheet(google, creds.docId, ctx)
	if err != nil {
		return err
	}

	info("Resetting sheets...")
	anchor, err := cmd.reset(google, spreadsheet, ctx)
	if err != nil {
		return err
	}

	info("Creating sheets...")
	if err := cmd.create(google, spreadsheet, anchor, exercises, ctx); err != nil {
		return err
	}

	info("Filling sheets...")
	if err := cmd.fill(google, spreadsheet, export, exercises, ctx); err != nil {
		return err
	}

	info("Format sheets...")
	if err := cmd.format(google, spreadsheet, ctx); err != nil {
		return err
	}

	return nil
}

// report summarizes the worksheet plan for a dry run.
func (cmd *Publish) report(export *strong.Export) error {
	exercises := export.Exercises()

	fmt.Printf("Export: %v records, %v exercises\n", len(export.Records), len(exercises))
	fmt.Println()

	for _, exercise := range exercises {
		fmt.Printf("  %-40s %4v rows\n", exercise, len(export.ForExercise(exercise)))
	}

	fmt.Println()

	return nil
}

// reset deletes every worksheet except the one with the numerically last
// sheet ID, renames the survivor to the placeholder title and clears its
// cell content. The surviving sheet is returned as the anchor for the
// create phase.
func (cmd *Publish) reset(google *sheets.Service, spreadsheet *sheets.Spreadsheet, ctx context.Context) (*sheets.Sheet, error) {
	anchor := anchorSheet(spreadsheet)
	if anchor == nil {
		return nil, fmt.Errorf("Document has no worksheets")
	}

	rq := sheets.BatchUpdateSpreadsheetRequest{
		Requests: resetRequests(spreadsheet, anchor),
	}

	if _, err := google.Spreadsheets.BatchUpdate(spreadsheet.SpreadsheetId, &rq).Context(ctx).Do(); err != nil {
		return nil, fmt.Errorf("Error resetting worksheets (%w)", err)
	}

	if err := clear(google, spreadsheet, []string{quote(placeholder)}, ctx); err != nil {
		return nil, fmt.Errorf("Error clearing anchor worksheet (%w)", err)
	}

	return anchor, nil
}

// create retitles the anchor worksheet to the first exercise and adds a
// worksheet for each of the rest, writing the fixed header row to every
// one. Strictly sequential - each call completes before the next is
// issued.
func (cmd *Publish) create(google *sheets.Service, spreadsheet *sheets.Spreadsheet, anchor *sheets.Sheet, exercises []string, ctx context.Context) error {
	for i, exercise := range exercises {
		if cmd.debug {
			debugf("Creating worksheet '%s'", exercise)
		}

		var rq sheets.BatchUpdateSpreadsheetRequest

		if i == 0 {
			rq = sheets.BatchUpdateSpreadsheetRequest{
				Requests: []*sheets.Request{
					&sheets.Request{
						UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
							Properties: &sheets.SheetProperties{
								SheetId: anchor.Properties.SheetId,
								Title:   exercise,
							},
							Fields: "title",
						},
					},
				},
			}
		} else {
			rq = sheets.BatchUpdateSpreadsheetRequest{
				Requests: []*sheets.Request{
					&sheets.Request{
						AddSheet: &sheets.AddSheetRequest{
							Properties: &sheets.SheetProperties{
								Title: exercise,
							},
						},
					},
				},
			}
		}

		if _, err := google.Spreadsheets.BatchUpdate(spreadsheet.SpreadsheetId, &rq).Context(ctx).Do(); err != nil {
			return fmt.Errorf("Error creating worksheet '%s' (%w)", exercise, err)
		}

		if err := cmd.setHeader(google, spreadsheet, exercise, ctx); err != nil {
			return err
		}
	}

	return nil
}

func (cmd *Publish) setHeader(google *sheets.Service, spreadsheet *sheets.Spreadsheet, title string, ctx context.Context) error {
	row := make([]interface{}, len(strong.Columns))
	for i, col := range strong.Columns {
		row[i] = col
	}

	var header = sheets.ValueRange{
		Values: [][]interface{}{row},
	}

	if _, err := google.Spreadsheets.Values.Update(spreadsheet.SpreadsheetId, headerRange(title), &header).
		ValueInputOption("RAW").
		Context(ctx).
		Do(); err != nil {
		return fmt.Errorf("Error writing header to worksheet '%s' (%w)", title, err)
	}

	return nil
}

// fill appends the projected rows for each exercise in a single bulk call
// per worksheet, preserving the input file's record order.
func (cmd *Publish) fill(google *sheets.Service, spreadsheet *sheets.Spreadsheet, export *strong.Export, exercises []string, ctx context.Context) error {
	for _, exercise := range exercises {
		var rows = sheets.ValueRange{
			Values: [][]interface{}{},
		}

		for _, record := range export.ForExercise(exercise) {
			rows.Values = append(rows.Values, rowValues(record.Project(strong.Columns)))
		}

		if cmd.debug {
			debugf("Filling worksheet '%s' with %v rows", exercise, len(rows.Values))
		}

		if _, err := google.Spreadsheets.Values.Append(spreadsheet.SpreadsheetId, headerRange(exercise), &rows).
			ValueInputOption("USER_ENTERED").
			InsertDataOption("INSERT_ROWS").
			Context(ctx).
			Do(); err != nil {
			return fmt.Errorf("Error filling worksheet '%s' (%w)", exercise, err)
		}
	}

	return nil
}

// format applies the date display format and the bold header to every
// worksheet, one batched update per worksheet. The worksheet list is
// re-fetched because the create phase changed it.
func (cmd *Publish) format(google *sheets.Service, spreadsheet *sheets.Spreadsheet, ctx context.Context) error {
	current, err := getSpreadsheet(google, spreadsheet.SpreadsheetId, ctx)
	if err != nil {
		return err
	}

	for _, sheet := range current.Sheets {
		if cmd.debug {
			debugf("Formatting worksheet '%s'", sheet.Properties.Title)
		}

		rq := sheets.BatchUpdateSpreadsheetRequest{
			Requests: formatRequests(sheet),
		}

		if _, err := google.Spreadsheets.BatchUpdate(spreadsheet.SpreadsheetId, &rq).Context(ctx).Do(); err != nil {
			return fmt.Errorf("Error formatting worksheet '%s' (%w)", sheet.Properties.Title, err)
		}
	}

	return nil
}

// anchorSheet returns the worksheet with the numerically last sheet ID,
// the one reused across runs.
func anchorSheet(spreadsheet *sheets.Spreadsheet) *sheets.Sheet {
	var anchor *sheets.Sheet

	for _, sheet := range spreadsheet.Sheets {
		if anchor == nil || sheet.Properties.SheetId > anchor.Properties.SheetId {
			anchor = sheet
		}
	}

	return anchor
}

// resetRequests builds the batched structural edits for the reset phase:
// every worksheet except the anchor is deleted, in ascending sheet ID
// order, and the anchor is renamed to the placeholder title.
func resetRequests(spreadsheet *sheets.Spreadsheet, anchor *sheets.Sheet) []*sheets.Request {
	list := append([]*sheets.Sheet{}, spreadsheet.Sheets...)
	sort.Slice(list, func(i, j int) bool { return list[i].Properties.SheetId < list[j].Properties.SheetId })

	requests := []*sheets.Request{}

	for _, sheet := range list {
		if sheet.Properties.SheetId != anchor.Properties.SheetId {
			requests = append(requests, &sheets.Request{
				DeleteSheet: &sheets.DeleteSheetRequest{
					SheetId: sheet.Properties.SheetId,
				},
			})
		}
	}

	requests = append(requests, &sheets.Request{
		UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
			Properties: &sheets.SheetProperties{
				SheetId: anchor.Properties.SheetId,
				Title:   placeholder,
			},
			Fields: "title",
		},
	})

	return requests
}

// formatRequests builds the cosmetic edits for a worksheet: the date
// display format over the first column and bold over the header row. Cell
// values are never altered.
func formatRequests(sheet *sheets.Sheet) []*sheets.Request {
	rows := int64(dateRows)
	if grid := sheet.Properties.GridProperties; grid != nil && grid.RowCount < rows {
		rows = grid.RowCount
	}

	return []*sheets.Request{
		&sheets.Request{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:          sheet.Properties.SheetId,
					StartRowIndex:    0,
					EndRowIndex:      rows,
					StartColumnIndex: 0,
					EndColumnIndex:   1,
				},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						NumberFormat: &sheets.NumberFormat{
							Type:    "DATE",
							Pattern: dateFormat,
						},
					},
				},
				Fields: "userEnteredFormat.numberFormat",
			},
		},
		&sheets.Request{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:          sheet.Properties.SheetId,
					StartRowIndex:    0,
					EndRowIndex:      1,
					StartColumnIndex: 0,
					EndColumnIndex:   int64(len(strong.Columns)),
				},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						TextFormat: &sheets.TextFormat{
							Bold: true,
						},
					},
				},
				Fields: "userEnteredFormat.textFormat.bold",
			},
		},
	}
}

// rowValues flattens a projected row into an append payload in the fixed
// column order. Omitted columns are transmitted as nulls so the remote
// cell is left untouched rather than overwritten with an empty string.
func rowValues(row strong.Row) []interface{} {
	values := make([]interface{}, len(strong.Columns))

	for i, col := range strong.Columns {
		if v, ok := row[col]; ok {
			values[i] = v
		}
	}

	return values
}

// headerRange returns the A1 reference for a worksheet's header row.
func headerRange(title string) string {
	return fmt.Sprintf("%s!A1:%s1", quote(title), lastColumn())
}

// dataRange returns the A1 reference for a worksheet's data rows.
func dataRange(title string) string {
	return fmt.Sprintf("%s!A2:%s", quote(title), lastColumn())
}

func lastColumn() string {
	return string(rune('A' + len(strong.Columns) - 1))
}
