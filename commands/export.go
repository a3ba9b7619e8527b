package commands

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joshuayoes/strong-backup/strong"
)

var ExportCmd = Export{
	file:  "strong-backup.xlsx",
	debug: false,
}

type Export struct {
	file  string
	debug bool
}

func (cmd *Export) Name() string {
	return "export"
}

func (cmd *Export) Description() string {
	return "Writes the workout export to a local .xlsx workbook"
}

func (cmd *Export) Usage() string {
	return "--file <file>"
}

func (cmd *Export) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] export [--file <file>]\n", APP)
	fmt.Println()
	fmt.Println("  Parses the workout export named by INPUT_FILE and writes it to a local")
	fmt.Println("  .xlsx workbook with the same one-worksheet-per-exercise layout as the")
	fmt.Println("  'publish' command. Does not require Google credentials.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Environment:")
	fmt.Println()
	fmt.Println("    INPUT_FILE  Workout export file. Relative paths resolve against the executable")
	fmt.Println()
}

func (cmd *Export) FlagSet() *flag.FlagSet {
	flagset := flag.NewFlagSet("export", flag.ExitOnError)

	flagset.StringVar(&cmd.file, "file", cmd.file, "Workbook file name. Defaults to 'strong-backup.xlsx'")

	return flagset
}

func (cmd *Export) Execute(ctx context.Context, options *Options) error {
	cmd.debug = options.Debug

	if strings.TrimSpace(cmd.file) == "" {
		return fmt.Errorf("--file is a required option")
	}

	file, err := getInputFile()
	if err != nil {
		return err
	}

	export, err := strong.ParseFile(file)
	if err != nil {
		return err
	}

	workbook := excelize.NewFile()
	defer workbook.Close()

	if err := cmd.build(workbook, export); err != nil {
		return err
	}

	if err := workbook.SaveAs(cmd.file); err != nil {
		return fmt.Errorf("Error writing workbook to %s (%v)", cmd.file, err)
	}

	infof("Exported %v worksheets to %s", len(export.Exercises()), cmd.file)

	return nil
}

// build lays the export out in the workbook the way the publish command
// lays out the Google Sheets document: the default sheet is retitled for
// the first exercise, a sheet is added for each of the rest, and every
// sheet gets the fixed bold header and the date display format on its
// first column.
func (cmd *Export) build(workbook *excelize.File, export *strong.Export) error {
	bold, err := workbook.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
	})
	if err != nil {
		return fmt.Errorf("Error creating header style (%v)", err)
	}

	pattern := dateFormat
	date, err := workbook.NewStyle(&excelize.Style{
		CustomNumFmt: &pattern,
	})
	if err != nil {
		return fmt.Errorf("Error creating date style (%v)", err)
	}

	titles := map[string]bool{}

	for i, exercise := range export.Exercises() {
		title := sheetTitle(exercise, titles)
		if title != exercise {
			warnf("Exporting '%s' as worksheet '%s'", exercise, title)
		}

		if cmd.debug {
			debugf("Creating worksheet '%s'", title)
		}

		if i == 0 {
			if err := workbook.SetSheetName(placeholder, title); err != nil {
				return fmt.Errorf("Error renaming default worksheet to '%s' (%v)", title, err)
			}
		} else {
			if _, err := workbook.NewSheet(title); err != nil {
				return fmt.Errorf("Error creating worksheet '%s' (%v)", title, err)
			}
		}

		for c, col := range strong.Columns {
			cell, err := excelize.CoordinatesToCellName(c+1, 1)
			if err != nil {
				return err
			}

			if err := workbook.SetCellValue(title, cell, col); err != nil {
				return err
			}
		}

		if err := workbook.SetCellStyle(title, "A1", fmt.Sprintf("%s1", lastColumn()), bold); err != nil {
			return fmt.Errorf("Error formatting worksheet '%s' header (%v)", title, err)
		}

		for r, record := range export.ForExercise(exercise) {
			row := record.Project(strong.Columns)

			for c, col := range strong.Columns {
				v, ok := row[col]
				if !ok {
					continue
				}

				cell, err := excelize.CoordinatesToCellName(c+1, r+2)
				if err != nil {
					return err
				}

				if err := workbook.SetCellValue(title, cell, cellValue(col, v)); err != nil {
					return err
				}
			}
		}

		if err := workbook.SetCellStyle(title, "A2", fmt.Sprintf("A%v", dateRows), date); err != nil {
			return fmt.Errorf("Error formatting worksheet '%s' date column (%v)", title, err)
		}
	}

	return nil
}

// cellValue coerces a projected value the way Google Sheets coerces
// USER_ENTERED input: timestamps become real dates, numbers become
// numbers, anything else stays text.
func cellValue(column, v string) interface{} {
	if column == strong.Columns[0] {
		if d, err := time.ParseInLocation("2006-01-02 15:04:05", v, time.Local); err == nil {
			return d
		}

		if d, err := time.ParseInLocation("2006-01-02", v, time.Local); err == nil {
			return d
		}

		return v
	}

	if n, err := strconv.ParseFloat(v, 64); err == nil {
		return n
	}

	return v
}

// sheetName converts an exercise name to a legal workbook sheet name.
// xlsx caps sheet names at 31 characters and disallows a handful of
// characters that are fine in Google Sheets titles.
func sheetName(exercise string) string {
	name := exercise

	for _, ch := range []string{":", "\\", "/", "?", "*", "[", "]"} {
		name = strings.ReplaceAll(name, ch, " ")
	}

	if runes := []rune(name); len(runes) > 31 {
		name = string(runes[:31])
	}

	return strings.TrimSpace(name)
}

// sheetTitle returns a unique sheet name for an exercise, suffixing a
// counter when capping collapses two exercises onto the same name.
func sheetTitle(exercise string, titles map[string]bool) string {
	title := sheetName(exercise)

	for n := 2; titles[title]; n++ {
		runes := []rune(sheetName(exercise))
		if len(runes) > 28 {
			runes = runes[:28]
		}

		title = fmt.Sprintf("%s %v", strings.TrimSpace(string(runes)), n)
	}

	titles[title] = true

	return title
}
