package strong

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// Columns is the fixed header row written to every worksheet. The order is
// significant - it is the column order of the published sheets.
var Columns = []string{"Date", "Set Order", "Reps", "Weight", "RPE", "Notes"}

// ExerciseName is the input column that keys records to worksheets.
const ExerciseName = "Exercise Name"

// Record is one logged set, keyed by the export file's own header names.
// Fields missing from a short line are present as empty strings.
type Record map[string]string

// Row is the destination-shaped projection of a Record: only the fixed
// destination columns, and only those with a non-empty value.
type Row map[string]string

// Export is a decoded workout log. Columns preserves the file's header
// order and Records preserves line order.
type Export struct {
	Columns []string
	Records []Record
}

// ParseFile decodes the semicolon-delimited workout export at path.
func ParseFile(path string) (*Export, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Unable to read export file (%w)", err)
	}

	defer f.Close()

	return Parse(f)
}

// Parse decodes a semicolon-delimited workout export. The first line names
// the columns; every subsequent line is one logged set. Short lines are
// padded with empty values, fields beyond the header are dropped and
// quoting is lenient - a stray quote in a notes field is not an error.
func Parse(r io.Reader) (*Export, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	lines, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("Invalid export file (%w)", err)
	}

	if len(lines) == 0 {
		return nil, fmt.Errorf("Empty export file")
	}

	columns := make([]string, len(lines[0]))
	copy(columns, lines[0])
	columns[0] = strings.TrimPrefix(columns[0], "\ufeff")

	index := map[string]bool{}
	for _, col := range columns {
		if index[col] {
			return nil, fmt.Errorf("Duplicate column name '%s'", col)
		}

		index[col] = true
	}

	export := Export{
		Columns: columns,
	}

	for _, line := range lines[1:] {
		record := Record{}
		for i, col := range columns {
			if i < len(line) {
				record[col] = line[i]
			} else {
				record[col] = ""
			}
		}

		export.Records = append(export.Records, record)
	}

	return &export, nil
}

// Exercises returns the distinct non-empty exercise names, collected in
// first-seen order and then sorted lexicographically. Records without an
// exercise name are excluded - their sets are never published anywhere.
func (e *Export) Exercises() []string {
	seen := map[string]bool{}
	list := []string{}

	for _, record := range e.Records {
		name := record[ExerciseName]
		if name == "" || seen[name] {
			continue
		}

		seen[name] = true
		list = append(list, name)
	}

	sort.Strings(list)

	return list
}

// ForExercise returns the records logged against an exercise, preserving
// their original relative order.
func (e *Export) ForExercise(name string) []Record {
	records := []Record{}

	for _, record := range e.Records {
		if record[ExerciseName] == name {
			records = append(records, record)
		}
	}

	return records
}

// Project reduces a record to the given destination columns, dropping any
// column whose source value is empty rather than carrying it as a blank.
func (r Record) Project(columns []string) Row {
	row := Row{}

	for _, col := range columns {
		if v := r[col]; v != "" {
			row[col] = v
		}
	}

	return row
}
