package strong

import (
	"reflect"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	expected := &Export{
		Columns: []string{"Date", "Exercise Name", "Set Order", "Weight", "Reps", "RPE", "Notes"},
		Records: []Record{
			{"Date": "2023-10-06 10:51:13", "Exercise Name": "Squat (Barbell)", "Set Order": "1", "Weight": "102.5", "Reps": "5", "RPE": "8", "Notes": ""},
			{"Date": "2023-10-06 10:51:13", "Exercise Name": "Deadlift (Barbell)", "Set Order": "1", "Weight": "140", "Reps": "3", "RPE": "", "Notes": "belt; no straps"},
		},
	}

	tsv := `Date;Exercise Name;Set Order;Weight;Reps;RPE;Notes
2023-10-06 10:51:13;Squat (Barbell);1;102.5;5;8;
2023-10-06 10:51:13;Deadlift (Barbell);1;140;3;;"belt; no straps"`

	export, err := Parse(strings.NewReader(tsv))
	if err != nil {
		t.Fatalf("Unexpected error parsing export (%v)", err)
	}

	if !reflect.DeepEqual(export, expected) {
		t.Errorf("Incorrectly parsed export:\n   expected: %+v\n   got:      %+v", expected, export)
	}
}

func TestParseWithBOM(t *testing.T) {
	tsv := "\ufeffDate;Exercise Name\n2023-10-06 10:51:13;Squat (Barbell)"

	export, err := Parse(strings.NewReader(tsv))
	if err != nil {
		t.Fatalf("Unexpected error parsing export (%v)", err)
	}

	if expected := []string{"Date", "Exercise Name"}; !reflect.DeepEqual(export.Columns, expected) {
		t.Errorf("Incorrect columns:\n   expected: %v\n   got:      %v", expected, export.Columns)
	}
}

func TestParseWithShortLine(t *testing.T) {
	expected := Record{"Date": "2023-10-06 10:51:13", "Exercise Name": "Squat (Barbell)", "Set Order": "", "Notes": ""}

	tsv := `Date;Exercise Name;Set Order;Notes
2023-10-06 10:51:13;Squat (Barbell)`

	export, err := Parse(strings.NewReader(tsv))
	if err != nil {
		t.Fatalf("Unexpected error parsing export (%v)", err)
	}

	if len(export.Records) != 1 {
		t.Fatalf("Incorrect number of records - expected 1, got %v", len(export.Records))
	}

	if !reflect.DeepEqual(export.Records[0], expected) {
		t.Errorf("Incorrectly padded record:\n   expected: %v\n   got:      %v", expected, export.Records[0])
	}
}

func TestParseWithLongLine(t *testing.T) {
	expected := Record{"Date": "2023-10-06 10:51:13", "Exercise Name": "Squat (Barbell)"}

	tsv := `Date;Exercise Name
2023-10-06 10:51:13;Squat (Barbell);1;102.5;extra`

	export, err := Parse(strings.NewReader(tsv))
	if err != nil {
		t.Fatalf("Unexpected error parsing export (%v)", err)
	}

	if !reflect.DeepEqual(export.Records[0], expected) {
		t.Errorf("Incorrectly truncated record:\n   expected: %v\n   got:      %v", expected, export.Records[0])
	}
}

func TestParseWithEmbeddedQuote(t *testing.T) {
	expected := Record{"Date": "2023-10-06 10:51:13", "Exercise Name": "Box Jump", "Notes": `24" box felt high`}

	tsv := `Date;Exercise Name;Notes
2023-10-06 10:51:13;Box Jump;24" box felt high`

	export, err := Parse(strings.NewReader(tsv))
	if err != nil {
		t.Fatalf("Unexpected error parsing export (%v)", err)
	}

	if len(export.Records) != 1 {
		t.Fatalf("Incorrect number of records - expected 1, got %v", len(export.Records))
	}

	if !reflect.DeepEqual(export.Records[0], expected) {
		t.Errorf("Incorrectly parsed record with embedded quote:\n   expected: %v\n   got:      %v", expected, export.Records[0])
	}
}

func TestParseWithHeaderOnly(t *testing.T) {
	export, err := Parse(strings.NewReader("Date;Exercise Name;Set Order"))
	if err != nil {
		t.Fatalf("Unexpected error parsing export (%v)", err)
	}

	if len(export.Records) != 0 {
		t.Errorf("Expected no records, got %v", export.Records)
	}

	if exercises := export.Exercises(); len(exercises) != 0 {
		t.Errorf("Expected no exercises, got %v", exercises)
	}
}

func TestParseWithEmptyFile(t *testing.T) {
	if _, err := Parse(strings.NewReader("")); err == nil {
		t.Errorf("Expected error parsing empty export, got %v", err)
	}
}

func TestParseWithDuplicateColumn(t *testing.T) {
	tsv := `Date;Exercise Name;Date
2023-10-06 10:51:13;Squat (Barbell);2023-10-07 09:12:45`

	if _, err := Parse(strings.NewReader(tsv)); err == nil {
		t.Errorf("Expected error parsing export with duplicate column, got %v", err)
	}
}

func TestExercises(t *testing.T) {
	expected := []string{"Deadlift (Barbell)", "Squat (Barbell)"}

	export := Export{
		Records: []Record{
			{ExerciseName: "Squat (Barbell)"},
			{ExerciseName: "Squat (Barbell)"},
			{ExerciseName: "Deadlift (Barbell)"},
			{ExerciseName: "Squat (Barbell)"},
		},
	}

	exercises := export.Exercises()

	if !reflect.DeepEqual(exercises, expected) {
		t.Errorf("Incorrect exercise list:\n   expected: %v\n   got:      %v", expected, exercises)
	}
}

func TestExercisesExcludesUnnamed(t *testing.T) {
	expected := []string{"Bench Press (Barbell)"}

	export := Export{
		Records: []Record{
			{ExerciseName: ""},
			{ExerciseName: "Bench Press (Barbell)"},
			{"Date": "2023-10-06 10:51:13"},
		},
	}

	exercises := export.Exercises()

	if !reflect.DeepEqual(exercises, expected) {
		t.Errorf("Incorrect exercise list:\n   expected: %v\n   got:      %v", expected, exercises)
	}
}

func TestForExercise(t *testing.T) {
	expected := []Record{
		{ExerciseName: "Squat (Barbell)", "Set Order": "1"},
		{ExerciseName: "Squat (Barbell)", "Set Order": "2"},
		{ExerciseName: "Squat (Barbell)", "Set Order": "3"},
	}

	export := Export{
		Records: []Record{
			{ExerciseName: "Squat (Barbell)", "Set Order": "1"},
			{ExerciseName: "Deadlift (Barbell)", "Set Order": "1"},
			{ExerciseName: "Squat (Barbell)", "Set Order": "2"},
			{ExerciseName: "Deadlift (Barbell)", "Set Order": "2"},
			{ExerciseName: "Squat (Barbell)", "Set Order": "3"},
		},
	}

	records := export.ForExercise("Squat (Barbell)")

	if !reflect.DeepEqual(records, expected) {
		t.Errorf("Incorrect records for exercise:\n   expected: %v\n   got:      %v", expected, records)
	}
}

func TestProject(t *testing.T) {
	expected := Row{
		"Date":      "2023-10-06 10:51:13",
		"Set Order": "1",
		"Reps":      "5",
		"Weight":    "102.5",
	}

	record := Record{
		"Date":          "2023-10-06 10:51:13",
		"Workout Name":  "Push Day",
		"Exercise Name": "Squat (Barbell)",
		"Set Order":     "1",
		"Weight":        "102.5",
		"Reps":          "5",
		"RPE":           "",
		"Notes":         "",
	}

	row := record.Project(Columns)

	if !reflect.DeepEqual(row, expected) {
		t.Errorf("Incorrectly projected row:\n   expected: %v\n   got:      %v", expected, row)
	}
}
