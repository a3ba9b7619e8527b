package commands

const APP = "strong-backup"
const VERSION = "v1.0.0"

const (
	// Title given to the worksheet that survives the reset phase.
	placeholder = "Sheet1"

	// Rows of the first column given the date display format. Worksheets
	// with more data rows keep the default format beyond this.
	dateRows = 200

	// Number format pattern for the published date column.
	dateFormat = "ddd m/d/yy"
)

const (
	SHEETS = "https://www.googleapis.com/auth/spreadsheets"
	DRIVE  = "https://www.googleapis.com/auth/drive.metadata.readonly"
)
