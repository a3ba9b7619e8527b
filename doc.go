/*
Package strong-backup republishes a Strong workout log export to a Google Sheets document.

strong-backup can be used from the command line but is really intended to be run from a cron
job or a shortcut, keeping a spreadsheet up to date with the latest workout export - one
worksheet per exercise, with a formatted date column and a bold header row.

strong-backup supports the following commands:

  - publish, to rebuild the Google Sheets document from the workout export file
  - export, to write the same worksheet layout to a local .xlsx workbook
  - status, to display the document's worksheets and its latest Drive revision
  - version, to display the application version
*/
package backup
