package commands

import (
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/net/context"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/sheets/v4"
)

// authorize exchanges the service account credentials for an authenticated
// HTTP client. A token is fetched immediately so that credential problems
// surface during the authentication phase rather than on the first
// spreadsheet call.
func authorize(ctx context.Context, email, key string, scopes ...string) (*http.Client, error) {
	config := jwt.Config{
		Email:      email,
		PrivateKey: []byte(key),
		Scopes:     scopes,
		TokenURL:   google.JWTTokenURL,
	}

	if _, err := config.TokenSource(ctx).Token(); err != nil {
		return nil, fmt.Errorf("Authentication error (%v)", err)
	}

	return config.Client(ctx), nil
}

func clear(google *sheets.Service, spreadsheet *sheets.Spreadsheet, ranges []string, ctx context.Context) error {
	rq := sheets.BatchClearValuesRequest{
		Ranges: ranges,
	}

	if _, err := google.Spreadsheets.Values.BatchClear(spreadsheet.SpreadsheetId, &rq).Context(ctx).Do(); err != nil {
		return err
	}

	return nil
}

// quote returns a worksheet title quoted for use in an A1 range reference.
// Embedded quotes are doubled.
func quote(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}
