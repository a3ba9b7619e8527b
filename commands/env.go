package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	INPUT_FILE                   = "INPUT_FILE"
	GOOGLE_PRIVATE_KEY           = "GOOGLE_PRIVATE_KEY"
	GOOGLE_SERVICE_ACCOUNT_EMAIL = "GOOGLE_SERVICE_ACCOUNT_EMAIL"
	GOOGLE_SHEET_ID              = "GOOGLE_SHEET_ID"
)

// credentials is the service account identity and document ID required by
// any command that talks to Google.
type credentials struct {
	email string
	key   string
	docId string
}

// getCredentials reads the service account email, private key and document
// ID from the environment. Private keys stored with literal \n sequences
// (the usual .env form) are unescaped to real newlines.
func getCredentials() (*credentials, error) {
	email, err := getenv(GOOGLE_SERVICE_ACCOUNT_EMAIL)
	if err != nil {
		return nil, err
	}

	key, err := getenv(GOOGLE_PRIVATE_KEY)
	if err != nil {
		return nil, err
	}

	docId, err := getenv(GOOGLE_SHEET_ID)
	if err != nil {
		return nil, err
	}

	return &credentials{
		email: email,
		key:   strings.ReplaceAll(key, `\n`, "\n"),
		docId: docId,
	}, nil
}

// getInputFile reads the workout export file path from the environment.
// Relative paths resolve against the executable's directory, not the
// working directory.
func getInputFile() (string, error) {
	file, err := getenv(INPUT_FILE)
	if err != nil {
		return "", err
	}

	if filepath.IsAbs(file) {
		return file, nil
	}

	executable, err := os.Executable()
	if err != nil {
		return "", err
	}

	return filepath.Join(filepath.Dir(executable), file), nil
}

func getenv(name string) (string, error) {
	if v := os.Getenv(name); strings.TrimSpace(v) != "" {
		return v, nil
	}

	return "", fmt.Errorf("%s is a required environment variable", name)
}
