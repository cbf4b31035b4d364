package config

import (
	"os"
	"path/filepath"
)

const defaultAPIURL = "http://localhost:5001"

const tokenFileName = ".stockpulse_token"

// APIURL returns the base URL for the StockPulse API.
// It can be overridden with the STOCKPULSE_API_URL environment variable.
func APIURL() string {
	if v := os.Getenv("STOCKPULSE_API_URL"); v != "" {
		return v
	}
	return defaultAPIURL
}

// SaveToken stores the JWT token in the user's home directory for later commands.
func SaveToken(token string) error {
	return os.WriteFile(tokenPath(), []byte(token), 0600)
}

// LoadToken reads the stored JWT token. Fails when the user has not logged in.
func LoadToken() (string, error) {
	data, err := os.ReadFile(tokenPath())
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// RemoveToken deletes the stored token (logout).
func RemoveToken() error {
	return os.Remove(tokenPath())
}

func tokenPath() string {
	dir, _ := os.UserHomeDir()
	return filepath.Join(dir, tokenFileName)
}
