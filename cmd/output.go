// ABOUTME: Output helpers shared by commands
// ABOUTME: JSON printing and saving CSV credential files returned by the server

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const credentialsFile = "student_credentials.csv"

// printJSON writes v as indented JSON
func printJSON(w io.Writer, v any) {
	data, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(w, string(data))
}

// resetPasswordFile names the CSV saved after a password reset for email
func resetPasswordFile(email string) string {
	return "reset_password_" + strings.ReplaceAll(email, string(filepath.Separator), "_") + ".csv"
}

// saveCSV writes data to path; the file holds passwords so only the owner may read it
func saveCSV(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}
