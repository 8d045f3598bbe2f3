package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Filename timestamp layouts.
const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02_15-04-05"
)

// UsageFilename returns the usage report path for a run at the given time.
func UsageFilename(dir string, now time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("copilot_usage_%s.csv", now.Format(dateLayout)))
}

// SeatsFilename returns the seat membership report path.
func SeatsFilename(dir string, now time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("teams_%s.csv", now.Format(timestampLayout)))
}

// TeamsFilename returns the team roster report path.
func TeamsFilename(dir string, now time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("enterprise_teams_%s.csv", now.Format(timestampLayout)))
}

// WriteFile writes the header and rows to path as CSV, truncating any
// existing file. Identical input always produces identical bytes.
func WriteFile(path string, header []string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write header to %s: %w", path, err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("write rows to %s: %w", path, err)
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}

	return nil
}
