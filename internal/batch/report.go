package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/okian/cvparse/internal/domain/types"
)

const (
	directoryPermission = 0o750
	reportPermission    = 0o644
)

// ReportName returns name, or a timestamped default when it is empty.
func ReportName(name string, now time.Time) string {
	if name != "" {
		return name
	}
	return "cvparse_report_" + now.Format("20060102_150405") + ".json"
}

// WriteReport writes entries as an indented JSON array.
func WriteReport(filename string, entries []types.ReportEntry) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if entries == nil {
		entries = []types.ReportEntry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(filename, append(data, '\n'), reportPermission); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
