// Package batch extracts many résumé files at once and writes a JSON report.
package batch

import "time"

// Config holds configuration for a batch run.
type Config struct {
	BaseURL    string        // Service URL; empty runs the engine in process
	Workers    int           // Number of concurrent workers
	Timeout    time.Duration // HTTP request timeout in remote mode
	OutputFile string        // Report file
	LogFile    string        // Log file for run output
	PDFEnabled bool          // Accept PDF input in local mode
	Verbose    bool          // Log every file
	Paths      []string      // Files or directories to process
}

// Remote reports whether files are sent to a running service.
func (c *Config) Remote() bool { return c.BaseURL != "" }

// Stats holds run statistics.
type Stats struct {
	FilesFound     int
	FilesSkipped   int
	FilesSucceeded int
	FilesFailed    int
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
}
