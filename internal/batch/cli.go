package batch

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/okian/cvparse/pkg/logger"
)

const logFilePermission = 0o600

// SetupLogging sends log output to stdout and to logFile. If logFile is
// empty, a timestamped filename is generated. The returned func closes the
// file.
func SetupLogging(logFile string, verbose bool) (func() error, error) {
	if logFile == "" {
		logFile = "cvparse_" + time.Now().Format("20060102_150405") + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	level := "info"
	if verbose {
		level = "debug"
	}
	if err := logger.Init(
		logger.WithOutput(io.MultiWriter(os.Stdout, file)),
		logger.WithFormat(logger.FormatPretty),
		logger.WithLevel(level),
	); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return file.Close, nil
}

// ShowHelp prints usage information for the batch tool.
func ShowHelp(w io.Writer, flags *pflag.FlagSet) {
	_, _ = io.WriteString(w, `cvparse - résumé batch extraction
=================================

Extracts structured records from DOCX, PDF and TXT résumés and writes a JSON
report with one entry per file.

Usage:
  cvparse [options] <file|dir>...

Options:
`)
	_, _ = io.WriteString(w, flags.FlagUsages())
	_, _ = io.WriteString(w, `
Examples:
  # Extract a folder in process
  cvparse ./resumes

  # Send files to a running service with 8 workers
  cvparse -u http://localhost:9080 -w 8 a.docx b.pdf

  # Enable PDF input and name the report
  cvparse --pdf -o report.json ./resumes
`)
}
