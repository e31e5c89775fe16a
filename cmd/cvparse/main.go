package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/okian/cvparse/internal/batch"
)

// Default configuration constants.
const (
	defaultWorkers = 2 // multiplier for runtime.NumCPU()
	defaultTimeout = 30 * time.Second
	defaultRunTime = 30 * time.Minute
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes the tool and returns the process exit code.
func run(args []string) int {
	flags := pflag.NewFlagSet("cvparse", pflag.ContinueOnError)
	var (
		baseURL = flags.StringP("url", "u", "", "Base URL of a running service (default: extract in process)")
		workers = flags.IntP("workers", "w", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		output  = flags.StringP("output", "o", "", "Report file (default: cvparse_report_TIMESTAMP.json)")
		pdf     = flags.Bool("pdf", false, "Accept PDF input in local mode")
		timeout = flags.Duration("timeout", defaultTimeout, "HTTP request timeout in remote mode")
		logFile = flags.String("log", "", "Log file (default: cvparse_TIMESTAMP.log)")
		verbose = flags.BoolP("verbose", "v", false, "Log every processed file")
		help    = flags.BoolP("help", "h", false, "Show help")
	)
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			batch.ShowHelp(os.Stdout, flags)
			return 0
		}
		os.Stderr.WriteString(err.Error() + "\n")
		return 2
	}

	if *help || flags.NArg() == 0 {
		batch.ShowHelp(os.Stdout, flags)
		return 0
	}

	closeLog, err := batch.SetupLogging(*logFile, *verbose)
	if err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return 1
	}
	defer func() { _ = closeLog() }()

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTime)
	defer cancel()
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stats, err := batch.Run(ctx, &batch.Config{
		BaseURL:    *baseURL,
		Workers:    *workers,
		Timeout:    *timeout,
		OutputFile: *output,
		LogFile:    *logFile,
		PDFEnabled: *pdf,
		Verbose:    *verbose,
		Paths:      flags.Args(),
	})
	if err != nil {
		os.Stderr.WriteString("Batch failed: " + err.Error() + "\n")
		return 1
	}
	if stats.FilesFailed > 0 {
		return 1
	}
	return 0
}
