package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/cvparse/internal/domain/model"
	"github.com/okian/cvparse/internal/domain/types"
	"github.com/okian/cvparse/pkg/logger"
)

const percentageMultiplier = 100

// ErrNoFiles is returned when the given paths hold nothing to process.
var ErrNoFiles = errors.New("no files to process")

// Run executes a complete batch: collect, extract, report.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	var ex Extractor
	if cfg.Remote() {
		remote := NewRemoteExtractor(cfg.BaseURL, cfg.Timeout)
		logger.Get().Info(ctx, "checking service health", logger.String("baseURL", cfg.BaseURL))
		if err := remote.Health(ctx); err != nil {
			return nil, fmt.Errorf("service health check failed: %w", err)
		}
		ex = remote
	} else {
		ex = NewLocalExtractor(cfg.PDFEnabled)
	}
	return RunWith(ctx, cfg, ex)
}

// RunWith executes a batch with the given extractor.
func RunWith(ctx context.Context, cfg *Config, ex Extractor) (*Stats, error) {
	log := logger.Get()
	stats := &Stats{StartTime: time.Now()}

	workers := cfg.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	log.Info(ctx, "starting batch extraction",
		logger.Bool("remote", cfg.Remote()),
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("workers", workers),
		logger.Bool("pdfEnabled", cfg.PDFEnabled),
		logger.Any("paths", cfg.Paths))

	files, skipped, err := Collect(cfg.Paths)
	if err != nil {
		return nil, err
	}
	stats.FilesFound = len(files)
	stats.FilesSkipped = skipped
	if len(files) == 0 {
		return stats, ErrNoFiles
	}

	entries := process(ctx, ex, files, workers, cfg.Verbose)
	for _, e := range entries {
		if e.Error != "" {
			stats.FilesFailed++
		} else {
			stats.FilesSucceeded++
		}
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	report := ReportName(cfg.OutputFile, stats.StartTime)
	if err := WriteReport(report, entries); err != nil {
		return stats, err
	}
	log.Info(ctx, "report written", logger.String("filename", report))

	displayFinalStats(ctx, stats)
	return stats, ctx.Err()
}

// process extracts files with a pool of workers. Entries keep input order.
func process(ctx context.Context, ex Extractor, files []string, workers int, verbose bool) []types.ReportEntry {
	log := logger.Get()
	entries := make([]types.ReportEntry, len(files))

	var (
		done   int64
		failed int64
		wg     sync.WaitGroup
		jobs   = make(chan int, workers*2)
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				entries[idx] = extractFile(ctx, ex, files[idx])
				n := atomic.AddInt64(&done, 1)
				if entries[idx].Error != "" {
					atomic.AddInt64(&failed, 1)
				}
				if verbose {
					log.Debug(ctx, "file processed",
						logger.String("file", files[idx]),
						logger.String("error", entries[idx].Error),
						logger.Int("done", int(n)),
						logger.Int("total", len(files)))
				}
			}
		}()
	}

	for i := range files {
		if ctx.Err() != nil {
			// Files never started are reported as cancelled.
			for j := i; j < len(files); j++ {
				entries[j] = types.ReportEntry{File: files[j], Error: ctx.Err().Error(), Duration: "0s"}
			}
			break
		}
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	log.Info(ctx, "extraction completed",
		logger.Int("processed", int(atomic.LoadInt64(&done))),
		logger.Int("failed", int(atomic.LoadInt64(&failed))))
	return entries
}

func extractFile(ctx context.Context, ex Extractor, file string) types.ReportEntry {
	start := time.Now()
	entry := types.ReportEntry{File: file}

	data, err := os.ReadFile(file)
	if err == nil {
		var rec model.Record
		rec, err = ex.Extract(ctx, file, data)
		if err == nil {
			entry.Record = &rec
		}
	}
	if err != nil {
		entry.Error = model.ErrorRecord(err)["error"]
	}
	entry.Duration = time.Since(start).Round(time.Microsecond).String()
	return entry
}

// displayFinalStats logs the final run statistics.
func displayFinalStats(ctx context.Context, stats *Stats) {
	var successRate, filesPerSecond float64
	if stats.FilesFound > 0 {
		successRate = float64(stats.FilesSucceeded) / float64(stats.FilesFound) * percentageMultiplier
	}
	if stats.Duration > 0 {
		filesPerSecond = float64(stats.FilesFound) / stats.Duration.Seconds()
	}

	logger.Get().Info(ctx, "final statistics",
		logger.Int("filesFound", stats.FilesFound),
		logger.Int("filesSkipped", stats.FilesSkipped),
		logger.Int("filesSucceeded", stats.FilesSucceeded),
		logger.Int("filesFailed", stats.FilesFailed),
		logger.Duration("duration", stats.Duration),
		logger.Float64("successRate", successRate),
		logger.Float64("filesPerSecond", filesPerSecond))
}
