package batch_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/cvparse/internal/batch"
	"github.com/okian/cvparse/internal/domain/model"
	"github.com/okian/cvparse/internal/domain/types"
	"github.com/okian/cvparse/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(logger.WithOutput(io.Discard)); err != nil {
		panic(err)
	}
}

const resume = "Jane Roe\njane@example.com\nSenior Go developer with 6 years of experience building APIs.\nSKILLS\nGo, Docker"

func write(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func readReport(t *testing.T, path string) []types.ReportEntry {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var entries []types.ReportEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatal(err)
	}
	return entries
}

func TestCollect(t *testing.T) {
	Convey("Given a directory tree and a direct file", t, func() {
		dir := t.TempDir()
		a := write(t, filepath.Join(dir, "a.txt"), resume)
		c := write(t, filepath.Join(dir, "nested", "c.docx"), "x")
		write(t, filepath.Join(dir, "notes.md"), "x")
		odt := write(t, filepath.Join(t.TempDir(), "x.odt"), "x")

		Convey("When collecting", func() {
			files, skipped, err := batch.Collect([]string{dir, odt, a})

			Convey("Then known files are kept in order and others skipped", func() {
				So(err, ShouldBeNil)
				So(files, ShouldResemble, []string{a, c, odt})
				So(skipped, ShouldEqual, 1)
			})
		})

		Convey("When a path does not exist", func() {
			_, _, err := batch.Collect([]string{filepath.Join(dir, "missing")})

			Convey("Then an error is returned", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestRunLocal(t *testing.T) {
	Convey("Given files for a local run", t, func() {
		ctx := context.Background()
		dir := t.TempDir()
		good := write(t, filepath.Join(dir, "in", "jane.txt"), resume)
		short := write(t, filepath.Join(dir, "in", "tiny.txt"), "short")
		pdf := write(t, filepath.Join(dir, "cv.pdf"), "%PDF-1.4")
		report := filepath.Join(dir, "out", "report.json")

		cfg := &batch.Config{
			Workers:    2,
			OutputFile: report,
			Paths:      []string{filepath.Join(dir, "in"), pdf},
		}

		Convey("When the batch runs", func() {
			stats, err := batch.Run(ctx, cfg)

			Convey("Then the statistics count each outcome", func() {
				So(err, ShouldBeNil)
				So(stats.FilesFound, ShouldEqual, 3)
				So(stats.FilesSucceeded, ShouldEqual, 1)
				So(stats.FilesFailed, ShouldEqual, 2)
				So(stats.Duration, ShouldBeGreaterThan, 0)
			})

			Convey("Then the report holds one entry per file in order", func() {
				entries := readReport(t, report)
				So(entries, ShouldHaveLength, 3)

				So(entries[0].File, ShouldEqual, good)
				So(entries[0].Record, ShouldNotBeNil)
				So(entries[0].Record.Email, ShouldEqual, "jane@example.com")
				So(entries[0].Error, ShouldBeEmpty)

				So(entries[1].File, ShouldEqual, short)
				So(entries[1].Error, ShouldEqual, model.MsgTextTooShort)
				So(entries[1].Record, ShouldBeNil)

				So(entries[2].File, ShouldEqual, pdf)
				So(entries[2].Error, ShouldEqual, model.MsgPDFDisabled)
			})
		})

		Convey("When the paths hold nothing to process", func() {
			cfg.Paths = []string{t.TempDir()}
			_, err := batch.Run(ctx, cfg)

			Convey("Then ErrNoFiles is returned", func() {
				So(err, ShouldEqual, batch.ErrNoFiles)
			})
		})
	})
}

func TestRunRemote(t *testing.T) {
	Convey("Given a service answering /extract", t, func() {
		ctx := context.Background()
		mux := http.NewServeMux()
		mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		mux.HandleFunc("/extract", func(w http.ResponseWriter, r *http.Request) {
			f, hdr, err := r.FormFile("file")
			if err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			defer f.Close()
			w.Header().Set("Content-Type", "application/json")
			if filepath.Ext(hdr.Filename) != ".txt" {
				w.WriteHeader(http.StatusUnsupportedMediaType)
				_, _ = w.Write([]byte(`{"code":"unsupported_format","message":"` + model.MsgUnsupportedFormat + `"}`))
				return
			}
			_ = json.NewEncoder(w).Encode(model.Record{FullName: "Jane Roe", Email: "jane@example.com"})
		})
		srv := httptest.NewServer(mux)
		Reset(srv.Close)

		dir := t.TempDir()
		good := write(t, filepath.Join(dir, "jane.txt"), resume)
		bad := write(t, filepath.Join(dir, "jane.odt"), resume)
		report := filepath.Join(dir, "report.json")

		Convey("When the batch runs remotely", func() {
			stats, err := batch.Run(ctx, &batch.Config{
				BaseURL:    srv.URL + "/",
				Workers:    1,
				Timeout:    time.Second,
				OutputFile: report,
				Paths:      []string{good, bad},
			})

			Convey("Then records and service errors are reported", func() {
				So(err, ShouldBeNil)
				So(stats.FilesSucceeded, ShouldEqual, 1)
				So(stats.FilesFailed, ShouldEqual, 1)

				entries := readReport(t, report)
				So(entries[0].Record.FullName, ShouldEqual, "Jane Roe")
				So(entries[1].Error, ShouldEqual, model.MsgUnsupportedFormat)
			})
		})

		Convey("When the extractor gets a service error", func() {
			ex := batch.NewRemoteExtractor(srv.URL, time.Second)
			_, err := ex.Extract(ctx, "cv.odt", []byte("x"))

			Convey("Then the status and code are kept", func() {
				var remote *batch.RemoteError
				So(err, ShouldHaveSameTypeAs, remote)
				remote = err.(*batch.RemoteError)
				So(remote.Status, ShouldEqual, http.StatusUnsupportedMediaType)
				So(remote.Code, ShouldEqual, "unsupported_format")
			})
		})
	})

	Convey("Given a service that is down", t, func() {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()

		Convey("Then the run fails the health check", func() {
			_, err := batch.Run(context.Background(), &batch.Config{
				BaseURL: srv.URL,
				Timeout: time.Second,
				Paths:   []string{t.TempDir()},
			})
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "health check")
		})
	})
}

func TestReportName(t *testing.T) {
	Convey("Given a report name", t, func() {
		now := time.Date(2024, 3, 1, 14, 5, 9, 0, time.UTC)

		Convey("Then an explicit name is kept and an empty one is stamped", func() {
			So(batch.ReportName("out.json", now), ShouldEqual, "out.json")
			So(batch.ReportName("", now), ShouldEqual, "cvparse_report_20240301_140509.json")
		})
	})
}
