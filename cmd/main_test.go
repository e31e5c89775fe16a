package main

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/smartystreets/goconvey/convey"

	service "github.com/okian/cvparse/internal/app"
	"github.com/okian/cvparse/internal/config"
	"github.com/okian/cvparse/pkg/logger"
)

func init() {
	if err := logger.Init(logger.WithOutput(io.Discard)); err != nil {
		panic(err)
	}
}

func TestBackendOptions(t *testing.T) {
	convey.Convey("Given the default configuration", t, func() {
		ctx := context.Background()
		cfg := config.New()
		cfg.StoragePath = t.TempDir()

		convey.Convey("When backends are built", func() {
			opts, err := backendOptions(ctx, cfg)

			convey.Convey("Then the memory store and file storage are used", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(opts, convey.ShouldHaveLength, 2)

				svc := service.New(append(opts, service.WithWorkerCount(1))...)
				convey.So(svc.Start(ctx), convey.ShouldBeNil)
				convey.So(svc.Stop(ctx), convey.ShouldBeNil)
			})
		})

		convey.Convey("When redis is selected and reachable", func() {
			mr := miniredis.RunT(t)
			cfg.StoreBackend = config.StoreRedis
			cfg.RedisAddr = mr.Addr()

			opts, err := backendOptions(ctx, cfg)

			convey.Convey("Then the redis store is connected", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(opts, convey.ShouldHaveLength, 2)

				svc := service.New(append(opts, service.WithWorkerCount(1))...)
				convey.So(svc.Start(ctx), convey.ShouldBeNil)
				convey.So(svc.Stop(ctx), convey.ShouldBeNil)
			})
		})

		convey.Convey("When redis is selected but unreachable", func() {
			cfg.StoreBackend = config.StoreRedis
			cfg.RedisAddr = "127.0.0.1:1"

			_, err := backendOptions(ctx, cfg)

			convey.Convey("Then an error is returned", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestNewMux(t *testing.T) {
	convey.Convey("Given a running service behind the mux", t, func() {
		ctx := context.Background()
		svc := service.New(service.WithWorkerCount(1), service.WithStoragePath(t.TempDir()))
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		convey.Reset(func() { _ = svc.Stop(ctx) })

		srv := httptest.NewServer(newMux(ctx, svc, 1<<20))
		convey.Reset(srv.Close)

		convey.Convey("When the health, docs and home pages are fetched", func() {
			paths := []string{"/healthz", "/api-docs", "/openapi.yaml", "/"}

			convey.Convey("Then each answers OK", func() {
				for _, p := range paths {
					resp, err := http.Get(srv.URL + p)
					convey.So(err, convey.ShouldBeNil)
					_ = resp.Body.Close()
					convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)
				}
			})
		})

		convey.Convey("When a resume is uploaded for extraction", func() {
			var body bytes.Buffer
			mw := multipart.NewWriter(&body)
			fw, err := mw.CreateFormFile("file", "jane.txt")
			convey.So(err, convey.ShouldBeNil)
			_, _ = fw.Write([]byte("Jane Roe\njane@example.com\nGo developer with 4 years of experience"))
			convey.So(mw.Close(), convey.ShouldBeNil)

			resp, err := http.Post(srv.URL+"/extract", mw.FormDataContentType(), &body)
			convey.So(err, convey.ShouldBeNil)
			data, _ := io.ReadAll(resp.Body)
			_ = resp.Body.Close()

			convey.Convey("Then the structured record comes back", func() {
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)
				convey.So(string(data), convey.ShouldContainSubstring, "jane@example.com")
			})
		})
	})
}

func TestMetricsUpdaters(t *testing.T) {
	convey.Convey("Given the background metric updaters", t, func() {
		svc := service.New(service.WithStoragePath(t.TempDir()))

		convey.Convey("Then single updates do not panic", func() {
			convey.So(updateSystemMetrics, convey.ShouldNotPanic)
			convey.So(func() { updateServiceMetrics(svc) }, convey.ShouldNotPanic)
		})

		convey.Convey("Then the loops stop with their context", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()

			convey.So(func() {
				startSystemMetricsUpdater(ctx)
				startServiceMetricsUpdater(ctx, svc)
			}, convey.ShouldNotPanic)
		})
	})
}
