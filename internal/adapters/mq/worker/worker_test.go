package worker_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/okian/cvparse/internal/adapters/mq/queue"
	"github.com/okian/cvparse/internal/adapters/mq/worker"
	"github.com/okian/cvparse/internal/domain/model"
	logging "github.com/okian/cvparse/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

type mockQueue struct {
	jobs chan worker.Job
	once sync.Once
}

func newMockQueue() *mockQueue {
	return &mockQueue{jobs: make(chan worker.Job, 10)}
}

func (q *mockQueue) Dequeue(context.Context) <-chan worker.Job { return q.jobs }

func (q *mockQueue) Close() error {
	q.once.Do(func() { close(q.jobs) })
	return nil
}

type mockExtractor struct{}

func (mockExtractor) Extract(_ context.Context, text string) (model.Record, error) {
	if len(strings.TrimSpace(text)) < 10 {
		return model.Record{}, model.TextTooShort()
	}
	return model.Record{FullName: strings.Fields(text)[0]}, nil
}

type mockSaver struct {
	mu   sync.Mutex
	jobs map[string]worker.Job
	err  error
	seen chan string
}

func newMockSaver() *mockSaver {
	return &mockSaver{jobs: make(map[string]worker.Job), seen: make(chan string, 10)}
}

func (s *mockSaver) Save(_ context.Context, j worker.Job) error { //nolint:gocritic // hugeParam: mirrors the interface
	defer func() { s.seen <- j.ID }()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.jobs[j.ID] = j
	return nil
}

func (s *mockSaver) get(id string) (worker.Job, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[id]
	return j, ok
}

func waitFor(ch <-chan string) string {
	select {
	case id := <-ch:
		return id
	case <-time.After(2 * time.Second):
		return ""
	}
}

var fixed = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func TestInMemoryWorker(t *testing.T) {
	convey.Convey("Given a running worker", t, func() {
		_ = logging.Init(logging.WithOutput(io.Discard))

		q := newMockQueue()
		saver := newMockSaver()
		w := worker.NewInMemoryWorker(q, mockExtractor{}, saver,
			worker.WithName("test"),
			worker.WithClock(func() time.Time { return fixed }),
		)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go w.Run(ctx)

		convey.Convey("When a job with enough text arrives", func() {
			q.jobs <- worker.Job{ID: "a", Text: "Jane Roe backend engineer", Status: model.StatusQueued}

			convey.Convey("Then it is saved as done without its text", func() {
				convey.So(waitFor(saver.seen), convey.ShouldEqual, "a")
				j, ok := saver.get("a")
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(j.Status, convey.ShouldEqual, model.StatusDone)
				convey.So(j.Record.FullName, convey.ShouldEqual, "Jane")
				convey.So(j.Text, convey.ShouldBeEmpty)
				convey.So(j.Completed.Equal(fixed), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When a job with too little text arrives", func() {
			q.jobs <- worker.Job{ID: "b", Text: "short", Status: model.StatusQueued}

			convey.Convey("Then it is saved as failed with the user message", func() {
				convey.So(waitFor(saver.seen), convey.ShouldEqual, "b")
				j, _ := saver.get("b")
				convey.So(j.Status, convey.ShouldEqual, model.StatusFailed)
				convey.So(j.Error, convey.ShouldEqual, model.MsgTextTooShort)
			})
		})

		convey.Convey("When saving fails", func() {
			saver.mu.Lock()
			saver.err = errors.New("store down")
			saver.mu.Unlock()
			q.jobs <- worker.Job{ID: "c", Text: "Jane Roe backend engineer"}

			convey.Convey("Then the worker keeps running", func() {
				convey.So(waitFor(saver.seen), convey.ShouldEqual, "c")
				_, ok := saver.get("c")
				convey.So(ok, convey.ShouldBeFalse)

				saver.mu.Lock()
				saver.err = nil
				saver.mu.Unlock()
				q.jobs <- worker.Job{ID: "d", Text: "John Doe frontend developer"}
				convey.So(waitFor(saver.seen), convey.ShouldEqual, "d")
			})
		})

		convey.Convey("When shut down", func() {
			convey.So(w.Shutdown(context.Background()), convey.ShouldBeNil)

			convey.Convey("Then a second shutdown is harmless", func() {
				convey.So(w.Shutdown(context.Background()), convey.ShouldBeNil)
			})
		})
	})
}

func TestPool(t *testing.T) {
	convey.Convey("Given a pool over a real queue", t, func() {
		_ = logging.Init(logging.WithOutput(io.Discard))

		q := queue.NewInMemoryQueue(queue.WithCapacity(20))
		saver := newMockSaver()
		saver.seen = make(chan string, 20)
		p := worker.NewPool(3, q, mockExtractor{}, saver)
		convey.So(p.Size(), convey.ShouldEqual, 3)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		p.Start(ctx)

		convey.Convey("When jobs are queued and the pool is shut down", func() {
			ids := []string{"j1", "j2", "j3", "j4", "j5"}
			for _, id := range ids {
				convey.So(q.Enqueue(ctx, model.Job{ID: id, Text: "Jane Roe backend engineer"}), convey.ShouldBeNil)
			}
			convey.So(p.Shutdown(context.Background()), convey.ShouldBeNil)

			convey.Convey("Then every queued job was processed first", func() {
				for _, id := range ids {
					j, ok := saver.get(id)
					convey.So(ok, convey.ShouldBeTrue)
					convey.So(j.Status, convey.ShouldEqual, model.StatusDone)
				}
				convey.So(q.IsClosed(), convey.ShouldBeTrue)
			})
		})
	})

	convey.Convey("Given a non-positive worker count", t, func() {
		_ = logging.Init(logging.WithOutput(io.Discard))

		p := worker.NewPool(0, newMockQueue(), mockExtractor{}, newMockSaver())

		convey.Convey("Then a CPU based default is used", func() {
			convey.So(p.Size(), convey.ShouldBeGreaterThan, 0)
		})
	})
}
