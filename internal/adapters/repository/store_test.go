package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/okian/cvparse/internal/adapters/repository"
	"github.com/okian/cvparse/internal/domain/model"
	"github.com/redis/go-redis/v9"
	. "github.com/smartystreets/goconvey/convey"
)

var base = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func queued(id string, minute int) model.Job {
	return model.Job{
		ID:          id,
		Fingerprint: "fp-" + id,
		Filename:    id + ".docx",
		Text:        "text of " + id,
		Status:      model.StatusQueued,
		Submitted:   base.Add(time.Duration(minute) * time.Minute),
	}
}

func ids(jobs []model.Job) []string {
	out := make([]string, len(jobs))
	for i, j := range jobs {
		out[i] = j.ID
	}
	return out
}

func behavesLikeStore(newStore func() repository.Store) {
	ctx := context.Background()
	s := newStore()

	Convey("When the store is empty", func() {
		Convey("Then nothing is found", func() {
			_, err := s.Get(ctx, "missing")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			all, err := s.All(ctx)
			So(err, ShouldBeNil)
			So(all, ShouldBeEmpty)
			So(s.Count(ctx), ShouldEqual, 0)
		})
	})

	Convey("When jobs are saved", func() {
		So(s.Save(ctx, queued("a", 1)), ShouldBeNil)
		So(s.Save(ctx, queued("b", 2)), ShouldBeNil)
		So(s.Save(ctx, queued("c", 3)), ShouldBeNil)

		Convey("Then they are listed newest first", func() {
			got, err := s.List(ctx, 2)
			So(err, ShouldBeNil)
			So(ids(got), ShouldResemble, []string{"c", "b"})

			all, err := s.All(ctx)
			So(err, ShouldBeNil)
			So(ids(all), ShouldResemble, []string{"c", "b", "a"})
			So(s.Count(ctx), ShouldEqual, 3)
		})

		Convey("Then a finished job replaces the queued one in place", func() {
			j, err := s.Get(ctx, "a")
			So(err, ShouldBeNil)
			j.Finish(model.Record{FullName: "Jane Roe", Skills: "Go"}, base.Add(time.Hour))
			So(s.Save(ctx, j), ShouldBeNil)

			got, err := s.Get(ctx, "a")
			So(err, ShouldBeNil)
			So(got.Status, ShouldEqual, model.StatusDone)
			So(got.Record, ShouldResemble, model.Record{FullName: "Jane Roe", Skills: "Go"})
			So(got.Text, ShouldBeEmpty)
			So(got.Filename, ShouldEqual, "a.docx")
			So(got.Submitted.Equal(base.Add(time.Minute)), ShouldBeTrue)
			So(got.Completed.Equal(base.Add(time.Hour)), ShouldBeTrue)

			all, _ := s.All(ctx)
			So(ids(all), ShouldResemble, []string{"c", "b", "a"})
			So(s.Count(ctx), ShouldEqual, 3)
		})

		Convey("Then a deleted job disappears from reads", func() {
			So(s.Delete(ctx, "b"), ShouldBeNil)
			So(s.Delete(ctx, "unknown"), ShouldBeNil)

			_, err := s.Get(ctx, "b")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			all, _ := s.All(ctx)
			So(ids(all), ShouldResemble, []string{"c", "a"})
			So(s.Count(ctx), ShouldEqual, 2)
		})

		Convey("Then a limit larger than the store returns everything", func() {
			got, err := s.List(ctx, 50)
			So(err, ShouldBeNil)
			So(got, ShouldHaveLength, 3)
		})
	})

	Convey("When the input is invalid", func() {
		Convey("Then the sentinel errors are returned", func() {
			_, err := s.List(ctx, 0)
			So(errors.Is(err, repository.ErrInvalidLimit), ShouldBeTrue)
			So(errors.Is(s.Save(ctx, model.Job{}), repository.ErrInvalidJob), ShouldBeTrue)
		})
	})
}

func TestMemoryStore(t *testing.T) {
	Convey("Given a memory store", t, func() {
		behavesLikeStore(func() repository.Store { return repository.NewMemoryStore() })
	})
}

func TestRedisStore(t *testing.T) {
	Convey("Given a Redis store", t, func() {
		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

		behavesLikeStore(func() repository.Store {
			s, err := repository.NewRedisStore(context.Background(), client, repository.WithPrefix("test"))
			So(err, ShouldBeNil)
			return s
		})

		Convey("When keys are inspected", func() {
			s, err := repository.NewRedisStore(context.Background(), client, repository.WithPrefix("test"))
			So(err, ShouldBeNil)
			So(s.Save(context.Background(), queued("x", 0)), ShouldBeNil)

			Convey("Then they carry the prefix", func() {
				So(mr.Exists("test:job:x"), ShouldBeTrue)
				members, err := mr.ZMembers("test:jobs")
				So(err, ShouldBeNil)
				So(members, ShouldResemble, []string{"x"})
			})
		})
	})

	Convey("Given a Redis store with a TTL", t, func() {
		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		ctx := context.Background()
		s, err := repository.NewRedisStore(ctx, client, repository.WithTTL(time.Minute))
		So(err, ShouldBeNil)
		So(s.Save(ctx, queued("a", 0)), ShouldBeNil)

		Convey("When the job expires", func() {
			mr.FastForward(2 * time.Minute)

			Convey("Then it is no longer returned", func() {
				_, err := s.Get(ctx, "a")
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
				all, err := s.All(ctx)
				So(err, ShouldBeNil)
				So(all, ShouldBeEmpty)
			})
		})
	})

	Convey("Given an unreachable Redis", t, func() {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()
		client := redis.NewClient(&redis.Options{Addr: addr, MaxRetries: -1})

		Convey("Then the store cannot be created", func() {
			_, err := repository.NewRedisStore(context.Background(), client)
			So(err, ShouldNotBeNil)
		})
	})
}
