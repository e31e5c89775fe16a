package dedupe_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/okian/cvparse/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryDeduper(t *testing.T) {
	ctx := context.Background()

	Convey("Given a new deduper", t, func() {
		d := dedupe.NewInMemoryDeduper()
		So(d.Size(), ShouldEqual, 0)

		Convey("When a fingerprint is claimed for the first time", func() {
			owner, seen := d.Claim(ctx, "fp-1", "job-1")

			Convey("Then the claimant owns it", func() {
				So(seen, ShouldBeFalse)
				So(owner, ShouldEqual, "job-1")
				So(d.Size(), ShouldEqual, 1)
			})

			Convey("And it is claimed again by another job", func() {
				owner, seen := d.Claim(ctx, "fp-1", "job-2")

				Convey("Then the first owner is reported", func() {
					So(seen, ShouldBeTrue)
					So(owner, ShouldEqual, "job-1")
					So(d.Size(), ShouldEqual, 1)
				})
			})

			Convey("And it is released", func() {
				d.Release(ctx, "fp-1")

				Convey("Then a new claim succeeds", func() {
					So(d.Size(), ShouldEqual, 0)
					owner, seen := d.Claim(ctx, "fp-1", "job-3")
					So(seen, ShouldBeFalse)
					So(owner, ShouldEqual, "job-3")
				})
			})
		})

		Convey("When releasing an unknown fingerprint", func() {
			d.Release(ctx, "missing")

			Convey("Then nothing changes", func() {
				So(d.Size(), ShouldEqual, 0)
			})
		})
	})

	Convey("Given a deduper bounded to three entries", t, func() {
		d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(3))
		for i := 1; i <= 4; i++ {
			d.Claim(ctx, fmt.Sprintf("fp-%d", i), fmt.Sprintf("job-%d", i))
		}

		Convey("Then the oldest claim was evicted", func() {
			So(d.Size(), ShouldEqual, 3)
			_, seen := d.Claim(ctx, "fp-4", "other")
			So(seen, ShouldBeTrue)
			_, seen = d.Claim(ctx, "fp-1", "other")
			So(seen, ShouldBeFalse)
		})
	})

	Convey("Given an unbounded deduper", t, func() {
		d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(0))
		for i := 0; i < 1000; i++ {
			d.Claim(ctx, fmt.Sprintf("fp-%d", i), "job")
		}

		Convey("Then nothing is evicted", func() {
			So(d.Size(), ShouldEqual, 1000)
		})
	})
}

func TestDedupeConcurrency(t *testing.T) {
	Convey("Given many goroutines claiming the same fingerprint", t, func() {
		d := dedupe.NewInMemoryDeduper()
		const n = 50

		var (
			wg     sync.WaitGroup
			mu     sync.Mutex
			owners = map[string]int{}
			fresh  int
		)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				owner, seen := d.Claim(context.Background(), "shared", fmt.Sprintf("job-%d", i))
				mu.Lock()
				defer mu.Unlock()
				owners[owner]++
				if !seen {
					fresh++
				}
			}(i)
		}
		wg.Wait()

		Convey("Then exactly one claim wins and everyone sees the same owner", func() {
			So(fresh, ShouldEqual, 1)
			So(owners, ShouldHaveLength, 1)
			So(d.Size(), ShouldEqual, 1)
		})
	})
}

func TestFingerprint(t *testing.T) {
	Convey("Given two renderings of the same text", t, func() {
		a := "Jane Roe\nBackend   Engineer\n"
		b := "  jane roe backend\tengineer"

		Convey("Then they share a fingerprint", func() {
			So(dedupe.Fingerprint(a), ShouldEqual, dedupe.Fingerprint(b))
			So(dedupe.Fingerprint(a), ShouldHaveLength, 64)
		})

		Convey("Then different text does not", func() {
			So(dedupe.Fingerprint(a), ShouldNotEqual, dedupe.Fingerprint("John Doe"))
		})
	})
}
