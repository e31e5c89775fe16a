package types_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/okian/cvparse/internal/domain/model"
	"github.com/okian/cvparse/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestJobView(t *testing.T) {
	submitted := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	Convey("Given a queued job", t, func() {
		j := model.Job{ID: "job-1", Filename: "cv.docx", Status: model.StatusQueued, Submitted: submitted, Text: "secret"}

		Convey("When viewed", func() {
			v := types.NewJobView(j)

			Convey("Then neither record nor completion time is shown", func() {
				So(v.ID, ShouldEqual, "job-1")
				So(v.Status, ShouldEqual, model.StatusQueued)
				So(v.Record, ShouldBeNil)
				So(v.Completed, ShouldBeNil)
			})

			Convey("Then the decoded text never leaks into JSON", func() {
				data, err := json.Marshal(v)
				So(err, ShouldBeNil)
				So(string(data), ShouldNotContainSubstring, "secret")
				So(string(data), ShouldNotContainSubstring, `"record"`)
			})
		})
	})

	Convey("Given a finished job", t, func() {
		j := model.Job{ID: "job-2", Status: model.StatusQueued, Submitted: submitted}
		j.Finish(model.Record{FullName: "Jane Roe"}, submitted.Add(time.Second))

		Convey("Then the record and completion time are shown", func() {
			v := types.NewJobView(j)
			So(v.Record, ShouldNotBeNil)
			So(v.Record.FullName, ShouldEqual, "Jane Roe")
			So(v.Completed.Equal(submitted.Add(time.Second)), ShouldBeTrue)
		})
	})

	Convey("Given a failed job", t, func() {
		j := model.Job{ID: "job-3", Status: model.StatusQueued, Submitted: submitted}
		j.Fail(model.TextTooShort(), submitted)

		Convey("Then the user-facing message is shown", func() {
			v := types.NewJobView(j)
			So(v.Status, ShouldEqual, model.StatusFailed)
			So(v.Error, ShouldEqual, model.MsgTextTooShort)
			So(v.Record, ShouldBeNil)
		})
	})

	Convey("Given a failure that is not an extraction error", t, func() {
		j := model.Job{ID: "job-4"}
		j.Fail(errors.New("disk on fire"), submitted)

		Convey("Then its message is kept", func() {
			So(types.NewJobView(j).Error, ShouldEqual, "disk on fire")
		})
	})
}
