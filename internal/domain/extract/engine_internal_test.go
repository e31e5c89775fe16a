package extract

import (
	"context"
	"testing"

	"github.com/okian/cvparse/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestEngineFault(t *testing.T) {
	Convey("Given an engine whose e-mail extractor panics", t, func() {
		var (
			faulted model.Field
			cause   error
		)
		e := New(WithFaultHook(func(_ context.Context, f model.Field, err error) {
			faulted, cause = f, err
		}))
		boom := step{fields: []model.Field{model.Email}, run: func(string, *model.Record) []string {
			panic("boom")
		}}
		e.steps = append([]step{boom}, e.steps[1:]...)

		Convey("When extracting", func() {
			rec, err := e.Extract(context.Background(), "Jane Roe\njane@example.com\nPython, Docker")

			Convey("Then the field is left empty and the hook is told", func() {
				So(err, ShouldBeNil)
				So(rec.Email, ShouldEqual, "")
				So(faulted, ShouldEqual, model.Email)
				So(cause.Error(), ShouldContainSubstring, "boom")
			})

			Convey("Then the other fields are still produced", func() {
				So(rec.FullName, ShouldEqual, "Jane Roe")
				So(rec.Skills, ShouldEqual, "Python, Docker")
			})
		})
	})

	Convey("Given a multi-field step that panics after partial output", t, func() {
		e := New()
		e.steps = []step{{
			fields: []model.Field{model.ExperienceLevel, model.YearsOfExperience},
			run: func(_ string, rec *model.Record) []string {
				rec.ExperienceLevel = "Senior"
				panic("half done")
			},
		}}

		Convey("Then every field of the step is blanked", func() {
			rec := e.Fields(context.Background(), "Senior engineer, 8 years of experience")
			So(rec.ExperienceLevel, ShouldEqual, "")
			So(rec.YearsOfExperience, ShouldEqual, "")
		})
	})
}
