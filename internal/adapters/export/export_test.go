package export_test

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/okian/cvparse/internal/adapters/export"
	"github.com/okian/cvparse/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestWriteXLSX(t *testing.T) {
	Convey("Given two stored records", t, func() {
		rows := []export.Row{
			{ID: "job-1", Record: model.Record{FullName: "Jane Roe", Email: "jane@example.com"}},
			{ID: "job-2", Record: model.Record{FullName: "John Doe", YearsOfExperience: "5"}},
		}

		Convey("When exported", func() {
			data, err := export.XLSX(rows)
			So(err, ShouldBeNil)

			f, err := excelize.OpenReader(bytes.NewReader(data))
			So(err, ShouldBeNil)
			defer f.Close()

			got, err := f.GetRows(export.Sheet)
			So(err, ShouldBeNil)

			Convey("Then the header lists id and every field key", func() {
				So(got[0][0], ShouldEqual, "id")
				So(got[0][1], ShouldEqual, "full_name")
				So(got[0], ShouldHaveLength, len(model.Fields())+1)
			})

			Convey("Then each record is one row", func() {
				So(got, ShouldHaveLength, 3)
				So(got[1][0], ShouldEqual, "job-1")
				So(got[1][1], ShouldEqual, "Jane Roe")
				So(got[1][2], ShouldEqual, "jane@example.com")
				So(got[2][1], ShouldEqual, "John Doe")
			})

			Convey("Then only the records sheet exists", func() {
				So(f.GetSheetList(), ShouldResemble, []string{export.Sheet})
			})
		})
	})

	Convey("Given no records", t, func() {
		data, err := export.XLSX(nil)

		Convey("Then a header-only workbook is produced", func() {
			So(err, ShouldBeNil)
			f, err := excelize.OpenReader(bytes.NewReader(data))
			So(err, ShouldBeNil)
			got, _ := f.GetRows(export.Sheet)
			So(got, ShouldHaveLength, 1)
		})
	})
}
