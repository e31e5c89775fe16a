package blob_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okian/cvparse/internal/adapters/blob"
	. "github.com/smartystreets/goconvey/convey"
)

func TestKey(t *testing.T) {
	Convey("Given upload names", t, func() {
		Convey("Then only the base name is kept", func() {
			So(blob.Key(blob.AreaUploads, "cv.docx"), ShouldEqual, "uploads/cv.docx")
			So(blob.Key(blob.AreaUploads, "../../etc/passwd"), ShouldEqual, "uploads/passwd")
			So(blob.Key(blob.AreaResumes, `C:\docs\cv.docx`), ShouldEqual, "resumes/cv.docx")
		})
	})
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()

	Convey("Given a file store in a temporary directory", t, func() {
		root := t.TempDir()
		s, err := blob.NewFileStore(root)
		So(err, ShouldBeNil)

		Convey("Then both areas exist", func() {
			for _, area := range []string{blob.AreaUploads, blob.AreaResumes} {
				info, err := os.Stat(filepath.Join(root, area))
				So(err, ShouldBeNil)
				So(info.IsDir(), ShouldBeTrue)
			}
		})

		Convey("When an object is stored", func() {
			key := blob.Key(blob.AreaResumes, "resume_1.docx")
			So(s.Put(ctx, key, strings.NewReader("payload"), 7, "text/plain"), ShouldBeNil)

			Convey("Then it can be read back", func() {
				data, err := s.Get(ctx, key)
				So(err, ShouldBeNil)
				So(string(data), ShouldEqual, "payload")
			})

			Convey("Then it can be deleted", func() {
				So(s.Delete(ctx, key), ShouldBeNil)
				_, err := s.Get(ctx, key)
				So(errors.Is(err, blob.ErrNotFound), ShouldBeTrue)
				So(s.Delete(ctx, key), ShouldBeNil)
			})
		})

		Convey("When a key escapes the root", func() {
			err := s.Put(ctx, "../outside", strings.NewReader("x"), 1, "")

			Convey("Then it is rejected", func() {
				So(errors.Is(err, blob.ErrInvalidKey), ShouldBeTrue)
				_, err = s.Get(ctx, "")
				So(errors.Is(err, blob.ErrInvalidKey), ShouldBeTrue)
			})
		})

		Convey("When reading a missing key", func() {
			_, err := s.Get(ctx, "uploads/missing.txt")

			Convey("Then ErrNotFound is returned", func() {
				So(errors.Is(err, blob.ErrNotFound), ShouldBeTrue)
			})
		})
	})
}
