package medialib

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLocalLibrary(t *testing.T) {
	ctx := context.Background()

	Convey("Given a local media library", t, func() {
		dir := t.TempDir()
		lib := NewLocalLibrary(dir, "Photos from my device")

		Convey("ListMedia", func() {
			Convey("When the directory holds media and non-media files", func() {
				old := filepath.Join(dir, "old.jpg")
				recent := filepath.Join(dir, "recent.png")
				So(os.WriteFile(old, []byte("aa"), 0644), ShouldBeNil)
				So(os.WriteFile(recent, []byte("bbbb"), 0644), ShouldBeNil)
				So(os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644), ShouldBeNil)

				earlier := time.Now().Add(-time.Hour)
				So(os.Chtimes(old, earlier, earlier), ShouldBeNil)

				items, err := lib.ListMedia(ctx)

				Convey("It should list only media, ordered by capture time", func() {
					So(err, ShouldBeNil)
					So(len(items), ShouldEqual, 2)
					So(items[0].FileName, ShouldEqual, "old.jpg")
					So(items[1].FileName, ShouldEqual, "recent.png")
					So(items[1].Size, ShouldEqual, 4)
				})

				Convey("Identifiers should be stable across enumerations", func() {
					again, err := lib.ListMedia(ctx)
					So(err, ShouldBeNil)
					So(again[0].ID, ShouldEqual, items[0].ID)
					So(again[1].ID, ShouldEqual, items[1].ID)
					So(items[0].ID, ShouldNotEqual, items[1].ID)
				})
			})

			Convey("When the directory is empty", func() {
				items, err := lib.ListMedia(ctx)

				Convey("It should return no items", func() {
					So(err, ShouldBeNil)
					So(items, ShouldBeEmpty)
				})
			})
		})

		Convey("Authorization", func() {
			Convey("With a readable directory", func() {
				So(lib.IsAuthorized(ctx), ShouldBeTrue)
			})

			Convey("With a missing directory", func() {
				missing := NewLocalLibrary(filepath.Join(dir, "missing"), "Photos")
				So(missing.IsAuthorized(ctx), ShouldBeFalse)

				Convey("Requesting authorization should create it and grant access", func() {
					granted, err := missing.RequestAuthorization(ctx)
					So(err, ShouldBeNil)
					So(granted, ShouldBeTrue)
					So(missing.IsAuthorized(ctx), ShouldBeTrue)
				})
			})
		})

		Convey("DefaultBackupFolderName", func() {
			So(lib.DefaultBackupFolderName(), ShouldEqual, "Photos from my device")
		})
	})
}
