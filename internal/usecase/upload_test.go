package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/semmidev/mediasafe/internal/domain"
)

func TestUploadItem(t *testing.T) {
	ctx := context.Background()

	Convey("Given the upload executor", t, func() {
		Convey("When the dedup check cannot be completed", func() {
			f := newFixture(item("a", "a.jpg"))
			// Any stat failure reads as "not present": the executor prefers
			// re-attempting an upload over silently skipping the item.
			f.remote.existing = nil

			sess := f.uc.NewSession()
			f.uc.uploadItem(ctx, sess, "Backups", "dir-Backups", item("a", "a.jpg"))

			Convey("It should proceed with the transfer", func() {
				So(f.remote.uploaded, ShouldResemble, []string{"a"})
				So(f.ledger.order, ShouldResemble, []string{"a"})
			})
		})

		Convey("When a transfer outlives the watchdog ceiling", func() {
			f := newFixture()
			f.uc.watchdogCeiling = 20 * time.Millisecond
			f.remote.uploadHook = func(domain.MediaItem) {
				time.Sleep(80 * time.Millisecond)
			}

			sess := f.uc.NewSession()
			f.uc.uploadItem(ctx, sess, "Backups", "dir-Backups", item("slow", "slow.jpg"))

			Convey("It should report the overrun without interrupting the transfer", func() {
				messages := f.diag.messages()
				So(len(messages), ShouldEqual, 1)
				So(messages[0], ShouldContainSubstring, "duration exceeded")
				So(f.remote.uploaded, ShouldResemble, []string{"slow"})
				So(f.ledger.order, ShouldResemble, []string{"slow"})
			})
		})

		Convey("When a transfer finishes before the watchdog fires", func() {
			f := newFixture()
			f.uc.watchdogCeiling = 50 * time.Millisecond

			sess := f.uc.NewSession()
			f.uc.uploadItem(ctx, sess, "Backups", "dir-Backups", item("fast", "fast.jpg"))
			time.Sleep(80 * time.Millisecond)

			Convey("It should not report anything", func() {
				So(f.diag.messages(), ShouldBeEmpty)
			})
		})

		Convey("When the ledger write fails after a successful transfer", func() {
			f := newFixture()
			failing := &failingLedger{}
			f.uc.ledger = failing

			sess := f.uc.NewSession()
			f.uc.uploadItem(ctx, sess, "Backups", "dir-Backups", item("a", "a.jpg"))

			Convey("It should report the failure and withhold the success event", func() {
				So(f.sink.types(), ShouldNotContain, domain.EventUploadSuccess)
				So(len(f.diag.messages()), ShouldEqual, 1)
				So(f.diag.messages()[0], ShouldContainSubstring, "ledger write failed")
			})
		})

		Convey("When the remote rejects the item for capacity", func() {
			f := newFixture()
			f.remote.uploadErr["a"] = domain.ErrQuotaExceeded

			sess := f.uc.NewSession()
			f.uc.uploadItem(ctx, sess, "Backups", "dir-Backups", item("a", "a.jpg"))

			Convey("It should flag the session and emit the quota event once", func() {
				So(sess.QuotaReached(), ShouldBeTrue)
				So(f.sink.types(), ShouldResemble, []domain.EventType{domain.EventQuotaReached})
				So(f.diag.messages(), ShouldBeEmpty)
			})
		})
	})
}

func TestSession(t *testing.T) {
	Convey("Given a session", t, func() {
		f := newFixture()
		sess := f.uc.NewSession()

		Convey("It should start with clear flags and an id", func() {
			So(sess.ID(), ShouldNotBeEmpty)
			So(sess.CancelRequested(), ShouldBeFalse)
			So(sess.QuotaReached(), ShouldBeFalse)
		})

		Convey("When flags are set and the session is reset", func() {
			sess.RequestCancel()
			sess.markQuotaReached()
			sess.setProgress(3, 10)
			sess.reset()

			Convey("It should behave like a fresh session", func() {
				So(sess.CancelRequested(), ShouldBeFalse)
				So(sess.QuotaReached(), ShouldBeFalse)
				So(sess.Progress(), ShouldResemble, domain.Progress{})
			})
		})

		Convey("Progress should reflect the last position", func() {
			sess.setProgress(2, 5)
			So(sess.Progress(), ShouldResemble, domain.Progress{Index: 2, Total: 5})
		})
	})
}

type failingLedger struct{}

func (failingLedger) Contains(ctx context.Context, mediaID string) (bool, error) {
	return false, nil
}

func (failingLedger) Add(ctx context.Context, mediaID string) error {
	return errors.New("disk full")
}
