package network

import (
	"net"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestChecker(t *testing.T) {
	Convey("Given a network checker", t, func() {
		Convey("When no interfaces can be listed", func() {
			c := NewChecker(nil)
			c.interfaces = func() ([]net.Interface, error) {
				return nil, net.ErrClosed
			}

			Convey("The network should count as restricted", func() {
				So(c.IsOnUnrestrictedNetwork(), ShouldBeFalse)
			})
		})

		Convey("When matching is configured by prefix", func() {
			c := NewChecker([]string{"wlan"})

			Convey("It should match case-insensitively", func() {
				So(c.matches("WLAN0"), ShouldBeTrue)
				So(c.matches("wlan1"), ShouldBeTrue)
				So(c.matches("rmnet0"), ShouldBeFalse)
			})
		})

		Convey("When no prefixes are configured", func() {
			c := NewChecker(nil)

			Convey("It should fall back to common wifi and wired names", func() {
				So(c.matches("wlp3s0"), ShouldBeTrue)
				So(c.matches("eth0"), ShouldBeTrue)
				So(c.matches("en0"), ShouldBeTrue)
				So(c.matches("ppp0"), ShouldBeFalse)
			})
		})

		Convey("When only down or loopback interfaces match", func() {
			c := NewChecker([]string{"lo", "wlan"})
			c.interfaces = func() ([]net.Interface, error) {
				return []net.Interface{
					{Name: "lo", Flags: net.FlagUp | net.FlagLoopback},
					{Name: "wlan0", Flags: 0}, // down
				}, nil
			}

			Convey("The network should count as restricted", func() {
				So(c.IsOnUnrestrictedNetwork(), ShouldBeFalse)
			})
		})
	})
}
