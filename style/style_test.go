package style

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestTruncate(t *testing.T) {
	Convey("Truncate", t, func() {
		Convey("Should keep short strings", func() {
			So(Truncate(20)("0:30 / 2:00"), ShouldEqual, "0:30 / 2:00")
		})

		Convey("Should cut long strings with an ellipsis", func() {
			So(Truncate(6)("Play  Loop Off"), ShouldEqual, "Play …")
		})

		Convey("Should render nothing for a zero width", func() {
			So(Truncate(0)("anything"), ShouldEqual, "")
		})
	})
}
