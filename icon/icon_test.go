package icon

import (
	"testing"

	"github.com/reel-cli/reel/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestGet(t *testing.T) {
	Convey("Given the registered icons", t, func() {
		Convey("Every icon has a glyph in each variant", func() {
			for i := range icons {
				for _, v := range variants {
					So(i.In(v), ShouldNotBeEmpty)
				}
			}
		})

		Convey("Get follows icons.variant", func() {
			viper.Set(key.IconsVariant, "plain")
			So(CurrentVariant(), ShouldEqual, Plain)
			So(Get(Play), ShouldEqual, ">")
			So(Get(Play), ShouldNotEqual, Get(Pause))
		})

		Convey("An unknown variant renders nothing", func() {
			viper.Set(key.IconsVariant, "")
			So(Get(Play), ShouldBeEmpty)
		})

		Convey("The variant names are listed for completion", func() {
			So(AvailableVariants(), ShouldResemble, []string{"emoji", "nerd", "plain", "kaomoji", "squares"})
		})
	})
}
