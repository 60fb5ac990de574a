package config

import (
	"testing"
	"time"

	"github.com/reel-cli/reel/filesystem"
	"github.com/reel-cli/reel/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			So(Setup(), ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			So(Setup(), ShouldBeNil)
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
			So(viper.GetString(key.PlayerEngine), ShouldEqual, "mpv")
			So(viper.GetInt(key.PlayerIdleThreshold), ShouldEqual, 3000)
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			So(EnvKeyReplacer.Replace("player.idle_threshold"), ShouldEqual, "player_idle_threshold")
		})

		Convey("Environment should override defaults", func() {
			t.Setenv("REEL_PLAYER_ENGINE", "virtual")
			So(Setup(), ShouldBeNil)
			So(viper.GetString(key.PlayerEngine), ShouldEqual, "virtual")
		})
	})
}

func TestField(t *testing.T) {
	Convey("Field", t, func() {
		field := Default[key.PlayerLoop]

		Convey("Env should carry the app prefix", func() {
			So(field.Env(), ShouldEqual, "REEL_PLAYER_LOOP")
		})

		Convey("typeName should describe the default", func() {
			So(field.typeName(), ShouldEqual, "bool")
			mpvArgs := Default[key.PlayerMPVArgs]
			So(mpvArgs.typeName(), ShouldEqual, "[]string")
		})

		Convey("Validate should check type, allowed values and bounds", func() {
			So(field.Validate(true), ShouldBeNil)
			So(field.Validate("yes"), ShouldNotBeNil)

			engine := Default[key.PlayerEngine]
			So(engine.Validate("virtual"), ShouldBeNil)
			So(engine.Validate("vlc"), ShouldNotBeNil)

			threshold := Default[key.PlayerIdleThreshold]
			So(threshold.Validate(1500), ShouldBeNil)
			So(threshold.Validate(0), ShouldNotBeNil)

			variant := Default[key.IconsVariant]
			So(variant.Validate("nerd"), ShouldBeNil)
		})

		Convey("Pretty should list allowed values", func() {
			engine := Default[key.PlayerEngine]
			So(engine.Pretty(), ShouldContainSubstring, "mpv, virtual")
			So(field.Pretty(), ShouldNotContainSubstring, "Allowed:")
		})
	})
}

func TestDurations(t *testing.T) {
	Convey("Playback durations", t, func() {
		So(Setup(), ShouldBeNil)

		Convey("Should read defaults", func() {
			So(IdleThreshold(), ShouldEqual, 3*time.Second)
			So(TickRate(), ShouldEqual, 100*time.Millisecond)
			So(SeekStep(), ShouldEqual, 5*time.Second)
		})

		Convey("Should fall back on non-positive values", func() {
			viper.Set(key.PlayerIdleThreshold, 0)
			defer viper.Set(key.PlayerIdleThreshold, 3000)
			So(IdleThreshold(), ShouldEqual, 3*time.Second)
		})
	})
}
