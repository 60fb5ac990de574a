package config

import (
	"time"

	"github.com/reel-cli/reel/key"
	"github.com/spf13/viper"
)

// IdleThreshold is how long the controls stay visible after the last interaction.
func IdleThreshold() time.Duration {
	return millis(key.PlayerIdleThreshold)
}

// TickRate is the UI refresh interval.
func TickRate() time.Duration {
	return millis(key.PlayerTickRate)
}

// SeekStep is the distance covered by one scrub key press.
func SeekStep() time.Duration {
	return time.Duration(viper.GetInt(key.PlayerSeekStep)) * time.Second
}

func millis(k string) time.Duration {
	ms := viper.GetInt(k)
	if ms <= 0 {
		ms = Default[k].Value.(int)
	}
	return time.Duration(ms) * time.Millisecond
}
