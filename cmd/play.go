package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/reel-cli/reel/config"
	"github.com/reel-cli/reel/engine"
	"github.com/reel-cli/reel/headless"
	"github.com/reel-cli/reel/key"
	"github.com/reel-cli/reel/log"
	"github.com/reel-cli/reel/playback"
	"github.com/reel-cli/reel/tui"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(playCmd)
	addPlayFlags(playCmd)
}

func addPlayFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringP("engine", "e", "", "Media engine ("+strings.Join(engine.AvailableKinds(), ", ")+")")
	flags.BoolP("paused", "p", false, "Open the media paused")
	flags.BoolP("loop", "l", false, "Restart the media when it ends")
	flags.Duration("idle-threshold", 0, "Hide the controls after this much inactivity")
	flags.DurationP("duration", "d", 0, "Media length for the virtual engine")
	flags.Bool("headless", false, "Read commands from stdin instead of running the interface")
	flags.BoolP("json", "j", false, "Emit JSON objects in headless mode")
	flags.Bool("frames", false, "Report every engine frame in headless mode")
	flags.Bool("schema", false, "Print the JSON schema of headless output and exit")

	lo.Must0(cmd.RegisterFlagCompletionFunc("engine", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return engine.AvailableKinds(), cobra.ShellCompDirectiveNoFileComp
	}))
}

var playCmd = &cobra.Command{
	Use:   "play [source]",
	Short: "Play a media file, URL or virtual:// clock",
	Long: `Play a media file, URL or virtual:// clock.

Controls appear on any pointer movement or key press and hide again after the idle threshold.
Drag along the seek bar, or scrub with the arrow keys, and release (or press enter) to seek.

Headless mode reads one command per line from stdin:
  pause | loop | seek <secs> | drag <secs> | release | input | status | quit`,
	Example: `  reel play movie.mkv
  reel play --engine virtual --duration 2m --headless --json
  echo "seek 30" | reel play virtual://90s --headless`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

// flagOr returns the flag value when it was set on the command line and fallback otherwise.
func flagOr[T any](cmd *cobra.Command, name string, get func(string) (T, error), fallback T) T {
	if !cmd.Flags().Changed(name) {
		return fallback
	}
	return lo.Must(get(name))
}

// engineKind picks the engine from the flag, the source scheme or configuration, in that order.
func engineKind(cmd *cobra.Command, source string) engine.Kind {
	if cmd.Flags().Changed("engine") {
		return engine.Kind(lo.Must(cmd.Flags().GetString("engine")))
	}
	if strings.HasPrefix(source, engine.VirtualScheme) {
		return engine.KindVirtual
	}
	return engine.Kind(viper.GetString(key.PlayerEngine))
}

func playbackOptions(cmd *cobra.Command) playback.Options {
	flags := cmd.Flags()
	return playback.Options{
		IdleThreshold: flagOr(cmd, "idle-threshold", flags.GetDuration, config.IdleThreshold()),
		StartPaused:   flagOr(cmd, "paused", flags.GetBool, viper.GetBool(key.PlayerStartPaused)),
		Loop:          flagOr(cmd, "loop", flags.GetBool, viper.GetBool(key.PlayerLoop)),
	}
}

func engineOptions(cmd *cobra.Command) engine.Options {
	return engine.Options{
		Duration:  flagOr(cmd, "duration", cmd.Flags().GetDuration, time.Duration(0)),
		FPS:       viper.GetInt(key.VirtualFPS),
		ExtraArgs: viper.GetStringSlice(key.PlayerMPVArgs),
	}
}

func runPlay(cmd *cobra.Command, args []string) {
	if lo.Must(cmd.Flags().GetBool("schema")) {
		schema, err := headless.Schema()
		handleErr(err)
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(schema))
		return
	}

	if len(args) == 0 {
		handleErr(errors.New("no media source given"))
	}

	source := args[0]
	kind := engineKind(cmd, source)
	if kind == engine.KindMPV {
		if err := engine.CheckMPV(); err != nil {
			printMissingDependency("mpv")
			os.Exit(1)
		}
	}

	if lo.Must(cmd.Flags().GetBool("headless")) {
		handleErr(runHeadless(cmd, kind, source))
		return
	}

	handleErr(tui.Run(&tui.Options{
		Source:        source,
		Engine:        kind,
		EngineOptions: engineOptions(cmd),
		Playback:      playbackOptions(cmd),
		SeekStep:      config.SeekStep(),
		TickRate:      config.TickRate(),
		ShowHelp:      viper.GetBool(key.TUIShowHelp),
		ShowTitle:     viper.GetBool(key.TUIShowTitle),
	}))
}

func runHeadless(cmd *cobra.Command, kind engine.Kind, source string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	session, err := playback.Open(ctx, kind, source, engineOptions(cmd), playbackOptions(cmd))
	if err != nil {
		return err
	}
	defer func() {
		if err := session.Close(); err != nil {
			log.Warnf("close session: %v", err)
		}
	}()

	return headless.Run(ctx, &headless.Options{
		In:       cmd.InOrStdin(),
		Out:      cmd.OutOrStdout(),
		Session:  session,
		TickRate: config.TickRate(),
		Json:     lo.Must(cmd.Flags().GetBool("json")),
		Frames:   lo.Must(cmd.Flags().GetBool("frames")),
	})
}
