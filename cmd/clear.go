package cmd

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/reel-cli/reel/color"
	"github.com/reel-cli/reel/icon"
	"github.com/reel-cli/reel/style"
	"github.com/reel-cli/reel/util"
	"github.com/reel-cli/reel/where"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

type clearTarget struct {
	name     string
	argLong  string
	argShort mo.Option[string]
	location func() string
}

var clearTargets = []clearTarget{
	{"cache directory", "cache", mo.Some("c"), where.Cache},
	{"log files", "logs", mo.Some("l"), where.Logs},
	{"stale engine sockets", "sockets", mo.Some("s"), where.Temp},
}

func init() {
	rootCmd.AddCommand(clearCmd)

	for _, target := range clearTargets {
		help := "Clear " + target.name
		if short, ok := target.argShort.Get(); ok {
			clearCmd.Flags().BoolP(target.argLong, short, false, help)
		} else {
			clearCmd.Flags().Bool(target.argLong, false, help)
		}
	}
	clearCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove cached data, logs and leftover engine sockets",
	Run: func(cmd *cobra.Command, args []string) {
		selected := lo.Filter(clearTargets, func(t clearTarget, _ int) bool {
			return lo.Must(cmd.Flags().GetBool(t.argLong))
		})
		if len(selected) == 0 {
			handleErr(cmd.Help())
			return
		}

		if !lo.Must(cmd.Flags().GetBool("yes")) && !confirm(fmt.Sprintf("Clear %s?", util.Quantify(len(selected), "target", "targets"))) {
			return
		}

		for _, target := range selected {
			erase := util.PrintErasable(fmt.Sprintf("%s Clearing %s...", icon.Get(icon.Progress), target.name))
			err := util.Delete(target.location())
			erase()
			handleErr(err)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s cleared\n", style.Fg(color.Playing)(icon.Get(icon.Success)), util.Capitalize(target.name))
		}
	},
}

// confirm asks a yes/no question, defaulting to no.
func confirm(message string) bool {
	var response bool
	handleErr(survey.AskOne(&survey.Confirm{Message: message, Default: false}, &response))
	return response
}
