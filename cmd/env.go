package cmd

import (
	"fmt"
	"os"

	"github.com/reel-cli/reel/color"
	"github.com/reel-cli/reel/config"
	"github.com/reel-cli/reel/style"
	"github.com/reel-cli/reel/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"
)

func init() {
	rootCmd.AddCommand(envCmd)
	envCmd.Flags().BoolP("set-only", "s", false, "Only show variables that are set")
	envCmd.Flags().BoolP("unset-only", "u", false, "Only show variables that are unset")

	envCmd.MarkFlagsMutuallyExclusive("set-only", "unset-only")
}

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "List the environment variables reel reads",
	Run: func(cmd *cobra.Command, args []string) {
		var (
			setOnly   = lo.Must(cmd.Flags().GetBool("set-only"))
			unsetOnly = lo.Must(cmd.Flags().GetBool("unset-only"))
			out       = cmd.OutOrStdout()
		)

		names := append(lo.Map(config.EnvExposed, func(k string, _ int) string {
			field := config.Default[k]
			return field.Env()
		}), where.EnvConfigPath)
		slices.Sort(names)

		for _, name := range names {
			value, present := os.LookupEnv(name)
			if (setOnly && !present) || (unsetOnly && present) {
				continue
			}

			rendered := style.Fg(color.Failure)("unset")
			if present {
				rendered = style.Fg(color.Playing)(value)
			}
			_, _ = fmt.Fprintf(out, "%s=%s\n", style.New().Bold(true).Foreground(color.Purple).Render(name), rendered)
		}
	},
}
