// Package cmd implements reel's command-line interface.
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/reel-cli/reel/color"
	"github.com/reel-cli/reel/constant"
	"github.com/reel-cli/reel/icon"
	"github.com/reel-cli/reel/key"
	"github.com/reel-cli/reel/log"
	"github.com/reel-cli/reel/style"
	"github.com/reel-cli/reel/version"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")
	addPlayFlags(rootCmd)

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Icon variant ("+strings.Join(icon.AvailableVariants(), ", ")+")")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveNoFileComp
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify(context.Background(), cmd.OutOrStdout())
	})
}

var rootCmd = &cobra.Command{
	Use:   constant.Reel + " [source]",
	Short: "Terminal media player with drag-to-seek and auto-hiding controls",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiPurple).Render("    - Terminal media player with drag-to-seek and auto-hiding controls"),
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, nil)
			return
		}

		if len(args) == 0 && !cmd.Flags().Changed("schema") {
			handleErr(cmd.Help())
			return
		}

		runPlay(cmd, args)
	},
}

// Execute runs the command tree.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiMagenta + cc.Bold + cc.Underline,
			Commands:      cc.HiCyan + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		handleErr(err)
	}
}

func handleErr(err error) {
	if err == nil {
		return
	}

	log.Error(err)
	_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", style.Fg(color.Failure)(icon.Get(icon.Fail)), strings.TrimSpace(err.Error()))
	os.Exit(1)
}
