package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/reel-cli/reel/color"
	"github.com/reel-cli/reel/constant"
	"github.com/reel-cli/reel/engine"
	"github.com/reel-cli/reel/icon"
	"github.com/reel-cli/reel/style"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that the mpv engine is installed",
	Run: func(cmd *cobra.Command, args []string) {
		if err := engine.CheckMPV(); err != nil {
			printMissingDependency("mpv")
			os.Exit(1)
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s mpv found\n", style.Fg(color.Playing)(icon.Get(icon.Success)))
	},
}

func installHint(dep string) string {
	switch runtime.GOOS {
	case constant.Darwin:
		return "brew install " + dep
	case constant.Linux:
		return "sudo apt install " + dep
	case constant.Windows:
		return "scoop install " + dep
	case constant.Android:
		return "pkg install " + dep
	default:
		return ""
	}
}

func printMissingDependency(dep string) {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color.HiRed).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(color.HiRed).Render(icon.Get(icon.Fail) + " Missing dependency")
	body := fmt.Sprintf("%s was not found in your PATH. Use --engine virtual to run without it.", style.Bold(dep))

	lines := []string{title, "", body}
	if hint := installHint(dep); hint != "" {
		lines = append(lines, "", "To install it, try:", "  "+style.Fg(color.Accent)(hint))
	}

	_, _ = fmt.Fprintln(os.Stderr, box.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)))
}
