package version

import (
	"context"
	"fmt"
	"io"

	"github.com/reel-cli/reel/color"
	"github.com/reel-cli/reel/constant"
	"github.com/reel-cli/reel/icon"
	"github.com/reel-cli/reel/key"
	"github.com/reel-cli/reel/log"
	"github.com/reel-cli/reel/style"
	"github.com/reel-cli/reel/util"
	"github.com/spf13/viper"
)

// Notify prints an upgrade banner to w when cli.version_check is on and a newer release exists.
// Lookup failures are logged and otherwise ignored.
func Notify(ctx context.Context, w io.Writer) {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	erase := util.PrintErasable(fmt.Sprintf("%s Checking for a new version...", icon.Get(icon.Progress)))
	latest, err := Latest(ctx)
	erase()
	if err != nil {
		log.Warnf("version check: %v", err)
		return
	}

	if newer, err := Compare(latest, constant.Version); err != nil || newer <= 0 {
		return
	}

	_, _ = fmt.Fprint(w, Banner(latest, constant.Version))
}

// Banner renders the upgrade notice for latest when running current.
func Banner(latest, current string) string {
	return fmt.Sprintf("\n%s New version is available %s %s\n%s\n\n",
		style.Fg(color.Playing)("▇▇▇"),
		style.Bold(latest),
		style.Faint(fmt.Sprintf("(you're on %s)", current)),
		style.Faint("https://github.com/reel-cli/reel/releases/tag/v"+latest),
	)
}
