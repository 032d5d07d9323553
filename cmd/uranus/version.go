package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/futureHQ/uranus/internal/ui"
)

// Set at build time via -ldflags.
var (
	version = "0.1.0-dev"
	commit  = "unknown"
	date    = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		styles := ui.DefaultStyles()

		fmt.Println(styles.BannerTitle.Render("uranus " + version))
		for _, row := range [][2]string{
			{"commit", commit},
			{"built", date},
			{"go", runtime.Version()},
			{"platform", runtime.GOOS + "/" + runtime.GOARCH},
		} {
			fmt.Printf("  %s %s\n", styles.HelpKey.Render(row[0]+":"), styles.HelpValue.Render(row[1]))
		}
	},
}
