package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/yungbote/blockpage/internal/app"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "site",
	Short: "Render the marketing site from CMS content",
	Long: `site assembles pages from the headless CMS and renders their layout
blocks to HTML. It can serve pages on demand, build the whole site to a
directory, or print a single page for inspection.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config/config.yaml or SITE_CONFIG_PATH)")
}

func newApp(ctx context.Context) (*app.App, error) {
	return app.New(ctx, cfgFile)
}
