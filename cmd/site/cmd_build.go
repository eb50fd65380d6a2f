package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yungbote/blockpage/internal/platform/shutdown"
)

var buildOut string

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Write every published page to a directory as static HTML",
	Long: `build lists published pages and case studies, assembles and renders
each one, and writes <out>/<path>/index.html plus listings, 404.html and
sitemap.xml. Pages that fail are reported and the rest are still written.`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildOut, "out", "o", "public", "output directory")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, _ []string) error {
	ctx, stop := shutdown.NotifyContext(context.Background())
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize app: %w", err)
	}
	defer a.Close()

	rep, err := a.Services.Static.Build(ctx, buildOut)
	if rep != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %d pages to %s (%d skipped, %d degraded)\n",
			len(rep.Written), buildOut, len(rep.Skipped), len(rep.Degraded))
		for path, what := range rep.Degraded {
			fmt.Fprintf(cmd.ErrOrStderr(), "degraded %s: %v\n", path, what)
		}
	}
	return err
}
