package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yungbote/blockpage/internal/platform/shutdown"
	"github.com/yungbote/blockpage/internal/site"
)

var (
	renderCaseStudy bool
	renderOut       string
)

var renderCmd = &cobra.Command{
	Use:   "render <slug>",
	Short: "Render one page to stdout",
	Example: `  site render home
  site render acme-rebrand --case-study -o acme.html`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().BoolVar(&renderCaseStudy, "case-study", false, "look the slug up in case studies instead of pages")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "write to a file instead of stdout")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	ctx, stop := shutdown.NotifyContext(context.Background())
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize app: %w", err)
	}
	defer a.Close()

	var p *site.Page
	if renderCaseStudy {
		p, err = a.Services.Assembler.AssembleCaseStudy(ctx, args[0])
	} else {
		p, err = a.Services.Assembler.AssemblePage(ctx, args[0])
	}
	if err != nil {
		return err
	}
	for _, d := range p.Degraded {
		fmt.Fprintf(cmd.ErrOrStderr(), "degraded: %s\n", d)
	}

	var w io.Writer = cmd.OutOrStdout()
	if renderOut != "" {
		f, err := os.Create(renderOut)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return a.Services.Layout.RenderPage(w, p)
}
