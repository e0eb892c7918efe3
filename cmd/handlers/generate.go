package handlers

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nivcodes/ainews/internal/config"
	"github.com/nivcodes/ainews/internal/newsletter"
	"github.com/nivcodes/ainews/internal/pipeline"
)

// NewGenerateCmd creates the generate command, which runs the full pipeline
// and optionally emails the result.
func NewGenerateCmd() *cobra.Command {
	var (
		maxArticles  int
		style        string
		outputDir    string
		generateOnly bool
		subject      string
		noImages     bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Fetch, curate, summarize, and render today's newsletter",
		Long: `Generate runs the whole pipeline: fetch articles from RSS feeds and
Hacker News, filter and score them, curate a category-balanced selection,
summarize each article through the LLM backend chain, and write the rendered
newsletter (Markdown, HTML, styled HTML, JSON) into the output directory.

With --send the inline-styled HTML artifact is emailed afterwards; with
--generate-only (the default) the run stops after writing files.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !newsletter.ValidStyle(style) {
				return fmt.Errorf("unknown style %q (want editorial, rundown, or basic)", style)
			}

			p := pipeline.New(config.Get())
			result, err := p.Run(cmd.Context(), pipeline.Options{
				MaxArticles: maxArticles,
				Style:       newsletter.Style(style),
				OutputDir:   outputDir,
				FetchImages: !noImages,
				Send:        !generateOnly,
				Subject:     subject,
			})
			if err != nil {
				return err
			}

			fmt.Println("🎉 Newsletter generated successfully")
			fmt.Print(result.Summary())
			return nil
		},
	}

	cmd.Flags().IntVar(&maxArticles, "max-articles", 0, "overall article cap (default from config)")
	cmd.Flags().StringVar(&style, "style", "editorial", "summary style: editorial, rundown, or basic")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "artifact directory (default from config)")
	cmd.Flags().BoolVar(&generateOnly, "generate-only", true, "write files without emailing")
	cmd.Flags().StringVar(&subject, "subject", "", "custom email subject when sending")
	cmd.Flags().BoolVar(&noImages, "no-images", false, "skip the image enrichment step")
	cmd.Flags().Bool("send", false, "email the HTML newsletter after generating")
	cmd.Flags().Lookup("send").NoOptDefVal = "true"
	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		if send, _ := cmd.Flags().GetBool("send"); send {
			generateOnly = false
		}
		return nil
	}

	return cmd
}
