package handlers

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nivcodes/ainews/internal/config"
	"github.com/nivcodes/ainews/internal/newsletter"
	"github.com/nivcodes/ainews/internal/pipeline"
)

// NewRunCmd creates the run command: generate and send in one step. It is
// the unattended-friendly equivalent of `generate --send`.
func NewRunCmd() *cobra.Command {
	var (
		maxArticles int
		style       string
		subject     string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Generate today's newsletter and email it",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !newsletter.ValidStyle(style) {
				return fmt.Errorf("unknown style %q (want editorial, rundown, or basic)", style)
			}

			p := pipeline.New(config.Get())
			result, err := p.Run(cmd.Context(), pipeline.Options{
				MaxArticles: maxArticles,
				Style:       newsletter.Style(style),
				FetchImages: true,
				Send:        true,
				Subject:     subject,
			})
			if err != nil {
				return err
			}

			fmt.Println("🎉 Newsletter generated and sent")
			fmt.Print(result.Summary())
			return nil
		},
	}

	cmd.Flags().IntVar(&maxArticles, "max-articles", 0, "overall article cap (default from config)")
	cmd.Flags().StringVar(&style, "style", "editorial", "summary style: editorial, rundown, or basic")
	cmd.Flags().StringVar(&subject, "subject", "", "custom email subject")

	return cmd
}
