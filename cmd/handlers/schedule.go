package handlers

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/nivcodes/ainews/internal/config"
	"github.com/nivcodes/ainews/internal/email"
	"github.com/nivcodes/ainews/internal/newsletter"
	"github.com/nivcodes/ainews/internal/pipeline"
	"github.com/nivcodes/ainews/internal/scheduler"
)

// NewScheduleCmd creates the schedule command: either one gated, retried run
// (--once, for cron/launchd invocation) or a long-running daemon that fires
// at the configured time every scheduled day.
func NewScheduleCmd() *cobra.Command {
	var once bool

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Run the newsletter on weekday mornings with retry",
		Long: `schedule wraps the full pipeline with the weekday/holiday gate and the
linear retry policy. With --once it performs a single gated run and exits,
which is the mode to invoke from an external cron entry. Without flags it
stays resident and triggers itself at the configured time.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Get()
			p := pipeline.New(cfg)
			sender := email.NewSender(cfg.Email)

			run := func(ctx context.Context) (string, error) {
				result, err := p.Run(ctx, pipeline.Options{
					Style:       newsletter.StyleEditorial,
					FetchImages: true,
					Send:        true,
				})
				if err != nil {
					return "", err
				}
				return result.Summary(), nil
			}

			s := scheduler.New(cfg.Scheduler, run, sender)
			if once {
				return s.RunOnce(cmd.Context())
			}
			err := s.Daemon(cmd.Context())
			if err == context.Canceled {
				return nil
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&once, "once", false, "perform a single gated run and exit")

	return cmd
}
