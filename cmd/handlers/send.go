package handlers

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nivcodes/ainews/internal/config"
	"github.com/nivcodes/ainews/internal/email"
)

// NewSendCmd creates the send command, which emails a previously rendered
// HTML newsletter without regenerating anything.
func NewSendCmd() *cobra.Command {
	var (
		htmlFile string
		subject  string
	)

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Email a previously generated HTML newsletter",
		RunE: func(cmd *cobra.Command, args []string) error {
			sender := email.NewSender(config.Get().Email)
			if err := sender.SendFile(htmlFile, subject); err != nil {
				return err
			}
			fmt.Println("✅ Newsletter sent")
			return nil
		},
	}

	cmd.Flags().StringVar(&htmlFile, "html-file", "output/newsletter.html", "HTML file to send")
	cmd.Flags().StringVar(&subject, "subject", "", "email subject (default is today's digest subject)")

	return cmd
}
