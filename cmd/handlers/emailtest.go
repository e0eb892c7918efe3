package handlers

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nivcodes/ainews/internal/config"
	"github.com/nivcodes/ainews/internal/email"
)

// NewEmailTestCmd creates the email-test command for verifying SMTP
// configuration before trusting a scheduled run with it.
func NewEmailTestCmd() *cobra.Command {
	var sendTest bool

	cmd := &cobra.Command{
		Use:   "email-test",
		Short: "Verify SMTP configuration",
		Long: `email-test checks that all SMTP settings are present and that the server
accepts a TLS connection and authentication. With --send-test it also
delivers a short test message to the configured recipients.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sender := email.NewSender(config.Get().Email)
			if sendTest {
				if err := sender.SendTest(); err != nil {
					return err
				}
				fmt.Println("✅ Test email sent")
				return nil
			}
			if err := sender.TestConfig(); err != nil {
				return err
			}
			fmt.Println("✅ Email configuration OK")
			return nil
		},
	}

	cmd.Flags().BoolVar(&sendTest, "send-test", false, "send an actual test email")

	return cmd
}
