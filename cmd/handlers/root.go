package handlers

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nivcodes/ainews/internal/config"
	"github.com/nivcodes/ainews/internal/logger"
)

var (
	cfgFile string
	verbose bool
	quiet   bool
)

// NewRootCmd creates the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ainews",
		Short: "ainews fetches, curates, summarizes, and emails AI news digests.",
		Long: `ainews is a personal automation tool that pulls AI-related news from RSS
feeds and the Hacker News API, scores and curates the articles, summarizes
them through a chain of LLM backends, renders Markdown/HTML/JSON newsletters,
and emails the result.`,
		SilenceUsage: true,
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.ainews.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "only log warnings and errors")

	rootCmd.AddCommand(NewGenerateCmd())
	rootCmd.AddCommand(NewRunCmd())
	rootCmd.AddCommand(NewSendCmd())
	rootCmd.AddCommand(NewEmailTestCmd())
	rootCmd.AddCommand(NewScheduleCmd())

	return rootCmd
}

// Execute runs the root command, returning exit code 1 on any failure path
// including interruption.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// initConfig reads the config file and environment, and applies log level
// flags.
func initConfig() {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init()
	logger.SetLevel(cfg.App.LogLevel)
	switch {
	case verbose:
		logger.SetLevel("debug")
	case quiet:
		logger.SetLevel("warn")
	}

	if cfg.App.ConfigFile != "" {
		logger.Debug("using config file", "path", cfg.App.ConfigFile)
	}
}
