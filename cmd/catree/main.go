package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/catree/pkg/log"
)

type rootCmdConfig struct {
	verbose  bool
	logLevel string
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	if err := cliParser().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func cliParser() *cobra.Command {
	config := &rootCmdConfig{}
	rootCmd := &cobra.Command{
		Use:   "catree",
		Short: "catree grows ID3 decision trees for yes/no classification",
		Long: `A tool to grow ID3 decision trees from categorical data, test them,
print their rules and use them to make predictions`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.setupLogger(cmd)
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&(config.verbose), "verbose", "v", false, "log progress (same as --log-level debug)")
	rootCmd.PersistentFlags().StringVar(&(config.logLevel), "log-level", "warn", "minimum level of log records written to STDERR: debug, info, warn or error")
	rootCmd.AddCommand(
		versionCmd(),
		growCmd(config),
		predictCmd(config),
		testCmd(config),
		traceCmd(config),
		importancesCmd(config),
	)
	return rootCmd
}

func (c *rootCmdConfig) setupLogger(cmd *cobra.Command) error {
	level, ok := log.ParseLevel(c.logLevel)
	if !ok {
		return fmt.Errorf("invalid log level %q", c.logLevel)
	}
	if c.verbose {
		level = log.LevelDebug
	}
	log.SetLogger(log.NewConsoleLogger(cmd.ErrOrStderr(), level))
	return nil
}

// Logf writes progress messages when --verbose is set.
func (c *rootCmdConfig) Logf(format string, a ...interface{}) {
	if !c.verbose {
		return
	}
	log.GetLoggerWithName("cli").Info(fmt.Sprintf(format, a...))
}
