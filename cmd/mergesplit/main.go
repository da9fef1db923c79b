// Package main provides the CLI entry point for mergesplit-go.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/ukaji3/mergesplit-go/pkg/mergesplit/config"
)

var (
	configPath string
	verbose    bool
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mergesplit",
		Short: "Split merged weight and box cells of shipment workbooks",
		Long: `mergesplit-go rewrites a shipment workbook so that every physical row
carries its own weight and box count: merged weights are split in
proportion to the quantity column, merged box counts stay on the first row.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Process type config file (default: user config dir)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")

	rootCmd.AddCommand(newProcessCmd(), newConfigCmd())
	return rootCmd
}

// newLogger mirrors the transcript to stderr with --verbose. Otherwise the
// transcript printed on stdout is the only output.
func newLogger() *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func newResolver() (*config.Resolver, error) {
	store, err := config.NewFileStore(configPath)
	if err != nil {
		return nil, err
	}
	return config.NewResolver(store), nil
}
