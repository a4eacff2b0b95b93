// Package main provides the bt binary, a downloader and packager for
// public-domain Bible translations.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

const (
	Version = "1.0.0"
	appName = "bt"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	app := &app{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Download and bundle public-domain Bible translations",
		Long: `bt retrieves the text of public-domain Bible translations and
packages them as JSON or SQL bundles.

Text is fetched one chapter at a time, cached locally, and exported as a
compressed bundle per translation. A small HTTP API can serve the same
lookups.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup()
		},
	}

	cmd.PersistentFlags().StringVarP(&app.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&app.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		listCmd(app),
		getCmd(app),
		downloadCmd(app),
		serveCmd(app),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Printf("%s version %s\n", appName, Version)
			},
		},
	)

	return cmd
}
