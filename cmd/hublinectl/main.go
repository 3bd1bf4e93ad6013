// ABOUTME: Entry point for the hublinectl command-line tool
// ABOUTME: Wires cobra commands, env config, and logging
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hubline-protocol/hubline-go/internal/version"
)

var (
	flagAddr    string
	flagToken   string
	flagTimeout time.Duration
	flagVerbose bool
)

func main() {
	// A .env next to the binary may hold HUBLINE_ADDR and HUBLINE_TOKEN.
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "hublinectl",
		Short:         "Talk to a Hubline hub over its WebSocket API",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagAddr, "addr", os.Getenv("HUBLINE_ADDR"),
		"hub address (host:port), defaults to $HUBLINE_ADDR")
	root.PersistentFlags().StringVar(&flagToken, "token", os.Getenv("HUBLINE_TOKEN"),
		"access token, defaults to $HUBLINE_TOKEN")
	root.PersistentFlags().DurationVar(&flagTimeout, "timeout", 5*time.Second,
		"per-request deadline")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false,
		"enable debug logging")

	root.AddCommand(
		newDiscoverCmd(),
		newPingCmd(),
		newAreasCmd(),
		newDevicesCmd(),
		newEntitiesCmd(),
		newStatesCmd(),
	)
	return root
}

func newLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	if flagVerbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}
