// ABOUTME: Subcommand implementations for hublinectl
// ABOUTME: Each command connects, runs one hub operation, prints JSON
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hubline-protocol/hubline-go/pkg/discovery"
	"github.com/hubline-protocol/hubline-go/pkg/hubline"
	"github.com/hubline-protocol/hubline-go/pkg/transport"
)

// connect dials the hub and builds a client. Authentication is the
// caller's choice: ping works without it.
func connect(ctx context.Context) (*hubline.Client, error) {
	if flagAddr == "" {
		return nil, fmt.Errorf("no hub address: set --addr or $HUBLINE_ADDR")
	}

	logger := newLogger()
	tr, err := transport.Dial(ctx, transport.Config{Addr: flagAddr, Logger: logger})
	if err != nil {
		return nil, err
	}

	client, err := hubline.NewClient(hubline.Config{
		Transport:      tr,
		RequestTimeout: flagTimeout,
		Logger:         logger,
	})
	if err != nil {
		_ = tr.Disconnect()
		return nil, err
	}
	return client, nil
}

func connectAuthenticated(ctx context.Context) (*hubline.Client, error) {
	if flagToken == "" {
		return nil, fmt.Errorf("no access token: set --token or $HUBLINE_TOKEN")
	}

	client, err := connect(ctx)
	if err != nil {
		return nil, err
	}
	if err := client.Authenticate(ctx, flagToken); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newDiscoverCmd() *cobra.Command {
	var wait time.Duration

	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Find Hubline hubs on the local network",
		RunE: func(cmd *cobra.Command, args []string) error {
			hubs, err := discovery.Discover(wait)
			if err != nil {
				return err
			}
			if len(hubs) == 0 {
				fmt.Println("no hubs found")
				return nil
			}
			for _, hub := range hubs {
				fmt.Printf("%s\t%s:%d\n", hub.Name, hub.Host, hub.Port)
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&wait, "wait", 3*time.Second, "how long to browse")
	return cmd
}

func newPingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check hub liveness (no authentication needed)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, err := connect(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			start := time.Now()
			if err := client.Ping(ctx); err != nil {
				return err
			}
			fmt.Printf("pong in %s\n", time.Since(start).Round(time.Millisecond))
			return nil
		},
	}
}

func newAreasCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "areas",
		Short: "List the hub's areas",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, err := connectAuthenticated(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			areas, err := client.ListAreas(ctx)
			if err != nil {
				return err
			}
			return printJSON(areas)
		},
	}
}

func newDevicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "devices",
		Short: "List the hub's device registry",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, err := connectAuthenticated(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			devices, err := client.ListDevices(ctx)
			if err != nil {
				return err
			}
			return printJSON(devices)
		},
	}
}

func newEntitiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "entities",
		Short: "List the hub's entity registry",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, err := connectAuthenticated(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			entities, err := client.ListEntities(ctx)
			if err != nil {
				return err
			}
			return printJSON(entities)
		},
	}
}

func newStatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "states",
		Short: "Retrieve the current state of every entity",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, err := connectAuthenticated(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			states, err := client.States(ctx)
			if err != nil {
				return err
			}
			return printJSON(states)
		},
	}
}
