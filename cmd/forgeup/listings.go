package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/fgtools/forgeup/pkg/browser"
	"github.com/fgtools/forgeup/pkg/forge"
	"github.com/fgtools/forgeup/pkg/logging"
)

func newListingsCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "listings",
		Short: "List the account's storefront listings and their item ids",
		Long: `Log in and print the listings visible on the first page of the account's
crafter table. Useful for finding the item id of a listing before a publish
run. Only the first 100 listings are scanned.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.buildConfig(cmd)
			if err != nil {
				return exitWith(exitConfiguration, err)
			}
			promptMissing(cfg)
			if cfg.Username == "" || cfg.Password == "" {
				return exitWith(exitConfiguration, fmt.Errorf("username and password are required"))
			}

			log, logErr := logging.NewLogger("listings")
			if logErr != nil {
				fmt.Fprintf(os.Stderr, "warning: file logging unavailable: %v\n", logErr)
			}
			defer log.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			driver := browser.NewPlaywrightDriver()
			defer driver.Stop()

			session, err := driver.Open(ctx, browser.OpenOptions{Headless: cfg.Headless})
			if err != nil {
				return exitWith(exitSession, err)
			}
			defer session.Close()

			client := forge.NewClient(session, time.Duration(cfg.TimeoutSeconds*float64(time.Second)), log)
			if _, err := client.Login(ctx, forge.Credentials{Username: cfg.Username, Password: cfg.Password}); err != nil {
				return exitWith(exitSession, err)
			}

			listings, err := client.Listings(ctx)
			if err != nil {
				return exitWith(exitResolution, err)
			}

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Item ID", "Name"})
			for _, l := range listings {
				t.AppendRow(table.Row{l.ID, l.Name})
			}
			t.Render()
			return nil
		},
	}
}
