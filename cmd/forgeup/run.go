package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fgtools/forgeup/pkg/browser"
	"github.com/fgtools/forgeup/pkg/logging"
	"github.com/fgtools/forgeup/pkg/workflow"
)

func newRunCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Upload builds and update the listing description",
		Long: `Run the publish workflow: log in, resolve the target listing, upload the
configured build files to the selected release channel, and optionally replace
the listing description with the build's rendered README.

Exit codes: 0 success, 2 configuration, 3 authentication/session,
4 listing resolution, 5 upload, 6 description save.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.buildConfig(cmd)
			if err != nil {
				return exitWith(exitConfiguration, err)
			}
			promptMissing(cfg)

			resolved, err := cfg.Validate()
			if err != nil {
				return exitWith(exitConfiguration, err)
			}

			log, logErr := logging.NewLogger("workflow")
			if logErr != nil {
				fmt.Fprintf(os.Stderr, "warning: file logging unavailable: %v\n", logErr)
			}
			defer log.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			driver := browser.NewPlaywrightDriver()
			defer driver.Stop()

			result, err := workflow.New(driver, resolved, log).Run(ctx)
			report(result)
			if err != nil {
				return exitWith(exitCodeForStep(result.FailedStep), err)
			}
			return nil
		},
	}
}

// report prints what the run accomplished, including partial upload progress
// when a file failed mid-batch.
func report(result *workflow.Result) {
	if result == nil || result.Upload == nil {
		return
	}

	up := result.Upload
	for _, f := range up.Completed {
		fmt.Fprintf(os.Stderr, "uploaded: %s\n", filepath.Base(f))
	}
	if up.Failed != "" {
		fmt.Fprintf(os.Stderr, "failed:   %s\n", filepath.Base(up.Failed))
	}
	for _, f := range up.Skipped {
		fmt.Fprintf(os.Stderr, "skipped:  %s\n", filepath.Base(f))
	}
}
