package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fgtools/forgeup/pkg/files"
	"github.com/fgtools/forgeup/pkg/readme"
)

func newReadmeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "readme",
		Short: "Preview the description HTML rendered from a build's README",
		Long: `Extract README.md from the configured build files and print the HTML that
would be submitted as the listing description, without opening a browser.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.buildConfig(cmd)
			if err != nil {
				return exitWith(exitConfiguration, err)
			}
			if cfg.Files == "" {
				return exitWith(exitConfiguration, fmt.Errorf("build files are required (use --files)"))
			}

			artifacts, err := files.Resolve(cfg.Files, cfg.ProjectRoot)
			if err != nil {
				return exitWith(exitConfiguration, err)
			}

			body, err := readme.FromArtifacts(artifacts, cfg.StripImages)
			if err != nil {
				return exitWith(exitConfiguration, err)
			}

			fmt.Println(body)
			return nil
		},
	}
}
