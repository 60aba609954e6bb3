package main

import (
	"errors"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/fgtools/forgeup/pkg/config"
	"github.com/fgtools/forgeup/pkg/workflow"
)

const version = "0.2.0"

// rootOptions carries flag values shared by the subcommands. Flags override
// environment variables, which override the config file.
type rootOptions struct {
	configPath string

	username          string
	itemID            int
	itemName          string
	files             string
	projectRoot       string
	channel           string
	uploadBuild       bool
	updateDescription bool
	stripImages       bool
	headless          bool
	timeout           time.Duration
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "forgeup",
		Short:         "Publish game-content builds to the Forge storefront",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	opts.bindFlags(root.PersistentFlags())

	root.AddCommand(
		newRunCommand(opts),
		newListingsCommand(opts),
		newReadmeCommand(opts),
		newVersionCommand(),
	)

	return root
}

func (o *rootOptions) bindFlags(pf *pflag.FlagSet) {
	pf.StringVarP(&o.configPath, "config", "c", "", "path to YAML config file")
	pf.StringVarP(&o.username, "username", "u", "", "storefront username (env: FORGE_USERNAME)")
	pf.IntVar(&o.itemID, "item-id", 0, "numeric listing id (env: FORGE_ITEM_ID)")
	pf.StringVar(&o.itemName, "item-name", "", "listing name substring, used when --item-id is unknown")
	pf.StringVarP(&o.files, "files", "f", "", "comma-separated build files, directories, or patterns (env: FORGE_FILES)")
	pf.StringVar(&o.projectRoot, "project-root", ".", "root for relative build file paths")
	pf.StringVar(&o.channel, "channel", "Live", "release channel: Live, Test, or None (env: FORGE_CHANNEL)")
	pf.BoolVar(&o.uploadBuild, "upload", true, "upload build files")
	pf.BoolVar(&o.updateDescription, "update-description", false, "replace the listing description with the build's README")
	pf.BoolVar(&o.stripImages, "strip-images", false, "remove images from the description instead of linking them")
	pf.BoolVar(&o.headless, "headless", true, "run the browser headless")
	pf.DurationVar(&o.timeout, "timeout", 7*time.Second, "per-element wait timeout")
}

// buildConfig assembles the layered configuration: defaults, then the YAML
// file, then FORGE_* environment variables, then explicitly-set flags.
func (o *rootOptions) buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		loaded, err := config.Load(o.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	cfg.ApplyEnv()

	f := cmd.Flags()
	if f.Changed("username") {
		cfg.Username = o.username
	}
	if f.Changed("item-id") {
		cfg.ItemID = o.itemID
	}
	if f.Changed("item-name") {
		cfg.ItemName = o.itemName
	}
	if f.Changed("files") {
		cfg.Files = o.files
	}
	if f.Changed("project-root") {
		cfg.ProjectRoot = o.projectRoot
	}
	if f.Changed("channel") {
		cfg.Channel = o.channel
	}
	if f.Changed("upload") {
		cfg.UploadBuild = o.uploadBuild
	}
	if f.Changed("update-description") {
		cfg.UpdateDescription = o.updateDescription
	}
	if f.Changed("strip-images") {
		cfg.StripImages = o.stripImages
	}
	if f.Changed("headless") {
		cfg.Headless = o.headless
	}
	if f.Changed("timeout") {
		cfg.TimeoutSeconds = o.timeout.Seconds()
	}

	return cfg, nil
}

// Exit codes, one per fatal error category, for CI log triage.
const (
	exitGeneric       = 1
	exitConfiguration = 2
	exitSession       = 3
	exitResolution    = 4
	exitUpload        = 5
	exitDescription   = 6
)

func exitCodeForStep(step workflow.Step) int {
	switch step {
	case workflow.StepConfig:
		return exitConfiguration
	case workflow.StepSession, workflow.StepAuth:
		return exitSession
	case workflow.StepResolve:
		return exitResolution
	case workflow.StepUpload:
		return exitUpload
	case workflow.StepDescription:
		return exitDescription
	}
	return exitGeneric
}

// exitCodeError tags an error with the process exit code it should produce.
type exitCodeError struct {
	code int
	err  error
}

func (e *exitCodeError) Error() string { return e.err.Error() }
func (e *exitCodeError) Unwrap() error { return e.err }

func exitWith(code int, err error) error {
	return &exitCodeError{code: code, err: err}
}

func exitCode(err error) int {
	var ec *exitCodeError
	if errors.As(err, &ec) {
		return ec.code
	}
	return exitGeneric
}
