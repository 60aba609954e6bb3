// Package config builds the run configuration from a YAML file, FORGE_*
// environment variables, and command-line flags. The resulting value is
// constructed once at startup and passed into the workflow; nothing reads
// ambient state after validation.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/fgtools/forgeup/pkg/files"
	"github.com/fgtools/forgeup/pkg/forge"
)

// Config is the raw, user-facing configuration. Validate turns it into a
// Resolved value; no browser interaction happens until validation passes.
type Config struct {
	// Username is the storefront account name.
	Username string `yaml:"username"`

	// Password is deliberately not a YAML field: secrets come from the
	// environment (FORGE_PASSWORD) or an interactive prompt only.
	Password string `yaml:"-"`

	// ItemID identifies the target listing. Zero means unknown, which
	// triggers name-based discovery via ItemName.
	ItemID int `yaml:"item_id"`

	// ItemName is a name substring used to discover the listing when ItemID
	// is unset.
	ItemName string `yaml:"item_name"`

	// Files is a comma-separated list of build files, directories, or glob
	// patterns.
	Files string `yaml:"files"`

	// ProjectRoot anchors relative paths in Files. Defaults to the current
	// directory.
	ProjectRoot string `yaml:"project_root"`

	// UploadBuild toggles the build upload step.
	UploadBuild bool `yaml:"upload_build"`

	// Channel is the release channel for the uploaded batch: Live, Test, or
	// None.
	Channel string `yaml:"channel"`

	// UpdateDescription toggles replacing the listing description with the
	// rendered README from the build.
	UpdateDescription bool `yaml:"update_description"`

	// StripImages removes images from the description instead of rewriting
	// them into links.
	StripImages bool `yaml:"strip_images"`

	// Headless controls whether the browser runs without a visible window.
	Headless bool `yaml:"headless"`

	// TimeoutSeconds bounds each element wait.
	TimeoutSeconds float64 `yaml:"timeout_seconds"`
}

// Resolved is the validated configuration the workflow consumes.
type Resolved struct {
	Credentials forge.Credentials
	Ref         forge.ListingRef
	Artifacts   []string
	Channel     forge.ReleaseChannel

	UploadBuild       bool
	UpdateDescription bool
	StripImages       bool
	Headless          bool
	Timeout           time.Duration
}

// ConfigurationError indicates bad input. It always fires before any network
// or browser activity.
type ConfigurationError struct {
	Field string
	Err   error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error in %s: %v", e.Field, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// Default returns the configuration defaults: upload enabled to the Live
// channel, description update off, headless on.
func Default() *Config {
	return &Config{
		UploadBuild:    true,
		Channel:        string(forge.ChannelLive),
		Headless:       true,
		ProjectRoot:    ".",
		TimeoutSeconds: 7,
	}
}

// Load reads a YAML configuration file over the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overlays FORGE_* environment variables. Environment wins over the
// file; flags win over both (applied later by the CLI).
func (c *Config) ApplyEnv() {
	if v := os.Getenv("FORGE_USERNAME"); v != "" {
		c.Username = v
	}
	if v := os.Getenv("FORGE_PASSWORD"); v != "" {
		c.Password = v
	}
	if v := os.Getenv("FORGE_ITEM_ID"); v != "" {
		if id, err := strconv.Atoi(v); err == nil {
			c.ItemID = id
		}
	}
	if v := os.Getenv("FORGE_ITEM_NAME"); v != "" {
		c.ItemName = v
	}
	if v := os.Getenv("FORGE_FILES"); v != "" {
		c.Files = v
	}
	if v := os.Getenv("FORGE_CHANNEL"); v != "" {
		c.Channel = v
	}
	if v, ok := envBool("FORGE_UPLOAD_BUILD"); ok {
		c.UploadBuild = v
	}
	if v, ok := envBool("FORGE_UPDATE_DESCRIPTION"); ok {
		c.UpdateDescription = v
	}
	if v, ok := envBool("FORGE_STRIP_IMAGES"); ok {
		c.StripImages = v
	}
	if v, ok := envBool("FORGE_HEADLESS"); ok {
		c.Headless = v
	}
	if v := os.Getenv("FORGE_TIMEOUT_SECONDS"); v != "" {
		if secs, err := strconv.ParseFloat(v, 64); err == nil && secs > 0 {
			c.TimeoutSeconds = secs
		}
	}
}

func envBool(key string) (value, present bool) {
	v := os.Getenv(key)
	if v == "" {
		return false, false
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes":
		return true, true
	default:
		return false, true
	}
}

// Validate checks every input and resolves artifact paths. Any failure here
// is a ConfigurationError and nothing has touched the browser yet.
func (c *Config) Validate() (*Resolved, error) {
	if c.Username == "" {
		return nil, &ConfigurationError{Field: "username", Err: fmt.Errorf("username is required (set FORGE_USERNAME)")}
	}
	if c.Password == "" {
		return nil, &ConfigurationError{Field: "password", Err: fmt.Errorf("password is required (set FORGE_PASSWORD)")}
	}
	if c.ItemID < 0 {
		return nil, &ConfigurationError{Field: "item_id", Err: fmt.Errorf("item id must be positive, got %d", c.ItemID)}
	}
	if c.ItemID == 0 && c.ItemName == "" {
		return nil, &ConfigurationError{Field: "item_id", Err: fmt.Errorf("either item_id or item_name is required")}
	}

	channel, err := forge.ParseReleaseChannel(c.Channel)
	if err != nil {
		return nil, &ConfigurationError{Field: "channel", Err: err}
	}

	timeout := time.Duration(c.TimeoutSeconds * float64(time.Second))
	if timeout <= 0 {
		timeout = time.Duration(Default().TimeoutSeconds * float64(time.Second))
	}

	resolved := &Resolved{
		Credentials:       forge.Credentials{Username: c.Username, Password: c.Password},
		Ref:               forge.ListingRef{ItemID: c.ItemID, Name: c.ItemName},
		Channel:           channel,
		UploadBuild:       c.UploadBuild,
		UpdateDescription: c.UpdateDescription,
		StripImages:       c.StripImages,
		Headless:          c.Headless,
		Timeout:           timeout,
	}

	// Both the upload and the description step consume the build files, so
	// paths are resolved whenever either is enabled.
	if c.UploadBuild || c.UpdateDescription {
		if c.Files == "" {
			return nil, &ConfigurationError{Field: "files", Err: fmt.Errorf("build files are required (set FORGE_FILES)")}
		}
		root := c.ProjectRoot
		if root == "" {
			root = "."
		}
		artifacts, err := files.Resolve(c.Files, root)
		if err != nil {
			return nil, &ConfigurationError{Field: "files", Err: err}
		}
		resolved.Artifacts = artifacts
	}

	return resolved, nil
}
