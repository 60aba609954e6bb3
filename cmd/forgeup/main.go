// Command forgeup publishes game-content builds to the Forge storefront by
// driving an authenticated browser session: it logs in, locates the listing,
// uploads build files to a release channel, and optionally replaces the
// listing description with the build's rendered README.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(exitCode(err))
	}
}
