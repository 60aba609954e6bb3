package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/fgtools/forgeup/pkg/config"
)

// promptMissing interactively asks for credentials that neither the config
// file, environment, nor flags supplied. Prompting only happens on a
// terminal; in CI the missing value simply fails validation.
func promptMissing(cfg *config.Config) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return
	}

	reader := bufio.NewReader(os.Stdin)
	if cfg.Username == "" {
		fmt.Fprint(os.Stderr, "Forge username: ")
		if line, err := reader.ReadString('\n'); err == nil {
			cfg.Username = strings.TrimSpace(line)
		}
	}
	if cfg.Password == "" {
		fmt.Fprint(os.Stderr, "Forge password: ")
		if secret, err := term.ReadPassword(int(os.Stdin.Fd())); err == nil {
			cfg.Password = string(secret)
		}
		fmt.Fprintln(os.Stderr)
	}
}
