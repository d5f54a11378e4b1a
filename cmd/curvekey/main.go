// Copyright (c) 2026 Curvekey Team
// Curvekey - EC key material toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

// main.go sets up the command-line interface (CLI) for the Curvekey
// application using the Cobra library. It defines the root command,
// subcommands (generate, pubkey, inspect, token), flags, and the main
// entry point for execution.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/toeirei/curvekey/buildvars"
	"github.com/toeirei/curvekey/internal/config"
	"github.com/toeirei/curvekey/internal/i18n"
	"github.com/toeirei/curvekey/internal/logging"
	"github.com/toeirei/curvekey/internal/token"
)

var cfgFile string

// appConfig holds the configuration loaded for the current invocation. It is
// populated by the root command's PersistentPreRunE.
var appConfig config.Config

// main is the entry point of the application.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		// The error is already printed by Cobra on failure.
		os.Exit(1)
	}
}

// newRootCmd creates and configures a new root cobra command. This function
// is used to create the main application command as well as fresh instances
// for isolated testing.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "curvekey",
		Short: "Curvekey manages secp384r1 key material.",
		Long: `Curvekey generates, encodes and loads elliptic-curve key material
on the secp384r1 curve. Public keys travel as fixed-width uncompressed
points; private keys come from PEM files or stay behind a PKCS#11
hardware token.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var configFile *string
			if cfgFile != "" {
				configFile = &cfgFile
			}
			defaults := map[string]any{
				"language":      "en",
				"debug":         false,
				"token.library": token.DefaultLibrary(),
				"token.slot":    0,
			}
			c, err := config.LoadConfig[config.Config](cmd, defaults, configFile)
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			appConfig = c
			i18n.Init(c.Language)
			logging.SetDebug(c.Debug)
			return nil
		},
	}

	cmd.AddCommand(newGenerateCmd())
	cmd.AddCommand(newPubkeyCmd())
	cmd.AddCommand(newInspectCmd())
	cmd.AddCommand(newTokenCmd())

	cmd.Version = buildvars.VersionOrDefault("dev")

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is curvekey.yaml in the user config dir)")
	cmd.PersistentFlags().String("language", "en", `output language ("en", "de")`)
	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	return cmd
}
