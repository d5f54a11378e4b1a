// Copyright (c) 2026 Curvekey Team
// Curvekey - EC key material toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"encoding/base64"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/toeirei/curvekey/internal/curve"
	"github.com/toeirei/curvekey/internal/i18n"
	"github.com/toeirei/curvekey/internal/pin"
	"github.com/toeirei/curvekey/internal/security"
	"github.com/toeirei/curvekey/internal/token"
)

// newTokenCmd builds the 'token' subcommand tree for PKCS#11 hardware
// tokens.
func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Work with keys on a PKCS#11 hardware token",
	}
	cmd.PersistentFlags().String("library", "", "path to the PKCS#11 provider library")
	cmd.PersistentFlags().Int("slot", 0, "token slot index")
	cmd.PersistentFlags().String("pin", "", "token PIN (omit to be prompted)")

	cmd.AddCommand(newTokenListCmd())
	cmd.AddCommand(newTokenShowCmd())
	return cmd
}

// tokenConfig resolves the provider configuration from flags and the loaded
// application config.
func tokenConfig(cmd *cobra.Command) token.Config {
	cfg := token.Config{
		Library: appConfig.Token.Library,
		Slot:    appConfig.Token.Slot,
	}
	if lib, _ := cmd.Flags().GetString("library"); lib != "" {
		cfg.Library = lib
	}
	if cmd.Flags().Changed("slot") {
		cfg.Slot, _ = cmd.Flags().GetInt("slot")
	}
	return cfg
}

// openTokenSession drives the loader up to the session-open state. The
// caller owns the returned loader and must Close it.
func openTokenSession(cmd *cobra.Command) (*token.Loader, error) {
	strategy := pin.Default()
	if raw, _ := cmd.Flags().GetString("pin"); raw != "" {
		strategy = pin.Static(security.FromString(raw))
	}

	l := token.NewLoader()
	if err := l.Configure(tokenConfig(cmd)); err != nil {
		return nil, err
	}
	if err := l.OpenSession(strategy); err != nil {
		return nil, err
	}
	return l, nil
}

func newTokenListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List key entries on the token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := openTokenSession(cmd)
			if err != nil {
				return err
			}
			defer l.Close()

			entries, err := l.Entries()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, i18n.T("token.entries_header"))
			for _, e := range entries {
				fmt.Fprintln(out, i18n.T("token.entry", e.Alias, e.HasPrivateKey, e.HasCertificate))
			}
			return nil
		},
	}
}

func newTokenShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Load the token's key and print its public point",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := openTokenSession(cmd)
			if err != nil {
				return err
			}
			defer l.Close()

			if err := l.SelectKey(); err != nil {
				return err
			}
			pair, cert, err := l.Load()
			if err != nil {
				return err
			}

			c, err := curve.ForKey(pair.Public)
			if err != nil {
				return err
			}
			point, err := c.EncodePoint(pair.Public)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, i18n.T("token.loaded", l.Alias()))
			fmt.Fprintln(out, i18n.T("token.subject", cert.Subject.String()))
			fmt.Fprintln(out, i18n.T("pubkey.curve", c.Name()))
			fmt.Fprintln(out, i18n.T("pubkey.point", base64.StdEncoding.EncodeToString(point)))
			return nil
		},
	}
}
