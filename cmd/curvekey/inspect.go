// Copyright (c) 2026 Curvekey Team
// Curvekey - EC key material toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/toeirei/curvekey/internal/curve"
	"github.com/toeirei/curvekey/internal/i18n"
	"github.com/toeirei/curvekey/internal/keyload"
)

// newInspectCmd builds the 'inspect' subcommand. It reads an X.509
// certificate (DER or PEM) and prints its subject and public point.
func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <certificate>...",
		Short: "Inspect X.509 certificates carrying secp384r1 keys",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				if err := inspectCertificate(cmd, path); err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
			}
			return nil
		},
	}
	return cmd
}

func inspectCertificate(cmd *cobra.Command, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	der := data
	if block, _ := pem.Decode(data); block != nil && block.Type == "CERTIFICATE" {
		der = block.Bytes
	}

	cert, pub, err := keyload.CertificateKey(der)
	if err != nil {
		return err
	}

	c, err := curve.ForKey(pub)
	if err != nil {
		return err
	}
	point, err := c.EncodePoint(pub)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, i18n.T("inspect.subject", cert.Subject.String()))
	fmt.Fprintln(out, i18n.T("inspect.issuer", cert.Issuer.String()))
	fmt.Fprintln(out, i18n.T("inspect.curve", c.Name()))
	fmt.Fprintln(out, i18n.T("inspect.point", base64.StdEncoding.EncodeToString(point)))
	fmt.Fprintln(out, i18n.T("inspect.not_after", cert.NotAfter.Format(time.RFC3339)))
	return nil
}
