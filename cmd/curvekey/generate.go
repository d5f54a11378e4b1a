// Copyright (c) 2026 Curvekey Team
// Curvekey - EC key material toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/toeirei/curvekey/internal/curve"
	"github.com/toeirei/curvekey/internal/i18n"
	"github.com/toeirei/curvekey/internal/logging"
)

// newGenerateCmd builds the 'generate' subcommand. It creates a fresh
// secp384r1 key pair and writes it as a pair of PEM files.
func newGenerateCmd() *cobra.Command {
	var outDir string
	var name string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a new secp384r1 key pair",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := curve.Secp384r1.GenerateKeyPair()
			if err != nil {
				return fmt.Errorf("generate key pair: %w", err)
			}
			logging.Debugf("generated %s key pair", curve.Secp384r1.Name())

			privDER, err := x509.MarshalECPrivateKey(key)
			if err != nil {
				return fmt.Errorf("encode private key: %w", err)
			}
			pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
			if err != nil {
				return fmt.Errorf("encode public key: %w", err)
			}

			privPath := filepath.Join(outDir, name+".pem")
			pubPath := filepath.Join(outDir, name+".pub.pem")

			privPEM := pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: privDER})
			if err := os.WriteFile(privPath, privPEM, 0600); err != nil {
				return fmt.Errorf("write private key: %w", err)
			}
			pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})
			if err := os.WriteFile(pubPath, pubPEM, 0644); err != nil {
				return fmt.Errorf("write public key: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("generate.private_written", privPath))
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("generate.public_written", pubPath))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "directory to write the key pair to")
	cmd.Flags().StringVarP(&name, "name", "n", "curvekey", "base name for the PEM files")
	return cmd
}
