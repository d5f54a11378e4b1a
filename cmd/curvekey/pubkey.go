// Copyright (c) 2026 Curvekey Team
// Curvekey - EC key material toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/ssh"

	"github.com/toeirei/curvekey/internal/i18n"
	"github.com/toeirei/curvekey/internal/keyload"
	"github.com/toeirei/curvekey/internal/keymaterial"
)

// newPubkeyCmd builds the 'pubkey' subcommand. It reads a PEM file (public
// key or key pair) and prints the wire encoding of the public point.
func newPubkeyCmd() *cobra.Command {
	var asSSH bool
	var asHex bool
	var copyOut bool

	cmd := &cobra.Command{
		Use:   "pubkey <file.pem>",
		Short: "Print the wire encoding of a PEM public key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			pub, err := keyload.PublicKeyFromPEM(string(data))
			if err != nil {
				// A key-pair file works too; use its public half.
				pair, pairErr := keyload.KeyPairFromPEM(string(data))
				if pairErr != nil {
					return err
				}
				pub = pair.Public
			}

			label := strings.TrimSuffix(filepath.Base(args[0]), ".pem")
			material, err := keymaterial.FromPublicKey(label, pub)
			if err != nil {
				return err
			}

			if asSSH {
				sshPub, err := ssh.NewPublicKey(material.PublicKey())
				if err != nil {
					return fmt.Errorf("ssh encoding: %w", err)
				}
				line := strings.TrimSpace(string(ssh.MarshalAuthorizedKey(sshPub))) + " " + label
				return emit(cmd, line, line, copyOut)
			}

			point, err := material.Curve().EncodePoint(material.PublicKey())
			if err != nil {
				return err
			}
			encoded := base64.StdEncoding.EncodeToString(point)
			if asHex {
				encoded = hex.EncodeToString(point)
			}

			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("pubkey.label", material.Label()))
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("pubkey.curve", material.Curve().Name()))
			return emit(cmd, i18n.T("pubkey.point", encoded), encoded, copyOut)
		},
	}

	cmd.Flags().BoolVar(&asSSH, "ssh", false, "print as an OpenSSH authorized_keys line")
	cmd.Flags().BoolVar(&asHex, "hex", false, "print the point as hex instead of base64")
	cmd.Flags().BoolVarP(&copyOut, "copy", "c", false, "also copy the output to the clipboard")
	return cmd
}

// emit prints line and, when requested, places clip on the system clipboard.
func emit(cmd *cobra.Command, line, clip string, copyOut bool) error {
	fmt.Fprintln(cmd.OutOrStdout(), line)
	if copyOut {
		if err := clipboard.WriteAll(clip); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), i18n.T("pubkey.copied"))
	}
	return nil
}
