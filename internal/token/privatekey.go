// Copyright (c) 2026 Curvekey Team
// Curvekey - EC key material toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package token

import (
	"crypto"
	"crypto/ecdsa"
	"encoding/asn1"
	"fmt"
	"io"
	"math/big"

	"github.com/miekg/pkcs11"
)

// PrivateKey is a handle to a private key that never leaves the token. It
// implements crypto.Signer over the open session; the scalar itself is not
// extractable.
type PrivateKey struct {
	module  Module
	session pkcs11.SessionHandle
	handle  pkcs11.ObjectHandle
	pub     *ecdsa.PublicKey
	alias   string
}

// Public implements crypto.Signer.
func (k *PrivateKey) Public() crypto.PublicKey { return k.pub }

// Alias returns the token alias the key was loaded from.
func (k *PrivateKey) Alias() string { return k.alias }

type ecdsaSignature struct {
	R, S *big.Int
}

// Sign signs digest on the token with raw ECDSA and re-encodes the
// fixed-width r||s output as the ASN.1 DER form crypto.Signer callers
// expect. The session the key was loaded in must still be open.
func (k *PrivateKey) Sign(_ io.Reader, digest []byte, _ crypto.SignerOpts) ([]byte, error) {
	mech := []*pkcs11.Mechanism{pkcs11.NewMechanism(pkcs11.CKM_ECDSA, nil)}
	if err := k.module.SignInit(k.session, mech, k.handle); err != nil {
		return nil, fmt.Errorf("token sign init %q: %w", k.alias, err)
	}
	raw, err := k.module.Sign(k.session, digest)
	if err != nil {
		return nil, fmt.Errorf("token sign %q: %w", k.alias, err)
	}
	if len(raw)%2 != 0 {
		return nil, fmt.Errorf("token sign %q: odd signature length %d", k.alias, len(raw))
	}
	half := len(raw) / 2
	return asn1.Marshal(ecdsaSignature{
		R: new(big.Int).SetBytes(raw[:half]),
		S: new(big.Int).SetBytes(raw[half:]),
	})
}
