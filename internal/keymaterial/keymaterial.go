// Copyright (c) 2026 Curvekey Team
// Curvekey - EC key material toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

// Package keymaterial defines the boundary types handed from the key loaders
// to the encryption pipeline. A KeyMaterial always yields a labeled,
// validated public key point; the key-pair-derived variant additionally
// yields the private key. Loaders never retain references to returned
// material.
package keymaterial

import (
	"crypto"
	"crypto/ecdsa"
	"fmt"

	"github.com/toeirei/curvekey/internal/curve"
)

// KeyPair couples a private key handle with its validated public key. The
// private half is *ecdsa.PrivateKey for software keys, or a token-backed
// handle (typically a crypto.Signer) for hardware keys whose scalar never
// leaves the device. The caller that requested the pair owns it exclusively.
type KeyPair struct {
	Private crypto.PrivateKey
	Public  *ecdsa.PublicKey
}

// KeyMaterial is the capability set common to all loaded key material.
type KeyMaterial interface {
	// Label identifies the material for diagnostics and recipient records.
	Label() string
	// Curve returns the registered curve the public key lives on.
	Curve() curve.Curve
	// PublicKey returns the validated public key point.
	PublicKey() *ecdsa.PublicKey
}

// PrivateKeyCapable is implemented by key-pair-derived material that can
// sign or derive.
type PrivateKeyCapable interface {
	KeyMaterial
	PrivateKey() crypto.PrivateKey
}

type publicKeyMaterial struct {
	label string
	c     curve.Curve
	pub   *ecdsa.PublicKey
}

func (m *publicKeyMaterial) Label() string               { return m.label }
func (m *publicKeyMaterial) Curve() curve.Curve          { return m.c }
func (m *publicKeyMaterial) PublicKey() *ecdsa.PublicKey { return m.pub }

type keyPairMaterial struct {
	publicKeyMaterial
	priv crypto.PrivateKey
}

func (m *keyPairMaterial) PrivateKey() crypto.PrivateKey { return m.priv }

// FromPublicKey wraps a recipient public key. The key is resolved through
// the curve registry and validated; off-curve or unregistered keys are
// rejected.
func FromPublicKey(label string, pub *ecdsa.PublicKey) (KeyMaterial, error) {
	c, err := curve.ForKey(pub)
	if err != nil {
		return nil, fmt.Errorf("key material %q: %w", label, err)
	}
	if !c.IsValidPublicKey(pub) {
		return nil, fmt.Errorf("key material %q: %w", label, curve.ErrInvalidKey)
	}
	return &publicKeyMaterial{label: label, c: c, pub: pub}, nil
}

// FromKeyPair wraps a full key pair for decryption or signing use.
func FromKeyPair(label string, pair KeyPair) (PrivateKeyCapable, error) {
	c, err := curve.ForKey(pair.Public)
	if err != nil {
		return nil, fmt.Errorf("key material %q: %w", label, err)
	}
	if !c.IsValidPublicKey(pair.Public) {
		return nil, fmt.Errorf("key material %q: %w", label, curve.ErrInvalidKey)
	}
	return &keyPairMaterial{
		publicKeyMaterial: publicKeyMaterial{label: label, c: c, pub: pair.Public},
		priv:              pair.Private,
	}, nil
}
