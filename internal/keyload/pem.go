// Copyright (c) 2026 Curvekey Team
// Curvekey - EC key material toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

// Package keyload extracts EC key material from textual PEM input and from
// DER certificates. The loaders perform no file I/O; callers hand in
// already-read text or bytes. Every returned key has passed curve
// validation.
package keyload

import (
	"crypto/ecdsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"

	"github.com/toeirei/curvekey/internal/curve"
	"github.com/toeirei/curvekey/internal/keymaterial"
	"github.com/toeirei/curvekey/internal/logging"
)

// PEM block types understood by KeyPairFromPEM. OpenSSL's
// `ecparam -genkey` emits SEC1 blocks, `genpkey` emits PKCS#8.
const (
	pemTypeECPrivateKey = "EC PRIVATE KEY"
	pemTypePrivateKey   = "PRIVATE KEY"
	pemTypePublicKey    = "PUBLIC KEY"
)

// KeyPairFromPEM parses the first EC private-key block found in text and
// returns the validated key pair. Surrounding text and whitespace are
// tolerated; a missing block fails with ErrKeyNotFound, a key on an
// unregistered curve with ErrWrongCurve.
func KeyPairFromPEM(text string) (keymaterial.KeyPair, error) {
	rest := []byte(text)
	for {
		var block *pem.Block
		block, rest = pem.Decode(rest)
		if block == nil {
			return keymaterial.KeyPair{}, fmt.Errorf("private key block: %w", ErrKeyNotFound)
		}

		var (
			key *ecdsa.PrivateKey
			err error
		)
		switch block.Type {
		case pemTypeECPrivateKey:
			key, err = x509.ParseECPrivateKey(block.Bytes)
			if err != nil {
				return keymaterial.KeyPair{}, fmt.Errorf("parse EC private key: %w", err)
			}
		case pemTypePrivateKey:
			parsed, perr := x509.ParsePKCS8PrivateKey(block.Bytes)
			if perr != nil {
				return keymaterial.KeyPair{}, fmt.Errorf("parse PKCS#8 private key: %w", perr)
			}
			var ok bool
			key, ok = parsed.(*ecdsa.PrivateKey)
			if !ok {
				return keymaterial.KeyPair{}, fmt.Errorf("private key: %w: not an EC key (%T)",
					curve.ErrWrongCurve, parsed)
			}
		default:
			logging.Debugf("skipping PEM block of type %q", block.Type)
			continue
		}

		pub, err := checkedPublicKey(&key.PublicKey)
		if err != nil {
			return keymaterial.KeyPair{}, fmt.Errorf("private key: %w", err)
		}
		return keymaterial.KeyPair{Private: key, Public: pub}, nil
	}
}

// PublicKeyFromPEM scans text for a `-----BEGIN PUBLIC KEY-----` block,
// decodes its SubjectPublicKeyInfo payload and returns the validated public
// key. Text before, between and after blocks is ignored; no matching block
// fails with ErrKeyNotFound.
func PublicKeyFromPEM(text string) (*ecdsa.PublicKey, error) {
	rest := []byte(text)
	for {
		var block *pem.Block
		block, rest = pem.Decode(rest)
		if block == nil {
			return nil, fmt.Errorf("public key block: %w", ErrKeyNotFound)
		}
		if block.Type != pemTypePublicKey {
			logging.Debugf("skipping PEM block of type %q", block.Type)
			continue
		}

		parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("parse public key: %w", err)
		}
		pub, ok := parsed.(*ecdsa.PublicKey)
		if !ok {
			return nil, fmt.Errorf("public key: %w: not an EC key (%T)", curve.ErrWrongCurve, parsed)
		}
		checked, err := checkedPublicKey(pub)
		if err != nil {
			return nil, fmt.Errorf("public key: %w", err)
		}
		return checked, nil
	}
}

// PublicKeysFromPEMs loads one public key per input text. Empty input yields
// an empty result.
func PublicKeysFromPEMs(texts []string) ([]*ecdsa.PublicKey, error) {
	keys := make([]*ecdsa.PublicKey, 0, len(texts))
	for i, text := range texts {
		pub, err := PublicKeyFromPEM(text)
		if err != nil {
			return nil, fmt.Errorf("input %d: %w", i, err)
		}
		keys = append(keys, pub)
	}
	return keys, nil
}

// checkedPublicKey gates a parsed key through the curve registry and the
// on-curve validator. Both checks are mandatory for every loader.
func checkedPublicKey(pub *ecdsa.PublicKey) (*ecdsa.PublicKey, error) {
	c, err := curve.ForKey(pub)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", curve.ErrWrongCurve, err)
	}
	if !c.IsValidPublicKey(pub) {
		return nil, fmt.Errorf("%w: point is not on %s", curve.ErrInvalidKey, c)
	}
	return pub, nil
}
