// Copyright (c) 2026 Curvekey Team
// Curvekey - EC key material toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

// Package curve holds the registry of elliptic curves supported by Curvekey
// together with the fixed-width wire codec and point validation used by every
// key loader. Currently only secp384r1 (NIST P-384) is registered; adding a
// curve means adding one descriptor to the registry, never touching call
// sites.
package curve

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"fmt"
	"strings"
)

// Curve describes one supported elliptic curve: its wire tag (the value used
// by the document container's recipient records), its canonical name, its
// object identifier and the fixed coordinate width that determines all
// encoded lengths. The zero value is the "unknown" curve and supports no
// operations.
type Curve struct {
	tag      byte
	name     string
	oid      string
	coordLen int
}

// Secp384r1 is the single curve in current scope.
var Secp384r1 = Curve{
	tag:      1,
	name:     "secp384r1",
	oid:      "1.3.132.0.34",
	coordLen: 48,
}

// registry lists every supported curve. Lookups below are the only place
// allowed to enumerate it.
var registry = []Curve{Secp384r1}

// nameAliases maps alternative spellings (lower-cased) to canonical curve
// names. The stdlib calls secp384r1 "P-384", SunEC tooling says "NIST P-384",
// and some callers hand in the OID where a name is expected.
var nameAliases = map[string]string{
	"p-384":        "secp384r1",
	"nist p-384":   "secp384r1",
	"1.3.132.0.34": "secp384r1",
}

// Tag returns the wire tag identifying the curve in recipient records.
func (c Curve) Tag() byte { return c.tag }

// Name returns the canonical curve name, e.g. "secp384r1".
func (c Curve) Name() string { return c.name }

// OID returns the curve's object identifier in dotted form.
func (c Curve) OID() string { return c.oid }

// CoordinateLength returns the width of one affine coordinate in bytes.
// For secp384r1 this is 384/8 = 48.
func (c Curve) CoordinateLength() int { return c.coordLen }

// String implements fmt.Stringer.
func (c Curve) String() string {
	if c.name == "" {
		return "unknown"
	}
	return c.name
}

// params returns the stdlib elliptic.Curve backing this descriptor.
func (c Curve) params() elliptic.Curve {
	switch c.name {
	case "secp384r1":
		return elliptic.P384()
	default:
		return nil
	}
}

// GenerateKeyPair generates a fresh key pair on this curve.
func (c Curve) GenerateKeyPair() (*ecdsa.PrivateKey, error) {
	p := c.params()
	if p == nil {
		return nil, fmt.Errorf("generate key pair: %w: %s", ErrUnsupportedCurve, c)
	}
	key, err := ecdsa.GenerateKey(p, rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate %s key pair: %w", c.name, err)
	}
	return key, nil
}

// IsValidPublicKey reports whether pub belongs to this curve and its point
// satisfies the curve equation. It is the gate every loader passes results
// through before returning them.
func (c Curve) IsValidPublicKey(pub *ecdsa.PublicKey) bool {
	p := c.params()
	if p == nil || pub == nil || pub.Curve != p {
		return false
	}
	return c.IsOnCurve(pub.X, pub.Y)
}

// ForTag resolves a curve by its wire tag.
func ForTag(tag byte) (Curve, error) {
	for _, c := range registry {
		if c.tag == tag {
			return c, nil
		}
	}
	return Curve{}, fmt.Errorf("%w: tag %d", ErrUnsupportedCurve, tag)
}

// ForName resolves a curve by name, case-insensitively. Besides the canonical
// name it accepts the stdlib and SunEC spellings and the OID.
func ForName(name string) (Curve, error) {
	lowered := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := nameAliases[lowered]; ok {
		lowered = canonical
	}
	for _, c := range registry {
		if c.name == lowered {
			return c, nil
		}
	}
	return Curve{}, fmt.Errorf("%w: name %q", ErrUnsupportedCurve, name)
}

// ForOID resolves a curve by its object identifier.
func ForOID(oid string) (Curve, error) {
	for _, c := range registry {
		if c.oid == oid {
			return c, nil
		}
	}
	return Curve{}, fmt.Errorf("%w: oid %q", ErrUnsupportedCurve, oid)
}

// ForKey resolves the registered curve a public key lives on. Keys on
// curves outside the registry fail with ErrUnsupportedCurve.
func ForKey(pub *ecdsa.PublicKey) (Curve, error) {
	if pub == nil || pub.Curve == nil {
		return Curve{}, fmt.Errorf("%w: nil public key", ErrUnsupportedCurve)
	}
	return ForName(pub.Curve.Params().Name)
}

// Names returns the canonical names of all registered curves.
func Names() []string {
	names := make([]string, 0, len(registry))
	for _, c := range registry {
		names = append(names, c.name)
	}
	return names
}
