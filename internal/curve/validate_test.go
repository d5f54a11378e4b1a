// Copyright (c) 2026 Curvekey Team
// Curvekey - EC key material toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package curve_test

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/toeirei/curvekey/internal/curve"
)

func TestIsOnCurve_GeneratedKey(t *testing.T) {
	key, err := curve.Secp384r1.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	if !curve.Secp384r1.IsOnCurve(key.PublicKey.X, key.PublicKey.Y) {
		t.Fatalf("generated point reported off-curve")
	}
}

func TestIsOnCurve_RejectsDegenerateInputs(t *testing.T) {
	key, err := curve.Secp384r1.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	p := elliptic.P384().Params().P

	tests := []struct {
		name string
		x, y *big.Int
	}{
		{"point at infinity", big.NewInt(0), big.NewInt(0)},
		{"nil x", nil, key.PublicKey.Y},
		{"nil y", key.PublicKey.X, nil},
		{"not on curve", big.NewInt(1), big.NewInt(1)},
		{"x equals field prime", new(big.Int).Set(p), key.PublicKey.Y},
		{"y above field prime", key.PublicKey.X, new(big.Int).Add(key.PublicKey.Y, p)},
		{"negative x", new(big.Int).Neg(key.PublicKey.X), key.PublicKey.Y},
		{"y off by one", key.PublicKey.X, new(big.Int).Add(key.PublicKey.Y, big.NewInt(1))},
	}
	for _, tt := range tests {
		if curve.Secp384r1.IsOnCurve(tt.x, tt.y) {
			t.Fatalf("%s: reported on-curve", tt.name)
		}
	}
}

// Adding the field prime to a coordinate yields the same residue; the
// validator must still reject it instead of reducing caller-supplied values.
func TestIsOnCurve_RejectsUnreducedCoordinates(t *testing.T) {
	key, err := curve.Secp384r1.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	p := elliptic.P384().Params().P
	shifted := new(big.Int).Add(key.PublicKey.X, p)
	if curve.Secp384r1.IsOnCurve(shifted, key.PublicKey.Y) {
		t.Fatalf("out-of-range coordinate accepted")
	}
}

func TestIsValidPublicKey_WrongCurve(t *testing.T) {
	p256, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("generate P-256 key: %v", err)
	}
	if curve.Secp384r1.IsValidPublicKey(&p256.PublicKey) {
		t.Fatalf("P-256 key accepted as secp384r1")
	}
	if curve.Secp384r1.IsValidPublicKey(nil) {
		t.Fatalf("nil key accepted")
	}
}
