// Copyright (c) 2026 Curvekey Team
// Curvekey - EC key material toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package curve_test

import (
	"bytes"
	"errors"
	"math/big"
	"testing"

	"github.com/toeirei/curvekey/internal/curve"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	key, err := curve.Secp384r1.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}

	encoded, err := curve.Secp384r1.EncodePoint(&key.PublicKey)
	if err != nil {
		t.Fatalf("EncodePoint: %v", err)
	}
	if len(encoded) != 97 {
		t.Fatalf("encoded length = %d, want 97", len(encoded))
	}
	if encoded[0] != 0x04 {
		t.Fatalf("encoded tag = %#02x, want 0x04", encoded[0])
	}

	decoded, err := curve.Secp384r1.DecodeFromWire(encoded)
	if err != nil {
		t.Fatalf("DecodeFromWire: %v", err)
	}
	if !decoded.Equal(&key.PublicKey) {
		t.Fatalf("round-tripped key differs from original")
	}
}

func TestEncodePoint_PadsCoordinates(t *testing.T) {
	key, err := curve.Secp384r1.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	encoded, err := curve.EncodePoint(&key.PublicKey)
	if err != nil {
		t.Fatalf("EncodePoint: %v", err)
	}

	wantX := key.PublicKey.X.FillBytes(make([]byte, 48))
	wantY := key.PublicKey.Y.FillBytes(make([]byte, 48))
	if !bytes.Equal(encoded[1:49], wantX) {
		t.Fatalf("x coordinate not left-padded to 48 bytes")
	}
	if !bytes.Equal(encoded[49:], wantY) {
		t.Fatalf("y coordinate not left-padded to 48 bytes")
	}
}

func TestUnsignedCoordinate(t *testing.T) {
	tests := []struct {
		name    string
		value   *big.Int
		size    int
		want    []byte
		wantErr bool
	}{
		{name: "short value left-padded", value: big.NewInt(0x01ff), size: 4, want: []byte{0, 0, 1, 0xff}},
		{name: "exact width unchanged", value: big.NewInt(0x01020304), size: 4, want: []byte{1, 2, 3, 4}},
		{name: "zero renders as zeros", value: big.NewInt(0), size: 3, want: []byte{0, 0, 0}},
		{name: "overlong reported", value: big.NewInt(0x0102030405), size: 4, wantErr: true},
	}
	for _, tt := range tests {
		got, err := curve.UnsignedCoordinate(tt.value, tt.size)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("%s: expected error, got %x", tt.name, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.name, err)
		}
		if !bytes.Equal(got, tt.want) {
			t.Fatalf("%s: got %x, want %x", tt.name, got, tt.want)
		}
	}
}

func TestDecodeFromWire_RejectsWrongLength(t *testing.T) {
	for _, n := range []int{0, 1, 48, 96, 98, 194} {
		buf := make([]byte, n)
		if n > 0 {
			buf[0] = 0x04
		}
		_, err := curve.Secp384r1.DecodeFromWire(buf)
		if !errors.Is(err, curve.ErrMalformedEncoding) {
			t.Fatalf("length %d: expected ErrMalformedEncoding, got %v", n, err)
		}
	}
}

func TestDecodeFromWire_RejectsWrongTag(t *testing.T) {
	key, err := curve.Secp384r1.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	encoded, err := curve.Secp384r1.EncodePoint(&key.PublicKey)
	if err != nil {
		t.Fatalf("EncodePoint: %v", err)
	}

	// 0x02/0x03 are compressed forms, 0x06/0x07 hybrid; all unsupported.
	for _, tag := range []byte{0x00, 0x02, 0x03, 0x06, 0x07, 0xff} {
		mangled := append([]byte{tag}, encoded[1:]...)
		_, err := curve.Secp384r1.DecodeFromWire(mangled)
		if !errors.Is(err, curve.ErrMalformedEncoding) {
			t.Fatalf("tag %#02x: expected ErrMalformedEncoding, got %v", tag, err)
		}
	}
}

func TestDecodeFromWire_RejectsOffCurvePoint(t *testing.T) {
	buf := make([]byte, 97)
	buf[0] = 0x04
	buf[48] = 1 // x = 1
	buf[96] = 1 // y = 1; (1, 1) does not satisfy the curve equation
	_, err := curve.Secp384r1.DecodeFromWire(buf)
	if !errors.Is(err, curve.ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey, got %v", err)
	}
}

func TestDecodeFromWire_RejectsTamperedCoordinate(t *testing.T) {
	key, err := curve.Secp384r1.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	encoded, err := curve.Secp384r1.EncodePoint(&key.PublicKey)
	if err != nil {
		t.Fatalf("EncodePoint: %v", err)
	}
	encoded[96] ^= 0x01 // flip the lowest bit of y
	_, err = curve.Secp384r1.DecodeFromWire(encoded)
	if !errors.Is(err, curve.ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey for tampered point, got %v", err)
	}
}
