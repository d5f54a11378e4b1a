// Copyright (c) 2026 Curvekey Team
// Curvekey - EC key material toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package curve

import (
	"crypto/ecdsa"
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/toeirei/curvekey/internal/logging"
)

// wireTagUncompressed is the leading byte of an uncompressed point in the
// TLS 1.3 encoding (RFC 8446 section 4.2.8.2). Compressed and hybrid forms
// are not supported.
const wireTagUncompressed = 0x04

// EncodePoint encodes pub's point in the uncompressed wire format:
// 0x04 || X || Y with both coordinates rendered big-endian unsigned at the
// curve's fixed coordinate width. The curve is resolved through the registry.
func EncodePoint(pub *ecdsa.PublicKey) ([]byte, error) {
	c, err := ForKey(pub)
	if err != nil {
		return nil, err
	}
	return c.EncodePoint(pub)
}

// EncodePoint encodes pub's point on this curve. Keys from another curve
// fail with ErrWrongCurve.
func (c Curve) EncodePoint(pub *ecdsa.PublicKey) ([]byte, error) {
	if !c.IsValidPublicKey(pub) {
		return nil, fmt.Errorf("encode point: %w: not a valid %s key", ErrWrongCurve, c)
	}
	x, err := unsignedCoordinate(pub.X, c.coordLen)
	if err != nil {
		return nil, fmt.Errorf("encode point: x coordinate: %w", err)
	}
	y, err := unsignedCoordinate(pub.Y, c.coordLen)
	if err != nil {
		return nil, fmt.Errorf("encode point: y coordinate: %w", err)
	}

	encoded := make([]byte, 0, 1+2*c.coordLen)
	encoded = append(encoded, wireTagUncompressed)
	encoded = append(encoded, x...)
	encoded = append(encoded, y...)
	return encoded, nil
}

// DecodeFromWire decodes an uncompressed point from its wire encoding and
// validates it against the curve equation. Only validated points are ever
// returned; downstream code relies on that.
func (c Curve) DecodeFromWire(encoded []byte) (*ecdsa.PublicKey, error) {
	p := c.params()
	if p == nil {
		return nil, fmt.Errorf("decode point: %w: %s", ErrUnsupportedCurve, c)
	}
	want := 2*c.coordLen + 1
	if len(encoded) != want {
		logging.Debugf("rejecting point encoding with length %d (want %d): %s",
			len(encoded), want, hex.EncodeToString(encoded))
		return nil, fmt.Errorf("%w: length %d, want %d", ErrMalformedEncoding, len(encoded), want)
	}
	if encoded[0] != wireTagUncompressed {
		logging.Debugf("rejecting point encoding with tag %#02x: %s",
			encoded[0], hex.EncodeToString(encoded))
		return nil, fmt.Errorf("%w: tag %#02x, only uncompressed (0x04) points are supported",
			ErrMalformedEncoding, encoded[0])
	}

	x := new(big.Int).SetBytes(encoded[1 : 1+c.coordLen])
	y := new(big.Int).SetBytes(encoded[1+c.coordLen:])
	if !c.IsOnCurve(x, y) {
		return nil, fmt.Errorf("%w: point is not on %s", ErrInvalidKey, c)
	}
	return &ecdsa.PublicKey{Curve: p, X: x, Y: y}, nil
}

// unsignedCoordinate renders n as a big-endian unsigned integer of exactly
// size bytes. Short representations are left-zero-padded; a single redundant
// leading zero byte (a sign artifact of two's-complement renderings) is
// stripped. Anything longer is an internal consistency fault and is reported
// rather than truncated.
func unsignedCoordinate(n *big.Int, size int) ([]byte, error) {
	b := n.Bytes()
	if len(b) == size+1 && b[0] == 0 {
		b = b[1:]
	}
	if len(b) > size {
		return nil, fmt.Errorf("coordinate is %d bytes, exceeds curve width %d", len(b), size)
	}
	out := make([]byte, size)
	copy(out[size-len(b):], b)
	return out, nil
}
