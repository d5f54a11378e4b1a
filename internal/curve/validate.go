// Copyright (c) 2026 Curvekey Team
// Curvekey - EC key material toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package curve

import "math/big"

// IsOnCurve reports whether (x, y) satisfies the curve's short-Weierstrass
// equation y² ≡ x³ - 3x + b (mod p). Coordinates outside [0, p) and the
// point at infinity are rejected rather than reduced, so callers cannot
// smuggle an out-of-range coordinate past validation. This is a pure
// function; it returns false instead of erroring for every bad input.
func (c Curve) IsOnCurve(x, y *big.Int) bool {
	ec := c.params()
	if ec == nil || x == nil || y == nil {
		return false
	}
	params := ec.Params()

	// The point at infinity has no affine representation; (0, 0) is its
	// conventional stand-in and is never a valid public key.
	if x.Sign() == 0 && y.Sign() == 0 {
		return false
	}
	if x.Sign() < 0 || y.Sign() < 0 || x.Cmp(params.P) >= 0 || y.Cmp(params.P) >= 0 {
		return false
	}

	// y² mod p
	lhs := new(big.Int).Mul(y, y)
	lhs.Mod(lhs, params.P)

	// x³ - 3x + b mod p
	rhs := new(big.Int).Mul(x, x)
	rhs.Mul(rhs, x)
	threeX := new(big.Int).Lsh(x, 1)
	threeX.Add(threeX, x)
	rhs.Sub(rhs, threeX)
	rhs.Add(rhs, params.B)
	rhs.Mod(rhs, params.P)

	return lhs.Cmp(rhs) == 0
}
