// Copyright (c) 2026 Curvekey Team
// Curvekey - EC key material toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package curve

import "errors"

// Sentinel errors for curve resolution and wire decoding. Callers match them
// with errors.Is; the wrapped messages carry the diagnostic detail.
var (
	// ErrUnsupportedCurve means a tag, name or OID did not resolve to a
	// registered curve.
	ErrUnsupportedCurve = errors.New("unsupported curve")

	// ErrMalformedEncoding means wire bytes had the wrong length or tag and
	// were rejected before any coordinate was decoded.
	ErrMalformedEncoding = errors.New("malformed point encoding")

	// ErrInvalidKey means a structurally well-formed point failed the curve
	// equation, or a key's point was otherwise mathematically unusable.
	ErrInvalidKey = errors.New("invalid public key")

	// ErrWrongCurve means a parsed key is on a different curve than the one
	// the caller asked for.
	ErrWrongCurve = errors.New("key is on the wrong curve")
)
