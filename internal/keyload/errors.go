// Copyright (c) 2026 Curvekey Team
// Curvekey - EC key material toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package keyload

import "errors"

var (
	// ErrKeyNotFound means the input contained no usable key: no matching
	// PEM block, or no entries on a token.
	ErrKeyNotFound = errors.New("key not found")

	// ErrCertificateParse means a certificate blob was structurally invalid.
	ErrCertificateParse = errors.New("certificate parse error")
)
