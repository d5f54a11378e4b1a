// Copyright (c) 2026 Curvekey Team
// Curvekey - EC key material toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package token

import "errors"

var (
	// ErrAmbiguousTokenState means the token holds more than one entry and
	// the loader cannot decide which one is "the" key. The wrapped message
	// lists the offending aliases.
	ErrAmbiguousTokenState = errors.New("ambiguous token state")

	// ErrProviderConfiguration means the PKCS#11 provider failed to
	// initialize, or a second configuration conflicted with the one already
	// active. Provider identity is process-global; once this is reported the
	// provider is unusable for the rest of the process lifetime.
	ErrProviderConfiguration = errors.New("token provider configuration error")
)
