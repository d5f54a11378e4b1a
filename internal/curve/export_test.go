// Copyright (c) 2026 Curvekey Team
// Curvekey - EC key material toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package curve

// UnsignedCoordinate exposes the coordinate renderer for white-box tests.
var UnsignedCoordinate = unsignedCoordinate
