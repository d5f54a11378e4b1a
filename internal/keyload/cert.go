// Copyright (c) 2026 Curvekey Team
// Curvekey - EC key material toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package keyload

import (
	"crypto/ecdsa"
	"crypto/x509"
	"fmt"

	"github.com/toeirei/curvekey/internal/curve"
)

// CertificateKey parses one DER certificate and returns it together with its
// validated EC public key. Only the leaf key is extracted; chain, expiry and
// revocation are deliberately not evaluated here — callers needing trust
// establishment must layer that separately.
func CertificateKey(der []byte) (*x509.Certificate, *ecdsa.PublicKey, error) {
	cert, err := x509.ParseCertificate(der)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrCertificateParse, err)
	}
	pub, ok := cert.PublicKey.(*ecdsa.PublicKey)
	if !ok {
		return nil, nil, fmt.Errorf("certificate %q: %w: not an EC key (%T)",
			cert.Subject, curve.ErrWrongCurve, cert.PublicKey)
	}
	checked, err := checkedPublicKey(pub)
	if err != nil {
		return nil, nil, fmt.Errorf("certificate %q: %w", cert.Subject, err)
	}
	return cert, checked, nil
}

// PublicKeysFromCerts extracts the leaf public key from each DER certificate
// blob. An empty input yields an empty result, not an error.
func PublicKeysFromCerts(ders [][]byte) ([]*ecdsa.PublicKey, error) {
	keys := make([]*ecdsa.PublicKey, 0, len(ders))
	for i, der := range ders {
		_, pub, err := CertificateKey(der)
		if err != nil {
			return nil, fmt.Errorf("certificate %d: %w", i, err)
		}
		keys = append(keys, pub)
	}
	return keys, nil
}
