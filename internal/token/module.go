// Copyright (c) 2026 Curvekey Team
// Curvekey - EC key material toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

// Package token loads a key pair and certificate from a PKCS#11 hardware
// token. Access is modeled as a short state machine (Uninitialized →
// ProviderConfigured → SessionOpen → KeySelected → Loaded) with a terminal
// Failed state. The provider is process-wide and configured once; see
// Configure. The package is not safe for concurrent use against the same
// provider — callers must serialize.
package token

import (
	"fmt"

	"github.com/miekg/pkcs11"
)

// Module is the subset of the PKCS#11 interface the loader needs.
// *pkcs11.Ctx satisfies it; tests substitute a deterministic fake.
type Module interface {
	Initialize() error
	Finalize() error
	Destroy()
	GetSlotList(tokenPresent bool) ([]uint, error)
	OpenSession(slotID uint, flags uint) (pkcs11.SessionHandle, error)
	CloseSession(sh pkcs11.SessionHandle) error
	Login(sh pkcs11.SessionHandle, userType uint, pin string) error
	Logout(sh pkcs11.SessionHandle) error
	FindObjectsInit(sh pkcs11.SessionHandle, temp []*pkcs11.Attribute) error
	FindObjects(sh pkcs11.SessionHandle, max int) ([]pkcs11.ObjectHandle, bool, error)
	FindObjectsFinal(sh pkcs11.SessionHandle) error
	GetAttributeValue(sh pkcs11.SessionHandle, o pkcs11.ObjectHandle, a []*pkcs11.Attribute) ([]*pkcs11.Attribute, error)
	SignInit(sh pkcs11.SessionHandle, m []*pkcs11.Mechanism, o pkcs11.ObjectHandle) error
	Sign(sh pkcs11.SessionHandle, message []byte) ([]byte, error)
}

// newModule loads the PKCS#11 library at the given path. Tests swap this out
// to run against a fake token.
var newModule = func(library string) (Module, error) {
	ctx := pkcs11.New(library)
	if ctx == nil {
		return nil, fmt.Errorf("%w: cannot load PKCS#11 library %q", ErrProviderConfiguration, library)
	}
	return ctx, nil
}
