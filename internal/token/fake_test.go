// Copyright (c) 2026 Curvekey Team
// Curvekey - EC key material toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package token

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/miekg/pkcs11"
)

// fakeObject is one object on the fake token.
type fakeObject struct {
	class uint
	label string
	value []byte // served as CKA_VALUE
}

// fakeModule is a minimal, configurable in-memory PKCS#11 module. Object
// handles are 1-based indexes into objects.
type fakeModule struct {
	slots   []uint
	objects []fakeObject

	initErr  error
	loginErr error
	signOut  []byte

	initialized bool
	finalized   bool
	sessions    int
	lastPIN     string
	loggedIn    bool

	findMatches []pkcs11.ObjectHandle
	findServed  bool

	signHandle pkcs11.ObjectHandle
}

func (f *fakeModule) Initialize() error {
	if f.initErr != nil {
		return f.initErr
	}
	f.initialized = true
	return nil
}

func (f *fakeModule) Finalize() error {
	f.finalized = true
	return nil
}

func (f *fakeModule) Destroy() {}

func (f *fakeModule) GetSlotList(bool) ([]uint, error) {
	return f.slots, nil
}

func (f *fakeModule) OpenSession(uint, uint) (pkcs11.SessionHandle, error) {
	f.sessions++
	return pkcs11.SessionHandle(f.sessions), nil
}

func (f *fakeModule) CloseSession(pkcs11.SessionHandle) error {
	f.sessions--
	return nil
}

func (f *fakeModule) Login(_ pkcs11.SessionHandle, _ uint, pin string) error {
	if f.loginErr != nil {
		return f.loginErr
	}
	f.lastPIN = pin
	f.loggedIn = true
	return nil
}

func (f *fakeModule) Logout(pkcs11.SessionHandle) error {
	f.loggedIn = false
	return nil
}

func (f *fakeModule) FindObjectsInit(_ pkcs11.SessionHandle, template []*pkcs11.Attribute) error {
	f.findMatches = nil
	f.findServed = false
	for i, obj := range f.objects {
		if f.matches(obj, template) {
			f.findMatches = append(f.findMatches, pkcs11.ObjectHandle(i+1))
		}
	}
	return nil
}

func (f *fakeModule) FindObjects(pkcs11.SessionHandle, int) ([]pkcs11.ObjectHandle, bool, error) {
	if f.findServed {
		return nil, false, nil
	}
	f.findServed = true
	return f.findMatches, false, nil
}

func (f *fakeModule) FindObjectsFinal(pkcs11.SessionHandle) error {
	f.findMatches = nil
	return nil
}

func (f *fakeModule) GetAttributeValue(_ pkcs11.SessionHandle, o pkcs11.ObjectHandle, attrs []*pkcs11.Attribute) ([]*pkcs11.Attribute, error) {
	idx := int(o) - 1
	if idx < 0 || idx >= len(f.objects) {
		return nil, errors.New("fake: unknown object handle")
	}
	obj := f.objects[idx]
	out := make([]*pkcs11.Attribute, 0, len(attrs))
	for _, attr := range attrs {
		switch attr.Type {
		case pkcs11.CKA_LABEL:
			out = append(out, pkcs11.NewAttribute(pkcs11.CKA_LABEL, obj.label))
		case pkcs11.CKA_VALUE:
			out = append(out, pkcs11.NewAttribute(pkcs11.CKA_VALUE, obj.value))
		default:
			return nil, fmt.Errorf("fake: unsupported attribute %d", attr.Type)
		}
	}
	return out, nil
}

func (f *fakeModule) SignInit(_ pkcs11.SessionHandle, _ []*pkcs11.Mechanism, o pkcs11.ObjectHandle) error {
	f.signHandle = o
	return nil
}

func (f *fakeModule) Sign(pkcs11.SessionHandle, []byte) ([]byte, error) {
	return f.signOut, nil
}

// matches compares a find template against an object using the library's own
// attribute encoding.
func (f *fakeModule) matches(obj fakeObject, template []*pkcs11.Attribute) bool {
	for _, attr := range template {
		switch attr.Type {
		case pkcs11.CKA_CLASS:
			want := pkcs11.NewAttribute(pkcs11.CKA_CLASS, obj.class)
			if !bytes.Equal(attr.Value, want.Value) {
				return false
			}
		case pkcs11.CKA_LABEL:
			if string(attr.Value) != obj.label {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// withFakeModule swaps the module constructor and resets provider state,
// restoring both on cleanup.
func withFakeModule(t testingT, fake *fakeModule) {
	prev := newModule
	newModule = func(string) (Module, error) { return fake, nil }
	CloseProvider()
	t.Cleanup(func() {
		CloseProvider()
		newModule = prev
	})
}

// testingT is the subset of *testing.T used by test helpers.
type testingT interface {
	Cleanup(func())
	Helper()
}
