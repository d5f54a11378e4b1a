// Copyright (c) 2026 Curvekey Team
// Curvekey - EC key material toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package pin_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/toeirei/curvekey/internal/pin"
	"github.com/toeirei/curvekey/internal/security"
)

func TestStatic(t *testing.T) {
	s := pin.Static(security.FromString("1234"))
	got, err := s.Provide("PIN1:")
	if err != nil {
		t.Fatalf("Static.Provide: %v", err)
	}
	if !bytes.Equal(got.Bytes(), []byte("1234")) {
		t.Fatalf("unexpected secret from static strategy")
	}
}

func TestNone(t *testing.T) {
	_, err := pin.None{}.Provide("PIN1:")
	if !errors.Is(err, pin.ErrNoInteractiveSurface) {
		t.Fatalf("expected ErrNoInteractiveSurface, got %v", err)
	}
}

// fakeStrategy is a configurable strategy for chain tests.
type fakeStrategy struct {
	secret security.Secret
	err    error
	calls  int
}

func (f *fakeStrategy) Provide(string) (security.Secret, error) {
	f.calls++
	return f.secret, f.err
}

func TestChain_FallsThroughOnNoSurface(t *testing.T) {
	first := &fakeStrategy{err: pin.ErrNoInteractiveSurface}
	second := &fakeStrategy{secret: security.FromString("9876")}
	got, err := pin.Chain{first, second}.Provide("PIN1:")
	if err != nil {
		t.Fatalf("Chain.Provide: %v", err)
	}
	if first.calls != 1 || second.calls != 1 {
		t.Fatalf("chain call counts: first=%d second=%d", first.calls, second.calls)
	}
	if !bytes.Equal(got.Bytes(), []byte("9876")) {
		t.Fatalf("unexpected secret from chain")
	}
}

func TestChain_StopsOnCancellation(t *testing.T) {
	first := &fakeStrategy{err: pin.ErrCancelled}
	second := &fakeStrategy{secret: security.FromString("never")}
	_, err := pin.Chain{first, second}.Provide("PIN1:")
	if !errors.Is(err, pin.ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
	if second.calls != 0 {
		t.Fatalf("chain did not stop on cancellation")
	}
}

func TestChain_ExhaustedReportsNoSurface(t *testing.T) {
	_, err := pin.Chain{pin.None{}, pin.None{}}.Provide("PIN1:")
	if !errors.Is(err, pin.ErrNoInteractiveSurface) {
		t.Fatalf("expected ErrNoInteractiveSurface, got %v", err)
	}
}
