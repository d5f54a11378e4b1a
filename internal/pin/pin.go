// Copyright (c) 2026 Curvekey Team
// Curvekey - EC key material toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

// Package pin abstracts how a token PIN is obtained: pre-supplied, read from
// the terminal, asked for in an interactive prompt, or refused outright when
// no interactive surface exists. Token code depends only on the Strategy
// interface and stays free of any UI concern.
package pin

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/toeirei/curvekey/internal/security"
)

var (
	// ErrNoInteractiveSurface means a PIN was required but there is no way
	// to ask the user for one.
	ErrNoInteractiveSurface = errors.New("no interactive surface available for PIN entry")

	// ErrCancelled means the user dismissed the PIN prompt.
	ErrCancelled = errors.New("PIN entry cancelled")
)

// Strategy produces a PIN when the token demands one. Implementations may
// block on user input; they are invoked lazily, never up front.
type Strategy interface {
	Provide(prompt string) (security.Secret, error)
}

// Static returns a strategy that always hands out the given secret without
// any interaction.
func Static(secret security.Secret) Strategy {
	return staticStrategy{secret: secret}
}

type staticStrategy struct {
	secret security.Secret
}

func (s staticStrategy) Provide(string) (security.Secret, error) {
	return s.secret, nil
}

// Terminal reads the PIN from stdin with echo disabled. It only works when
// stdin is a terminal; otherwise it reports ErrNoInteractiveSurface so a
// chain can fall through to the next strategy.
type Terminal struct{}

// Provide implements Strategy.
func (Terminal) Provide(prompt string) (security.Secret, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("stdin is not a terminal: %w", ErrNoInteractiveSurface)
	}
	fmt.Fprint(os.Stderr, prompt+" ")
	raw, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("read PIN from terminal: %w", err)
	}
	secret := security.FromBytes(raw)
	for i := range raw {
		raw[i] = 0
	}
	return secret, nil
}

// None always fails. It terminates a fallback chain and is the strategy of
// choice for non-interactive contexts where a missing PIN must be an error.
type None struct{}

// Provide implements Strategy.
func (None) Provide(string) (security.Secret, error) {
	return nil, ErrNoInteractiveSurface
}

// Chain tries each strategy in order, moving on whenever one reports
// ErrNoInteractiveSurface. Any other outcome (success, cancellation, read
// error) is final.
type Chain []Strategy

// Provide implements Strategy.
func (c Chain) Provide(prompt string) (security.Secret, error) {
	for _, s := range c {
		secret, err := s.Provide(prompt)
		if errors.Is(err, ErrNoInteractiveSurface) {
			continue
		}
		return secret, err
	}
	return nil, ErrNoInteractiveSurface
}

// Default is the standard interactive fallback order: plain terminal read,
// then the full-screen prompt, then failure.
func Default() Strategy {
	return Chain{Terminal{}, Prompt{}, None{}}
}
