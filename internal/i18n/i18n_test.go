// Copyright (c) 2026 Curvekey Team
// Curvekey - EC key material toolkit
// This source code is licensed under the MIT license found in the LICENSE file.
package i18n

import (
	"testing"
)

func TestInitSetsLanguage(t *testing.T) {
	Init("en")
	if GetLang() != "en" {
		t.Fatalf("expected lang 'en', got %q", GetLang())
	}
}

func TestT_BasicAndFormatting(t *testing.T) {
	Init("en")

	if got := T("token.pin_prompt", 1); got != "PIN1:" {
		t.Fatalf("unexpected PIN prompt: %q", got)
	}
	if got := T("pubkey.curve", "secp384r1"); got != "Curve: secp384r1" {
		t.Fatalf("unexpected formatted translation: %q", got)
	}

	// switch language to German
	SetLang("de")
	if GetLang() != "de" {
		t.Fatalf("expected lang 'de', got %q", GetLang())
	}
	if got := T("pubkey.curve", "secp384r1"); got != "Kurve: secp384r1" {
		t.Fatalf("expected German translation, got %q", got)
	}
}

func TestT_UnknownIDFallsBackToID(t *testing.T) {
	Init("en")
	if got := T("no.such.message"); got != "no.such.message" {
		t.Fatalf("expected ID fallback, got %q", got)
	}
}
