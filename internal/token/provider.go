// Copyright (c) 2026 Curvekey Team
// Curvekey - EC key material toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package token

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/toeirei/curvekey/internal/logging"
)

// Config identifies a PKCS#11 provider: the token library to load and the
// index into its slot list. An empty Library falls back to the platform's
// standard OpenSC install location; slot 0 is the first slot.
type Config struct {
	Library string
	Slot    int
}

// DefaultLibrary returns the standard OpenSC PKCS#11 library location for
// the current platform.
func DefaultLibrary() string {
	switch runtime.GOOS {
	case "windows":
		return `C:\Windows\SysWOW64\opensc-pkcs11.dll`
	case "darwin":
		return "/usr/local/lib/opensc-pkcs11.so"
	default:
		return "/usr/lib/x86_64-linux-gnu/opensc-pkcs11.so"
	}
}

func (c Config) withDefaults() Config {
	if c.Library == "" {
		c.Library = DefaultLibrary()
	}
	return c
}

// Provider is an initialized PKCS#11 module bound to one slot. There is at
// most one per process.
type Provider struct {
	cfg    Config
	module Module
	slot   uint
}

// Slot returns the resolved slot ID the provider is bound to.
func (p *Provider) Slot() uint { return p.slot }

// Config returns the configuration the provider was created from.
func (p *Provider) Config() Config { return p.cfg }

var (
	providerMu     sync.Mutex
	activeProvider *Provider
)

// Configure initializes the process-wide provider, or returns the existing
// one when called again with the same configuration. Registration is global
// and not safely repeatable, so a second call with a different configuration
// fails with ErrProviderConfiguration instead of re-registering.
func Configure(cfg Config) (*Provider, error) {
	cfg = cfg.withDefaults()

	providerMu.Lock()
	defer providerMu.Unlock()

	if activeProvider != nil {
		if activeProvider.cfg == cfg {
			logging.Debugf("reusing PKCS#11 provider for %q slot %d", cfg.Library, cfg.Slot)
			return activeProvider, nil
		}
		return nil, fmt.Errorf("%w: provider already configured for %q slot %d",
			ErrProviderConfiguration, activeProvider.cfg.Library, activeProvider.cfg.Slot)
	}

	module, err := newModule(cfg.Library)
	if err != nil {
		return nil, err
	}
	if err := module.Initialize(); err != nil {
		module.Destroy()
		return nil, fmt.Errorf("%w: initialize %q: %v", ErrProviderConfiguration, cfg.Library, err)
	}

	slots, err := module.GetSlotList(true)
	if err != nil {
		teardown(module)
		return nil, fmt.Errorf("%w: list slots: %v", ErrProviderConfiguration, err)
	}
	if len(slots) == 0 {
		teardown(module)
		return nil, fmt.Errorf("%w: no token present", ErrProviderConfiguration)
	}
	if cfg.Slot < 0 || cfg.Slot >= len(slots) {
		teardown(module)
		return nil, fmt.Errorf("%w: slot index %d out of range (%d slots)",
			ErrProviderConfiguration, cfg.Slot, len(slots))
	}

	activeProvider = &Provider{cfg: cfg, module: module, slot: slots[cfg.Slot]}
	logging.Debugf("configured PKCS#11 provider %q slot %d (id %d)", cfg.Library, cfg.Slot, slots[cfg.Slot])
	return activeProvider, nil
}

// CloseProvider finalizes and releases the process-wide provider. Intended
// for process shutdown and for tests that need to isolate provider state
// between runs.
func CloseProvider() {
	providerMu.Lock()
	defer providerMu.Unlock()
	if activeProvider == nil {
		return
	}
	teardown(activeProvider.module)
	activeProvider = nil
}

func teardown(m Module) {
	if err := m.Finalize(); err != nil {
		logging.Warnf("finalize PKCS#11 module: %v", err)
	}
	m.Destroy()
}
