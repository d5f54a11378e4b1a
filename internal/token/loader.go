// Copyright (c) 2026 Curvekey Team
// Curvekey - EC key material toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package token

import (
	"crypto/x509"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/miekg/pkcs11"

	"github.com/toeirei/curvekey/internal/i18n"
	"github.com/toeirei/curvekey/internal/keyload"
	"github.com/toeirei/curvekey/internal/keymaterial"
	"github.com/toeirei/curvekey/internal/logging"
	"github.com/toeirei/curvekey/internal/pin"
	"github.com/toeirei/curvekey/util/mapst"
	"github.com/toeirei/curvekey/util/slicest"
)

// State is the loader's position in the token access sequence.
type State int

const (
	StateUninitialized State = iota
	StateProviderConfigured
	StateSessionOpen
	StateKeySelected
	StateLoaded
	StateFailed
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateProviderConfigured:
		return "provider-configured"
	case StateSessionOpen:
		return "session-open"
	case StateKeySelected:
		return "key-selected"
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Entry describes one alias found on the token. Entries are transient: they
// exist for selection diagnostics and are discarded afterwards.
type Entry struct {
	Alias          string
	HasPrivateKey  bool
	HasCertificate bool
}

// findBatchSize bounds one C_FindObjects call; enumeration loops until the
// token returns an empty batch.
const findBatchSize = 16

// Loader walks the token access state machine. It is single-use: after a
// failure or a completed load, create a new Loader. Not safe for concurrent
// use.
type Loader struct {
	provider *Provider
	session  pkcs11.SessionHandle
	state    State
	alias    string
	loggedIn bool
}

// NewLoader returns a loader in the Uninitialized state.
func NewLoader() *Loader {
	return &Loader{state: StateUninitialized}
}

// State returns the loader's current state.
func (l *Loader) State() State { return l.state }

// Alias returns the selected alias, empty before KeySelected.
func (l *Loader) Alias() string { return l.alias }

func (l *Loader) fail(err error) error {
	l.state = StateFailed
	return err
}

func (l *Loader) guard(op string, want State) error {
	if l.state != want {
		return l.fail(fmt.Errorf("%s: loader is %s, want %s", op, l.state, want))
	}
	return nil
}

// Configure binds the loader to the process-wide provider, initializing it
// on first use.
func (l *Loader) Configure(cfg Config) error {
	if err := l.guard("configure", StateUninitialized); err != nil {
		return err
	}
	provider, err := Configure(cfg)
	if err != nil {
		return l.fail(err)
	}
	l.provider = provider
	l.state = StateProviderConfigured
	return nil
}

// OpenSession opens a session on the provider's slot and logs in. The PIN
// strategy is invoked only here, when the token actually demands a PIN.
func (l *Loader) OpenSession(strategy pin.Strategy) error {
	if err := l.guard("open session", StateProviderConfigured); err != nil {
		return err
	}
	module := l.provider.module

	session, err := module.OpenSession(l.provider.slot, pkcs11.CKF_SERIAL_SESSION)
	if err != nil {
		return l.fail(fmt.Errorf("open session on slot %d: %w", l.provider.cfg.Slot, err))
	}

	secret, err := strategy.Provide(i18n.T("token.pin_prompt", l.provider.cfg.Slot+1))
	if err != nil {
		_ = module.CloseSession(session)
		return l.fail(fmt.Errorf("acquire PIN: %w", err))
	}
	defer secret.Zero()

	err = secret.Use(func(raw []byte) error {
		return module.Login(session, pkcs11.CKU_USER, string(raw))
	})
	if err != nil && !errors.Is(err, pkcs11.Error(pkcs11.CKR_USER_ALREADY_LOGGED_IN)) {
		_ = module.CloseSession(session)
		return l.fail(fmt.Errorf("token login: %w", err))
	}

	l.session = session
	l.loggedIn = true
	l.state = StateSessionOpen
	return nil
}

// Entries enumerates the aliases present on the token, sorted for stable
// diagnostics.
func (l *Loader) Entries() ([]Entry, error) {
	if l.state != StateSessionOpen && l.state != StateKeySelected {
		return nil, fmt.Errorf("list entries: loader is %s, want %s", l.state, StateSessionOpen)
	}

	byAlias := make(map[string]*Entry)
	collect := func(class uint, mark func(*Entry)) error {
		handles, err := l.findAll(attrTemplate(class, ""))
		if err != nil {
			return err
		}
		for _, handle := range handles {
			alias, err := l.objectLabel(handle)
			if err != nil {
				return err
			}
			entry, ok := byAlias[alias]
			if !ok {
				entry = &Entry{Alias: alias}
				byAlias[alias] = entry
			}
			mark(entry)
		}
		return nil
	}

	if err := collect(pkcs11.CKO_PRIVATE_KEY, func(e *Entry) { e.HasPrivateKey = true }); err != nil {
		return nil, fmt.Errorf("enumerate private keys: %w", err)
	}
	if err := collect(pkcs11.CKO_CERTIFICATE, func(e *Entry) { e.HasCertificate = true }); err != nil {
		return nil, fmt.Errorf("enumerate certificates: %w", err)
	}

	entries := slicest.Map(mapst.Values(byAlias), func(e *Entry) Entry { return *e })
	sort.Slice(entries, func(i, j int) bool { return entries[i].Alias < entries[j].Alias })
	return entries, nil
}

// SelectKey requires the token to hold exactly one alias and selects it.
// Zero entries fail with keyload.ErrKeyNotFound, more than one with
// ErrAmbiguousTokenState; both name the aliases involved.
func (l *Loader) SelectKey() error {
	if err := l.guard("select key", StateSessionOpen); err != nil {
		return err
	}
	entries, err := l.Entries()
	if err != nil {
		return l.fail(err)
	}

	switch len(entries) {
	case 0:
		return l.fail(fmt.Errorf("token holds no entries: %w", keyload.ErrKeyNotFound))
	case 1:
		l.alias = entries[0].Alias
		l.state = StateKeySelected
		logging.Debugf("selected token entry %q", l.alias)
		return nil
	default:
		aliases := slicest.Map(entries, func(e Entry) string { return e.Alias })
		return l.fail(fmt.Errorf("%w: token holds %d entries: %s",
			ErrAmbiguousTokenState, len(entries), strings.Join(aliases, ", ")))
	}
}

// Load retrieves the private key handle and certificate for the selected
// alias. The certificate's public key is curve-validated before the pair is
// returned; the private half stays on the token behind a handle.
func (l *Loader) Load() (keymaterial.KeyPair, *x509.Certificate, error) {
	if err := l.guard("load", StateKeySelected); err != nil {
		return keymaterial.KeyPair{}, nil, err
	}

	keyHandles, err := l.findAll(attrTemplate(pkcs11.CKO_PRIVATE_KEY, l.alias))
	if err != nil {
		return keymaterial.KeyPair{}, nil, l.fail(fmt.Errorf("find private key %q: %w", l.alias, err))
	}
	if len(keyHandles) == 0 {
		return keymaterial.KeyPair{}, nil, l.fail(fmt.Errorf("private key %q: %w", l.alias, keyload.ErrKeyNotFound))
	}

	certHandles, err := l.findAll(attrTemplate(pkcs11.CKO_CERTIFICATE, l.alias))
	if err != nil {
		return keymaterial.KeyPair{}, nil, l.fail(fmt.Errorf("find certificate %q: %w", l.alias, err))
	}
	if len(certHandles) == 0 {
		return keymaterial.KeyPair{}, nil, l.fail(fmt.Errorf("certificate %q: %w", l.alias, keyload.ErrKeyNotFound))
	}

	attrs, err := l.provider.module.GetAttributeValue(l.session, certHandles[0],
		[]*pkcs11.Attribute{pkcs11.NewAttribute(pkcs11.CKA_VALUE, nil)})
	if err != nil {
		return keymaterial.KeyPair{}, nil, l.fail(fmt.Errorf("read certificate %q: %w", l.alias, err))
	}

	cert, pub, err := keyload.CertificateKey(attrs[0].Value)
	if err != nil {
		return keymaterial.KeyPair{}, nil, l.fail(fmt.Errorf("token certificate %q: %w", l.alias, err))
	}

	private := &PrivateKey{
		module:  l.provider.module,
		session: l.session,
		handle:  keyHandles[0],
		pub:     pub,
		alias:   l.alias,
	}
	l.state = StateLoaded
	logging.Infof("loaded key %q from token", l.alias)
	return keymaterial.KeyPair{Private: private, Public: pub}, cert, nil
}

// Close logs out and closes the session. The provider itself stays
// configured; it is process-wide (see CloseProvider).
func (l *Loader) Close() {
	if l.session == 0 || l.provider == nil {
		return
	}
	module := l.provider.module
	if l.loggedIn {
		if err := module.Logout(l.session); err != nil {
			logging.Debugf("token logout: %v", err)
		}
	}
	if err := module.CloseSession(l.session); err != nil {
		logging.Debugf("close token session: %v", err)
	}
	l.session = 0
}

// attrTemplate builds a find template for an object class, optionally
// narrowed to one alias.
func attrTemplate(class uint, alias string) []*pkcs11.Attribute {
	template := []*pkcs11.Attribute{pkcs11.NewAttribute(pkcs11.CKA_CLASS, class)}
	if alias != "" {
		template = append(template, pkcs11.NewAttribute(pkcs11.CKA_LABEL, alias))
	}
	return template
}

func (l *Loader) findAll(template []*pkcs11.Attribute) ([]pkcs11.ObjectHandle, error) {
	module := l.provider.module
	if err := module.FindObjectsInit(l.session, template); err != nil {
		return nil, err
	}
	var all []pkcs11.ObjectHandle
	for {
		batch, _, err := module.FindObjects(l.session, findBatchSize)
		if err != nil {
			_ = module.FindObjectsFinal(l.session)
			return nil, err
		}
		if len(batch) == 0 {
			break
		}
		all = append(all, batch...)
	}
	return all, module.FindObjectsFinal(l.session)
}

func (l *Loader) objectLabel(handle pkcs11.ObjectHandle) (string, error) {
	attrs, err := l.provider.module.GetAttributeValue(l.session, handle,
		[]*pkcs11.Attribute{pkcs11.NewAttribute(pkcs11.CKA_LABEL, nil)})
	if err != nil {
		return "", err
	}
	return string(attrs[0].Value), nil
}

// LoadKeyPair runs the whole state machine: configure, open a session with
// the PIN strategy, require exactly one entry, load it. The session is
// closed before returning; the returned private key handle remains valid
// only for operations that do not need the session — callers performing
// signing should drive the Loader directly and Close it when done.
func LoadKeyPair(cfg Config, strategy pin.Strategy) (keymaterial.KeyPair, *x509.Certificate, error) {
	l := NewLoader()
	if err := l.Configure(cfg); err != nil {
		return keymaterial.KeyPair{}, nil, err
	}
	if err := l.OpenSession(strategy); err != nil {
		return keymaterial.KeyPair{}, nil, err
	}
	defer l.Close()
	if err := l.SelectKey(); err != nil {
		return keymaterial.KeyPair{}, nil, err
	}
	return l.Load()
}
