// Copyright (C) 2023 Gobalsky Labs Limited
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package positiontoken

import (
	"errors"
	"sync"

	"code.vegaprotocol.io/synth/libs/num"
	"code.vegaprotocol.io/synth/logging"

	uuid "github.com/satori/go.uuid"
)

const namedLogger = "positiontoken"

var (
	// ErrUnauthorized is returned when the presented capability does not
	// hold the privileged role on the token.
	ErrUnauthorized = errors.New("capability does not hold the privileged token role")
	// ErrTokenPaused is returned on mint/burn attempts while paused.
	ErrTokenPaused = errors.New("position token is paused")
	// ErrTokenNotPaused is returned when unpausing a token that is not paused.
	ErrTokenNotPaused = errors.New("position token is not paused")
	// ErrInsufficientBalance is returned when burning more than the holder owns.
	ErrInsufficientBalance = errors.New("insufficient position token balance")
	// ErrSupplyOverflow is returned when a mint would overflow total supply.
	ErrSupplyOverflow = errors.New("position token supply overflow")
)

// Capability is the opaque credential gating the privileged token
// operations. It is issued at construction and passed explicitly, there is
// no ambient role state.
type Capability string

// Token is a mintable, burnable, pausable balance ledger. The engine holds
// a Capability over the pair of tokens it manages but does not own their
// lifecycle.
type Token struct {
	log    *logging.Logger
	name   string
	symbol string

	mu       sync.Mutex
	paused   bool
	supply   *num.Uint
	balances map[string]*num.Uint
	grants   map[Capability]struct{}
}

// New creates a token and issues its root capability.
func New(log *logging.Logger, cfg Config, name, symbol string) (*Token, Capability) {
	log = log.Named(namedLogger)
	log.SetLevel(cfg.Level.Get())
	root := newCapability()
	return &Token{
		log:      log,
		name:     name,
		symbol:   symbol,
		supply:   num.UintZero(),
		balances: map[string]*num.Uint{},
		grants:   map[Capability]struct{}{root: {}},
	}, root
}

func newCapability() Capability {
	return Capability(uuid.NewV4().String())
}

func (t *Token) Name() string   { return t.name }
func (t *Token) Symbol() string { return t.symbol }

func (t *Token) Paused() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.paused
}

func (t *Token) TotalSupply() *num.Uint {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.supply.Clone()
}

func (t *Token) BalanceOf(owner string) *num.Uint {
	t.mu.Lock()
	defer t.mu.Unlock()
	if b, ok := t.balances[owner]; ok {
		return b.Clone()
	}
	return num.UintZero()
}

// Grant issues a new capability, the issuer must hold one itself.
func (t *Token) Grant(issuer Capability) (Capability, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.grants[issuer]; !ok {
		return "", ErrUnauthorized
	}
	cap := newCapability()
	t.grants[cap] = struct{}{}
	return cap, nil
}

// Revoke invalidates a previously issued capability.
func (t *Token) Revoke(issuer, revoked Capability) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.grants[issuer]; !ok {
		return ErrUnauthorized
	}
	delete(t.grants, revoked)
	return nil
}

// Renounce drops the caller's own capability.
func (t *Token) Renounce(cap Capability) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.grants, cap)
}

func (t *Token) authorized(cap Capability) bool {
	_, ok := t.grants[cap]
	return ok
}

func (t *Token) mint(cap Capability, to string, amount *num.Uint) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.authorized(cap) {
		return ErrUnauthorized
	}
	if t.paused {
		return ErrTokenPaused
	}
	supply, overflow := num.UintZero().AddOverflow(t.supply, amount)
	if overflow {
		return ErrSupplyOverflow
	}
	bal, ok := t.balances[to]
	if !ok {
		bal = num.UintZero()
		t.balances[to] = bal
	}
	t.supply = supply
	bal.Add(bal, amount)
	return nil
}

func (t *Token) burn(cap Capability, from string, amount *num.Uint) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.authorized(cap) {
		return ErrUnauthorized
	}
	if t.paused {
		return ErrTokenPaused
	}
	bal, ok := t.balances[from]
	if !ok || bal.LT(amount) {
		return ErrInsufficientBalance
	}
	bal.Sub(bal, amount)
	t.supply.Sub(t.supply, amount)
	return nil
}

func (t *Token) pause(cap Capability) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.authorized(cap) {
		return ErrUnauthorized
	}
	if t.paused {
		return ErrTokenPaused
	}
	t.paused = true
	t.log.Info("position token paused", logging.String("symbol", t.symbol))
	return nil
}

func (t *Token) unpause(cap Capability) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.authorized(cap) {
		return ErrUnauthorized
	}
	if !t.paused {
		return ErrTokenNotPaused
	}
	t.paused = false
	t.log.Info("position token unpaused", logging.String("symbol", t.symbol))
	return nil
}

// Session binds a capability to the token, yielding the handle the engine
// uses for its privileged operations. The capability is re-checked on
// every call so a revocation takes effect immediately.
func (t *Token) Session(cap Capability) *Session {
	return &Session{t: t, cap: cap}
}

// Session is a capability-bound handle on a token.
type Session struct {
	t   *Token
	cap Capability
}

func (s *Session) Symbol() string { return s.t.Symbol() }

func (s *Session) TotalSupply() *num.Uint { return s.t.TotalSupply() }

func (s *Session) BalanceOf(owner string) *num.Uint { return s.t.BalanceOf(owner) }

func (s *Session) Mint(to string, amount *num.Uint) error {
	return s.t.mint(s.cap, to, amount)
}

func (s *Session) Burn(from string, amount *num.Uint) error {
	return s.t.burn(s.cap, from, amount)
}

func (s *Session) Pause() error {
	return s.t.pause(s.cap)
}

func (s *Session) Unpause() error {
	return s.t.unpause(s.cap)
}
