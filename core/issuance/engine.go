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

package issuance

import (
	"context"
	"errors"

	"code.vegaprotocol.io/synth/core/events"
	"code.vegaprotocol.io/synth/core/types"
	"code.vegaprotocol.io/synth/libs/num"
	"code.vegaprotocol.io/synth/logging"
)

const namedLogger = "issuance"

var (
	// ErrNotInitialized is returned on any operation before Initialize.
	ErrNotInitialized = errors.New("engine instance is not initialized")
	// ErrAlreadyInitialized is returned on a second Initialize call.
	ErrAlreadyInitialized = errors.New("engine instance is already initialized")
	// ErrNotOwner is returned when a non owner calls an owner only operation.
	ErrNotOwner = errors.New("operation restricted to the instance owner")
	// ErrNotActive is returned while the instance is deactivated.
	ErrNotActive = errors.New("engine instance is not active")
	// ErrAlreadySettled is returned when collateralize or redeem is called
	// on a settled instance, and on a second Settle call.
	ErrAlreadySettled = errors.New("engine instance is settled")
	// ErrNotSettled is returned when RedeemSettled is called before Settle.
	ErrNotSettled = errors.New("engine instance is not settled")
	// ErrBlockLocked is returned on a repeat operation from a locked origin
	// within the same block, for non allow-listed callers.
	ErrBlockLocked = errors.New("origin is locked for the current block")
	// ErrQtyBelowMinimum is returned when the collateral quantity is below
	// the instance minimum.
	ErrQtyBelowMinimum = errors.New("collateral quantity is below the minimum")
	// ErrZeroQty is returned when a redemption burns nothing.
	ErrZeroQty = errors.New("position token quantity must be greater than zero")
	// ErrQtyTooSmallForPrecision is returned when the collateral owed would
	// truncate to nothing under the precision ratio.
	ErrQtyTooSmallForPrecision = errors.New("quantity too small to yield a positive payout")
	// ErrFeeExceedsMax is returned when an updated fee exceeds the instance
	// fee cap.
	ErrFeeExceedsMax = errors.New("fee exceeds the maximum allowed")
	// ErrZeroMinimumCollateral is returned when updating the minimum
	// collateral quantity to zero.
	ErrZeroMinimumCollateral = errors.New("minimum collateral quantity cannot be zero")
	// ErrMissingSettlementPrice is returned when settling without a price.
	ErrMissingSettlementPrice = errors.New("a settlement price is required")
	// ErrSettlementPriceAboveCap is returned when settling above the
	// volatility cap ratio.
	ErrSettlementPriceAboveCap = errors.New("settlement price exceeds the volatility cap ratio")
	// ErrAmountOverflow is returned when an accounting computation would
	// not fit in 256 bits.
	ErrAmountOverflow = errors.New("amount overflow")
)

// PositionToken is the engine's view on one of the paired position tokens.
// The concrete implementation is a capability bound session, the engine
// holds the privileged role but not the token lifecycle.
//
//go:generate go run github.com/golang/mock/mockgen -destination mocks/position_token_mock.go -package mocks code.vegaprotocol.io/synth/core/issuance PositionToken
type PositionToken interface {
	Symbol() string
	TotalSupply() *num.Uint
	BalanceOf(owner string) *num.Uint
	Mint(to string, amount *num.Uint) error
	Burn(from string, amount *num.Uint) error
	Pause() error
	Unpause() error
}

// Collateral is the transfer adapter for the instance's collateral asset.
// TransferIn reports the amount actually received so fee-on-transfer
// assets are accounted for correctly.
//
//go:generate go run github.com/golang/mock/mockgen -destination mocks/collateral_mock.go -package mocks code.vegaprotocol.io/synth/core/issuance Collateral
type Collateral interface {
	TransferIn(ctx context.Context, from string, qty *num.Uint) (*num.Uint, error)
	TransferOut(ctx context.Context, to string, qty *num.Uint) error
	BalanceOf(owner string) *num.Uint
}

// Broker sends events to the bus.
//
//go:generate go run github.com/golang/mock/mockgen -destination mocks/broker_mock.go -package mocks code.vegaprotocol.io/synth/core/issuance Broker
type Broker interface {
	Send(evt events.Event)
}

// Engine is the protocol accounting engine for one collateral/token trio.
// It owns all economic state: the active/settled lifecycle, fee accrual,
// and the per block reentrancy lock. All operations are all-or-nothing.
type Engine struct {
	log    *logging.Logger
	cfg    Config
	broker Broker

	id    string
	owner string

	initialized bool
	collateral  Collateral
	volToken    PositionToken
	invToken    PositionToken

	capRatio       *num.Uint
	precisionRatio *num.Uint
	maxFeeBps      uint64

	active           bool
	settled          bool
	settlementPrice  *num.Uint
	issuanceFeeBps   uint64
	redeemFeeBps     uint64
	accumulatedFees  *num.Uint
	minCollateralQty *num.Uint
	paused           bool

	// block lock state, fed by BeginBlock. The block height is an opaque
	// monotonic input from the execution environment, the engine never
	// derives it.
	currentBlock uint64
	blockLock    map[string]uint64
	approved     map[string]bool
}

// New creates an engine shell for the given instance identity and owner.
// The instance only becomes operational once Initialize has wired in its
// collateral adapter and paired tokens.
func New(log *logging.Logger, cfg Config, broker Broker, id, owner string) *Engine {
	log = log.Named(namedLogger)
	log.SetLevel(cfg.Level.Get())
	return &Engine{
		log:             log,
		cfg:             cfg,
		broker:          broker,
		id:              id,
		owner:           owner,
		accumulatedFees: num.UintZero(),
		blockLock:       map[string]uint64{},
		approved:        map[string]bool{},
	}
}

// ReloadConf is used in order to reload the internal configuration of
// the engine.
func (e *Engine) ReloadConf(cfg Config) {
	e.log.Info("reloading configuration")
	if e.log.GetLevel() != cfg.Level.Get() {
		e.log.Info("updating log level",
			logging.String("old", e.log.GetLevel().String()),
			logging.String("new", cfg.Level.String()),
		)
		e.log.SetLevel(cfg.Level.Get())
	}
	e.cfg = cfg
}

// Initialize wires the collateral adapter, the paired position tokens and
// the instance parameters. It can be called exactly once.
func (e *Engine) Initialize(collateral Collateral, volToken, invToken PositionToken, params *types.EngineParams) error {
	if e.initialized {
		return ErrAlreadyInitialized
	}
	if err := params.Validate(); err != nil {
		return err
	}
	e.collateral = collateral
	e.volToken = volToken
	e.invToken = invToken
	e.capRatio = params.VolatilityCapRatio.Clone()
	e.precisionRatio = params.PrecisionRatio.Clone()
	e.minCollateralQty = params.MinimumCollateralQty.Clone()
	e.maxFeeBps = params.MaxFeeBps
	e.active = true
	e.initialized = true
	e.log.Info("engine instance initialized",
		logging.String("id", e.id),
		logging.String("cap-ratio", e.capRatio.String()),
		logging.String("min-collateral", e.minCollateralQty.String()),
	)
	return nil
}

// BeginBlock feeds the engine the current block height. Stale block lock
// entries are pruned as the chain moves on.
func (e *Engine) BeginBlock(height uint64) {
	e.currentBlock = height
	for origin, h := range e.blockLock {
		if h < height {
			delete(e.blockLock, origin)
		}
	}
}

// Collateralize deposits qty collateral and mints the matched pair of
// position tokens against the amount actually received.
func (e *Engine) Collateralize(ctx context.Context, party types.Party, qty *num.Uint) error {
	if err := e.canOperate(party); err != nil {
		return err
	}
	if qty == nil || qty.LT(e.minCollateralQty) {
		return ErrQtyBelowMinimum
	}
	// preflight the arithmetic on the nominal quantity so an overflow is a
	// pure validation failure, before any funds move. The received amount
	// can only be smaller.
	if err := e.preflightMintMath(qty); err != nil {
		return err
	}

	received, err := e.collateral.TransferIn(ctx, party.Caller, qty)
	if err != nil {
		return err
	}

	fee := e.feeOn(received, e.issuanceFeeBps)
	working := num.UintZero().Sub(received, fee)

	mintQty := num.UintZero().Mul(working, e.precisionRatio)
	mintQty.Div(mintQty, e.capRatio)

	if err := e.volToken.Mint(party.Caller, mintQty); err != nil {
		e.unwindTransferIn(ctx, party.Caller, received)
		return err
	}
	if err := e.invToken.Mint(party.Caller, mintQty); err != nil {
		// unwind the first mint to keep the pair in lockstep.
		if berr := e.volToken.Burn(party.Caller, mintQty); berr != nil {
			e.log.Error("failed to unwind volatility token mint",
				logging.String("id", e.id), logging.Error(berr))
		}
		e.unwindTransferIn(ctx, party.Caller, received)
		return err
	}

	e.accumulatedFees.Add(e.accumulatedFees, fee)
	e.blockLock[party.Origin] = e.currentBlock

	if e.log.IsDebug() {
		e.log.Debug("collateralized",
			logging.String("id", e.id),
			logging.String("origin", party.Origin),
			logging.String("received", received.String()),
			logging.String("minted", mintQty.String()),
			logging.String("fee", fee.String()),
		)
	}
	e.broker.Send(events.NewCollateralizedEvent(ctx, e.id, party, received, mintQty, fee))
	return nil
}

// Redeem burns an equal quantity of both position tokens and releases the
// backing collateral, minus the redeem fee.
func (e *Engine) Redeem(ctx context.Context, party types.Party, positionTokenQty *num.Uint) error {
	if err := e.canOperate(party); err != nil {
		return err
	}
	if positionTokenQty == nil || positionTokenQty.IsZero() {
		return ErrZeroQty
	}
	owed, fee, err := e.collateralOwed(positionTokenQty, e.capRatio)
	if err != nil {
		return err
	}

	if err := e.burnPair(party.Caller, positionTokenQty, positionTokenQty); err != nil {
		return err
	}
	if err := e.collateral.TransferOut(ctx, party.Caller, owed); err != nil {
		// unwind the burns, the redemption never happened.
		e.mintPair(party.Caller, positionTokenQty, positionTokenQty)
		return err
	}

	e.accumulatedFees.Add(e.accumulatedFees, fee)
	e.blockLock[party.Origin] = e.currentBlock

	e.broker.Send(events.NewRedeemedEvent(
		ctx, e.id, party, owed, positionTokenQty, positionTokenQty, fee, false))
	return nil
}

// RedeemSettled burns asymmetric quantities of the paired tokens, priced
// by the settlement price. Only available once the instance is settled,
// and subject to the same per block lock as the pre settlement paths.
func (e *Engine) RedeemSettled(ctx context.Context, party types.Party, volQty, invVolQty *num.Uint) error {
	if !e.initialized {
		return ErrNotInitialized
	}
	if !e.active {
		return ErrNotActive
	}
	if !e.settled {
		return ErrNotSettled
	}
	if e.blockLocked(party) {
		return ErrBlockLocked
	}
	if volQty == nil {
		volQty = num.UintZero()
	}
	if invVolQty == nil {
		invVolQty = num.UintZero()
	}
	if volQty.IsZero() && invVolQty.IsZero() {
		return ErrZeroQty
	}

	volPart, overflow := num.UintZero().MulOverflow(volQty, e.settlementPrice)
	if overflow {
		return ErrAmountOverflow
	}
	invPrice := num.UintZero().Sub(e.capRatio, e.settlementPrice)
	invPart, overflow := num.UintZero().MulOverflow(invVolQty, invPrice)
	if overflow {
		return ErrAmountOverflow
	}
	rawOwed, overflow := num.UintZero().AddOverflow(volPart, invPart)
	if overflow {
		return ErrAmountOverflow
	}
	owed, fee, err := e.applyPrecisionAndFee(rawOwed)
	if err != nil {
		return err
	}

	if err := e.burnPair(party.Caller, volQty, invVolQty); err != nil {
		return err
	}
	if err := e.collateral.TransferOut(ctx, party.Caller, owed); err != nil {
		e.mintPair(party.Caller, volQty, invVolQty)
		return err
	}

	e.accumulatedFees.Add(e.accumulatedFees, fee)
	e.blockLock[party.Origin] = e.currentBlock

	e.broker.Send(events.NewRedeemedEvent(
		ctx, e.id, party, owed, volQty, invVolQty, fee, true))
	return nil
}

// Settle latches the instance to its settled state at the given price.
// This transition is one way.
func (e *Engine) Settle(ctx context.Context, caller string, price *num.Uint) error {
	if !e.initialized {
		return ErrNotInitialized
	}
	if caller != e.owner {
		return ErrNotOwner
	}
	if e.settled {
		return ErrAlreadySettled
	}
	if price == nil {
		return ErrMissingSettlementPrice
	}
	if price.GT(e.capRatio) {
		return ErrSettlementPriceAboveCap
	}
	e.settlementPrice = price.Clone()
	e.settled = true
	e.log.Info("engine instance settled",
		logging.String("id", e.id),
		logging.String("settlement-price", price.String()),
		logging.String("cap-fraction", price.ToDecimal().Div(e.capRatio.ToDecimal()).String()),
	)
	e.broker.Send(events.NewSettledEvent(ctx, e.id, price))
	return nil
}

// ClaimAccumulatedFees transfers the accumulated fees to the owner. The
// balance is cleared before the external transfer so a reentrant call can
// never double claim.
func (e *Engine) ClaimAccumulatedFees(ctx context.Context, caller string) error {
	if !e.initialized {
		return ErrNotInitialized
	}
	if caller != e.owner {
		return ErrNotOwner
	}
	claimed := e.accumulatedFees.Clone()
	e.accumulatedFees = num.UintZero()
	if !claimed.IsZero() {
		if err := e.collateral.TransferOut(ctx, e.owner, claimed); err != nil {
			e.accumulatedFees = claimed
			return err
		}
	}
	e.broker.Send(events.NewFeesClaimedEvent(ctx, e.id, e.owner, claimed))
	return nil
}

// UpdateFees sets the issuance and redeem fees, both in basis points and
// both bounded by the instance fee cap.
func (e *Engine) UpdateFees(ctx context.Context, caller string, issuanceBps, redeemBps uint64) error {
	if !e.initialized {
		return ErrNotInitialized
	}
	if caller != e.owner {
		return ErrNotOwner
	}
	if issuanceBps > e.maxFeeBps || redeemBps > e.maxFeeBps {
		return ErrFeeExceedsMax
	}
	e.issuanceFeeBps = issuanceBps
	e.redeemFeeBps = redeemBps
	e.broker.Send(events.NewFeesUpdatedEvent(ctx, e.id, issuanceBps, redeemBps))
	return nil
}

// UpdateMinimumCollateralQty sets the per call collateral floor.
func (e *Engine) UpdateMinimumCollateralQty(ctx context.Context, caller string, qty *num.Uint) error {
	if !e.initialized {
		return ErrNotInitialized
	}
	if caller != e.owner {
		return ErrNotOwner
	}
	if qty == nil || qty.IsZero() {
		return ErrZeroMinimumCollateral
	}
	e.minCollateralQty = qty.Clone()
	e.broker.Send(events.NewMinimumCollateralUpdatedEvent(ctx, e.id, qty))
	return nil
}

// ToggleActive flips the active gate. It remains available after
// settlement, deactivation then blocks RedeemSettled as well.
func (e *Engine) ToggleActive(ctx context.Context, caller string) error {
	if !e.initialized {
		return ErrNotInitialized
	}
	if caller != e.owner {
		return ErrNotOwner
	}
	e.active = !e.active
	e.broker.Send(events.NewActiveToggledEvent(ctx, e.id, e.active))
	return nil
}

// UpdateVolatilityToken swaps the volatility side of the pair.
func (e *Engine) UpdateVolatilityToken(ctx context.Context, caller string, token PositionToken) error {
	return e.updateToken(ctx, caller, token, false)
}

// UpdateInverseVolatilityToken swaps the inverse side of the pair.
func (e *Engine) UpdateInverseVolatilityToken(ctx context.Context, caller string, token PositionToken) error {
	return e.updateToken(ctx, caller, token, true)
}

func (e *Engine) updateToken(ctx context.Context, caller string, token PositionToken, inverse bool) error {
	if !e.initialized {
		return ErrNotInitialized
	}
	if caller != e.owner {
		return ErrNotOwner
	}
	if inverse {
		e.invToken = token
	} else {
		e.volToken = token
	}
	e.broker.Send(events.NewPositionTokenUpdatedEvent(ctx, e.id, inverse, token.Symbol()))
	return nil
}

// TogglePause pauses or unpauses both position tokens.
func (e *Engine) TogglePause(ctx context.Context, caller string) error {
	if !e.initialized {
		return ErrNotInitialized
	}
	if caller != e.owner {
		return ErrNotOwner
	}
	if !e.paused {
		if err := e.volToken.Pause(); err != nil {
			return err
		}
		if err := e.invToken.Pause(); err != nil {
			if uerr := e.volToken.Unpause(); uerr != nil {
				e.log.Error("failed to unwind volatility token pause",
					logging.String("id", e.id), logging.Error(uerr))
			}
			return err
		}
	} else {
		if err := e.volToken.Unpause(); err != nil {
			return err
		}
		if err := e.invToken.Unpause(); err != nil {
			if perr := e.volToken.Pause(); perr != nil {
				e.log.Error("failed to unwind volatility token unpause",
					logging.String("id", e.id), logging.Error(perr))
			}
			return err
		}
	}
	e.paused = !e.paused
	e.broker.Send(events.NewPauseToggledEvent(ctx, e.id, e.paused))
	return nil
}

// ApproveContract adds a caller to the block lock allow list, intended for
// aggregator contracts that legitimately operate twice within one block.
func (e *Engine) ApproveContract(ctx context.Context, caller, addr string) error {
	if !e.initialized {
		return ErrNotInitialized
	}
	if caller != e.owner {
		return ErrNotOwner
	}
	e.approved[addr] = true
	e.broker.Send(events.NewApprovalUpdatedEvent(ctx, e.id, addr, true))
	return nil
}

// RevokeApprovedContract removes a caller from the allow list.
func (e *Engine) RevokeApprovedContract(ctx context.Context, caller, addr string) error {
	if !e.initialized {
		return ErrNotInitialized
	}
	if caller != e.owner {
		return ErrNotOwner
	}
	delete(e.approved, addr)
	e.broker.Send(events.NewApprovalUpdatedEvent(ctx, e.id, addr, false))
	return nil
}

func (e *Engine) ID() string { return e.id }

func (e *Engine) Owner() string { return e.owner }

func (e *Engine) Active() bool { return e.active }

func (e *Engine) IsSettled() bool { return e.settled }

func (e *Engine) SettlementPrice() *num.Uint {
	if e.settlementPrice == nil {
		return num.UintZero()
	}
	return e.settlementPrice.Clone()
}

func (e *Engine) AccumulatedFees() *num.Uint { return e.accumulatedFees.Clone() }

func (e *Engine) MinimumCollateralQty() *num.Uint { return e.minCollateralQty.Clone() }

func (e *Engine) VolatilityCapRatio() *num.Uint { return e.capRatio.Clone() }

func (e *Engine) PrecisionRatio() *num.Uint { return e.precisionRatio.Clone() }

func (e *Engine) Fees() (issuanceBps, redeemBps uint64) {
	return e.issuanceFeeBps, e.redeemFeeBps
}

func (e *Engine) IsApproved(addr string) bool {
	return e.approved[addr]
}

// canOperate gates collateralize and redeem: the instance must be
// initialized, active and not settled, and the origin must not be locked
// for the current block unless the caller is allow-listed.
func (e *Engine) canOperate(party types.Party) error {
	if !e.initialized {
		return ErrNotInitialized
	}
	if !e.active {
		return ErrNotActive
	}
	if e.settled {
		return ErrAlreadySettled
	}
	if e.blockLocked(party) {
		return ErrBlockLocked
	}
	return nil
}

// blockLocked reports whether the party's origin is locked for the
// current block, approval of the caller being the only bypass.
func (e *Engine) blockLocked(party types.Party) bool {
	h, ok := e.blockLock[party.Origin]
	return ok && h == e.currentBlock && !e.approved[party.Caller]
}

// feeOn computes floor(amount * bps / 10000). Truncation always favors the
// protocol user, fees never round up.
func (e *Engine) feeOn(amount *num.Uint, bps uint64) *num.Uint {
	if bps == 0 {
		return num.UintZero()
	}
	fee := num.UintZero().Mul(amount, num.NewUint(bps))
	return fee.Div(fee, num.NewUint(types.FeeScale))
}

// preflightMintMath rejects quantities whose fee or mint computation would
// overflow, using the nominal quantity as the upper bound.
func (e *Engine) preflightMintMath(qty *num.Uint) error {
	if _, overflow := num.UintZero().MulOverflow(qty, num.NewUint(types.FeeScale)); overflow {
		return ErrAmountOverflow
	}
	if _, overflow := num.UintZero().MulOverflow(qty, e.precisionRatio); overflow {
		return ErrAmountOverflow
	}
	fee := e.feeOn(qty, e.issuanceFeeBps)
	if _, overflow := num.UintZero().AddOverflow(e.accumulatedFees, fee); overflow {
		return ErrAmountOverflow
	}
	return nil
}

// collateralOwed computes the collateral released for burning qty of both
// paired tokens, and the redeem fee taken out of it.
func (e *Engine) collateralOwed(qty, price *num.Uint) (owed, fee *num.Uint, err error) {
	rawOwed, overflow := num.UintZero().MulOverflow(qty, price)
	if overflow {
		return nil, nil, ErrAmountOverflow
	}
	return e.applyPrecisionAndFee(rawOwed)
}

// applyPrecisionAndFee scales the raw owed amount down by the precision
// ratio where one applies, guards against a zero payout truncation, and
// deducts the redeem fee.
func (e *Engine) applyPrecisionAndFee(rawOwed *num.Uint) (owed, fee *num.Uint, err error) {
	owed = rawOwed.Clone()
	if e.precisionRatio.GT(num.UintOne()) {
		if rawOwed.LTE(e.precisionRatio) {
			return nil, nil, ErrQtyTooSmallForPrecision
		}
		owed.Div(owed, e.precisionRatio)
	}
	fee = e.feeOn(owed, e.redeemFeeBps)
	if _, overflow := num.UintZero().AddOverflow(e.accumulatedFees, fee); overflow {
		return nil, nil, ErrAmountOverflow
	}
	owed.Sub(owed, fee)
	return owed, fee, nil
}

// burnPair burns volQty/invQty from the holder, unwinding the first burn
// if the second fails so no partial state is left behind.
func (e *Engine) burnPair(holder string, volQty, invQty *num.Uint) error {
	if !volQty.IsZero() {
		if err := e.volToken.Burn(holder, volQty); err != nil {
			return err
		}
	}
	if !invQty.IsZero() {
		if err := e.invToken.Burn(holder, invQty); err != nil {
			if !volQty.IsZero() {
				if merr := e.volToken.Mint(holder, volQty); merr != nil {
					e.log.Error("failed to unwind volatility token burn",
						logging.String("id", e.id), logging.Error(merr))
				}
			}
			return err
		}
	}
	return nil
}

// mintPair is the unwind counterpart of burnPair.
func (e *Engine) mintPair(holder string, volQty, invQty *num.Uint) {
	if !volQty.IsZero() {
		if err := e.volToken.Mint(holder, volQty); err != nil {
			e.log.Error("failed to unwind token burn",
				logging.String("id", e.id), logging.Error(err))
		}
	}
	if !invQty.IsZero() {
		if err := e.invToken.Mint(holder, invQty); err != nil {
			e.log.Error("failed to unwind token burn",
				logging.String("id", e.id), logging.Error(err))
		}
	}
}

// unwindTransferIn returns deposited collateral after a failed mint. Only
// the received amount can be returned, transfer friction on the way in is
// lost to the depositor either way.
func (e *Engine) unwindTransferIn(ctx context.Context, to string, received *num.Uint) {
	if err := e.collateral.TransferOut(ctx, to, received); err != nil {
		e.log.Error("failed to unwind collateral deposit",
			logging.String("id", e.id), logging.Error(err))
	}
}
