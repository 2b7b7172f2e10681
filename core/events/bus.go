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

package events

import (
	"context"

	uuid "github.com/satori/go.uuid"
)

type Type int

const (
	// All is used by subscribers wanting every event, it has no payload of
	// its own.
	All Type = iota
	InstanceCreatedEvent
	CollateralizedEvent
	RedeemedEvent
	SettledEvent
	FeesUpdatedEvent
	FeesClaimedEvent
	ActiveToggledEvent
	MinimumCollateralUpdatedEvent
	PositionTokenUpdatedEvent
	PauseToggledEvent
	ApprovalUpdatedEvent
)

var eventStrings = map[Type]string{
	All:                           "ALL",
	InstanceCreatedEvent:          "InstanceCreated",
	CollateralizedEvent:           "Collateralized",
	RedeemedEvent:                 "Redeemed",
	SettledEvent:                  "Settled",
	FeesUpdatedEvent:              "FeesUpdated",
	FeesClaimedEvent:              "FeesClaimed",
	ActiveToggledEvent:            "ActiveToggled",
	MinimumCollateralUpdatedEvent: "MinimumCollateralUpdated",
	PositionTokenUpdatedEvent:     "PositionTokenUpdated",
	PauseToggledEvent:             "PauseToggled",
	ApprovalUpdatedEvent:          "ApprovalUpdated",
}

func (t Type) String() string {
	s, ok := eventStrings[t]
	if !ok {
		return "UNKNOWN"
	}
	return s
}

// Event is the common denominator all bus events share.
type Event interface {
	Type() Type
	Context() context.Context
	TraceID() string
	InstanceID() string
}

// Base common event fields, all concrete events embed it.
type Base struct {
	ctx        context.Context
	traceID    string
	instanceID string
	et         Type
}

func newBase(ctx context.Context, instanceID string, t Type) *Base {
	return &Base{
		ctx:        ctx,
		traceID:    uuid.NewV4().String(),
		instanceID: instanceID,
		et:         t,
	}
}

func (b Base) Type() Type {
	return b.et
}

func (b Base) Context() context.Context {
	return b.ctx
}

func (b Base) TraceID() string {
	return b.traceID
}

// InstanceID returns the engine instance the event originated from.
func (b Base) InstanceID() string {
	return b.instanceID
}
