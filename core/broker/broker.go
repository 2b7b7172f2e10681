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

package broker

import (
	"sync"

	"code.vegaprotocol.io/synth/core/events"
	"code.vegaprotocol.io/synth/logging"
)

const namedLogger = "broker"

// Subscriber receives events pushed through the broker.
//
//go:generate go run github.com/golang/mock/mockgen -destination mocks/subscriber_mock.go -package mocks code.vegaprotocol.io/synth/core/broker Subscriber
type Subscriber interface {
	Push(evts ...events.Event)
	Types() []events.Type
}

type subscription struct {
	Subscriber
	id int
}

// Broker is a synchronous in-process event broker. Events are delivered to
// subscribers on the caller's goroutine, in send order, which keeps the
// engines' all-or-nothing semantics observable by tests.
type Broker struct {
	log *logging.Logger
	cfg Config

	mu    sync.Mutex
	seq   int
	tSubs map[events.Type]map[int]*subscription
}

// New creates a new broker.
func New(log *logging.Logger, cfg Config) *Broker {
	log = log.Named(namedLogger)
	log.SetLevel(cfg.Level.Get())
	return &Broker{
		log:   log,
		cfg:   cfg,
		tSubs: map[events.Type]map[int]*subscription{},
	}
}

// Subscribe registers a subscriber for the event types it declares, the
// returned key is used to unsubscribe.
func (b *Broker) Subscribe(s Subscriber) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.seq++
	sub := &subscription{Subscriber: s, id: b.seq}
	types := s.Types()
	if len(types) == 0 {
		types = []events.Type{events.All}
	}
	for _, t := range types {
		if _, ok := b.tSubs[t]; !ok {
			b.tSubs[t] = map[int]*subscription{}
		}
		b.tSubs[t][sub.id] = sub
	}
	return sub.id
}

// Unsubscribe removes a subscriber from all the types it registered for.
func (b *Broker) Unsubscribe(key int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, subs := range b.tSubs {
		delete(subs, key)
	}
}

// Send delivers the event to the subscribers of its type, and to the
// subscribers of All.
func (b *Broker) Send(evt events.Event) {
	b.mu.Lock()
	targets := make([]*subscription, 0, 4)
	for _, sub := range b.tSubs[evt.Type()] {
		targets = append(targets, sub)
	}
	if evt.Type() != events.All {
		for _, sub := range b.tSubs[events.All] {
			targets = append(targets, sub)
		}
	}
	b.mu.Unlock()

	if b.log.IsDebug() {
		b.log.Debug("sending event",
			logging.String("type", evt.Type().String()),
			logging.String("instance", evt.InstanceID()),
			logging.Int("subscribers", len(targets)),
		)
	}
	for _, sub := range targets {
		sub.Push(evt)
	}
}
