// Copyright 2026 Anapaya Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package routing

import (
	"fmt"

	"go.uber.org/zap/zapcore"

	"github.com/scionproto/lpmsim/pkg/addr"
)

// Lookuper finds the route for a destination.
type Lookuper interface {
	Lookup(dest addr.Addr) (Route, bool)
}

var (
	_ Lookuper = (*Table)(nil)
	_ Lookuper = (*CachingResolver)(nil)
)

// Action is the outcome of a forwarding decision.
type Action uint8

const (
	ActionDrop Action = iota
	ActionForward
)

func (a Action) String() string {
	switch a {
	case ActionDrop:
		return "drop"
	case ActionForward:
		return "forward"
	}
	return fmt.Sprintf("UNKNOWN (%d)", a)
}

// DropReason explains why a packet is dropped.
type DropReason uint8

const (
	// ReasonNone is the reason of forward decisions.
	ReasonNone DropReason = iota
	// NoRoute means that no route contains the destination.
	NoRoute
	// HopLimitExceeded means that the packet was forwarded too many times.
	HopLimitExceeded
	// InterfaceDown means that the selected outgoing interface is not up.
	InterfaceDown
	// NextHopUnreachable means that the next hop is not attached to the
	// selected outgoing interface.
	NextHopUnreachable
)

func (r DropReason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case NoRoute:
		return "no_route"
	case HopLimitExceeded:
		return "hop_limit_exceeded"
	case InterfaceDown:
		return "interface_down"
	case NextHopUnreachable:
		return "next_hop_unreachable"
	}
	return fmt.Sprintf("UNKNOWN (%d)", r)
}

// ForwardDecision is the result of resolving a destination.
type ForwardDecision struct {
	Action Action
	// NextHop is the address the packet is handed to. For connected routes it
	// is the destination itself. Only set for ActionForward.
	NextHop addr.Addr
	// Route is the selected route. Only set for ActionForward.
	Route Route
	// Reason is set for ActionDrop.
	Reason DropReason
}

// Forward returns the decision to forward along r.
func Forward(r Route) ForwardDecision {
	return ForwardDecision{Action: ActionForward, NextHop: r.NextHop, Route: r}
}

// Drop returns the decision to drop for the given reason.
func Drop(reason DropReason) ForwardDecision {
	return ForwardDecision{Action: ActionDrop, Reason: reason}
}

// Forwarded reports whether the decision is to forward.
func (d ForwardDecision) Forwarded() bool {
	return d.Action == ActionForward
}

func (d ForwardDecision) String() string {
	if d.Action == ActionDrop {
		return fmt.Sprintf("drop (%s)", d.Reason)
	}
	return fmt.Sprintf("forward to %s (%s)", d.NextHop, d.Route)
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (d ForwardDecision) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("action", d.Action.String())
	if d.Action == ActionDrop {
		enc.AddString("reason", d.Reason.String())
		return nil
	}
	enc.AddString("next_hop", d.NextHop.String())
	return enc.AddObject("route", d.Route)
}

// Resolve looks up dest in table. A match results in a forward decision, a
// miss in a drop decision with reason NoRoute.
func Resolve(table Lookuper, dest addr.Addr) ForwardDecision {
	r, ok := table.Lookup(dest)
	if !ok {
		return Drop(NoRoute)
	}
	d := Forward(r)
	if r.IsConnected() {
		d.NextHop = dest
	}
	return d
}
