// Copyright 2018 ETH Zurich
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

// Package prom contains some utility functions for dealing with prometheus
// metrics.
package prom

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Common label names.
const (
	// LabelResult is the label for result classifications.
	LabelResult = "result"
	// LabelNode is the label for the simulated node.
	LabelNode = "node"
	// LabelTable is the label for the routing table.
	LabelTable = "table"
	// LabelReason is the label for drop reasons.
	LabelReason = "reason"
)

// Common result values.
const (
	// Hit is a lookup that found a route.
	Hit = "hit"
	// Miss is a lookup that found no route.
	Miss = "miss"
	// Delivered is a packet that reached its destination.
	Delivered = "delivered"
	// Dropped is a packet that was discarded on the way.
	Dropped = "dropped"
)

// SafeRegisterCounterVec registers c with the default registerer. If an equal
// collector is already registered, the existing one is returned instead.
func SafeRegisterCounterVec(c *prometheus.CounterVec) *prometheus.CounterVec {
	if err := prometheus.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing
			}
		}
	}
	return c
}
